package types

import (
	"fmt"

	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/samber/lo"
)

// DocumentType classifies an archived candidate document
type DocumentType string

const (
	DocumentTypePassport        DocumentType = "passport"
	DocumentTypeCNIC            DocumentType = "cnic"
	DocumentTypeVisa            DocumentType = "visa"
	DocumentTypeMedical         DocumentType = "medical"
	DocumentTypeContract        DocumentType = "contract"
	DocumentTypeCertificate     DocumentType = "certificate"
	DocumentTypeRemittanceProof DocumentType = "remittance_proof"
	DocumentTypeOther           DocumentType = "other"
)

func (t DocumentType) String() string {
	return string(t)
}

// Validate checks that the document type is a member of the closed enum
func (t DocumentType) Validate() error {
	allowed := []DocumentType{
		DocumentTypePassport,
		DocumentTypeCNIC,
		DocumentTypeVisa,
		DocumentTypeMedical,
		DocumentTypeContract,
		DocumentTypeCertificate,
		DocumentTypeRemittanceProof,
		DocumentTypeOther,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid document type").
			WithHint(fmt.Sprintf("Document type must be one of %v", allowed)).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// DocumentFilter filters document queries
type DocumentFilter struct {
	*QueryFilter
	CandidateID        string         `json:"candidate_id,omitempty" form:"candidate_id"`
	DocumentTypes      []DocumentType `json:"document_types,omitempty" form:"document_types"`
	ExpiringWithinDays *int           `json:"expiring_within_days,omitempty" form:"expiring_within_days"`
}

// NewDocumentFilter creates a filter with default pagination
func NewDocumentFilter() *DocumentFilter {
	return &DocumentFilter{QueryFilter: NewDefaultQueryFilter()}
}

// Validate validates the document filter
func (f *DocumentFilter) Validate() error {
	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}
	for _, t := range f.DocumentTypes {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	if f.ExpiringWithinDays != nil && *f.ExpiringWithinDays < 0 {
		return ierr.NewError("expiring_within_days must not be negative").
			WithHint("Expiry window must not be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}
