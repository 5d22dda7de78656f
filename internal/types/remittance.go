package types

import (
	"fmt"
	"time"

	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/samber/lo"
)

// RemittanceAlertType identifies the anomaly that raised an alert
type RemittanceAlertType string

const (
	// RemittanceAlertMissingRemittance fires when a departed candidate
	// has sent no remittance for longer than the configured window.
	RemittanceAlertMissingRemittance RemittanceAlertType = "missing_remittance"
	// RemittanceAlertMissingProof fires when a remittance record has
	// no supporting proof document.
	RemittanceAlertMissingProof RemittanceAlertType = "missing_proof"
	// RemittanceAlertFirstDelay fires when the first remittance has
	// not arrived within the expected period after departure.
	RemittanceAlertFirstDelay RemittanceAlertType = "first_remittance_delay"
	// RemittanceAlertLowFrequency fires when the gap between
	// consecutive remittances exceeds the configured threshold.
	RemittanceAlertLowFrequency RemittanceAlertType = "low_frequency"
	// RemittanceAlertUnusualAmount fires when an amount deviates from
	// the candidate's historical average beyond the threshold.
	RemittanceAlertUnusualAmount RemittanceAlertType = "unusual_amount"
)

func (t RemittanceAlertType) String() string {
	return string(t)
}

// Validate checks that the alert type is a member of the closed enum
func (t RemittanceAlertType) Validate() error {
	allowed := []RemittanceAlertType{
		RemittanceAlertMissingRemittance,
		RemittanceAlertMissingProof,
		RemittanceAlertFirstDelay,
		RemittanceAlertLowFrequency,
		RemittanceAlertUnusualAmount,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid remittance alert type").
			WithHint(fmt.Sprintf("Alert type must be one of %v", allowed)).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// AlertSeverity is the severity attached to a raised alert
type AlertSeverity string

const (
	AlertSeverityInfo     AlertSeverity = "info"
	AlertSeverityWarning  AlertSeverity = "warning"
	AlertSeverityCritical AlertSeverity = "critical"
)

func (s AlertSeverity) String() string {
	return string(s)
}

// RemittanceAlertStatus is the lifecycle state of a raised alert
type RemittanceAlertStatus string

const (
	RemittanceAlertStatusOpen     RemittanceAlertStatus = "open"
	RemittanceAlertStatusResolved RemittanceAlertStatus = "resolved"
)

func (s RemittanceAlertStatus) String() string {
	return string(s)
}

// RemittanceFilter filters remittance queries
type RemittanceFilter struct {
	*QueryFilter
	CandidateID string     `json:"candidate_id,omitempty" form:"candidate_id"`
	SentAfter   *time.Time `json:"sent_after,omitempty" form:"sent_after"`
	SentBefore  *time.Time `json:"sent_before,omitempty" form:"sent_before"`
}

// NewRemittanceFilter creates a filter with default pagination
func NewRemittanceFilter() *RemittanceFilter {
	return &RemittanceFilter{QueryFilter: NewDefaultQueryFilter()}
}

// Validate validates the remittance filter
func (f *RemittanceFilter) Validate() error {
	return f.QueryFilter.Validate()
}

// RemittanceAlertFilter filters remittance alert queries
type RemittanceAlertFilter struct {
	*QueryFilter
	CandidateID string                `json:"candidate_id,omitempty" form:"candidate_id"`
	AlertTypes  []RemittanceAlertType `json:"alert_types,omitempty" form:"alert_types"`
	AlertStatus RemittanceAlertStatus `json:"alert_status,omitempty" form:"alert_status"`
}

// NewRemittanceAlertFilter creates a filter with default pagination
func NewRemittanceAlertFilter() *RemittanceAlertFilter {
	return &RemittanceAlertFilter{QueryFilter: NewDefaultQueryFilter()}
}

// Validate validates the remittance alert filter
func (f *RemittanceAlertFilter) Validate() error {
	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}
	for _, t := range f.AlertTypes {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}
