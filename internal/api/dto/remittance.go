package dto

import (
	"context"
	"time"

	"github.com/pathways-hq/pathways/internal/validator"
	"github.com/pathways-hq/pathways/internal/domain/remittance"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/types"
	"github.com/shopspring/decimal"
)

type CreateRemittanceRequest struct {
	CandidateID     string          `json:"candidate_id" validate:"required"`
	Amount          decimal.Decimal `json:"amount" validate:"required"`
	Currency        string          `json:"currency" validate:"required,len=3"`
	SentAt          time.Time       `json:"sent_at" validate:"required"`
	Channel         string          `json:"channel" validate:"required,max=50"`
	ProofDocumentID *string         `json:"proof_document_id"`
}

type RemittanceResponse struct {
	*remittance.Remittance
}

// ListRemittancesResponse represents the response for listing remittances
type ListRemittancesResponse = types.ListResponse[*RemittanceResponse]

type RemittanceAlertResponse struct {
	*remittance.Alert
}

// ListRemittanceAlertsResponse represents the response for listing alerts
type ListRemittanceAlertsResponse = types.ListResponse[*RemittanceAlertResponse]

// AlertScanResponse summarizes one run of the remittance anomaly scan.
// Raised counts only alerts created by this run; alerts already open
// are left untouched and counted as skipped.
type AlertScanResponse struct {
	CandidatesScanned int                               `json:"candidates_scanned"`
	Raised            int                               `json:"raised"`
	Skipped           int                               `json:"skipped"`
	Resolved          int                               `json:"resolved"`
	Breakdown         map[types.RemittanceAlertType]int `json:"breakdown,omitempty"`

	DryRun bool `json:"dry_run"`
}

func (r *CreateRemittanceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if !r.Amount.IsPositive() {
		return ierr.NewError("remittance amount must be positive").
			WithHint("Amount must be greater than zero").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateRemittanceRequest) ToRemittance(ctx context.Context) *remittance.Remittance {
	return &remittance.Remittance{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REMITTANCE),
		CandidateID:     r.CandidateID,
		Amount:          r.Amount,
		Currency:        r.Currency,
		SentAt:          r.SentAt,
		Channel:         r.Channel,
		ProofDocumentID: r.ProofDocumentID,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
}
