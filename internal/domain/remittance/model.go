package remittance

import (
	"time"

	"github.com/pathways-hq/pathways/internal/types"
	"github.com/shopspring/decimal"
)

// Remittance represents one money transfer sent home by a departed
// candidate.
type Remittance struct {
	ID              string          `db:"id" json:"id"`
	CandidateID     string          `db:"candidate_id" json:"candidate_id"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	Currency        string          `db:"currency" json:"currency"`
	SentAt          time.Time       `db:"sent_at" json:"sent_at"`
	Channel         string          `db:"channel" json:"channel"`
	ProofDocumentID *string         `db:"proof_document_id" json:"proof_document_id,omitempty"`
	types.BaseModel
}

// HasProof reports whether the remittance carries a proof document
func (r *Remittance) HasProof() bool {
	return r.ProofDocumentID != nil && *r.ProofDocumentID != ""
}

// Alert represents a remittance anomaly raised against a candidate.
// At most one open alert exists per candidate and alert type.
type Alert struct {
	ID           string                      `db:"id" json:"id"`
	CandidateID  string                      `db:"candidate_id" json:"candidate_id"`
	AlertType    types.RemittanceAlertType   `db:"alert_type" json:"alert_type"`
	AlertStatus  types.RemittanceAlertStatus `db:"alert_status" json:"alert_status"`
	Severity     types.AlertSeverity         `db:"severity" json:"severity"`
	Message      string                      `db:"message" json:"message"`
	RemittanceID *string                     `db:"remittance_id" json:"remittance_id,omitempty"`
	ResolvedAt   *time.Time                  `db:"resolved_at" json:"resolved_at,omitempty"`
	types.BaseModel
}
