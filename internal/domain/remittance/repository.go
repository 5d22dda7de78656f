package remittance

import (
	"context"

	"github.com/pathways-hq/pathways/internal/types"
)

// Repository defines the interface for remittance persistence operations
type Repository interface {
	// Core operations
	Create(ctx context.Context, r *Remittance) error
	Get(ctx context.Context, id string) (*Remittance, error)
	Update(ctx context.Context, r *Remittance) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.RemittanceFilter) ([]*Remittance, error)
	Count(ctx context.Context, filter *types.RemittanceFilter) (int, error)

	// ListByCandidate returns all remittances for a candidate ordered
	// by sent_at ascending, for the anomaly scan.
	ListByCandidate(ctx context.Context, candidateID string) ([]*Remittance, error)
}

// AlertRepository defines the interface for remittance alert
// persistence operations
type AlertRepository interface {
	Create(ctx context.Context, a *Alert) error
	Get(ctx context.Context, id string) (*Alert, error)
	Update(ctx context.Context, a *Alert) error
	List(ctx context.Context, filter *types.RemittanceAlertFilter) ([]*Alert, error)
	Count(ctx context.Context, filter *types.RemittanceAlertFilter) (int, error)

	// GetOpenByCandidateAndType returns the open alert for a candidate
	// and type, if one exists. Used to keep alert generation
	// idempotent.
	GetOpenByCandidateAndType(ctx context.Context, candidateID string, alertType types.RemittanceAlertType) (*Alert, error)

	// ListOpenByCandidate returns all open alerts for a candidate
	ListOpenByCandidate(ctx context.Context, candidateID string) ([]*Alert, error)
}
