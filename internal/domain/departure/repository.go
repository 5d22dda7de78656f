package departure

import (
	"context"

	"github.com/pathways-hq/pathways/internal/types"
)

// Repository defines the interface for departure persistence operations
type Repository interface {
	// Core operations
	Create(ctx context.Context, d *Departure) error
	Get(ctx context.Context, id string) (*Departure, error)
	GetByCandidateID(ctx context.Context, candidateID string) (*Departure, error)
	Update(ctx context.Context, d *Departure) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.DepartureFilter) ([]*Departure, error)
	Count(ctx context.Context, filter *types.DepartureFilter) (int, error)

	// Checklist operations
	CreateChecklistItems(ctx context.Context, items []*ChecklistItem) error
	ListChecklistItems(ctx context.Context, departureID string) ([]*ChecklistItem, error)
	UpdateChecklistItem(ctx context.Context, item *ChecklistItem) error
}
