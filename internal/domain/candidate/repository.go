package candidate

import (
	"context"

	"github.com/pathways-hq/pathways/internal/types"
)

// Repository defines the interface for candidate persistence operations
type Repository interface {
	// Core operations
	Create(ctx context.Context, c *Candidate) error
	Get(ctx context.Context, id string) (*Candidate, error)
	GetByCNIC(ctx context.Context, cnic string) (*Candidate, error)
	Update(ctx context.Context, c *Candidate) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.CandidateFilter) ([]*Candidate, error)
	Count(ctx context.Context, filter *types.CandidateFilter) (int, error)

	// Pipeline operations
	CountByStatus(ctx context.Context) (map[types.CandidateStatus]int, error)
	CountByBatch(ctx context.Context, batchID string) (int, error)

	// Transition audit trail
	CreateTransition(ctx context.Context, t *StatusTransition) error
	ListTransitions(ctx context.Context, candidateID string) ([]*StatusTransition, error)
}
