package document

import (
	"context"
	"time"

	"github.com/pathways-hq/pathways/internal/types"
)

// Repository defines the interface for document persistence operations
type Repository interface {
	Create(ctx context.Context, d *Document) error
	Get(ctx context.Context, id string) (*Document, error)
	Update(ctx context.Context, d *Document) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.DocumentFilter) ([]*Document, error)
	Count(ctx context.Context, filter *types.DocumentFilter) (int, error)

	// ListExpiring returns documents whose expiry falls before the
	// given cutoff, for the expiry scan.
	ListExpiring(ctx context.Context, cutoff time.Time) ([]*Document, error)
}
