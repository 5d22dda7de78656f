package activity

import (
	"context"
	"time"

	"github.com/pathways-hq/pathways/internal/types"
)

// Repository defines the interface for activity persistence operations
type Repository interface {
	Create(ctx context.Context, a *Activity) error
	Get(ctx context.Context, id string) (*Activity, error)
	List(ctx context.Context, filter *types.ActivityFilter) ([]*Activity, error)
	Count(ctx context.Context, filter *types.ActivityFilter) (int, error)

	// DeleteOlderThan removes activity rows older than the cutoff and
	// returns the number deleted. Used by the log cleanup job.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
