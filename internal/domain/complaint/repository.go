package complaint

import (
	"context"
	"time"

	"github.com/pathways-hq/pathways/internal/types"
)

// Repository defines the interface for complaint persistence operations
type Repository interface {
	// Core operations
	Create(ctx context.Context, c *Complaint) error
	Get(ctx context.Context, id string) (*Complaint, error)
	GetByReference(ctx context.Context, reference string) (*Complaint, error)
	Update(ctx context.Context, c *Complaint) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.ComplaintFilter) ([]*Complaint, error)
	Count(ctx context.Context, filter *types.ComplaintFilter) (int, error)

	// ListUnsettled returns complaints that are neither resolved nor
	// closed, for the SLA scan.
	ListUnsettled(ctx context.Context) ([]*Complaint, error)

	// CountOverdue returns the number of unsettled complaints past
	// their SLA deadline as of the given time.
	CountOverdue(ctx context.Context, now time.Time) (int, error)
}
