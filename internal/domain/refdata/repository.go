package refdata

import (
	"context"

	"github.com/pathways-hq/pathways/internal/types"
)

// CampusRepository defines persistence operations for campuses
type CampusRepository interface {
	Create(ctx context.Context, c *Campus) error
	Get(ctx context.Context, id string) (*Campus, error)
	Update(ctx context.Context, c *Campus) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.QueryFilter) ([]*Campus, error)
	Count(ctx context.Context, filter *types.QueryFilter) (int, error)
}

// TradeRepository defines persistence operations for trades
type TradeRepository interface {
	Create(ctx context.Context, t *Trade) error
	Get(ctx context.Context, id string) (*Trade, error)
	Update(ctx context.Context, t *Trade) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.QueryFilter) ([]*Trade, error)
	Count(ctx context.Context, filter *types.QueryFilter) (int, error)
}

// BatchRepository defines persistence operations for training batches
type BatchRepository interface {
	Create(ctx context.Context, b *Batch) error
	Get(ctx context.Context, id string) (*Batch, error)
	Update(ctx context.Context, b *Batch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.BatchFilter) ([]*Batch, error)
	Count(ctx context.Context, filter *types.BatchFilter) (int, error)
}

// OEPRepository defines persistence operations for overseas
// employment promoters
type OEPRepository interface {
	Create(ctx context.Context, o *OEP) error
	Get(ctx context.Context, id string) (*OEP, error)
	Update(ctx context.Context, o *OEP) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.QueryFilter) ([]*OEP, error)
	Count(ctx context.Context, filter *types.QueryFilter) (int, error)
}

// InstructorRepository defines persistence operations for instructors
type InstructorRepository interface {
	Create(ctx context.Context, i *Instructor) error
	Get(ctx context.Context, id string) (*Instructor, error)
	Update(ctx context.Context, i *Instructor) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.QueryFilter) ([]*Instructor, error)
	Count(ctx context.Context, filter *types.QueryFilter) (int, error)
}

// EmployerRepository defines persistence operations for employers
type EmployerRepository interface {
	Create(ctx context.Context, e *Employer) error
	Get(ctx context.Context, id string) (*Employer, error)
	Update(ctx context.Context, e *Employer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.QueryFilter) ([]*Employer, error)
	Count(ctx context.Context, filter *types.QueryFilter) (int, error)
}
