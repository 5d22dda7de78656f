package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/pathways-hq/pathways/internal/domain/complaint"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/types"
	"github.com/samber/lo"
)

// InMemoryComplaintStore is an in-memory implementation of the
// complaint repository
type InMemoryComplaintStore struct {
	mu         sync.Mutex
	complaints map[string]*complaint.Complaint
}

func NewInMemoryComplaintStore() *InMemoryComplaintStore {
	return &InMemoryComplaintStore{
		complaints: make(map[string]*complaint.Complaint),
	}
}

func (s *InMemoryComplaintStore) Create(ctx context.Context, c *complaint.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.complaints[c.ID] = c
	return nil
}

func (s *InMemoryComplaintStore) Get(ctx context.Context, id string) (*complaint.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.complaints[id]
	if !ok || c.Status == types.StatusArchived {
		return nil, ierr.NewError("complaint not found").
			WithHint("Complaint not found").
			Mark(ierr.ErrNotFound)
	}
	return c, nil
}

func (s *InMemoryComplaintStore) GetByReference(ctx context.Context, reference string) (*complaint.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.complaints {
		if c.Reference == reference && c.Status != types.StatusArchived {
			return c, nil
		}
	}
	return nil, ierr.NewError("complaint not found").
		WithHint("Complaint not found").
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryComplaintStore) Update(ctx context.Context, c *complaint.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.complaints[c.ID]; !ok {
		return ierr.NewError("complaint not found").
			WithHint("Complaint not found").
			Mark(ierr.ErrNotFound)
	}
	s.complaints[c.ID] = c
	return nil
}

func (s *InMemoryComplaintStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.complaints[id]
	if !ok {
		return ierr.NewError("complaint not found").
			WithHint("Complaint not found").
			Mark(ierr.ErrNotFound)
	}
	c.Status = types.StatusArchived
	return nil
}

func (s *InMemoryComplaintStore) List(ctx context.Context, filter *types.ComplaintFilter) ([]*complaint.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*complaint.Complaint
	for _, c := range s.complaints {
		if c.Status == types.StatusArchived {
			continue
		}
		if filter != nil {
			if len(filter.ComplaintStatuses) > 0 && !lo.Contains(filter.ComplaintStatuses, c.ComplaintStatus) {
				continue
			}
			if len(filter.Priorities) > 0 && !lo.Contains(filter.Priorities, c.Priority) {
				continue
			}
			if filter.CandidateID != "" && (c.CandidateID == nil || *c.CandidateID != filter.CandidateID) {
				continue
			}
			if filter.AssigneeID != "" && (c.AssigneeID == nil || *c.AssigneeID != filter.AssigneeID) {
				continue
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *InMemoryComplaintStore) Count(ctx context.Context, filter *types.ComplaintFilter) (int, error) {
	items, err := s.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (s *InMemoryComplaintStore) ListUnsettled(ctx context.Context) ([]*complaint.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*complaint.Complaint
	for _, c := range s.complaints {
		if c.Status != types.StatusArchived && !c.ComplaintStatus.IsSettled() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *InMemoryComplaintStore) CountOverdue(ctx context.Context, now time.Time) (int, error) {
	unsettled, err := s.ListUnsettled(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, c := range unsettled {
		if c.IsOverdue(now) {
			count++
		}
	}
	return count, nil
}
