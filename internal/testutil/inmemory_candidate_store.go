package testutil

import (
	"context"
	"sync"

	"github.com/pathways-hq/pathways/internal/domain/candidate"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/types"
	"github.com/samber/lo"
)

// InMemoryCandidateStore is an in-memory implementation of the
// candidate repository
type InMemoryCandidateStore struct {
	mu          sync.Mutex
	candidates  map[string]*candidate.Candidate
	transitions []*candidate.StatusTransition
}

func NewInMemoryCandidateStore() *InMemoryCandidateStore {
	return &InMemoryCandidateStore{
		candidates: make(map[string]*candidate.Candidate),
	}
}

func (s *InMemoryCandidateStore) Create(ctx context.Context, c *candidate.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.candidates {
		if existing.CNIC == c.CNIC && existing.Status != types.StatusArchived {
			return ierr.NewError("candidate already exists").
				WithHint("A candidate with this CNIC already exists").
				Mark(ierr.ErrAlreadyExists)
		}
	}
	s.candidates[c.ID] = c
	return nil
}

func (s *InMemoryCandidateStore) Get(ctx context.Context, id string) (*candidate.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.candidates[id]
	if !ok || c.Status == types.StatusArchived {
		return nil, ierr.NewError("candidate not found").
			WithHint("Candidate not found").
			Mark(ierr.ErrNotFound)
	}
	return c, nil
}

func (s *InMemoryCandidateStore) GetByCNIC(ctx context.Context, cnic string) (*candidate.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.candidates {
		if c.CNIC == cnic && c.Status != types.StatusArchived {
			return c, nil
		}
	}
	return nil, ierr.NewError("candidate not found").
		WithHint("Candidate not found").
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryCandidateStore) Update(ctx context.Context, c *candidate.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.candidates[c.ID]; !ok {
		return ierr.NewError("candidate not found").
			WithHint("Candidate not found").
			Mark(ierr.ErrNotFound)
	}
	s.candidates[c.ID] = c
	return nil
}

func (s *InMemoryCandidateStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.candidates[id]
	if !ok {
		return ierr.NewError("candidate not found").
			WithHint("Candidate not found").
			Mark(ierr.ErrNotFound)
	}
	c.Status = types.StatusArchived
	return nil
}

func (s *InMemoryCandidateStore) matches(c *candidate.Candidate, filter *types.CandidateFilter) bool {
	if c.Status == types.StatusArchived {
		return false
	}
	if filter == nil {
		return true
	}
	if len(filter.CandidateStatuses) > 0 && !lo.Contains(filter.CandidateStatuses, c.CandidateStatus) {
		return false
	}
	if filter.District != "" && c.District != filter.District {
		return false
	}
	if filter.BatchID != "" && (c.BatchID == nil || *c.BatchID != filter.BatchID) {
		return false
	}
	return true
}

func (s *InMemoryCandidateStore) List(ctx context.Context, filter *types.CandidateFilter) ([]*candidate.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*candidate.Candidate
	for _, c := range s.candidates {
		if s.matches(c, filter) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *InMemoryCandidateStore) Count(ctx context.Context, filter *types.CandidateFilter) (int, error) {
	items, err := s.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (s *InMemoryCandidateStore) CountByStatus(ctx context.Context) (map[types.CandidateStatus]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[types.CandidateStatus]int)
	for _, c := range s.candidates {
		if c.Status != types.StatusArchived {
			counts[c.CandidateStatus]++
		}
	}
	return counts, nil
}

func (s *InMemoryCandidateStore) CountByBatch(ctx context.Context, batchID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, c := range s.candidates {
		if c.Status != types.StatusArchived && c.BatchID != nil && *c.BatchID == batchID {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryCandidateStore) CreateTransition(ctx context.Context, t *candidate.StatusTransition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transitions = append(s.transitions, t)
	return nil
}

func (s *InMemoryCandidateStore) ListTransitions(ctx context.Context, candidateID string) ([]*candidate.StatusTransition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*candidate.StatusTransition
	for _, t := range s.transitions {
		if t.CandidateID == candidateID {
			out = append(out, t)
		}
	}
	return out, nil
}
