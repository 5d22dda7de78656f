package testutil

import (
	"context"
	"sync"

	"github.com/pathways-hq/pathways/internal/domain/departure"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/types"
	"github.com/samber/lo"
)

// InMemoryDepartureStore is an in-memory implementation of the
// departure repository
type InMemoryDepartureStore struct {
	mu         sync.Mutex
	departures map[string]*departure.Departure
	checklists map[string][]*departure.ChecklistItem
}

func NewInMemoryDepartureStore() *InMemoryDepartureStore {
	return &InMemoryDepartureStore{
		departures: make(map[string]*departure.Departure),
		checklists: make(map[string][]*departure.ChecklistItem),
	}
}

func (s *InMemoryDepartureStore) Create(ctx context.Context, d *departure.Departure) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.departures[d.ID] = d
	return nil
}

func (s *InMemoryDepartureStore) Get(ctx context.Context, id string) (*departure.Departure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.departures[id]
	if !ok || d.Status == types.StatusArchived {
		return nil, ierr.NewError("departure not found").
			WithHint("Departure not found").
			Mark(ierr.ErrNotFound)
	}
	return d, nil
}

func (s *InMemoryDepartureStore) GetByCandidateID(ctx context.Context, candidateID string) (*departure.Departure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.departures {
		if d.CandidateID == candidateID && d.Status != types.StatusArchived {
			return d, nil
		}
	}
	return nil, ierr.NewError("departure not found").
		WithHint("No departure record exists for this candidate").
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryDepartureStore) Update(ctx context.Context, d *departure.Departure) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.departures[d.ID]; !ok {
		return ierr.NewError("departure not found").
			WithHint("Departure not found").
			Mark(ierr.ErrNotFound)
	}
	s.departures[d.ID] = d
	return nil
}

func (s *InMemoryDepartureStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.departures[id]
	if !ok {
		return ierr.NewError("departure not found").
			WithHint("Departure not found").
			Mark(ierr.ErrNotFound)
	}
	d.Status = types.StatusArchived
	return nil
}

func (s *InMemoryDepartureStore) List(ctx context.Context, filter *types.DepartureFilter) ([]*departure.Departure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*departure.Departure
	for _, d := range s.departures {
		if d.Status == types.StatusArchived {
			continue
		}
		if filter != nil {
			if filter.CandidateID != "" && d.CandidateID != filter.CandidateID {
				continue
			}
			if len(filter.ComplianceStatuses) > 0 && !lo.Contains(filter.ComplianceStatuses, d.ComplianceStatus) {
				continue
			}
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *InMemoryDepartureStore) Count(ctx context.Context, filter *types.DepartureFilter) (int, error) {
	items, err := s.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (s *InMemoryDepartureStore) CreateChecklistItems(ctx context.Context, items []*departure.ChecklistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		s.checklists[item.DepartureID] = append(s.checklists[item.DepartureID], item)
	}
	return nil
}

func (s *InMemoryDepartureStore) ListChecklistItems(ctx context.Context, departureID string) ([]*departure.ChecklistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.checklists[departureID], nil
}

func (s *InMemoryDepartureStore) UpdateChecklistItem(ctx context.Context, item *departure.ChecklistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.checklists[item.DepartureID] {
		if existing.ID == item.ID {
			s.checklists[item.DepartureID][i] = item
			return nil
		}
	}
	return ierr.NewError("checklist item not found").
		WithHint("Checklist item not found").
		Mark(ierr.ErrNotFound)
}
