package testutil

import (
	"context"
	"sort"
	"sync"

	ierr "github.com/pathways-hq/pathways/internal/errors"

	"github.com/pathways-hq/pathways/internal/domain/remittance"
	"github.com/pathways-hq/pathways/internal/types"
	"github.com/samber/lo"
)

// InMemoryRemittanceStore is an in-memory implementation of the
// remittance repository
type InMemoryRemittanceStore struct {
	mu          sync.Mutex
	remittances map[string]*remittance.Remittance
}

func NewInMemoryRemittanceStore() *InMemoryRemittanceStore {
	return &InMemoryRemittanceStore{
		remittances: make(map[string]*remittance.Remittance),
	}
}

func (s *InMemoryRemittanceStore) Create(ctx context.Context, r *remittance.Remittance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remittances[r.ID] = r
	return nil
}

func (s *InMemoryRemittanceStore) Get(ctx context.Context, id string) (*remittance.Remittance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.remittances[id]
	if !ok || r.Status == types.StatusArchived {
		return nil, ierr.NewError("remittance not found").
			WithHint("Remittance not found").
			Mark(ierr.ErrNotFound)
	}
	return r, nil
}

func (s *InMemoryRemittanceStore) Update(ctx context.Context, r *remittance.Remittance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.remittances[r.ID]; !ok {
		return ierr.NewError("remittance not found").
			WithHint("Remittance not found").
			Mark(ierr.ErrNotFound)
	}
	s.remittances[r.ID] = r
	return nil
}

func (s *InMemoryRemittanceStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.remittances[id]
	if !ok {
		return ierr.NewError("remittance not found").
			WithHint("Remittance not found").
			Mark(ierr.ErrNotFound)
	}
	r.Status = types.StatusArchived
	return nil
}

func (s *InMemoryRemittanceStore) List(ctx context.Context, filter *types.RemittanceFilter) ([]*remittance.Remittance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*remittance.Remittance
	for _, r := range s.remittances {
		if r.Status == types.StatusArchived {
			continue
		}
		if filter != nil {
			if filter.CandidateID != "" && r.CandidateID != filter.CandidateID {
				continue
			}
			if filter.SentAfter != nil && r.SentAt.Before(*filter.SentAfter) {
				continue
			}
			if filter.SentBefore != nil && r.SentAt.After(*filter.SentBefore) {
				continue
			}
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *InMemoryRemittanceStore) Count(ctx context.Context, filter *types.RemittanceFilter) (int, error) {
	items, err := s.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (s *InMemoryRemittanceStore) ListByCandidate(ctx context.Context, candidateID string) ([]*remittance.Remittance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*remittance.Remittance
	for _, r := range s.remittances {
		if r.CandidateID == candidateID && r.Status != types.StatusArchived {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SentAt.Before(out[j].SentAt)
	})
	return out, nil
}

// InMemoryRemittanceAlertStore is an in-memory implementation of the
// remittance alert repository
type InMemoryRemittanceAlertStore struct {
	mu     sync.Mutex
	alerts map[string]*remittance.Alert
}

func NewInMemoryRemittanceAlertStore() *InMemoryRemittanceAlertStore {
	return &InMemoryRemittanceAlertStore{
		alerts: make(map[string]*remittance.Alert),
	}
}

func (s *InMemoryRemittanceAlertStore) Create(ctx context.Context, a *remittance.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alerts[a.ID] = a
	return nil
}

func (s *InMemoryRemittanceAlertStore) Get(ctx context.Context, id string) (*remittance.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.alerts[id]
	if !ok {
		return nil, ierr.NewError("alert not found").
			WithHint("Alert not found").
			Mark(ierr.ErrNotFound)
	}
	return a, nil
}

func (s *InMemoryRemittanceAlertStore) Update(ctx context.Context, a *remittance.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.alerts[a.ID]; !ok {
		return ierr.NewError("alert not found").
			WithHint("Alert not found").
			Mark(ierr.ErrNotFound)
	}
	s.alerts[a.ID] = a
	return nil
}

func (s *InMemoryRemittanceAlertStore) List(ctx context.Context, filter *types.RemittanceAlertFilter) ([]*remittance.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*remittance.Alert
	for _, a := range s.alerts {
		if filter != nil {
			if filter.CandidateID != "" && a.CandidateID != filter.CandidateID {
				continue
			}
			if len(filter.AlertTypes) > 0 && !lo.Contains(filter.AlertTypes, a.AlertType) {
				continue
			}
			if filter.AlertStatus != "" && a.AlertStatus != filter.AlertStatus {
				continue
			}
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *InMemoryRemittanceAlertStore) Count(ctx context.Context, filter *types.RemittanceAlertFilter) (int, error) {
	items, err := s.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (s *InMemoryRemittanceAlertStore) GetOpenByCandidateAndType(ctx context.Context, candidateID string, alertType types.RemittanceAlertType) (*remittance.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.alerts {
		if a.CandidateID == candidateID && a.AlertType == alertType && a.AlertStatus == types.RemittanceAlertStatusOpen {
			return a, nil
		}
	}
	return nil, ierr.NewError("alert not found").
		WithHint("No open alert of this type for the candidate").
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryRemittanceAlertStore) ListOpenByCandidate(ctx context.Context, candidateID string) ([]*remittance.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*remittance.Alert
	for _, a := range s.alerts {
		if a.CandidateID == candidateID && a.AlertStatus == types.RemittanceAlertStatusOpen {
			out = append(out, a)
		}
	}
	return out, nil
}
