package testutil

import (
	"context"
	"sync"

	"github.com/pathways-hq/pathways/internal/types"
)

// InMemoryActivityPublisher collects published activity events for
// assertions instead of sending them to a broker.
type InMemoryActivityPublisher struct {
	mu     sync.Mutex
	events []*types.ActivityEvent
}

func NewInMemoryActivityPublisher() *InMemoryActivityPublisher {
	return &InMemoryActivityPublisher{}
}

func (p *InMemoryActivityPublisher) Publish(ctx context.Context, event *types.ActivityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)
	return nil
}

func (p *InMemoryActivityPublisher) Close() error {
	return nil
}

// Events returns a copy of the published events
func (p *InMemoryActivityPublisher) Events() []*types.ActivityEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]*types.ActivityEvent, len(p.events))
	copy(out, p.events)
	return out
}

// Reset clears collected events
func (p *InMemoryActivityPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = nil
}
