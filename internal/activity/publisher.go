package activity

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/pubsub"
	"github.com/pathways-hq/pathways/internal/types"
)

// Publisher publishes activity events onto the activity topic.
// Publishing is best effort from the caller's point of view; a failed
// publish is logged and surfaced but must not abort the business
// operation that produced it.
type Publisher interface {
	Publish(ctx context.Context, event *types.ActivityEvent) error
	Close() error
}

type publisher struct {
	pubsub pubsub.Publisher
	logger *logger.Logger
}

// NewPublisher creates a new activity event publisher
func NewPublisher(ps pubsub.PubSub, logger *logger.Logger) Publisher {
	return &publisher{
		pubsub: ps,
		logger: logger,
	}
}

func (p *publisher) Publish(ctx context.Context, event *types.ActivityEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to marshal activity event").
			Mark(ierr.ErrSystem)
	}

	msg := message.NewMessage(event.ID, payload)
	if err := p.pubsub.Publish(ctx, types.ActivityEventTopic, msg); err != nil {
		p.logger.Errorw("failed to publish activity event",
			"event_id", event.ID,
			"entity_type", event.EntityType,
			"action", event.Action,
			"error", err,
		)
		return ierr.WithError(err).
			WithHint("Failed to publish activity event").
			Mark(ierr.ErrSystem)
	}

	p.logger.Debugw("published activity event",
		"event_id", event.ID,
		"entity_type", event.EntityType,
		"entity_id", event.EntityID,
		"action", event.Action,
	)
	return nil
}

func (p *publisher) Close() error {
	return p.pubsub.Close()
}
