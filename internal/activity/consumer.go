package activity

import (
	"context"
	"encoding/json"

	activitydomain "github.com/pathways-hq/pathways/internal/domain/activity"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/pubsub"
	"github.com/pathways-hq/pathways/internal/types"
)

// Consumer drains the activity topic and persists each event as an
// activity row.
type Consumer struct {
	pubsub pubsub.Subscriber
	repo   activitydomain.Repository
	logger *logger.Logger
}

// NewConsumer creates a new activity event consumer
func NewConsumer(ps pubsub.PubSub, repo activitydomain.Repository, logger *logger.Logger) *Consumer {
	return &Consumer{
		pubsub: ps,
		repo:   repo,
		logger: logger,
	}
}

// Start consumes activity events until the context is cancelled
func (c *Consumer) Start(ctx context.Context) error {
	messages, err := c.pubsub.Subscribe(ctx, types.ActivityEventTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			c.handle(ctx, msg.Payload)
			// Ack regardless of persistence outcome; a malformed or
			// unpersistable event is logged, not redelivered forever.
			msg.Ack()
		}
	}()

	return nil
}

func (c *Consumer) handle(ctx context.Context, payload []byte) {
	var event types.ActivityEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		c.logger.Errorw("failed to unmarshal activity event", "error", err)
		return
	}

	record, err := activitydomain.FromEvent(&event)
	if err != nil {
		c.logger.Errorw("failed to convert activity event",
			"event_id", event.ID,
			"error", err,
		)
		return
	}

	if err := c.repo.Create(ctx, record); err != nil {
		c.logger.Errorw("failed to persist activity event",
			"event_id", event.ID,
			"entity_type", event.EntityType,
			"error", err,
		)
		return
	}

	c.logger.Debugw("persisted activity event",
		"event_id", event.ID,
		"entity_type", event.EntityType,
		"action", event.Action,
	)
}
