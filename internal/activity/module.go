package activity

import (
	"context"

	"github.com/pathways-hq/pathways/internal/config"
	activitydomain "github.com/pathways-hq/pathways/internal/domain/activity"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/pubsub"
	kafkaPubSub "github.com/pathways-hq/pathways/internal/pubsub/kafka"
	memoryPubSub "github.com/pathways-hq/pathways/internal/pubsub/memory"
	"github.com/pathways-hq/pathways/internal/types"
	"go.uber.org/fx"
)

// Module provides the activity event pipeline: pubsub backend,
// publisher, and the consumer that persists events.
var Module = fx.Options(
	fx.Provide(
		NewPubSub,
		NewPublisher,
		NewConsumer,
	),
	fx.Invoke(StartConsumer),
)

// NewPubSub selects the pubsub backend from configuration
func NewPubSub(cfg *config.Configuration, logger *logger.Logger) (pubsub.PubSub, error) {
	switch cfg.PubSub.Type {
	case types.KafkaPubSub:
		return kafkaPubSub.NewPubSub(cfg, logger)
	default:
		return memoryPubSub.NewPubSub(logger), nil
	}
}

// StartConsumer hooks the consumer into the fx lifecycle
func StartConsumer(lc fx.Lifecycle, consumer *Consumer, repo activitydomain.Repository) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return consumer.Start(context.Background())
		},
	})
}
