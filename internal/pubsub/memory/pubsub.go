package memory

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/pubsub"
)

// PubSub is the in-process watermill gochannel backend. It is the default
// for local runs, tests, and the jobs binary, where the publisher and the
// activity consumer live in the same process.
type PubSub struct {
	channel *gochannel.GoChannel
	logger  *logger.Logger
}

func NewPubSub(log *logger.Logger) pubsub.PubSub {
	channel := gochannel.NewGoChannel(
		gochannel.Config{
			// Messages published before the consumer subscribes are
			// retained and delivered once it does.
			Persistent:          true,
			OutputChannelBuffer: 100,
		},
		watermill.NewStdLogger(false, false),
	)
	return &PubSub{channel: channel, logger: log}
}

func (p *PubSub) Publish(_ context.Context, topic string, msg *message.Message) error {
	return p.channel.Publish(topic, msg)
}

func (p *PubSub) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return p.channel.Subscribe(ctx, topic)
}

func (p *PubSub) Close() error {
	return p.channel.Close()
}
