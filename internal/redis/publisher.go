package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Publisher pushes relay payloads onto Redis channels so every server
// instance sees them, not just the one holding the sender's socket.
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish delivers the payload to every subscriber of the channel.
// Pub/sub is fire-and-forget: there is no retry and no backlog for
// subscribers that are not listening at that moment.
func (p *Publisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.client.Publish(ctx, channel, payload).Err()
}
