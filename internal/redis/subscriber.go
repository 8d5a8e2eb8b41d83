package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Subscriber feeds pattern-matched channel traffic to a handler. The
// relay bridge uses it to pick up per-user events published by peers.
type Subscriber struct {
	client *redis.Client
}

func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe blocks, invoking handler for each message on a matching
// channel, until the context ends or the subscription breaks.
func (s *Subscriber) Subscribe(ctx context.Context, patterns []string, handler func(channel string, payload []byte)) error {
	sub := s.client.PSubscribe(ctx, patterns...)
	defer sub.Close()

	for {
		msg, err := sub.ReceiveMessage(ctx)
		if err != nil {
			return err
		}
		handler(msg.Channel, []byte(msg.Payload))
	}
}
