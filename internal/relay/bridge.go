package relay

import (
	"context"
)

// Subscriber receives payloads published on matching channels.
// Satisfied by the Redis subscriber in production.
type Subscriber interface {
	Subscribe(ctx context.Context, patterns []string, handler func(channel string, payload []byte)) error
}

// Bridge feeds published relay events into the local hub, so fan-out
// works across server instances.
type Bridge struct {
	subscriber Subscriber
	hub        *Hub
}

func NewBridge(subscriber Subscriber, hub *Hub) *Bridge {
	return &Bridge{subscriber: subscriber, hub: hub}
}

func (b *Bridge) Run(ctx context.Context) error {
	return b.subscriber.Subscribe(ctx, []string{ChannelPrefixUser + "*"}, func(channel string, payload []byte) {
		b.hub.Broadcast(channel, payload)
	})
}
