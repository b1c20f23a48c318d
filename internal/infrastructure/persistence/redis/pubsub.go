package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/hydrohub/hydration-hub/internal/infrastructure/messaging"
)

// ══════════════════════════════════════════════════════════════════════════════
// PUB/SUB CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// PubSubClient adapts a go-redis client to messaging.RedisClient so the
// Redis event bus can fan reward events out across instances.
type PubSubClient struct {
	client *redis.Client
	subs   []*redis.PubSub
}

// NewPubSubClient wraps the client. The caller keeps ownership of the
// underlying connection; Close here only tears down subscriptions.
func NewPubSubClient(client *redis.Client) *PubSubClient {
	return &PubSubClient{client: client}
}

// Publish sends a message to a channel.
func (p *PubSubClient) Publish(ctx context.Context, channel string, message interface{}) error {
	return p.client.Publish(ctx, channel, message).Err()
}

// Subscribe subscribes to channels and returns a message stream. The stream
// closes when ctx is cancelled.
func (p *PubSubClient) Subscribe(ctx context.Context, channels ...string) (<-chan messaging.RedisMessage, error) {
	sub := p.client.Subscribe(ctx, channels...)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}
	p.subs = append(p.subs, sub)

	out := make(chan messaging.RedisMessage)
	go func() {
		defer close(out)
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- messaging.RedisMessage{Channel: msg.Channel, Payload: msg.Payload}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Close tears down all subscriptions.
func (p *PubSubClient) Close() error {
	var firstErr error
	for _, sub := range p.subs {
		if err := sub.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.subs = nil
	return firstErr
}
