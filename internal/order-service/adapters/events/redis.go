// Package events publishes placed-order events to downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jcmexdev/order-taking/internal/order-service/adapters/dto"
	"github.com/jcmexdev/order-taking/internal/order-service/domain"
)

// Client is the part of redis.Cmdable the publisher uses.
type Client interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher sends every event as its JSON DTO on a pub/sub channel, in
// the order the workflow produced them.
type RedisPublisher struct {
	client  Client
	channel string
}

func NewRedisPublisher(client Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, events []domain.PlaceOrderEvent) error {
	for _, e := range events {
		body, err := json.Marshal(dto.FromPlaceOrderEvent(e))
		if err != nil {
			return fmt.Errorf("events: marshal %s: %w", e.EventName(), err)
		}
		if err := p.client.Publish(ctx, p.channel, body).Err(); err != nil {
			return fmt.Errorf("events: publish %s: %w", e.EventName(), err)
		}
	}
	return nil
}
