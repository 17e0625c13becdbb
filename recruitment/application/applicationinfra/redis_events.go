package applicationinfra

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Abraxas-365/hirematch/recruitment/application"
	"github.com/go-redis/redis/v8"
)

// EventStatusChanged is the event type carried on the channel
const EventStatusChanged = "APPLICATION_STATUS_CHANGED"

// RedisEventPublisher publishes pipeline events on a Redis channel
type RedisEventPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisEventPublisher creates a publisher on channel
func NewRedisEventPublisher(client *redis.Client, channel string) *RedisEventPublisher {
	return &RedisEventPublisher{
		client:  client,
		channel: channel,
	}
}

type envelope struct {
	Type    string                         `json:"type"`
	Payload application.StatusChangedEvent `json:"payload"`
}

// PublishStatusChanged publishes a transition event
func (p *RedisEventPublisher) PublishStatusChanged(ctx context.Context, event application.StatusChangedEvent) error {
	data, err := json.Marshal(envelope{Type: EventStatusChanged, Payload: event})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
