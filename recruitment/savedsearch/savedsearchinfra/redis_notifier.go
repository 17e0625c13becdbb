package savedsearchinfra

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Abraxas-365/hirematch/recruitment/savedsearch"
	"github.com/go-redis/redis/v8"
)

// RedisNotifier pushes notifications onto a Redis list consumed by the
// delivery worker
type RedisNotifier struct {
	client *redis.Client
	queue  string
}

// NewRedisNotifier creates a notifier writing to queue
func NewRedisNotifier(client *redis.Client, queue string) *RedisNotifier {
	return &RedisNotifier{
		client: client,
		queue:  queue,
	}
}

// Notify enqueues the notification as JSON
func (n *RedisNotifier) Notify(ctx context.Context, note savedsearch.Notification) error {
	data, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if err := n.client.LPush(ctx, n.queue, data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	return nil
}
