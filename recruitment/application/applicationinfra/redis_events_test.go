package applicationinfra

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Abraxas-365/hirematch/recruitment/application"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishStatusChanged(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	sub := client.Subscribe(ctx, "hirematch:events")
	t.Cleanup(func() { sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	publisher := NewRedisEventPublisher(client, "hirematch:events")
	err = publisher.PublishStatusChanged(ctx, application.StatusChangedEvent{
		ApplicationID: "a1",
		JobID:         "j1",
		From:          application.StatusNew,
		To:            application.StatusInterview,
		ChangedBy:     "r1",
		ChangedAt:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	select {
	case msg := <-sub.Channel():
		var got struct {
			Type    string                         `json:"type"`
			Payload application.StatusChangedEvent `json:"payload"`
		}
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, EventStatusChanged, got.Type)
		assert.Equal(t, application.StatusInterview, got.Payload.To)
		assert.Equal(t, "a1", got.Payload.ApplicationID.String())
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}
