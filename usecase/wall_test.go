package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lozanofamily/madrid-guide/adapters/message_broker"
	"github.com/lozanofamily/madrid-guide/adapters/storage/memory"
	"github.com/lozanofamily/madrid-guide/domain"
	"github.com/lozanofamily/madrid-guide/usecase"
)

func TestWallPostStoredAndPublished(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	broker := message_broker.NewChannelMessageBroker()

	events, err := broker.Subscribe(ctx, usecase.WallTopic, "")
	require.NoError(t, err)

	svc := usecase.NewWallService(store, broker)

	post, err := svc.Post(ctx, "María", "  ¡Maletas listas!  ")
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "¡Maletas listas!", post.Content)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	select {
	case msg := <-events:
		var event domain.WallPostEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &event))
		assert.Equal(t, post.ID, event.ID)
		assert.Equal(t, "María", event.UserName)
	case <-time.After(time.Second):
		t.Fatal("expected a wall post event on the broker")
	}
}
