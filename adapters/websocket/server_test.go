package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lozanofamily/madrid-guide/adapters/message_broker"
	"github.com/lozanofamily/madrid-guide/adapters/storage/memory"
	"github.com/lozanofamily/madrid-guide/domain"
	"github.com/lozanofamily/madrid-guide/usecase"
)

func newTestWallServer(t *testing.T) (*Server, *usecase.WallService, string) {
	t.Helper()

	broker := message_broker.NewChannelMessageBroker()
	t.Cleanup(func() { _ = broker.Close() })

	wall := usecase.NewWallService(memory.NewStore(), broker)

	server := NewServer(broker)
	server.RunHub()

	e := echo.New()
	e.GET("/ws", server.Handler)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	return server, wall, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dialWall(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWallPostReachesConnectedClient(t *testing.T) {
	server, wall, url := newTestWallServer(t)
	conn := dialWall(t, url)

	require.Eventually(t, func() bool { return server.Hub().ClientCount() == 1 },
		time.Second, 5*time.Millisecond)

	post, err := wall.Post(context.Background(), "Lucía", "¡Primer post desde el hotel!")
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var event domain.WallPostEvent
	require.NoError(t, json.Unmarshal(payload, &event))
	assert.Equal(t, post.ID, event.ID)
	assert.Equal(t, "Lucía", event.UserName)
	assert.Equal(t, "¡Primer post desde el hotel!", event.Content)
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	server, wall, url := newTestWallServer(t)
	first := dialWall(t, url)
	second := dialWall(t, url)

	require.Eventually(t, func() bool { return server.Hub().ClientCount() == 2 },
		time.Second, 5*time.Millisecond)

	_, err := wall.Post(context.Background(), "Papá", "Cena a las nueve")
	require.NoError(t, err)

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)

		var event domain.WallPostEvent
		require.NoError(t, json.Unmarshal(payload, &event))
		assert.Equal(t, "Cena a las nueve", event.Content)
	}
}

// Broadcasting while clients connect and disconnect must never touch the
// client set outside the hub loop.
func TestBroadcastDuringClientChurn(t *testing.T) {
	server, _, url := newTestWallServer(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 25; i++ {
			conn, _, err := websocket.DefaultDialer.Dial(url, nil)
			if err != nil {
				continue
			}
			time.Sleep(time.Millisecond)
			conn.Close()
		}
	}()

	for i := 0; i < 500; i++ {
		server.Hub().Broadcast([]byte(`{"content":"churros"}`))
	}
	<-done

	require.Eventually(t, func() bool { return server.Hub().ClientCount() == 0 },
		2*time.Second, 5*time.Millisecond)
}
