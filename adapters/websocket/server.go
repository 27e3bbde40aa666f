package websocket

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lozanofamily/madrid-guide/domain"
	"github.com/lozanofamily/madrid-guide/usecase"
	"github.com/lozanofamily/madrid-guide/utils/log"
)

// Server pushes new wall posts to connected clients.
type Server struct {
	upgrader websocket.Upgrader
	broker   domain.MessageBroker
	hub      *Hub
}

func NewServer(broker domain.MessageBroker) *Server {
	server := &Server{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		broker:   broker,
		hub:      NewHub(),
	}

	go server.startWallListener()

	return server
}

func (s *Server) RunHub() {
	s.hub.Run()
}

func (s *Server) Hub() *Hub {
	return s.hub
}

// startWallListener relays wall posts from the broker to every connected
// client.
func (s *Server) startWallListener() {
	ctx := context.Background()

	messageChan, err := s.broker.Subscribe(ctx, usecase.WallTopic, "")
	if err != nil {
		log.WithCtx(ctx).Error("failed to subscribe to wall topic", zap.Error(err))
		return
	}

	log.WithCtx(ctx).Info("websocket server listening for wall posts")

	for {
		select {
		case msg := <-messageChan:
			s.hub.Broadcast(msg.Payload)
			log.WithCtx(ctx).Debug("broadcasted wall post",
				zap.Int("clients", s.hub.ClientCount()))

		case <-ctx.Done():
			log.WithCtx(ctx).Info("wall listener stopped")
			return
		}
	}
}
