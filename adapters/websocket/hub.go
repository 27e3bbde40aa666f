package websocket

import (
	"sync/atomic"

	"github.com/lozanofamily/madrid-guide/utils/log"
)

// Hub tracks connected clients. The clients map is only touched from the
// run loop goroutine; registration, removal and broadcasts all arrive over
// channels.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	count      atomic.Int64
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

// Run starts the hub loop.
func (h *Hub) Run() {
	go h.run()
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.count.Store(int64(len(h.clients)))
			log.WithCtx(client.ctx).Debug("new client registered")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				h.count.Store(int64(len(h.clients)))
				client.Close()
				log.WithCtx(client.ctx).Debug("client unregistered")
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				if !client.IsClosed() {
					client.SendMessage(message)
				}
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast queues a message for every connected family member. Delivery
// happens on the run loop so it never races client registration.
func (h *Hub) Broadcast(message []byte) {
	h.broadcast <- message
}

func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}
