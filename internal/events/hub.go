// Package events fans committed sale/vesting events out to subscribers:
// a RabbitMQ queue for downstream services and live websocket clients.
package events

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"

	"crowdvest/internal/models"
	"crowdvest/pkg/config"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub implements the engine's Notifier. Publish never blocks a request on a
// slow subscriber: the queue publish is synchronous but cheap, websocket
// writes drop clients that fail.
type Hub struct {
	mu        sync.Mutex
	clients   map[*websocket.Conn]bool
	publisher *config.Publisher
	queue     string
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		queue:   config.EventQueue,
	}
}

// AttachPublisher wires the amqp publisher; without one the hub only serves
// websocket clients.
func (h *Hub) AttachPublisher(p *config.Publisher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.publisher = p
}

// Publish sends the event to the queue and every connected websocket client.
func (h *Hub) Publish(event models.SaleEventLog) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.publisher != nil {
		if err := h.publisher.Publish(h.queue, event); err != nil {
			logger.Errorf("Failed to publish event %s: %v", event.EventType, err)
		}
	}

	if len(h.clients) == 0 {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Errorf("Failed to marshal event: %v", err)
		return
	}
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// HandleWS upgrades the request and registers the client for the event
// stream. The read loop only watches for the client going away.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("Failed to upgrade websocket: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.mu.Lock()
				delete(h.clients, conn)
				h.mu.Unlock()
				conn.Close()
				return
			}
		}
	}()
}

// ClientCount reports connected websocket clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
