package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"smartchef/internal/models"
	"smartchef/internal/store"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// ExpiryAlert is the payload pushed to connected clients.
type ExpiryAlert struct {
	Expiring []models.ExpiringItem `json:"expiring"`
	Expired  []models.ExpiredItem  `json:"expired"`
	SentAt   time.Time             `json:"sent_at"`
}

// AlertHub pushes pantry expiry alerts to websocket clients on a
// fixed interval. Clients that cannot keep up are disconnected.
type AlertHub struct {
	pantry   *store.ExpirationStore
	logger   *zap.Logger
	interval time.Duration
	days     int

	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
	hub  *AlertHub
}

// NewAlertHub creates a hub that broadcasts items expiring within the
// given number of days.
func NewAlertHub(pantry *store.ExpirationStore, interval time.Duration, days int, logger *zap.Logger) *AlertHub {
	return &AlertHub{
		pantry:   pantry,
		logger:   logger,
		interval: interval,
		days:     days,
		clients:  make(map[*wsClient]struct{}),
	}
}

// Run broadcasts alerts until the context is cancelled.
func (h *AlertHub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			h.Broadcast()
		}
	}
}

// Broadcast sends the current expiry snapshot to every client.
func (h *AlertHub) Broadcast() {
	payload, err := h.snapshot()
	if err != nil {
		h.logger.Error("failed to encode expiry alert", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			// Slow client, drop it
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// HandleWebSocket upgrades the connection and registers the client.
// The current snapshot is sent immediately on connect.
func (h *AlertHub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("failed to upgrade connection", zap.Error(err))
		return
	}

	client := &wsClient{
		conn: conn,
		send: make(chan []byte, 16),
		hub:  h,
	}

	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	if payload, err := h.snapshot(); err == nil {
		client.send <- payload
	}

	go client.writePump()
	go client.readPump()
}

func (h *AlertHub) snapshot() ([]byte, error) {
	return json.Marshal(ExpiryAlert{
		Expiring: h.pantry.ExpiringWithin(h.days),
		Expired:  h.pantry.Expired(),
		SentAt:   time.Now(),
	})
}

func (h *AlertHub) unregister(client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

func (h *AlertHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
		client.conn.Close()
	}
}

// readPump drains client messages so control frames are processed.
func (c *wsClient) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("websocket read error", zap.Error(err))
			}
			break
		}
	}
}

// writePump pumps alerts from the hub to the websocket connection.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// The channel was closed
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
