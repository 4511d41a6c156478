// Package notify fans committed record mutations out to WebSocket clients.
package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"GestorChoferes/internal/clock"
	"GestorChoferes/internal/metrics"
	"GestorChoferes/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	sendBuffer = 16
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Event is the JSON frame pushed to every feed client.
type Event struct {
	Action models.Action `json:"action"`
	ID     int64         `json:"id"`
	At     string        `json:"at"`
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps the connected feed clients. It is a post-commit hook: every
// committed mutation becomes one Event on every connection.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewHub(log *zap.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		log:     log,
		metrics: m,
	}
}

func (h *Hub) Name() string {
	return "event_feed"
}

// AfterCommit never blocks on a slow client; one whose buffer is full is dropped.
func (h *Hub) AfterCommit(ctx context.Context, m models.Mutation) error {
	payload, err := json.Marshal(Event{Action: m.Action, ID: m.RecordID, At: clock.Stamp()})
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.log.Warn("Hub.AfterCommit(): client too slow, dropping", zap.String("client", c.id))
			h.removeLocked(c)
		}
	}
	return nil
}

// Clients reports the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Serve owns conn until the client disconnects or ctx is done.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn) {
	c := &client{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	h.add(c)
	h.log.Info("Hub.Serve(): feed client connected", zap.String("client", c.id))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()
		h.writePump(ctx, c)
	}()

	h.readPump(c)
	cancel()
	wg.Wait()

	h.remove(c)
	conn.Close()
	h.log.Info("Hub.Serve(): feed client disconnected", zap.String("client", c.id))
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.metrics.FeedClients.Inc()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.metrics.FeedClients.Dec()
}

// readPump only drains control frames; the feed is one-way.
func (h *Hub) readPump(c *client) {
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("Hub.readPump(): unexpected close", zap.String("client", c.id), zap.Error(err))
			}
			return
		}
	}
}

func (h *Hub) writePump(ctx context.Context, c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			c.conn.Close()
			return

		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				// unblock readPump
				c.conn.Close()
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.log.Warn("Hub.writePump(): write failed", zap.String("client", c.id), zap.Error(err))
				c.conn.Close()
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.conn.Close()
				return
			}
		}
	}
}
