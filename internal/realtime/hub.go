// Package realtime pushes slot and booking events to connected admin
// dashboards over websockets.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

// Message is what clients receive.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type client struct {
	userID uuid.UUID
	conn   *websocket.Conn
	send   chan []byte
	// stores limits delivery to events about these stores; empty means all.
	stores map[uuid.UUID]bool
}

type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		log:     log,
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// storeScoped payloads are only delivered to clients watching that store.
type storeScoped interface {
	StoreKey() uuid.UUID
}

// Publish satisfies events.Sink. Slow clients drop messages instead of
// blocking the publisher.
func (h *Hub) Publish(_ context.Context, key string, payload any) error {
	data, err := json.Marshal(Message{Type: key, Payload: payload})
	if err != nil {
		return err
	}
	storeID, scoped := extractStore(payload)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if scoped && len(c.stores) > 0 && !c.stores[storeID] {
			continue
		}
		select {
		case c.send <- data:
		default:
			h.log.Debug("realtime client too slow, dropping message", zap.String("user_id", c.userID.String()))
		}
	}
	return nil
}

func extractStore(payload any) (uuid.UUID, bool) {
	if s, ok := payload.(storeScoped); ok {
		return s.StoreKey(), true
	}
	return uuid.Nil, false
}

// Serve runs the connection until the peer goes away.
func (h *Hub) Serve(conn *websocket.Conn, userID uuid.UUID, stores []uuid.UUID) {
	c := &client{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		stores: make(map[uuid.UUID]bool, len(stores)),
	}
	for _, id := range stores {
		c.stores[id] = true
	}

	h.register(c)
	go h.writePump(c)
	h.readPump(c)
}

type controlMessage struct {
	Type    string    `json:"type"`
	StoreID uuid.UUID `json:"store_id"`
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var ctl controlMessage
		if err := json.Unmarshal(msg, &ctl); err != nil {
			continue
		}
		switch ctl.Type {
		case "subscribe":
			h.mu.Lock()
			c.stores[ctl.StoreID] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.stores, ctl.StoreID)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
