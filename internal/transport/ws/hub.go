// Package ws implements the notification hub. Connected dashboards receive
// payload-free event frames and re-fetch state over REST; the hub never
// carries domain data.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
)

const writeTimeout = 5 * time.Second

// subscriber buffer; a client that cannot drain this many frames is closed.
const sendBuffer = 16

type subscriber struct {
	msgs      chan []byte
	closeSlow func()
}

// Hub fans broadcast frames out to all connected clients.
type Hub struct {
	log *slog.Logger

	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
}

// NewHub creates an empty hub.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log:         log.With("component", "ws"),
		subscribers: make(map[*subscriber]struct{}),
	}
}

// Event is the only frame shape the hub sends.
type Event struct {
	Type string `json:"type"`
}

// Broadcast sends {"type": eventType} to every connected client. Slow
// clients are disconnected rather than blocking the caller.
func (h *Hub) Broadcast(eventType string) {
	data, err := json.Marshal(Event{Type: eventType})
	if err != nil {
		h.log.Error("marshal event", "type", eventType, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subscribers {
		select {
		case s.msgs <- data:
		default:
			go s.closeSlow()
		}
	}
}

// ServeHTTP upgrades the request and streams events until the client
// disconnects. The connection is write-only; inbound frames are discarded.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.log.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	h.log.DebugContext(r.Context(), "client connected", "remote", r.RemoteAddr)

	s := &subscriber{
		msgs: make(chan []byte, sendBuffer),
		closeSlow: func() {
			conn.Close(websocket.StatusPolicyViolation, "too slow to keep up with events")
		},
	}
	h.add(s)
	defer h.remove(s)

	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case msg := <-s.msgs:
			if err := write(ctx, conn, msg); err != nil {
				return
			}
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

func (h *Hub) add(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[s] = struct{}{}
}

func (h *Hub) remove(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscribers, s)
}

func write(ctx context.Context, conn *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, msg)
}
