// Package monitor forwards catalog events to websocket subscribers.
// It is a black-box event handler from the core's point of view: it
// never calls back into the catalog. The subscriber set has its own
// lock because websocket connections come and go on HTTP server
// goroutines while events arrive on the catalog caller's thread.
package monitor

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vchernov/physcat/internal/registry"
)

// EventMessage is the JSON shape sent to subscribers.
type EventMessage struct {
	Event string  `json:"event"`
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
}

// Feed upgrades HTTP connections to websockets and broadcasts catalog
// events to all of them.
type Feed struct {
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns a registry event handler that broadcasts each event
// to every subscriber. Delivery failures drop the subscriber but are
// never reported as handler errors — a slow viewer must not fail a
// catalog mutation.
func (f *Feed) Handler() registry.Handler {
	return func(ev registry.Event) error {
		loc := ev.Object.Location()
		f.broadcast(EventMessage{
			Event: ev.Type.String(),
			ID:    ev.Object.ID(),
			Name:  ev.Object.Name,
			Type:  string(ev.Object.Type),
			X:     loc.X,
			Y:     loc.Y,
			Z:     loc.Z,
		})
		return nil
	}
}

// ServeHTTP upgrades the request and keeps the connection subscribed
// until the peer closes it.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("monitor upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	f.mu.Lock()
	f.conns[conn] = struct{}{}
	subscribers := len(f.conns)
	f.mu.Unlock()
	slog.Info("monitor subscriber connected", "remote", r.RemoteAddr, "subscribers", subscribers)

	// Read loop only to detect the peer going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	f.drop(conn)
}

// SubscriberCount returns the current number of subscribers.
func (f *Feed) SubscriberCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.conns)
}

func (f *Feed) broadcast(msg EventMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for conn := range f.conns {
		if err := conn.WriteJSON(msg); err != nil {
			conn.Close()
			delete(f.conns, conn)
		}
	}
}

func (f *Feed) drop(conn *websocket.Conn) {
	f.mu.Lock()
	defer f.mu.Unlock()
	conn.Close()
	delete(f.conns, conn)
}
