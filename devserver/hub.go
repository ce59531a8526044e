package devserver

import (
	"net"
	"net/http"
	"sync"

	"github.com/go-json-experiment/json"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// Hub accepts WebSocket upgrades and broadcasts CompileResult values (as
// JSON text frames) to every connected client, for a page's live-reload
// script to consume.
type Hub struct {
	mu      sync.Mutex
	clients map[net.Conn]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[net.Conn]struct{})}
}

// Upgrade handles an HTTP request by upgrading it to a WebSocket
// connection and registering it with the hub. It's meant to be mounted
// directly as an http.HandlerFunc.
func (h *Hub) Upgrade(w http.ResponseWriter, r *http.Request) {
	conn, _, _, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	go h.readUntilClosed(conn)
}

// readUntilClosed drains (and discards) client frames purely to detect
// disconnects — the live-reload channel is server-to-client only.
func (h *Hub) readUntilClosed(conn net.Conn) {
	defer h.remove(conn)
	for {
		if _, _, err := wsutil.ReadClientData(conn); err != nil {
			return
		}
	}
}

func (h *Hub) remove(conn net.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// Broadcast JSON-encodes result and sends it as a text frame to every
// connected client, dropping (and unregistering) any that errors.
func (h *Hub) Broadcast(result CompileResult) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}

	h.mu.Lock()
	conns := make([]net.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		if err := wsutil.WriteServerMessage(conn, ws.OpText, data); err != nil {
			h.remove(conn)
		}
	}
}
