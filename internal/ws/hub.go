package ws

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
)

const writeTimeout = 3 * time.Second

// Hub fans execution updates out to every connected /stream subscriber.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast writes message to all subscribers and drops the ones that fail.
// Writes run outside the lock, so a slow subscriber delays only its own
// delivery. It returns the number of successful deliveries.
func (h *Hub) Broadcast(ctx context.Context, message []byte) int {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	var (
		wg        sync.WaitGroup
		delivered atomic.Int64
	)
	for _, conn := range conns {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Write(wctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				h.Remove(conn)
				_ = conn.Close(websocket.StatusNormalClosure, "")
				return
			}
			delivered.Add(1)
		}()
	}
	wg.Wait()
	return int(delivered.Load())
}

// Serve keeps conn registered until the peer disconnects or ctx ends. Incoming
// messages are discarded; the stream is one-way.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn) {
	h.Add(conn)
	defer h.Remove(conn)
	defer conn.Close(websocket.StatusNormalClosure, "")

	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return
		}
	}
}
