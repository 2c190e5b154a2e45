// Package bridge streams framebuffer and register snapshots to any
// connected browser over a websocket, the Go-native analogue of the
// original project's WASM build: it lets a browser watch a running core
// without compiling the core itself to js/wasm.
package bridge

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/rustyboy-go/rustyboy/pkg/log"
)

// Snapshot is one frame's worth of debug state, published once per
// RunFrame call by whatever drives the core.
type Snapshot struct {
	LY           uint8           `json:"ly"`
	FrameCounter uint64          `json:"frame_counter"`
	Framebuffer  [144][160]uint8 `json:"framebuffer"`
}

// Server is a websocket hub: Publish broadcasts the latest Snapshot to
// every currently-connected client. It never touches the emulator core's
// state directly — the driver goroutine copies a Snapshot and calls
// Publish after RunFrame returns, so the server goroutine and the driver
// goroutine never share mutable state.
type Server struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}

	log log.Logger
}

// NewServer returns a Server ready to be registered as an http.Handler.
func NewServer(logger log.Logger) *Server {
	if logger == nil {
		logger = log.Null()
	}
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1 << 16,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
		log:     logger,
	}
}

// ServeHTTP upgrades the connection and registers it as a broadcast
// target until the client disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Errorf("bridge: upgrade failed: %v", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	go s.drain(conn)
}

// drain discards any messages the client sends (the protocol is
// publish-only) and unregisters the connection once it closes.
func (s *Server) drain(conn *websocket.Conn) {
	defer s.unregister(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) unregister(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

// Publish broadcasts snap as JSON to every connected client, dropping any
// connection that errors on write.
func (s *Server) Publish(snap Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		s.log.Errorf("bridge: marshal snapshot: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			delete(s.clients, conn)
			conn.Close()
		}
	}
}
