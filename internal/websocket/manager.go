// Package websocket pushes live reload notifications to preview pages.
package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"

	"github.com/conneroisu/inkit/internal/logging"
)

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 512
	sendBuffer     = 16
)

// Manager tracks connected preview pages and broadcasts updates to them.
//
// A single hub goroutine owns registration. Client send channels are only
// closed by the hub or by Shutdown, both under clientsMutex.
type Manager struct {
	clients      map[*websocket.Conn]*client
	clientsMutex sync.RWMutex

	broadcast  chan []byte
	register   chan *client
	unregister chan *websocket.Conn

	origins OriginValidator
	logger  logging.Logger

	ctx          context.Context
	cancel       context.CancelFunc
	shutdownOnce sync.Once
	isShutdown   atomic.Bool
}

// NewManager creates a manager and starts its hub. origins must not be nil.
func NewManager(origins OriginValidator, logger logging.Logger) *Manager {
	if origins == nil {
		panic("websocket: origin validator is required")
	}
	if logger == nil {
		logger = logging.Discard()
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		clients:    make(map[*websocket.Conn]*client),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *client, 32),
		unregister: make(chan *websocket.Conn, 32),
		origins:    origins,
		logger:     logger.WithComponent("websocket"),
		ctx:        ctx,
		cancel:     cancel,
	}
	go m.runHub()

	return m
}

// HandleWebSocket upgrades the request and registers the client. Requests
// without an allowed Origin header are rejected with 403.
func (m *Manager) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if m.IsShutdown() {
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	origin := r.Header.Get("Origin")
	if origin == "" || !m.origins.IsAllowedOrigin(origin) {
		m.logger.Warn(r.Context(), nil, "WebSocket connection rejected", "origin", origin, "remote", r.RemoteAddr)
		http.Error(w, "Origin not allowed", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// Origin was validated above.
		OriginPatterns:  []string{"*"},
		CompressionMode: websocket.CompressionDisabled,
	})
	if err != nil {
		m.logger.Warn(r.Context(), err, "WebSocket upgrade failed", "remote", r.RemoteAddr)
		return
	}
	conn.SetReadLimit(maxMessageSize)

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	select {
	case m.register <- c:
	case <-m.ctx.Done():
		conn.Close(websocket.StatusServiceRestart, "Server shutting down")
		return
	}

	go m.writeToClient(c)
	m.readFromClient(c)
}

func (m *Manager) runHub() {
	for {
		select {
		case c := <-m.register:
			m.clientsMutex.Lock()
			m.clients[c.conn] = c
			total := len(m.clients)
			m.clientsMutex.Unlock()
			m.logger.Debug(m.ctx, "WebSocket client connected", "clients", total)

		case conn := <-m.unregister:
			m.removeClient(conn, websocket.StatusNormalClosure, "")

		case message := <-m.broadcast:
			m.clientsMutex.RLock()
			var slow []*websocket.Conn
			for conn, c := range m.clients {
				select {
				case c.send <- message:
				default:
					slow = append(slow, conn)
				}
			}
			m.clientsMutex.RUnlock()

			for _, conn := range slow {
				m.removeClient(conn, websocket.StatusPolicyViolation, "Client too slow")
			}

		case <-m.ctx.Done():
			return
		}
	}
}

func (m *Manager) removeClient(conn *websocket.Conn, code websocket.StatusCode, reason string) {
	m.clientsMutex.Lock()
	c, ok := m.clients[conn]
	if ok {
		delete(m.clients, conn)
		close(c.send)
	}
	total := len(m.clients)
	m.clientsMutex.Unlock()

	if ok {
		conn.Close(code, reason)
		m.logger.Debug(m.ctx, "WebSocket client disconnected", "clients", total)
	}
}

// readFromClient blocks until the peer goes away. Preview pages never send
// anything meaningful; reading keeps pings answered and detects closure.
func (m *Manager) readFromClient(c *client) {
	defer func() {
		select {
		case m.unregister <- c.conn:
		case <-m.ctx.Done():
		}
	}()

	for {
		if _, _, err := c.conn.Read(m.ctx); err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && m.ctx.Err() == nil {
				m.logger.Debug(m.ctx, "WebSocket read ended", "error", err.Error())
			}
			return
		}
	}
}

func (m *Manager) writeToClient(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			ctx, cancel := context.WithTimeout(m.ctx, writeWait)
			err := c.conn.Write(ctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				c.conn.CloseNow()
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(m.ctx, writeWait)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				c.conn.CloseNow()
				return
			}

		case <-m.ctx.Done():
			return
		}
	}
}

// Broadcast sends msg to every connected client. It never blocks; the
// message is dropped when the manager is shut down or saturated.
func (m *Manager) Broadcast(msg UpdateMessage) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	data, err := json.Marshal(msg)
	if err != nil {
		m.logger.Error(m.ctx, err, "Failed to marshal broadcast message")
		return
	}

	select {
	case <-m.ctx.Done():
		return
	default:
	}

	select {
	case m.broadcast <- data:
	default:
		m.logger.Warn(m.ctx, nil, "Broadcast channel full, dropping message", "type", msg.Type)
	}
}

// ConnectedClients returns the number of connected clients.
func (m *Manager) ConnectedClients() int {
	m.clientsMutex.RLock()
	defer m.clientsMutex.RUnlock()
	return len(m.clients)
}

// Shutdown closes every client connection and stops the hub.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.shutdownOnce.Do(func() {
		m.isShutdown.Store(true)
		m.cancel()

		m.clientsMutex.Lock()
		for conn, c := range m.clients {
			close(c.send)
			conn.Close(websocket.StatusGoingAway, "Server shutdown")
		}
		m.clients = make(map[*websocket.Conn]*client)
		m.clientsMutex.Unlock()

		m.logger.Info(ctx, "WebSocket manager shut down")
	})

	return nil
}

// IsShutdown reports whether Shutdown has been called.
func (m *Manager) IsShutdown() bool {
	return m.isShutdown.Load()
}
