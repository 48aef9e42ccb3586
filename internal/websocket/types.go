package websocket

import (
	"time"

	"github.com/coder/websocket"
)

// Message types sent to preview pages.
const (
	MessageReload     = "reload"
	MessageStyleError = "style_error"
)

// client is one connected preview page.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// UpdateMessage represents a message sent to the browser
type UpdateMessage struct {
	Type      string    `json:"type"`
	Target    string    `json:"target,omitempty"`
	Content   string    `json:"content,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// OriginValidator decides whether a browser origin may connect.
type OriginValidator interface {
	IsAllowedOrigin(origin string) bool
}

// OriginFunc adapts a function to OriginValidator.
type OriginFunc func(origin string) bool

// IsAllowedOrigin calls f.
func (f OriginFunc) IsAllowedOrigin(origin string) bool { return f(origin) }
