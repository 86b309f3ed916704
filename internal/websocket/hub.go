package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"noter-be/internal/pkg/logger"
	"noter-be/pkg/events"

	"github.com/google/uuid"
)

// hiddenKeys never leave the process.
var hiddenKeys = map[string]bool{"origin": true}

// Message is the frame a live client receives for each content change.
type Message struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurredAt"`
}

// Hub fans content events out to connected clients. Changes to public content
// reach everyone; changes to private content only reach the author's sessions.
type Hub struct {
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu     sync.RWMutex
	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     log,
	}
}

// Run owns client registration until ctx is cancelled, then closes every session.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		h.mu.Lock()
		for client := range h.clients {
			delete(h.clients, client)
			close(client.Send)
		}
		h.mu.Unlock()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("LIVE", "Client registered", map[string]interface{}{"viewer": viewer(client.UserID)})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			h.logger.Debug("LIVE", "Client unregistered", map[string]interface{}{"viewer": viewer(client.UserID)})
		}
	}
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Notify delivers event to every client allowed to see it. Slow clients drop frames.
func (h *Hub) Notify(event events.BaseEvent) {
	msg := Message{Type: event.Type, Data: make(map[string]interface{}, len(event.Data)), OccurredAt: event.OccurredAt}
	for k, v := range event.Data {
		if !hiddenKeys[k] {
			msg.Data[k] = v
		}
	}
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("LIVE", "Failed to encode frame", map[string]interface{}{"type": event.Type, "error": err.Error()})
		return
	}

	isPublic, _ := event.Data["is_public"].(bool)
	author, _ := uuid.Parse(event.String("author_id"))

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if !isPublic && (client.UserID == nil || *client.UserID != author) {
			continue
		}
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("LIVE", "Client buffer full, dropping frame", map[string]interface{}{"viewer": viewer(client.UserID)})
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func viewer(id *uuid.UUID) string {
	if id == nil {
		return "anonymous"
	}
	return id.String()
}
