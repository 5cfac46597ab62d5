package ws

import (
	"encoding/json"
	"sync"

	"mancala_arena/internal/logger"
)

// Hub tracks which clients are subscribed to which room channels and fans
// server events out to them. It holds no game state: the room service is
// the single source of truth, the hub only delivers.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[string]map[*Client]struct{}
	byClient map[*Client]map[string]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms:    make(map[string]map[*Client]struct{}),
		byClient: make(map[*Client]map[string]struct{}),
	}
}

// Subscribe adds the client to a room channel.
func (h *Hub) Subscribe(c *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]struct{})
	}
	h.rooms[roomID][c] = struct{}{}

	if h.byClient[c] == nil {
		h.byClient[c] = make(map[string]struct{})
	}
	h.byClient[c][roomID] = struct{}{}
}

// Unsubscribe removes the client from a room channel.
func (h *Hub) Unsubscribe(c *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(c, roomID)
}

// RemoveClient drops the client from every channel it joined. Called on
// disconnect; it never touches room state, the room itself lives on until
// the inactivity sweep.
func (h *Hub) RemoveClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for roomID := range h.byClient[c] {
		h.drop(c, roomID)
	}
}

func (h *Hub) drop(c *Client, roomID string) {
	if subs, ok := h.rooms[roomID]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.rooms, roomID)
		}
	}
	if joined, ok := h.byClient[c]; ok {
		delete(joined, roomID)
		if len(joined) == 0 {
			delete(h.byClient, c)
		}
	}
}

// BroadcastRoom delivers an event to every subscriber of the room.
// Implements service.Broadcaster.
func (h *Hub) BroadcastRoom(roomID, event string, payload any) {
	data, err := json.Marshal(Message{Type: event, Payload: payload})
	if err != nil {
		logger.Error("marshal broadcast", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	subs := make([]*Client, 0, len(h.rooms[roomID]))
	for c := range h.rooms[roomID] {
		subs = append(subs, c)
	}
	h.mu.RUnlock()

	for _, c := range subs {
		c.enqueue(data)
	}
}

// SendTo delivers an event to a single client.
func (h *Hub) SendTo(c *Client, event string, payload any) {
	data, err := json.Marshal(Message{Type: event, Payload: payload})
	if err != nil {
		logger.Error("marshal message", "event", event, "error", err)
		return
	}
	c.enqueue(data)
}
