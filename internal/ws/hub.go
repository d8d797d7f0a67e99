package ws

import (
	"encoding/json"
	"sync"

	"github.com/Lraccc/campus-eats-sub003/internal/metrics"
)

// Identity is the metadata attached to a session by an identify message
// (or a pre-authenticated token at connect time).
type Identity struct {
	UserID string
	Name   string
	Role   string
}

// Hub is the session registry and broadcast router: it tracks every open
// connection, its identity metadata and optional room membership, and fans
// enriched events out room-scoped or globally. All session state lives here,
// in process memory; a reconnect is a brand-new session.
type Hub struct {
	metrics *metrics.Metrics

	mu      sync.RWMutex
	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{}
}

func NewHub(m *metrics.Metrics) *Hub {
	return &Hub{
		metrics: m,
		clients: make(map[*Client]struct{}),
		rooms:   make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.hub = h
	h.clients[c] = struct{}{}
	h.metrics.ConnectedSessions.Inc()
}

// remove drops all registry state for c. Called from Client.Close on
// disconnect; no notification is sent to other sessions.
func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	h.leaveRoomLocked(c)
	h.metrics.ConnectedSessions.Dec()
}

// Identify attaches identity metadata to a session. A later call overwrites.
func (h *Hub) Identify(c *Client, id Identity) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.userID = id.UserID
	c.name = id.Name
	c.role = id.Role
}

// Identity returns the session's identity metadata; identified is false
// until an identify message (or token) has supplied a user id.
func (h *Hub) Identity(c *Client) (id Identity, identified bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return Identity{UserID: c.userID, Name: c.name, Role: c.role}, c.userID != ""
}

// JoinRoom attaches a room id to the session, replacing any prior
// membership (one room at a time, no explicit leave). It returns the user
// ids of the identified sessions already in that room, so the caller can
// replay their last known positions to the joiner.
func (h *Hub) JoinRoom(c *Client, roomID string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveRoomLocked(c)
	c.room = roomID
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]struct{})
	}
	peers := make([]string, 0, len(h.rooms[roomID]))
	for peer := range h.rooms[roomID] {
		if peer.userID != "" {
			peers = append(peers, peer.userID)
		}
	}
	h.rooms[roomID][c] = struct{}{}
	return peers
}

func (h *Hub) leaveRoomLocked(c *Client) {
	if c.room == "" {
		return
	}
	if members := h.rooms[c.room]; members != nil {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, c.room)
		}
	}
	c.room = ""
}

// Route delivers payload to every session in from's room, or to every
// connected session when from has no room. Delivery is best-effort and
// non-blocking per recipient: a consumer whose send buffer is full misses
// the event and the drop is counted.
func (h *Hub) Route(payload interface{}, from *Client) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.metrics.DroppedMessages.WithLabelValues(metrics.ReasonMalformed).Inc()
		return
	}
	// Deliveries happen under the read lock: sends are non-blocking, and a
	// disconnecting client cannot close its channel mid-fanout because
	// remove() needs the write lock.
	h.mu.RLock()
	var scope map[*Client]struct{}
	if from.room != "" {
		scope = h.rooms[from.room]
	} else {
		scope = h.clients
	}
	for c := range scope {
		h.send(c, data)
	}
	h.mu.RUnlock()
	h.metrics.Broadcasts.Inc()
}

// SendTo delivers payload to a single session, best-effort. Used for the
// room-join replay of stored positions.
func (h *Hub) SendTo(c *Client, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.metrics.DroppedMessages.WithLabelValues(metrics.ReasonMalformed).Inc()
		return
	}
	h.mu.RLock()
	if _, ok := h.clients[c]; ok {
		h.send(c, data)
	}
	h.mu.RUnlock()
}

func (h *Hub) send(c *Client, data []byte) {
	select {
	case c.Send <- data:
	default:
		h.metrics.DroppedMessages.WithLabelValues(metrics.ReasonSlowConsumer).Inc()
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
