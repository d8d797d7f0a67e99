package ws

import "sync"

// Client is one live realtime connection. Identity and room fields are
// owned by the Hub and must only be touched through Hub methods; SessionID
// and Send are immutable after construction.
type Client struct {
	// SessionID is the transport-assigned id, also the storage fallback
	// key for location reports from sessions that never identified.
	SessionID string

	Send chan []byte

	// guarded by the owning Hub's mutex
	userID string
	name   string
	role   string
	room   string

	hub    *Hub
	mu     sync.Mutex
	closed bool
}

func NewClient(sessionID string, sendBuffer int) *Client {
	return &Client{
		SessionID: sessionID,
		Send:      make(chan []byte, sendBuffer),
	}
}

// Close is idempotent: it unregisters the client and closes its send
// channel exactly once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.hub != nil {
		c.hub.remove(c)
	}
	close(c.Send)
}
