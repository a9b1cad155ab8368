package loopback

import (
	"context"
	"fmt"
	"sync"

	"nulltrace/internal/domain"
)

// Handler is what a participant registers to receive frames addressed to
// it or broadcast to the room.
type Handler func(payload []byte)

// Relay is an in-memory broadcasting relay: every SendToAll call is
// delivered to every registered participant other than the sender, and
// every SendTo call is delivered to exactly one. Delivery is synchronous
// and happens on the caller's goroutine, guarded by a mutex so concurrent
// simulated participants don't race on the member list.
type Relay struct {
	mu      sync.Mutex
	members map[domain.CID]Handler
}

// New returns an empty Relay.
func New() *Relay {
	return &Relay{members: make(map[domain.CID]Handler)}
}

// Join registers cid's handler and returns a Client bound to this cid.
func (r *Relay) Join(cid domain.CID, handler Handler) *Client {
	r.mu.Lock()
	r.members[cid] = handler
	r.mu.Unlock()
	return &Client{relay: r, self: cid}
}

// Leave deregisters cid.
func (r *Relay) Leave(cid domain.CID) {
	r.mu.Lock()
	delete(r.members, cid)
	r.mu.Unlock()
}

func (r *Relay) sendTo(peer domain.CID, payload []byte) error {
	r.mu.Lock()
	h, ok := r.members[peer]
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("loopback: unknown peer %s", peer)
	}
	h(payload)
	return nil
}

func (r *Relay) sendToAll(self domain.CID, payload []byte) error {
	r.mu.Lock()
	handlers := make([]Handler, 0, len(r.members))
	for cid, h := range r.members {
		if cid == self {
			continue
		}
		handlers = append(handlers, h)
	}
	r.mu.Unlock()

	for _, h := range handlers {
		h(payload)
	}
	return nil
}

// Client is one participant's view of a Relay; it implements
// domain.Transport.
type Client struct {
	relay *Relay
	self  domain.CID
}

var _ domain.Transport = (*Client)(nil)

// SendTo implements domain.Transport.
func (c *Client) SendTo(_ context.Context, peer domain.CID, payload []byte) error {
	return c.relay.sendTo(peer, payload)
}

// SendToAll implements domain.Transport.
func (c *Client) SendToAll(_ context.Context, self domain.CID, payload []byte) error {
	return c.relay.sendToAll(self, payload)
}
