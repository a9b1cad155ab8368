package domain

import (
	"context"
	"time"
)

// Transport is the only way the core talks to the outside world. It knows
// nothing about frames; it moves opaque bytes to one or all peers in a room.
// A relay, websocket client, or in-memory fake all satisfy this.
type Transport interface {
	// SendTo delivers payload to a single peer.
	SendTo(ctx context.Context, peer CID, payload []byte) error
	// SendToAll delivers payload to every peer currently in the room other
	// than self.
	SendToAll(ctx context.Context, self CID, payload []byte) error
}

// Clock abstracts wall-clock access so timers and TTL checks are
// deterministic under test.
type Clock interface {
	Now() time.Time
	// AfterFunc schedules f to run after d and returns a Timer the caller
	// can stop.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is the subset of time.Timer the core relies on.
type Timer interface {
	Stop() bool
	Reset(d time.Duration) bool
}

// RandReader abstracts the CSPRNG used for nonces, padding, and key
// generation so tests can inject a deterministic source.
type RandReader interface {
	Read(p []byte) (n int, err error)
}
