package session

import (
	"context"
	"fmt"

	"nulltrace/internal/domain"
	"nulltrace/internal/keymaterial"
	"nulltrace/internal/router"
)

// State is a position in the member session lifecycle. Only Keyed accepts
// plaintext I/O; any error path from Handshaking returns to Connected.
type State string

const (
	StateNew         State = "new"
	StateConnected   State = "connected"
	StateHandshaking State = "handshaking"
	StateKeyed       State = "keyed"
	StateWiped       State = "wiped"
)

// Session owns one member's lifetime: its key material, its Router, and
// the single authoritative teardown path, Wipe.
type Session struct {
	Member *domain.Member
	Router *router.Router
	State  State

	room domain.Room
}

// New generates fresh key material, builds a Router bound to transport,
// clock and rnd, and returns a Session in state Connected.
func New(room domain.Room, isInitiator bool, transport domain.Transport, clock domain.Clock, rnd domain.RandReader) (*Session, error) {
	member, err := keymaterial.NewMember()
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return NewWithMember(member, room, isInitiator, transport, clock, rnd), nil
}

// NewWithMember builds a Session around a caller-supplied member, for
// callers that must register the member's CID with a transport (e.g. a
// loopback relay join) before a Router exists to receive frames from it.
func NewWithMember(member *domain.Member, room domain.Room, isInitiator bool, transport domain.Transport, clock domain.Clock, rnd domain.RandReader) *Session {
	s := &Session{Member: member, State: StateConnected, room: room}
	s.Router = router.New(member, room, isInitiator, transport, clock, rnd, func() {
		s.State = StateKeyed
	})
	return s
}

// BeginHandshake marks the session as actively running a pairwise
// handshake. Callers should call this immediately before HandshakeWith and
// rely on the onReady callback (wired in New) to advance to Keyed, or call
// EndHandshakeFailed to fall back to Connected on error.
func (s *Session) BeginHandshake() {
	if s.State != StateWiped {
		s.State = StateHandshaking
	}
}

// EndHandshakeFailed returns the session to Connected after a failed
// handshake attempt, per the state machine's only error-recovery edge.
func (s *Session) EndHandshakeFailed() {
	if s.State == StateHandshaking {
		s.State = StateConnected
	}
}

// CanSendPlaintext reports whether the session is in the one state that
// accepts plaintext I/O.
func (s *Session) CanSendPlaintext() bool { return s.State == StateKeyed }

// Wipe is the single authoritative teardown path: cancel all timers, send
// a best-effort leave, drop the transport, and clear peers, pending
// buffers, retry timers and key material.
func (s *Session) Wipe(ctx context.Context) {
	if s.State == StateWiped {
		return
	}

	s.Router.CancelAllRetries()
	_ = s.Router.Leave(ctx)
	s.Router.DropTransport()
	s.Router.ClearPeers()

	keymaterial.WipeGroupState(s.Router.Group().State())
	keymaterial.WipeMember(s.Member)

	s.State = StateWiped
}
