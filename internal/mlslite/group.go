package mlslite

import (
	"time"

	"nulltrace/internal/domain"
)

// RekeyDebounce is the coalescing window for membership-triggered rekeys.
const RekeyDebounce = 50 * time.Millisecond

// RekeyThrottle is the minimum gap between externally-triggered (gk_req)
// rekeys.
const RekeyThrottle = 800 * time.Millisecond

// Group is the single, role-polymorphic membership and rekey component:
// every member runs the same Group, and IsInitiator on the underlying
// domain.GroupState decides which operations are live versus no-ops. A
// non-initiator's Rekey and HandleGKReq are both no-ops; an initiator's
// HandleGKReq triggers a throttled rekey.
type Group struct {
	self  domain.CID
	state *domain.GroupState

	clock domain.Clock
	rnd   domain.RandReader

	onReady func()
	// send delivers frames minted by a debounce-triggered rekey, which has
	// no caller waiting on a return value to forward them. Rekey calls
	// invoked directly by a caller (router's explicit Rekey/HandleGKReq
	// paths) return their frames instead and skip this hook.
	send func([]domain.Frame)

	rekeyTimer    domain.Timer
	lastExternal  time.Time
	haveLastExtrn bool
}

// New returns a Group for self, backed by state, using clock for timers and
// rnd for key/nonce generation. onReady is invoked every time a new group
// key becomes installed (fresh mint or successful load).
func New(self domain.CID, state *domain.GroupState, clock domain.Clock, rnd domain.RandReader, onReady func()) *Group {
	if onReady == nil {
		onReady = func() {}
	}
	return &Group{self: self, state: state, clock: clock, rnd: rnd, onReady: onReady}
}

// State returns the underlying group state, for callers (groupcore,
// router) that need direct access to encrypt/decrypt/flush.
func (g *Group) State() *domain.GroupState { return g.state }

// SetSendFrames registers the hook used to deliver frames minted by a
// debounce-triggered rekey over the transport. Router calls this once,
// after constructing both itself and this Group.
func (g *Group) SetSendFrames(f func([]domain.Frame)) { g.send = f }

// SetInitiator changes the local role, e.g. on leadership handoff.
func (g *Group) SetInitiator(flag bool) { g.state.IsInitiator = flag }

// AddMember inserts cid with pairKey into the roster and, if this Group is
// the initiator, schedules a debounced rekey.
func (g *Group) AddMember(cid domain.CID, pairKey domain.SymmetricKey) {
	g.state.Members[cid] = &pairKey
	g.scheduleRekey()
}

// RemoveMember deletes cid from the roster and, if this Group is the
// initiator, schedules a debounced rekey.
func (g *Group) RemoveMember(cid domain.CID) {
	delete(g.state.Members, cid)
	g.scheduleRekey()
}

// scheduleRekey (re)starts the 50 ms debounce timer, coalescing bursts of
// membership changes into a single rekey. Non-initiators never rekey, so
// the timer is not started for them.
func (g *Group) scheduleRekey() {
	if !g.state.IsInitiator {
		return
	}
	if g.rekeyTimer != nil {
		g.rekeyTimer.Reset(RekeyDebounce)
		return
	}
	g.rekeyTimer = g.clock.AfterFunc(RekeyDebounce, func() {
		g.rekeyTimer = nil
		frames, err := g.Rekey()
		if err == nil && g.send != nil {
			g.send(frames)
		}
	})
}

// CancelPendingRekey stops a scheduled debounce timer without firing it, if
// one is pending.
func (g *Group) CancelPendingRekey() {
	if g.rekeyTimer != nil {
		g.rekeyTimer.Stop()
		g.rekeyTimer = nil
	}
}
