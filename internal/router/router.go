package router

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"nulltrace/internal/domain"
	"nulltrace/internal/groupcore"
	"nulltrace/internal/handshake"
	"nulltrace/internal/keymaterial"
	"nulltrace/internal/mlslite"
)

// GKRetryBase is the initial delay before a responder asks for a group key
// it never received.
const GKRetryBase = 300 * time.Millisecond

// GKRetryMaxAttempts bounds the exponential-backoff retry loop.
const GKRetryMaxAttempts = 6

// Router dispatches inbound frames into the handshake, group-core and
// mls-lite layers, and owns the per-peer GK retry loop that runs on a
// responder who established a pair key but never received a group key.
type Router struct {
	self *domain.Member
	room domain.Room

	peers           map[domain.CID]*domain.PeerRecord
	pendingApproval map[domain.CID]bool

	group *mlslite.Group

	transport domain.Transport
	clock     domain.Clock
	rnd       domain.RandReader

	retries map[domain.CID]*gkRetry
}

type gkRetry struct {
	timer   domain.Timer
	attempt int
}

// New returns a Router for self's session in room, running as initiator or
// responder of the group as a whole per isInitiator (the host is always
// the initiator of every pairwise handshake).
func New(self *domain.Member, room domain.Room, isInitiator bool, transport domain.Transport, clock domain.Clock, rnd domain.RandReader, onReady func()) *Router {
	state := domain.NewGroupState(isInitiator)
	r := &Router{
		self:            self,
		room:            room,
		peers:           make(map[domain.CID]*domain.PeerRecord),
		pendingApproval: make(map[domain.CID]bool),
		group:           mlslite.New(self.CID, state, clock, rnd, onReady),
		transport:       transport,
		clock:           clock,
		rnd:             rnd,
		retries:         make(map[domain.CID]*gkRetry),
	}
	r.group.SetSendFrames(func(frames []domain.Frame) {
		_ = r.sendAll(context.Background(), frames)
	})
	return r
}

// Group exposes the underlying membership/rekey component, for callers
// that need to add the host's own knowledge of a peer outside Dispatch
// (e.g. the CLI demo).
func (r *Router) Group() *mlslite.Group { return r.group }

// Peer returns the known record for cid, or nil.
func (r *Router) Peer(cid domain.CID) *domain.PeerRecord { return r.peers[cid] }

// CancelAllRetries stops every pending GK retry timer and the group's
// rekey debounce timer, without firing any of them. Used by session.Wipe.
func (r *Router) CancelAllRetries() {
	for cid := range r.retries {
		r.cancelGKRetry(cid)
	}
	r.group.CancelPendingRekey()
}

// ClearPeers zeroes every known peer's pair key, then drops the known and
// pending-approval peer records.
func (r *Router) ClearPeers() {
	for _, peer := range r.peers {
		keymaterial.WipeSymmetricKey(peer.PairKey)
	}
	r.peers = make(map[domain.CID]*domain.PeerRecord)
	r.pendingApproval = make(map[domain.CID]bool)
}

// DropTransport replaces the transport with one that errors on every call,
// so nothing the core still holds a reference to can send after teardown.
func (r *Router) DropTransport() { r.transport = deadTransport{} }

type deadTransport struct{}

func (deadTransport) SendTo(context.Context, domain.CID, []byte) error {
	return fmt.Errorf("router: send on a dropped transport")
}

func (deadTransport) SendToAll(context.Context, domain.CID, []byte) error {
	return fmt.Errorf("router: send on a dropped transport")
}

// Dispatch routes one inbound frame per the protocol's dispatch table,
// sending any frames the handling produces (ct, gk, gk_req replies) back
// out over the transport. For an m frame that decrypts successfully it
// returns the plaintext and delivered=true.
func (r *Router) Dispatch(ctx context.Context, frame domain.Frame) (plaintext string, delivered bool, err error) {
	switch frame.T {
	case domain.FrameHello:
		r.handleHello(frame)
		return "", false, nil

	case domain.FrameAnnounce:
		r.handleAnnounce(frame)
		return "", false, nil

	case domain.FrameCT:
		return "", false, r.handleCT(ctx, frame)

	case domain.FrameGK:
		return "", false, r.handleGK(ctx, frame)

	case domain.FrameGKReq:
		frames, err := r.group.HandleGKReq()
		if err != nil {
			return "", false, err
		}
		return "", false, r.sendAll(ctx, frames)

	case domain.FrameMessage:
		pt, ok, err := groupcore.Decrypt(r.group.State(), frame)
		return pt, ok, err

	case domain.FrameLeave:
		r.handleLeave(frame)
		return "", false, nil

	case domain.FrameChaff, domain.FramePing:
		return "", false, nil

	default:
		return "", false, fmt.Errorf("router: unknown frame type %q", frame.T)
	}
}

func (r *Router) handleHello(frame domain.Frame) {
	r.peers[frame.CID] = &domain.PeerRecord{
		CID: frame.CID, IDPub: frame.IDPub, XPub: frame.XPub, PQPub: frame.PQPub,
	}
	if r.group.State().IsInitiator {
		r.pendingApproval[frame.CID] = true
	}
}

func (r *Router) handleAnnounce(frame domain.Frame) {
	if _, known := r.peers[frame.CID]; known {
		return
	}
	r.peers[frame.CID] = &domain.PeerRecord{
		CID: frame.CID, IDPub: frame.IDPub, XPub: frame.XPub, PQPub: frame.PQPub,
	}
}

// handleCT runs when a responder receives the host's KEM ciphertext: it
// completes the pairwise handshake, stores the resulting pair key into the
// group, and either applies a buffered gk or starts the retry loop.
func (r *Router) handleCT(ctx context.Context, frame domain.Frame) error {
	if frame.To != "" && frame.To != r.self.CID {
		return nil
	}
	peer, known := r.peers[frame.CID]
	if !known {
		peer = &domain.PeerRecord{CID: frame.CID}
		r.peers[frame.CID] = peer
	}
	peer.CT = frame.CT
	peer.Sig = frame.Sig

	res, err := handshake.HandshakeWith(peer, r.self, handshake.RoleResp, r.room)
	if err != nil {
		return fmt.Errorf("router: ct handshake: %w", err)
	}
	if !res.SigOK {
		log.Printf("router: signature mismatch on handshake transcript from %s, continuing with unverified pair key", peer.CID)
	}

	r.group.AddMember(peer.CID, *peer.PairKey)

	if buffered, ok := r.group.State().PendingGK[peer.CID]; ok {
		delete(r.group.State().PendingGK, peer.CID)
		return r.handleGK(ctx, buffered)
	}

	r.startGKRetry(ctx, peer.CID)
	return nil
}

// handleGK applies or buffers an inbound gk frame.
func (r *Router) handleGK(ctx context.Context, frame domain.Frame) error {
	peer, known := r.peers[frame.CID]
	if !known || !peer.HasPairKey() {
		r.group.State().PendingGK[frame.CID] = frame
		return nil
	}

	installed, _, err := r.group.HandleGK(frame, *peer.PairKey)
	if err != nil {
		return err
	}
	if installed {
		r.cancelGKRetry(frame.CID)
	}
	return nil
}

func (r *Router) handleLeave(frame domain.Frame) {
	if peer, known := r.peers[frame.CID]; known {
		keymaterial.WipeSymmetricKey(peer.PairKey)
	}
	delete(r.peers, frame.CID)
	delete(r.pendingApproval, frame.CID)
	r.cancelGKRetry(frame.CID)
	if r.group.State().IsInitiator {
		r.group.RemoveMember(frame.CID)
	}
}

// startGKRetry begins the responder's 300ms/doubling/6-attempt loop asking
// host for a group key that never arrived.
func (r *Router) startGKRetry(ctx context.Context, host domain.CID) {
	r.cancelGKRetry(host)
	state := &gkRetry{attempt: 0}
	r.retries[host] = state
	r.armGKRetry(ctx, host, state, GKRetryBase)
}

func (r *Router) armGKRetry(ctx context.Context, host domain.CID, state *gkRetry, delay time.Duration) {
	state.timer = r.clock.AfterFunc(delay, func() {
		state.attempt++
		_ = r.sendAll(ctx, []domain.Frame{{T: domain.FrameGKReq, CID: r.self.CID}})
		if state.attempt >= GKRetryMaxAttempts {
			return
		}
		r.armGKRetry(ctx, host, state, delay*2)
	})
}

func (r *Router) cancelGKRetry(host domain.CID) {
	if state, ok := r.retries[host]; ok {
		if state.timer != nil {
			state.timer.Stop()
		}
		delete(r.retries, host)
	}
}

func (r *Router) sendAll(ctx context.Context, frames []domain.Frame) error {
	for _, f := range frames {
		body, err := json.Marshal(f)
		if err != nil {
			return err
		}
		if f.To != "" {
			if err := r.transport.SendTo(ctx, f.To, body); err != nil {
				return err
			}
			continue
		}
		if err := r.transport.SendToAll(ctx, r.self.CID, body); err != nil {
			return err
		}
	}
	return nil
}

// SendMessage encrypts plaintext under the current group key and sends it
// to every peer. It is a no-op (no error, nothing sent) when no group key
// has been installed yet.
func (r *Router) SendMessage(ctx context.Context, plaintext string) error {
	frame, err := groupcore.Encrypt(r.group.State(), r.self.CID, plaintext)
	if err != nil {
		return err
	}
	if frame == nil {
		return nil
	}
	return r.sendAll(ctx, []domain.Frame{*frame})
}

// Leave sends a best-effort leave frame.
func (r *Router) Leave(ctx context.Context) error {
	return r.sendAll(ctx, []domain.Frame{{T: domain.FrameLeave, CID: r.self.CID}})
}

// ApproveHello runs the initiator side of the pairwise handshake against a
// peer recorded by a prior hello/announce, broadcasts this member's own
// announce frame so the joining peer learns its public keys, and then sends
// the resulting ct frame. Only meaningful when this Router's group is the
// initiator.
func (r *Router) ApproveHello(ctx context.Context, cid domain.CID) error {
	peer, known := r.peers[cid]
	if !known {
		return fmt.Errorf("router: approve: unknown peer %s", cid)
	}
	delete(r.pendingApproval, cid)

	res, err := handshake.HandshakeWith(peer, r.self, handshake.RoleInit, r.room)
	if err != nil {
		return fmt.Errorf("router: approve: handshake: %w", err)
	}
	if !res.SigOK {
		log.Printf("router: signature mismatch on handshake transcript from %s, continuing with unverified pair key", peer.CID)
	}
	r.group.AddMember(cid, res.PairKey)

	return r.sendAll(ctx, []domain.Frame{r.Announce(), {
		T:   domain.FrameCT,
		CID: r.self.CID,
		To:  cid,
		CT:  res.CT,
		Sig: res.Sig,
	}})
}

// Announce builds this member's own announce frame for bootstrapping.
func (r *Router) Announce() domain.Frame {
	return domain.Frame{
		T: domain.FrameAnnounce, CID: r.self.CID,
		IDPub: r.self.IDPub, XPub: r.self.XPub, PQPub: r.self.PQPub, Room: r.room,
	}
}

// Hello builds this member's own hello frame for joining a room.
func (r *Router) Hello() domain.Frame {
	return domain.Frame{
		T: domain.FrameHello, CID: r.self.CID,
		IDPub: r.self.IDPub, XPub: r.self.XPub, PQPub: r.self.PQPub, Room: r.room,
	}
}

