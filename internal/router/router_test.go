package router_test

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"testing"
	"time"

	"nulltrace/internal/domain"
	"nulltrace/internal/keymaterial"
	"nulltrace/internal/router"
)

type fakeTimer struct{ fn func() }

func (f *fakeTimer) Stop() bool           { return true }
func (f *fakeTimer) Reset(time.Duration) bool { return true }

type fakeClock struct {
	fired []*fakeTimer
}

func (c *fakeClock) Now() time.Time { return time.Unix(0, 0) }

func (c *fakeClock) AfterFunc(_ time.Duration, f func()) domain.Timer {
	t := &fakeTimer{fn: f}
	c.fired = append(c.fired, t)
	return t
}

// fireAll invokes every timer callback scheduled so far, including ones
// scheduled by earlier callbacks, until no new timers appear.
func (c *fakeClock) fireAll() {
	for i := 0; i < len(c.fired); i++ {
		c.fired[i].fn()
	}
}

type recvTransport struct {
	route func(to domain.CID, body []byte)
	all   func(self domain.CID, body []byte)
}

func (t *recvTransport) SendTo(_ context.Context, peer domain.CID, payload []byte) error {
	t.route(peer, payload)
	return nil
}

func (t *recvTransport) SendToAll(_ context.Context, self domain.CID, payload []byte) error {
	t.all(self, payload)
	return nil
}

func TestTwoPartyJoinEndToEnd(t *testing.T) {
	ctx := context.Background()

	host, err := keymaterial.NewMember()
	if err != nil {
		t.Fatalf("NewMember(host): %v", err)
	}
	guest, err := keymaterial.NewMember()
	if err != nil {
		t.Fatalf("NewMember(guest): %v", err)
	}

	hostClock := &fakeClock{}
	guestClock := &fakeClock{}

	var guestRouter *router.Router
	var hostRouter *router.Router

	hostTransport := &recvTransport{
		route: func(to domain.CID, body []byte) {
			var f domain.Frame
			if err := json.Unmarshal(body, &f); err != nil {
				t.Fatalf("unmarshal host->%s: %v", to, err)
			}
			if _, _, err := guestRouter.Dispatch(ctx, f); err != nil {
				t.Fatalf("guest dispatch of %s: %v", f.T, err)
			}
		},
		all: func(self domain.CID, body []byte) {
			var f domain.Frame
			if err := json.Unmarshal(body, &f); err != nil {
				t.Fatalf("unmarshal host broadcast: %v", err)
			}
			if _, _, err := guestRouter.Dispatch(ctx, f); err != nil {
				t.Fatalf("guest dispatch of %s: %v", f.T, err)
			}
		},
	}
	var lastGuestToHost domain.Frame
	guestTransport := &recvTransport{
		route: func(to domain.CID, body []byte) {
			json.Unmarshal(body, &lastGuestToHost)
		},
		all: func(self domain.CID, body []byte) {
			json.Unmarshal(body, &lastGuestToHost)
		},
	}

	hostRouter = router.New(host, "r1", true, hostTransport, hostClock, rand.Reader, nil)
	guestRouter = router.New(guest, "r1", false, guestTransport, guestClock, rand.Reader, nil)

	hello := guestRouter.Hello()
	if _, _, err := hostRouter.Dispatch(ctx, hello); err != nil {
		t.Fatalf("host dispatch hello: %v", err)
	}

	if err := hostRouter.ApproveHello(ctx, guest.CID); err != nil {
		t.Fatalf("ApproveHello: %v", err)
	}

	// ApproveHello's AddMember scheduled a debounced rekey on the host;
	// fire it to mint and deliver the group key.
	hostClock.fireAll()

	if err := guestRouter.SendMessage(ctx, "hi"); err != nil {
		t.Fatalf("guest SendMessage: %v", err)
	}
	if lastGuestToHost.T != domain.FrameMessage {
		t.Fatalf("expected guest to send an m frame after installing GK, got %q", lastGuestToHost.T)
	}

	pt, ok, err := hostRouter.Dispatch(ctx, lastGuestToHost)
	if err != nil {
		t.Fatalf("host dispatch m: %v", err)
	}
	if !ok || pt != "hi" {
		t.Fatalf("host decrypted (%q, %v), want (\"hi\", true)", pt, ok)
	}
}

func TestReplayedMessageIsDropped(t *testing.T) {
	ctx := context.Background()
	host, err := keymaterial.NewMember()
	if err != nil {
		t.Fatalf("NewMember(host): %v", err)
	}
	guest, err := keymaterial.NewMember()
	if err != nil {
		t.Fatalf("NewMember(guest): %v", err)
	}
	hostClock := &fakeClock{}
	guestClock := &fakeClock{}

	var guestRouter *router.Router
	hostTransport := &recvTransport{
		route: func(_ domain.CID, body []byte) {
			var f domain.Frame
			json.Unmarshal(body, &f)
			guestRouter.Dispatch(ctx, f)
		},
		all: func(_ domain.CID, body []byte) {
			var f domain.Frame
			json.Unmarshal(body, &f)
			guestRouter.Dispatch(ctx, f)
		},
	}
	var lastGuestToHost domain.Frame
	guestTransport := &recvTransport{
		route: func(_ domain.CID, body []byte) { json.Unmarshal(body, &lastGuestToHost) },
		all:   func(_ domain.CID, body []byte) { json.Unmarshal(body, &lastGuestToHost) },
	}

	hostRouter := router.New(host, "r1", true, hostTransport, hostClock, rand.Reader, nil)
	guestRouter = router.New(guest, "r1", false, guestTransport, guestClock, rand.Reader, nil)

	hostRouter.Dispatch(ctx, guestRouter.Hello())
	if err := hostRouter.ApproveHello(ctx, guest.CID); err != nil {
		t.Fatalf("ApproveHello: %v", err)
	}
	hostClock.fireAll()

	if err := guestRouter.SendMessage(ctx, "hi"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	replay := lastGuestToHost

	if _, ok, err := hostRouter.Dispatch(ctx, replay); err != nil || !ok {
		t.Fatalf("first delivery: ok=%v err=%v, want ok=true", ok, err)
	}
	if _, ok, err := hostRouter.Dispatch(ctx, replay); err != nil || ok {
		t.Fatalf("replayed delivery: ok=%v err=%v, want ok=false", ok, err)
	}
}

// TestAnnounceInsertsUnknownPeer exercises Router.Announce, the builder an
// existing member uses to tell a joining peer about itself: a newcomer
// dispatching it should learn of that member even though it never sent a
// hello or announce of its own.
func TestAnnounceInsertsUnknownPeer(t *testing.T) {
	ctx := context.Background()

	existing, err := keymaterial.NewMember()
	if err != nil {
		t.Fatalf("NewMember(existing): %v", err)
	}
	newcomer, err := keymaterial.NewMember()
	if err != nil {
		t.Fatalf("NewMember(newcomer): %v", err)
	}

	existingRouter := router.New(existing, "r1", true, &recvTransport{}, &fakeClock{}, rand.Reader, nil)
	newcomerRouter := router.New(newcomer, "r1", false, &recvTransport{}, &fakeClock{}, rand.Reader, nil)

	announce := existingRouter.Announce()
	if announce.T != domain.FrameAnnounce {
		t.Fatalf("Announce built a %q frame, want %q", announce.T, domain.FrameAnnounce)
	}
	if announce.CID != existing.CID {
		t.Fatalf("Announce carried CID %q, want %q", announce.CID, existing.CID)
	}

	if _, _, err := newcomerRouter.Dispatch(ctx, announce); err != nil {
		t.Fatalf("newcomer dispatch announce: %v", err)
	}
	if newcomerRouter.Peer(existing.CID) == nil {
		t.Fatal("newcomer did not record the existing member from its announce frame")
	}
}

func TestClassify(t *testing.T) {
	cases := map[domain.FrameType]router.Kind{
		domain.FrameChaff:   router.KindBulk,
		domain.FramePing:    router.KindBulk,
		domain.FrameMessage: router.KindChat,
		domain.FrameHello:   router.KindCtrl,
		domain.FrameGK:      router.KindCtrl,
	}
	for t2, want := range cases {
		if got := router.Classify(t2); got != want {
			t.Errorf("Classify(%q) = %q, want %q", t2, got, want)
		}
	}
}
