package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"nulltrace/internal/domain"
	"nulltrace/internal/keymaterial"
	"nulltrace/internal/primitives"
	"nulltrace/internal/session"
	"nulltrace/internal/transport/loopback"
)

// demoCmd runs a two-party join entirely in-process, over a loopback
// relay: host creates the room, guest joins, they exchange a pairwise
// handshake and a group key, and the guest sends one chat message the
// host decrypts.
func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a local two-party join and exchange one message",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), domain.Room(room))
		},
	}
}

func runDemo(ctx context.Context, r domain.Room) error {
	relay := loopback.New()

	hostMember, err := keymaterial.NewMember()
	if err != nil {
		return err
	}
	guestMember, err := keymaterial.NewMember()
	if err != nil {
		return err
	}

	var host, guest *session.Session

	hostClient := relay.Join(hostMember.CID, func(payload []byte) { deliver(ctx, host, payload) })
	guestClient := relay.Join(guestMember.CID, func(payload []byte) { deliver(ctx, guest, payload) })

	host = session.NewWithMember(hostMember, r, true, hostClient, primitives.SystemClock, primitives.SystemRand)
	guest = session.NewWithMember(guestMember, r, false, guestClient, primitives.SystemClock, primitives.SystemRand)

	fmt.Printf("host cid:  %s\n", hostMember.CID)
	fmt.Printf("guest cid: %s\n", guestMember.CID)

	if _, _, err := host.Router.Dispatch(ctx, guest.Router.Hello()); err != nil {
		return err
	}
	if err := host.Router.ApproveHello(ctx, guestMember.CID); err != nil {
		return err
	}

	// ApproveHello schedules the host's 50ms rekey debounce on the real
	// wall clock; give it time to fire and deliver the group key before
	// the guest tries to send under it.
	time.Sleep(100 * time.Millisecond)

	if !guest.CanSendPlaintext() {
		fmt.Println("guest has not installed a group key yet; message will be held, not sent")
	}
	if err := guest.Router.SendMessage(ctx, "hi"); err != nil {
		return err
	}

	fmt.Println("demo complete")
	return nil
}

// deliver unmarshals payload and dispatches it into s's router, printing
// any plaintext the recipient recovers.
func deliver(ctx context.Context, s *session.Session, payload []byte) {
	var frame domain.Frame
	if err := json.Unmarshal(payload, &frame); err != nil {
		fmt.Printf("demo: decode error: %v\n", err)
		return
	}
	pt, ok, err := s.Router.Dispatch(ctx, frame)
	if err != nil {
		fmt.Printf("demo: dispatch error: %v\n", err)
		return
	}
	if ok {
		fmt.Printf("%s received: %q\n", s.Member.CID, pt)
	}
}
