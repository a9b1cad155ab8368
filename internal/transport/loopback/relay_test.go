package loopback_test

import (
	"context"
	"testing"

	"nulltrace/internal/transport/loopback"
)

func TestSendToAllExcludesSender(t *testing.T) {
	relay := loopback.New()
	var aliceGot, bobGot [][]byte

	alice := relay.Join("alice", func(p []byte) { aliceGot = append(aliceGot, p) })
	_ = relay.Join("bob", func(p []byte) { bobGot = append(bobGot, p) })

	if err := alice.SendToAll(context.Background(), "alice", []byte("hi")); err != nil {
		t.Fatalf("SendToAll: %v", err)
	}

	if len(aliceGot) != 0 {
		t.Fatal("sender received its own broadcast")
	}
	if len(bobGot) != 1 || string(bobGot[0]) != "hi" {
		t.Fatalf("bob got %v, want one message \"hi\"", bobGot)
	}
}

func TestSendToUnknownPeerErrors(t *testing.T) {
	relay := loopback.New()
	alice := relay.Join("alice", func([]byte) {})

	if err := alice.SendTo(context.Background(), "ghost", []byte("x")); err == nil {
		t.Fatal("SendTo a never-registered peer should error")
	}
}

func TestLeaveStopsDelivery(t *testing.T) {
	relay := loopback.New()
	var bobGot int
	alice := relay.Join("alice", func([]byte) {})
	relay.Join("bob", func([]byte) { bobGot++ })

	relay.Leave("bob")
	if err := alice.SendToAll(context.Background(), "alice", []byte("x")); err != nil {
		t.Fatalf("SendToAll: %v", err)
	}
	if bobGot != 0 {
		t.Fatal("a departed peer still received a broadcast")
	}
}
