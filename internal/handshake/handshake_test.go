package handshake_test

import (
	"testing"

	"nulltrace/internal/domain"
	"nulltrace/internal/handshake"
	"nulltrace/internal/keymaterial"
)

func TestHandshakeRoleSymmetry(t *testing.T) {
	alice, err := keymaterial.NewMember()
	if err != nil {
		t.Fatalf("NewMember(alice): %v", err)
	}
	bob, err := keymaterial.NewMember()
	if err != nil {
		t.Fatalf("NewMember(bob): %v", err)
	}

	room := domain.Room("r1")

	bobAsPeer := &domain.PeerRecord{
		CID: bob.CID, IDPub: bob.IDPub, XPub: bob.XPub, PQPub: bob.PQPub,
	}
	initRes, err := handshake.HandshakeWith(bobAsPeer, alice, handshake.RoleInit, room)
	if err != nil {
		t.Fatalf("HandshakeWith(init): %v", err)
	}

	aliceAsPeer := &domain.PeerRecord{
		CID: alice.CID, IDPub: alice.IDPub, XPub: alice.XPub, PQPub: alice.PQPub,
		CT:  initRes.CT,
		Sig: initRes.Sig,
	}
	respRes, err := handshake.HandshakeWith(aliceAsPeer, bob, handshake.RoleResp, room)
	if err != nil {
		t.Fatalf("HandshakeWith(resp): %v", err)
	}

	if initRes.PairKey != respRes.PairKey {
		t.Fatalf("pair keys disagree: %x != %x", initRes.PairKey, respRes.PairKey)
	}
	if initRes.SAS != respRes.SAS {
		t.Fatalf("SAS disagree: %q != %q", initRes.SAS, respRes.SAS)
	}
	if !respRes.SigOK {
		t.Fatal("responder failed to verify a genuine signature")
	}
	if !bobAsPeer.HasPairKey() || !aliceAsPeer.HasPairKey() {
		t.Fatal("HandshakeWith did not stash the pair key on the peer record")
	}
}

func TestHandshakeResponderRejectsMissingCiphertext(t *testing.T) {
	alice, err := keymaterial.NewMember()
	if err != nil {
		t.Fatalf("NewMember(alice): %v", err)
	}
	bob, err := keymaterial.NewMember()
	if err != nil {
		t.Fatalf("NewMember(bob): %v", err)
	}

	aliceAsPeer := &domain.PeerRecord{
		CID: alice.CID, IDPub: alice.IDPub, XPub: alice.XPub, PQPub: alice.PQPub,
	}
	if _, err := handshake.HandshakeWith(aliceAsPeer, bob, handshake.RoleResp, "r1"); err == nil {
		t.Fatal("HandshakeWith(resp) succeeded with no peer ciphertext")
	}
}

func TestHandshakeResponderFlagsBadSignature(t *testing.T) {
	alice, err := keymaterial.NewMember()
	if err != nil {
		t.Fatalf("NewMember(alice): %v", err)
	}
	bob, err := keymaterial.NewMember()
	if err != nil {
		t.Fatalf("NewMember(bob): %v", err)
	}
	room := domain.Room("r1")

	bobAsPeer := &domain.PeerRecord{
		CID: bob.CID, IDPub: bob.IDPub, XPub: bob.XPub, PQPub: bob.PQPub,
	}
	initRes, err := handshake.HandshakeWith(bobAsPeer, alice, handshake.RoleInit, room)
	if err != nil {
		t.Fatalf("HandshakeWith(init): %v", err)
	}

	badSig := make([]byte, len(initRes.Sig))
	copy(badSig, initRes.Sig)
	badSig[0] ^= 0xff

	aliceAsPeer := &domain.PeerRecord{
		CID: alice.CID, IDPub: alice.IDPub, XPub: alice.XPub, PQPub: alice.PQPub,
		CT:  initRes.CT,
		Sig: badSig,
	}
	respRes, err := handshake.HandshakeWith(aliceAsPeer, bob, handshake.RoleResp, room)
	if err != nil {
		t.Fatalf("HandshakeWith(resp) with a bad signature should not abort: %v", err)
	}
	if respRes.SigOK {
		t.Fatal("responder accepted a tampered signature")
	}
	if respRes.PairKey == (domain.SymmetricKey{}) {
		t.Fatal("handshake should still derive a pair key despite a bad signature")
	}
}
