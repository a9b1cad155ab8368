package capsule_test

import (
	"crypto/rand"
	"testing"
	"time"

	"nulltrace/internal/capsule"
	"nulltrace/internal/domain"
	"nulltrace/internal/primitives"
)

func makeHostKeys(t *testing.T) (domain.Ed25519Private, domain.Ed25519Public, domain.X25519Public, domain.KEMPublic) {
	t.Helper()
	idPriv, idPub, err := primitives.GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	_, xPub, err := primitives.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	_, pqPub, err := primitives.GenerateKEM()
	if err != nil {
		t.Fatalf("GenerateKEM: %v", err)
	}
	return idPriv, idPub, xPub, pqPub
}

func TestCreateParseRoundTrip(t *testing.T) {
	idPriv, idPub, xPub, pqPub := makeHostKeys(t)
	now := time.Unix(1_700_000_000, 0)

	enc, err := capsule.Create("r1", "host-cid", xPub, pqPub, idPriv, idPub, now, rand.Reader)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(enc) > 4096 {
		t.Fatalf("encoded capsule too large: %d bytes", len(enc))
	}

	payload, err := capsule.Parse(enc, now.Add(1*time.Second))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if payload.Room != "r1" || payload.CID != "host-cid" {
		t.Fatalf("parsed payload mismatch: %+v", payload)
	}
	if payload.V != capsule.Version || payload.Alg != capsule.Alg {
		t.Fatalf("parsed v/alg mismatch: %+v", payload)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	idPriv, idPub, xPub, pqPub := makeHostKeys(t)
	now := time.Unix(1_700_000_000, 0)

	enc, err := capsule.Create("r1", "host-cid", xPub, pqPub, idPriv, idPub, now, rand.Reader)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = capsule.Parse(enc, now.Add(capsule.TTL+time.Second))
	if err == nil {
		t.Fatal("Parse accepted an expired capsule")
	}
}

func TestParseRejectsTamperedEncoding(t *testing.T) {
	idPriv, idPub, xPub, pqPub := makeHostKeys(t)
	now := time.Unix(1_700_000_000, 0)

	enc, err := capsule.Create("r1", "host-cid", xPub, pqPub, idPriv, idPub, now, rand.Reader)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	tampered := make([]byte, len(enc))
	copy(tampered, enc)
	tampered[len(tampered)-1] ^= 0x01

	if _, err := capsule.Parse(tampered, now); err == nil {
		t.Fatal("Parse accepted a tampered capsule")
	}
}

func TestParseRejectsOversized(t *testing.T) {
	huge := make([]byte, 6000)
	for i := range huge {
		huge[i] = 'A'
	}
	if _, err := capsule.Parse(huge, time.Unix(0, 0)); err == nil {
		t.Fatal("Parse accepted an oversized payload")
	}
}

func TestParseRejectsMalformedBase64(t *testing.T) {
	if _, err := capsule.Parse([]byte("not-base64!!!"), time.Unix(0, 0)); err == nil {
		t.Fatal("Parse accepted malformed base64")
	}
}
