package capsule

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"nulltrace/internal/domain"
	"nulltrace/internal/primitives"
)

// Version is the capsule schema version written into every capsule this
// package produces.
const Version = "NT-C1"

// Alg is the algorithm label written into every capsule this package
// produces. It names ML-KEM-512 for wire compatibility; see
// internal/primitives.KEMAlg for why the implementation is ML-KEM-768.
const Alg = "Ed25519|X25519+" + "ML-KEM-512"

// TTL is the absolute lifetime of a capsule from its issue time.
const TTL = 120 * time.Second

// maxDecodedSize is the hard ceiling on a capsule's decoded byte length.
// Anything larger is rejected without attempting to parse JSON.
const maxDecodedSize = 4096

// paddedMin and paddedMax bound the size padLength aims for (the unpadded
// JSON length plus the padding byte count) when the unpadded content fits
// the window. A capsule whose
// unpadded content already exceeds paddedMax (an ML-KEM-768 encapsulation
// key is larger than the ML-KEM-512 key this window was sized for) instead
// gets contentLen + random[0, paddedMax-paddedMin) bytes of padding, so the
// final size still varies uniformly over a comparable range without ever
// approaching maxDecodedSize.
const (
	paddedMin = 512
	paddedMax = 1024
)

// Create builds a signed, padded capsule inviting a guest into room,
// carrying the host's cid and ephemeral handshake keys xPub and pqPub,
// signed by the host's long-term identity key idPriv/idPub.
func Create(
	room domain.Room,
	cid domain.CID,
	xPub domain.X25519Public,
	pqPub domain.KEMPublic,
	idPriv domain.Ed25519Private,
	idPub domain.Ed25519Public,
	now time.Time,
	rnd domain.RandReader,
) ([]byte, error) {
	iat := now.Unix()
	payload := domain.CapsulePayload{
		V:    Version,
		Alg:  Alg,
		Room: room,
		CID:  cid,
		X:    xPub,
		K:    pqPub,
		IAT:  iat,
		Exp:  iat + int64(TTL.Seconds()),
	}

	sig := primitives.Sign(idPriv, transcript(payload))

	outer := domain.CapsuleOuter{
		Payload: &payload,
		ID:      primitives.B64Encode(idPub.Slice()),
		Sig:     sig,
	}

	body, err := json.Marshal(outer)
	if err != nil {
		return nil, err
	}

	padLen, err := padLength(len(body), rnd)
	if err != nil {
		return nil, err
	}
	if padLen > 0 {
		pad, err := primitives.RandomBytes(rnd, padLen)
		if err != nil {
			return nil, err
		}
		outer.Pad = pad
		body, err = json.Marshal(outer)
		if err != nil {
			return nil, err
		}
	}

	if len(body) > maxDecodedSize {
		return nil, fmt.Errorf("capsule: encoded capsule of %d bytes exceeds %d-byte bound", len(body), maxDecodedSize)
	}

	return []byte(primitives.B64Encode(body)), nil
}

// padLength picks how many bytes of random padding to add. When baseLen is
// under paddedMax, baseLen plus the padding count lands uniformly in
// [max(baseLen, paddedMin), paddedMax]; otherwise the count is uniform in
// [0, paddedMax-paddedMin). The padding is carried base64-encoded inside the
// JSON, so the padded JSON is longer than baseLen plus the count.
func padLength(baseLen int, rnd domain.RandReader) (int, error) {
	span := paddedMax - paddedMin
	if baseLen >= paddedMax {
		n, err := randIntn(rnd, span)
		if err != nil {
			return 0, err
		}
		return n, nil
	}
	lo := paddedMin - baseLen
	if lo < 0 {
		lo = 0
	}
	target, err := randIntn(rnd, paddedMax-baseLen-lo+1)
	if err != nil {
		return 0, err
	}
	return lo + target, nil
}

// randIntn returns a uniform random int in [0, n) using rnd. n must be > 0.
func randIntn(rnd domain.RandReader, n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	b, err := primitives.RandomBytes(rnd, 4)
	if err != nil {
		return 0, err
	}
	v := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return int(v % uint32(n)), nil
}

// Parse decodes and verifies a capsule produced by Create, rejecting it per
// the rules in §4.1: bad base64, oversized, malformed JSON, missing
// payload, expired, implausible issue time, or a bad signature.
func Parse(encoded []byte, now time.Time) (*domain.CapsulePayload, error) {
	body, err := primitives.B64Decode(string(bytes.TrimSpace(encoded)))
	if err != nil {
		return nil, fmt.Errorf("capsule: base64 decode: %w", err)
	}
	if len(body) > maxDecodedSize {
		return nil, fmt.Errorf("capsule: decoded size %d exceeds %d-byte bound", len(body), maxDecodedSize)
	}

	var outer domain.CapsuleOuter
	if err := json.Unmarshal(body, &outer); err != nil {
		return nil, fmt.Errorf("capsule: malformed JSON: %w", err)
	}
	if outer.Payload == nil {
		return nil, fmt.Errorf("capsule: missing payload")
	}

	p := *outer.Payload
	if p.Exp == 0 {
		return nil, fmt.Errorf("capsule: missing exp")
	}
	nowUnix := now.Unix()
	if nowUnix > p.Exp {
		return nil, fmt.Errorf("capsule: expired at %d (now %d)", p.Exp, nowUnix)
	}
	if p.IAT != 0 {
		if p.IAT > nowUnix {
			return nil, fmt.Errorf("capsule: issued in the future")
		}
		if p.Exp-p.IAT > 2*int64(TTL.Seconds()) {
			return nil, fmt.Errorf("capsule: lifetime exceeds 2*TTL")
		}
	}

	idBytes, err := primitives.B64Decode(outer.ID)
	if err != nil || len(idBytes) != 32 {
		return nil, fmt.Errorf("capsule: malformed id")
	}
	var idPub domain.Ed25519Public
	copy(idPub[:], idBytes)

	if !primitives.Verify(idPub, transcript(p), outer.Sig) {
		return nil, fmt.Errorf("capsule: signature verification failed")
	}

	return &p, nil
}

// transcript builds the canonical byte string signed and verified for a
// capsule payload. Field order is fixed; v and alg segments are present but
// empty when absent (legacy capsules), and iat is omitted entirely when
// absent.
func transcript(p domain.CapsulePayload) []byte {
	var b bytes.Buffer
	b.WriteString("v=")
	b.WriteString(p.V)
	b.WriteString("|alg=")
	b.WriteString(p.Alg)
	b.WriteString("|room=")
	b.WriteString(p.Room.String())
	b.WriteString("|cid=")
	b.WriteString(p.CID.String())
	b.WriteString("|x=")
	b.WriteString(primitives.B64Encode(p.X.Slice()))
	b.WriteString("|k=")
	b.WriteString(primitives.B64Encode(p.K))
	if p.IAT != 0 {
		b.WriteString("|iat=")
		b.WriteString(strconv.FormatInt(p.IAT, 10))
	}
	b.WriteString("|exp=")
	b.WriteString(strconv.FormatInt(p.Exp, 10))
	return b.Bytes()
}
