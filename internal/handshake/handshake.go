package handshake

import (
	"fmt"

	"nulltrace/internal/domain"
	"nulltrace/internal/primitives"
)

// Role is which side of a pairwise handshake the local member is running.
type Role string

const (
	RoleInit Role = "init"
	RoleResp Role = "resp"
)

// Result is everything HandshakeWith produces beyond the pair key itself.
type Result struct {
	PairKey domain.SymmetricKey
	SAS     domain.SAS
	// CT is set only when role is RoleInit: the KEM ciphertext the caller
	// must transmit to the peer.
	CT domain.KEMCiphertext
	// Sig is set only when role is RoleInit: the transcript signature the
	// caller must transmit to the peer.
	Sig []byte
	// SigOK reports whether a peer-supplied signature verified. Always
	// true and unused when role is RoleInit.
	SigOK bool
}

// HandshakeWith runs the pairwise hybrid handshake against peer from
// local's point of view, acting in role within room. It mutates peer with
// the derived pair key, SAS and (for a responder) signature verdict, and
// returns the same information as Result for the caller's convenience.
func HandshakeWith(peer *domain.PeerRecord, local *domain.Member, role Role, room domain.Room) (Result, error) {
	var res Result

	sharedX, err := primitives.DH(local.XPriv, peer.XPub)
	if err != nil {
		return res, fmt.Errorf("handshake: ECDH: %w", err)
	}

	var sharedK [32]byte
	switch role {
	case RoleInit:
		ct, ss, err := primitives.Encapsulate(peer.PQPub)
		if err != nil {
			return res, fmt.Errorf("handshake: KEM encapsulate: %w", err)
		}
		peer.CT = ct
		res.CT = ct
		sharedK = ss
	case RoleResp:
		if len(peer.CT) == 0 {
			return res, fmt.Errorf("handshake: responder missing peer ciphertext")
		}
		ss, err := primitives.Decapsulate(local.PQPriv, peer.CT)
		if err != nil {
			return res, fmt.Errorf("handshake: KEM decapsulate: %w", err)
		}
		sharedK = ss
	default:
		return res, fmt.Errorf("handshake: unknown role %q", role)
	}

	initID, respID, initX, respX, initPQ, respPQ := orderByRole(role, local, peer)
	tr := transcript(room, initID, respID, initX, respX, initPQ, respPQ)

	switch role {
	case RoleInit:
		sig := primitives.Sign(local.IDPriv, tr)
		peer.Sig = sig
		res.Sig = sig
		res.SigOK = true
	case RoleResp:
		if len(peer.Sig) > 0 {
			peer.SigOK = primitives.Verify(peer.IDPub, tr, peer.Sig)
			res.SigOK = peer.SigOK
		}
	}

	sasBytes, err := primitives.KeyedHash(4, nil, tr)
	if err != nil {
		return res, fmt.Errorf("handshake: SAS derivation: %w", err)
	}
	sas := domain.SAS(primitives.B64Encode(sasBytes))
	peer.SAS = sas
	res.SAS = sas

	pairKey, err := derivePairKey(sharedX, sharedK, tr, room)
	if err != nil {
		return res, fmt.Errorf("handshake: pair key derivation: %w", err)
	}
	peer.PairKey = &pairKey
	res.PairKey = pairKey

	return res, nil
}

// derivePairKey runs the extract/expand HKDF-style derivation specified for
// the handshake: salt from the two shared secrets, extract against the
// transcript, expand against a room-scoped info string.
func derivePairKey(sharedX, sharedK [32]byte, tr []byte, room domain.Room) (domain.SymmetricKey, error) {
	var pairKey domain.SymmetricKey

	ikm := make([]byte, 0, 64)
	ikm = append(ikm, sharedX[:]...)
	ikm = append(ikm, sharedK[:]...)

	salt, err := primitives.KeyedHash(32, nil, ikm)
	if err != nil {
		return pairKey, err
	}
	prk, err := primitives.Extract(salt, tr)
	if err != nil {
		return pairKey, err
	}

	info := []byte(fmt.Sprintf("NullTrace v1 handshake|room=%s", room))
	info = append(info, 0x01)
	out, err := primitives.Expand(prk, info, 32)
	if err != nil {
		return pairKey, err
	}
	copy(pairKey[:], out)
	return pairKey, nil
}

// orderByRole returns (init, resp) pairs of identity/ECDH/KEM public keys
// with the initiator's material always first, regardless of which side
// local plays.
func orderByRole(role Role, local *domain.Member, peer *domain.PeerRecord) (
	initID, respID domain.Ed25519Public,
	initX, respX domain.X25519Public,
	initPQ, respPQ domain.KEMPublic,
) {
	if role == RoleInit {
		return local.IDPub, peer.IDPub, local.XPub, peer.XPub, local.PQPub, peer.PQPub
	}
	return peer.IDPub, local.IDPub, peer.XPub, local.XPub, peer.PQPub, local.PQPub
}

// transcript builds the canonical handshake transcript, ordered init then
// resp regardless of local role, exactly as specified.
func transcript(
	room domain.Room,
	initID, respID domain.Ed25519Public,
	initX, respX domain.X25519Public,
	initPQ, respPQ domain.KEMPublic,
) []byte {
	return []byte(fmt.Sprintf(
		"NT-v1|handshake|%s|init.id=%s|resp.id=%s|init.x=%s|resp.x=%s|init.pq=%s|resp.pq=%s",
		room,
		primitives.B64Encode(initID.Slice()),
		primitives.B64Encode(respID.Slice()),
		primitives.B64Encode(initX.Slice()),
		primitives.B64Encode(respX.Slice()),
		primitives.B64Encode(initPQ),
		primitives.B64Encode(respPQ),
	))
}
