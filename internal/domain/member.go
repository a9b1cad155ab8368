package domain

// Member holds a participant's own key material for one session: a
// long-term Ed25519 identity keypair, and ephemeral X25519 + KEM keypairs
// generated fresh for the session.
type Member struct {
	CID CID

	IDPub  Ed25519Public
	IDPriv Ed25519Private

	XPub  X25519Public
	XPriv X25519Private

	PQPub  KEMPublic
	PQPriv KEMPrivate
}

// PeerRecord holds what is known about one counterparty, indexed by CID in
// a session's peer table.
type PeerRecord struct {
	CID CID

	IDPub Ed25519Public
	XPub  X25519Public
	PQPub KEMPublic

	// CT is the KEM ciphertext the host produced for this peer during the
	// handshake. Set by the initiator before transmission, and by the
	// responder on receipt of a ct frame.
	CT KEMCiphertext

	// Sig is the host's signature over the handshake transcript.
	Sig []byte
	// SigOK records whether Sig verified. A signature mismatch is
	// non-fatal — it is surfaced to the caller but does not abort the
	// handshake.
	SigOK bool

	SAS SAS

	// PairKey is set once the pairwise handshake with this peer completes.
	PairKey *SymmetricKey
}

// HasPairKey reports whether the handshake with this peer has completed.
func (p *PeerRecord) HasPairKey() bool { return p != nil && p.PairKey != nil }
