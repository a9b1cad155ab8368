package keymaterial

import (
	"crypto/rand"
	"encoding/hex"

	"nulltrace/internal/domain"
	"nulltrace/internal/primitives"
)

// NewMember generates a fresh identity, ephemeral X25519 pair and
// ephemeral KEM pair for one session and assigns it a random CID.
func NewMember() (*domain.Member, error) {
	cid, err := newCID()
	if err != nil {
		return nil, err
	}

	idPriv, idPub, err := primitives.GenerateEd25519()
	if err != nil {
		return nil, err
	}
	xPriv, xPub, err := primitives.GenerateX25519()
	if err != nil {
		return nil, err
	}
	pqPriv, pqPub, err := primitives.GenerateKEM()
	if err != nil {
		return nil, err
	}

	return &domain.Member{
		CID:    cid,
		IDPub:  idPub,
		IDPriv: idPriv,
		XPub:   xPub,
		XPriv:  xPriv,
		PQPub:  pqPub,
		PQPriv: pqPriv,
	}, nil
}

// newCID assigns a random, session-scoped participant id.
func newCID() (domain.CID, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return domain.CID(hex.EncodeToString(b)), nil
}
