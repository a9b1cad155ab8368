package mlslite

import (
	"fmt"

	"nulltrace/internal/domain"
	"nulltrace/internal/primitives"
)

// Rekey mints a fresh group key for a new epoch and wraps it to every
// current member under their pairwise key. It is a no-op (returns nil, nil)
// when this Group is not the initiator: only the host mints group keys.
func (g *Group) Rekey() ([]domain.Frame, error) {
	if !g.state.IsInitiator {
		return nil, nil
	}

	var fresh domain.SymmetricKey
	raw, err := primitives.RandomBytes(g.rnd, len(fresh))
	if err != nil {
		return nil, fmt.Errorf("mlslite: rekey: %w", err)
	}
	copy(fresh[:], raw)

	g.state.GroupKey = &fresh
	g.state.Epoch++
	g.state.SendSeq = 0
	g.state.RecvSeq = make(map[domain.CID]uint64)

	rh, err := rosterHash(g.self, g.state.Members)
	if err != nil {
		return nil, fmt.Errorf("mlslite: rekey: roster hash: %w", err)
	}

	frames := make([]domain.Frame, 0, len(g.state.Members))
	for peerCID, sk := range g.state.Members {
		rhCopy := rh
		aad, err := gkAAD(g.self, g.state.Epoch, &rhCopy)
		if err != nil {
			return nil, fmt.Errorf("mlslite: rekey: AAD for %s: %w", peerCID, err)
		}
		nonce, err := primitives.RandomBytes(g.rnd, primitives.NonceSize)
		if err != nil {
			return nil, fmt.Errorf("mlslite: rekey: nonce for %s: %w", peerCID, err)
		}
		ek, err := primitives.Seal(*sk, nonce, aad, fresh.Slice())
		if err != nil {
			return nil, fmt.Errorf("mlslite: rekey: wrap for %s: %w", peerCID, err)
		}

		frames = append(frames, domain.Frame{
			T:     domain.FrameGK,
			CID:   g.self,
			To:    peerCID,
			E:     g.state.Epoch,
			RH:    rh,
			Nonce: nonce,
			EK:    ek,
		})
	}

	g.onReady()
	return frames, nil
}

// gkAAD builds the canonical GK AAD. rh is nil to omit the field entirely
// (legacy shape); a non-nil rh, even an empty string, includes it.
func gkAAD(self domain.CID, epoch uint64, rh *string) ([]byte, error) {
	return jsonMarshal(domain.GKAAD{
		T:     domain.FrameGK,
		CID:   self,
		Seq:   0,
		Epoch: epoch,
		RH:    rh,
	})
}
