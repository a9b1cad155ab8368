package mlslite

import (
	"nulltrace/internal/domain"
	"nulltrace/internal/groupcore"
	"nulltrace/internal/primitives"
)

// HandleGK processes an inbound gk frame against pairKey, the local pair
// key shared with frame's sender. It returns installed=true and any
// messages released from the pending buffer on success; otherwise the
// frame is dropped silently (installed=false, err=nil).
func (g *Group) HandleGK(frame domain.Frame, pairKey domain.SymmetricKey) (installed bool, flushed []string, err error) {
	if frame.To != "" && frame.To != g.self {
		return false, nil, nil
	}
	if frame.E <= g.state.Epoch {
		return false, nil, nil
	}

	plaintext, ok, err := tryUnwrap(frame, pairKey)
	if err != nil {
		return false, nil, err
	}
	if !ok {
		return false, nil, nil
	}

	var gk domain.SymmetricKey
	copy(gk[:], plaintext)

	g.state.GroupKey = &gk
	g.state.Epoch = frame.E
	g.state.SendSeq = 0
	g.state.RecvSeq = make(map[domain.CID]uint64)

	g.onReady()

	flushed, err = groupcore.Flush(g.state)
	if err != nil {
		return true, nil, err
	}
	return true, flushed, nil
}

// tryUnwrap attempts to open a gk frame's wrapped key, first with the AAD
// shape the frame actually carries (rh present or not), then — only when
// the frame had rh — once more with the legacy no-rh shape for
// compatibility with peers that never set it.
func tryUnwrap(frame domain.Frame, pairKey domain.SymmetricKey) ([]byte, bool, error) {
	if frame.RH != "" {
		rh := frame.RH
		aad, err := gkAAD(frame.CID, frame.E, &rh)
		if err != nil {
			return nil, false, err
		}
		if pt, err := primitives.Open(pairKey, frame.Nonce, aad, frame.EK); err == nil {
			return pt, true, nil
		}
		legacyAAD, err := gkAAD(frame.CID, frame.E, nil)
		if err != nil {
			return nil, false, err
		}
		if pt, err := primitives.Open(pairKey, frame.Nonce, legacyAAD, frame.EK); err == nil {
			return pt, true, nil
		}
		return nil, false, nil
	}

	aad, err := gkAAD(frame.CID, frame.E, nil)
	if err != nil {
		return nil, false, err
	}
	pt, err := primitives.Open(pairKey, frame.Nonce, aad, frame.EK)
	if err != nil {
		return nil, false, nil
	}
	return pt, true, nil
}

// HandleGKReq reacts to an externally-triggered rekey request. It is a
// no-op for a non-initiator (only the host rekeys), and throttled to at
// most one rekey per RekeyThrottle for an initiator.
func (g *Group) HandleGKReq() ([]domain.Frame, error) {
	if !g.state.IsInitiator {
		return nil, nil
	}
	now := g.clock.Now()
	if g.haveLastExtrn && now.Sub(g.lastExternal) < RekeyThrottle {
		return nil, nil
	}
	g.lastExternal = now
	g.haveLastExtrn = true
	return g.Rekey()
}
