package groupcore

import (
	"nulltrace/internal/domain"
	"nulltrace/internal/primitives"
)

// Encrypt seals plaintext under the current group key and returns the
// outgoing m frame. It returns (nil, nil) if there is no group key yet —
// the caller is expected to hold the message above the core until one
// arrives.
func Encrypt(g *domain.GroupState, self domain.CID, plaintext string) (*domain.Frame, error) {
	if g.GroupKey == nil {
		return nil, nil
	}

	seq := g.SendSeq
	nonce, err := nonceFor(self, seq, g.Epoch)
	if err != nil {
		return nil, err
	}
	aad, err := messageAAD(self, seq, g.Epoch)
	if err != nil {
		return nil, err
	}
	ct, err := primitives.Seal(*g.GroupKey, nonce, aad, []byte(plaintext))
	if err != nil {
		return nil, err
	}

	g.SendSeq++

	return &domain.Frame{
		T:     domain.FrameMessage,
		CID:   self,
		S:     seq,
		E:     g.Epoch,
		Nonce: nonce,
		C:     ct,
	}, nil
}

// Decrypt processes an inbound m frame against the current group state. It
// returns (plaintext, true, nil) on success, (_, false, nil) when the frame
// was dropped or buffered (no error to surface), and a non-nil error only
// for conditions that should never happen given well-formed input.
func Decrypt(g *domain.GroupState, frame domain.Frame) (string, bool, error) {
	if g.GroupKey == nil {
		g.Pending = append(g.Pending, frame)
		return "", false, nil
	}
	if frame.E != g.Epoch {
		return "", false, nil
	}

	return decryptNoBuffer(g, frame)
}

// Flush drains the pending buffer after a key or epoch change. Frames from
// a past epoch are discarded; frames from a future epoch are kept for the
// next flush; frames from the current epoch are decrypted and returned in
// arrival order.
func Flush(g *domain.GroupState) ([]string, error) {
	var out []string
	var keep []domain.Frame

	for _, frame := range g.Pending {
		if frame.E < g.Epoch {
			continue
		}
		if frame.E > g.Epoch {
			keep = append(keep, frame)
			continue
		}
		pt, ok, err := decryptNoBuffer(g, frame)
		if err != nil {
			return out, err
		}
		if ok {
			out = append(out, pt)
		}
	}

	g.Pending = keep
	return out, nil
}

// decryptNoBuffer is Decrypt without the no-group-key buffering branch, for
// use from Flush where g.GroupKey is already known to be present.
func decryptNoBuffer(g *domain.GroupState, frame domain.Frame) (string, bool, error) {
	last, seen := g.RecvSeq[frame.CID]
	if seen && frame.S <= last {
		return "", false, nil
	}
	nonce, err := nonceFor(frame.CID, frame.S, frame.E)
	if err != nil {
		return "", false, err
	}
	aad, err := messageAAD(frame.CID, frame.S, frame.E)
	if err != nil {
		return "", false, err
	}
	pt, err := primitives.Open(*g.GroupKey, nonce, aad, frame.C)
	if err != nil {
		return "", false, nil
	}
	g.RecvSeq[frame.CID] = frame.S
	return string(pt), true, nil
}
