package router

import "nulltrace/internal/domain"

// Kind is a coarse traffic class for a frame, used by callers that want to
// rate-limit or prioritize chat traffic separately from control and
// shaping traffic. The core itself does not rate-limit; this exists for
// an embedder sitting above the core, same as it did in the relay this
// engine's protocol was lifted from.
type Kind string

const (
	KindChat Kind = "chat"
	KindCtrl Kind = "ctrl"
	KindBulk Kind = "bulk"
)

// Classify returns bulk for chaff/ping, chat for m, and ctrl for every
// other frame type.
func Classify(t domain.FrameType) Kind {
	switch t {
	case domain.FrameChaff, domain.FramePing:
		return KindBulk
	case domain.FrameMessage:
		return KindChat
	default:
		return KindCtrl
	}
}
