package groupcore

import (
	"fmt"

	"nulltrace/internal/domain"
	"nulltrace/internal/primitives"
)

// nonceFor derives the deterministic per-message nonce from the message's
// own sender, sequence number and epoch, so both sides compute the same
// 24-byte nonce without coordination.
func nonceFor(sender domain.CID, seq, epoch uint64) ([]byte, error) {
	data := fmt.Sprintf("NT-v1|nonce|%s|%d|%d", sender, seq, epoch)
	return primitives.KeyedHash(primitives.NonceSize, nil, []byte(data))
}

// messageAAD builds the canonical AAD bytes for a group message frame.
func messageAAD(sender domain.CID, seq, epoch uint64) ([]byte, error) {
	return jsonBytes(domain.MessageAAD{
		T:     domain.FrameMessage,
		CID:   sender,
		Seq:   seq,
		Epoch: epoch,
	})
}
