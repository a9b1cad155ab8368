package domain

// GroupState is the group-key and message-sequencing state for one member's
// view of the room. It is pure data; the operations on it (rekey, encrypt,
// decrypt, flush) live in internal/groupcore and internal/mlslite.
type GroupState struct {
	// Members maps a peer CID to the pairwise key used to wrap/unwrap group
	// keys for that peer. Populated by the handshake, consulted by rekey.
	// Stored by pointer so a wipe can zero the actual backing bytes rather
	// than a copy taken by a map range.
	Members map[CID]*SymmetricKey

	// GroupKey is the current epoch's symmetric message key. Nil before the
	// first GK install.
	GroupKey *SymmetricKey
	Epoch    uint64

	// SendSeq is this member's next send sequence number. Reset to 0 on
	// every epoch change.
	SendSeq uint64
	// RecvSeq is the highest accepted sequence number per sender. Reset
	// (cleared) on every epoch change.
	RecvSeq map[CID]uint64

	// Pending buffers inbound m frames received before a usable group key,
	// in arrival order.
	Pending []Frame

	// PendingGK buffers one inbound gk frame per sender, received before
	// that sender's pair key was known.
	PendingGK map[CID]Frame

	// IsInitiator is true only for the room's host; only the initiator
	// mints group keys.
	IsInitiator bool
}

// NewGroupState returns a zeroed GroupState ready for use.
func NewGroupState(isInitiator bool) *GroupState {
	return &GroupState{
		Members:     make(map[CID]*SymmetricKey),
		RecvSeq:     make(map[CID]uint64),
		PendingGK:   make(map[CID]Frame),
		IsInitiator: isInitiator,
	}
}
