package domain

// CID is an opaque participant id, assigned per session and regenerated on
// any restart.
type CID string

// String returns the string form of the id.
func (c CID) String() string { return string(c) }

// Room names a chat room a capsule invites a guest into.
type Room string

// String returns the string form of the room name.
func (r Room) String() string { return string(r) }

// SAS is a short authentication string derived from a handshake transcript,
// meant for out-of-band (human) verification.
type SAS string
