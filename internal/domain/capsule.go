package domain

// CapsulePayload is the signed content of an access capsule: everything a
// guest needs to locate the room and begin a handshake with its host.
type CapsulePayload struct {
	V    string `json:"v"`
	Alg  string `json:"alg"`
	Room Room   `json:"room"`
	CID  CID    `json:"cid"`

	X X25519Public `json:"x"`
	K KEMPublic    `json:"k"`

	IAT int64 `json:"iat"`
	Exp int64 `json:"exp"`
}

// CapsuleOuter is the encoded-for-transport wrapper around a CapsulePayload:
// the payload itself, the host's Ed25519 identity public key (base64), the
// host's signature over the canonical transcript of Payload, and random
// padding.
type CapsuleOuter struct {
	Payload *CapsulePayload `json:"payload"`
	ID      string          `json:"id"`
	Sig     []byte          `json:"sig"`
	Pad     []byte          `json:"pad"`
}
