package domain

// FrameType identifies the role of a wire frame. Values match the protocol's
// "t" field verbatim.
type FrameType string

const (
	FrameHello    FrameType = "hello"
	FrameAnnounce FrameType = "announce"
	FrameCT       FrameType = "ct"
	FrameGK       FrameType = "gk"
	FrameGKReq    FrameType = "gk_req"
	FrameMessage  FrameType = "m"
	FrameLeave    FrameType = "leave"
	FrameChaff    FrameType = "chaff"
	FramePing     FrameType = "ping"
)

// Frame is the single wire envelope for every frame type the router
// dispatches on. Only the fields relevant to T are populated; []byte fields
// marshal to base64 automatically via encoding/json.
type Frame struct {
	T   FrameType `json:"t"`
	CID CID       `json:"cid"`

	// To addresses a frame at one recipient (gk, ct); absent for broadcast
	// frames (hello, announce, m, leave, chaff, ping).
	To CID `json:"to,omitempty"`

	// hello / announce
	IDPub Ed25519Public `json:"idpub,omitempty"`
	XPub  X25519Public  `json:"xpub,omitempty"`
	PQPub KEMPublic     `json:"pqpub,omitempty"`
	Room  Room          `json:"room,omitempty"`

	// ct
	CT  KEMCiphertext `json:"ct,omitempty"`
	Sig []byte        `json:"sig,omitempty"`

	// gk
	E     uint64 `json:"e,omitempty"`
	EK    []byte `json:"ek,omitempty"`
	Nonce []byte `json:"n,omitempty"`
	RH    string `json:"rh,omitempty"`

	// m
	S uint64 `json:"s,omitempty"`
	C []byte `json:"c,omitempty"`

	// leave / chaff / ping / gk_req carry no payload beyond T and CID.
}

// MessageAAD is the canonical associated data bound to every group message
// ciphertext. Field order is fixed and must not change: it is part of the
// wire contract, not an implementation detail.
type MessageAAD struct {
	T     FrameType `json:"t"`
	CID   CID       `json:"cid"`
	Seq   uint64    `json:"s"`
	Epoch uint64    `json:"e"`
}

// GKAAD is the canonical associated data bound to a wrapped group key. RH is
// omitted (nil) by senders that predate roster binding; a receiver that
// fails verification with RH set retries once with RH omitted.
type GKAAD struct {
	T     FrameType `json:"t"`
	CID   CID       `json:"cid"`
	Seq   uint64    `json:"s"`
	Epoch uint64    `json:"e"`
	RH    *string   `json:"rh,omitempty"`
}
