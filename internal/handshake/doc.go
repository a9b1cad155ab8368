// Package handshake implements the pairwise hybrid handshake: classical
// X25519 ECDH plus a post-quantum KEM, bound by a canonical signed
// transcript, yielding one symmetric pair key and a short authentication
// string per peer.
//
// The derivation is role-symmetric by construction: the transcript is
// always ordered initiator-then-responder regardless of which side is
// running it, so both sides land on the same pair key.
package handshake
