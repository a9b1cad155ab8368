package domain

// X25519Public is a Curve25519 ECDH public key.
type X25519Public [32]byte

// Slice returns the key as a []byte.
func (p X25519Public) Slice() []byte { return p[:] }

// X25519Private is a Curve25519 ECDH private key.
type X25519Private [32]byte

// Slice returns the key as a []byte.
func (k X25519Private) Slice() []byte { return k[:] }

// Ed25519Public is an Ed25519 signing public key.
type Ed25519Public [32]byte

// Slice returns the key as a []byte.
func (p Ed25519Public) Slice() []byte { return p[:] }

// Ed25519Private is an Ed25519 signing private key (seed || public, stdlib form).
type Ed25519Private [64]byte

// Slice returns the key as a []byte.
func (k Ed25519Private) Slice() []byte { return k[:] }

// KEMPublic is a post-quantum KEM encapsulation key.
type KEMPublic []byte

// KEMPrivate is a post-quantum KEM decapsulation key, stored as its seed.
type KEMPrivate []byte

// KEMCiphertext is the ciphertext produced by a KEM encapsulation.
type KEMCiphertext []byte

// SymmetricKey is a 32-byte symmetric key (pair key or group key).
type SymmetricKey [32]byte

// Slice returns the key as a []byte.
func (k SymmetricKey) Slice() []byte { return k[:] }
