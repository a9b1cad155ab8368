package primitives

import (
	"golang.org/x/crypto/blake2b"

	"nulltrace/internal/domain"
)

// KeyedHash returns a size-byte keyed BLAKE2b digest of msg under key. It
// backs every fixed-output derivation in the engine: SAS strings (4 bytes),
// nonces (24 bytes), roster hashes (16 bytes) and pair-key extraction
// (32 bytes). size must be between 1 and 64.
func KeyedHash(size int, key, msg []byte) ([]byte, error) {
	h, err := blake2b.New(size, key)
	if err != nil {
		return nil, err
	}
	h.Write(msg)
	return h.Sum(nil), nil
}

// Extract derives a 32-byte key from ikm (input key material) using salt as
// the BLAKE2b key, standing in for the extract half of HKDF.
func Extract(salt, ikm []byte) (domain.SymmetricKey, error) {
	var out domain.SymmetricKey
	sum, err := KeyedHash(32, salt, ikm)
	if err != nil {
		return out, err
	}
	copy(out[:], sum)
	return out, nil
}

// Expand derives a size-byte key from prk (a pseudorandom key produced by
// Extract) and an info string distinguishing the purpose of the output,
// standing in for the expand half of HKDF.
func Expand(prk domain.SymmetricKey, info []byte, size int) ([]byte, error) {
	return KeyedHash(size, prk.Slice(), info)
}
