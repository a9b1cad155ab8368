package primitives

import (
	"crypto/rand"
	"fmt"

	"filippo.io/mlkem768"

	"nulltrace/internal/domain"
)

// KEMAlg is the wire label for the KEM this package implements. The label
// names ML-KEM-512 while the implementation is ML-KEM-768, because the Go
// module this package uses (filippo.io/mlkem768) only provides the 768
// parameter set; the handshake depends only on the encapsulate/decapsulate
// contract, not on the security level.
const KEMAlg = "ML-KEM-512"

// GenerateKEM returns a fresh ML-KEM-768 key pair. The private key is
// stored as its 64-byte seed so domain.Member never needs to import this
// package.
func GenerateKEM() (priv domain.KEMPrivate, pub domain.KEMPublic, err error) {
	seed := make([]byte, mlkem768.SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, nil, err
	}
	ek, _, err := mlkem768.NewKeyFromSeed(seed)
	if err != nil {
		return nil, nil, err
	}
	return domain.KEMPrivate(seed), domain.KEMPublic(ek), nil
}

// Encapsulate generates a shared secret under peer's encapsulation key and
// returns the ciphertext to send them alongside it.
func Encapsulate(peer domain.KEMPublic) (ct domain.KEMCiphertext, shared [32]byte, err error) {
	c, ss, err := mlkem768.Encapsulate(peer)
	if err != nil {
		return nil, shared, err
	}
	if len(ss) != len(shared) {
		return nil, shared, fmt.Errorf("primitives: unexpected KEM shared secret length %d", len(ss))
	}
	copy(shared[:], ss)
	return domain.KEMCiphertext(c), shared, nil
}

// Decapsulate recovers the shared secret from ct using priv (the 64-byte
// decapsulation seed produced by GenerateKEM).
func Decapsulate(priv domain.KEMPrivate, ct domain.KEMCiphertext) (shared [32]byte, err error) {
	_, dk, err := mlkem768.NewKeyFromSeed(priv)
	if err != nil {
		return shared, err
	}
	ss, err := mlkem768.Decapsulate(dk, ct)
	if err != nil {
		return shared, err
	}
	if len(ss) != len(shared) {
		return shared, fmt.Errorf("primitives: unexpected KEM shared secret length %d", len(ss))
	}
	copy(shared[:], ss)
	return shared, nil
}
