package primitives

import (
	"golang.org/x/crypto/chacha20poly1305"

	"nulltrace/internal/domain"
)

// NonceSize is the XChaCha20-Poly1305 nonce length in bytes.
const NonceSize = chacha20poly1305.NonceSizeX

// Seal encrypts plaintext under key with nonce and binds aad, appending the
// authentication tag to the returned ciphertext.
func Seal(key domain.SymmetricKey, nonce, aad, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key.Slice())
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, nonce, plaintext, aad), nil
}

// Open decrypts ciphertext under key with nonce, verifying aad, and returns
// the plaintext.
func Open(key domain.SymmetricKey, nonce, aad, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key.Slice())
	if err != nil {
		return nil, err
	}
	return aead.Open(nil, nonce, ciphertext, aad)
}
