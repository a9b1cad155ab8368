package primitives

import (
	"crypto/rand"

	"nulltrace/internal/domain"
)

// SystemRand is the default domain.RandReader, backed by the OS CSPRNG.
var SystemRand domain.RandReader = rand.Reader

// RandomBytes returns n cryptographically random bytes read from r.
func RandomBytes(r domain.RandReader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := r.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
