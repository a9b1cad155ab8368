package mlslite

import (
	"encoding/json"
	"sort"

	"nulltrace/internal/domain"
	"nulltrace/internal/primitives"
)

// rosterHash computes the 16-byte digest of the sorted set of participant
// ids (self plus every known peer), base64-encoded for the wire.
func rosterHash(self domain.CID, peers map[domain.CID]*domain.SymmetricKey) (string, error) {
	ids := make([]string, 0, len(peers)+1)
	ids = append(ids, self.String())
	for cid := range peers {
		ids = append(ids, cid.String())
	}
	sort.Strings(ids)

	js, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	digest, err := primitives.KeyedHash(16, nil, js)
	if err != nil {
		return "", err
	}
	return primitives.B64Encode(digest), nil
}
