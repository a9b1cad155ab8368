package mlslite

import "encoding/json"

// jsonMarshal serializes v with Go's default struct-field encoding order,
// which for domain.GKAAD matches the field order the wire contract
// requires. No whitespace is inserted.
func jsonMarshal(v any) ([]byte, error) {
	return json.Marshal(v)
}
