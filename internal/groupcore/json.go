package groupcore

import "encoding/json"

// jsonBytes serializes v with Go's default struct-field encoding order,
// which for the fixed AAD structs in internal/domain matches the field
// order the wire contract requires. No whitespace is inserted.
func jsonBytes(v any) ([]byte, error) {
	return json.Marshal(v)
}
