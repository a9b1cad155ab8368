package primitives

import "encoding/base64"

// B64Encode returns the standard base64 encoding of b.
func B64Encode(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// B64Decode decodes a standard base64 string.
func B64Decode(s string) ([]byte, error) { return base64.StdEncoding.DecodeString(s) }
