// Package primitives exposes the minimal cryptographic operations the
// engine needs, each backed by one well-known library rather than a
// hand-rolled construction.
//
// Contents
//
//   - X25519 key generation and Diffie–Hellman (GenerateX25519, DH)
//   - Ed25519 key generation, signing and verification (GenerateEd25519,
//     Sign, Verify)
//   - ML-KEM-768 post-quantum key generation, encapsulation and
//     decapsulation (GenerateKEM, Encapsulate, Decapsulate)
//   - XChaCha20-Poly1305 AEAD sealing and opening (Seal, Open)
//   - Keyed BLAKE2b hashing for SAS strings, roster hashes, nonce
//     derivation and key extraction/expansion (KeyedHash, Extract, Expand)
//   - Standard base64 encode/decode for wire fields (B64Encode, B64Decode)
//   - CSPRNG access (RandomBytes, SystemRand)
//
// Keys, key pairs and KEM ciphertexts use the types defined in
// internal/domain; hashes, nonces and encodings use plain byte slices and
// strings. Callers that hold long-lived secrets should wipe them
// with internal/keymaterial when practical.
package primitives
