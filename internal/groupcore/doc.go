// Package groupcore implements the group AEAD message channel: per-sender
// deterministic nonces, per-sender monotone replay counters, and the
// canonical AAD binding that ties a ciphertext to its frame type, sender,
// sequence number and epoch.
//
// Every operation here is a pure function of a domain.GroupState plus its
// arguments; there is no internal concurrency, matching the single-threaded
// cooperative model the rest of the engine core follows.
package groupcore
