// Package mlslite maintains group membership and drives the group-key
// epoch state machine: debounced rekey on membership change, a roster
// hash binding the current membership view into every wrapped key, and
// the wrap/unwrap steps that hand a fresh group key to each peer under
// its pairwise key.
//
// It is named for what it borrows from MLS (a tree-free, single-host
// simplification of group rekeying) without implementing the TreeKEM
// ratchet MLS proper requires.
package mlslite
