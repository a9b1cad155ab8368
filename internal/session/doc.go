// Package session owns the per-member session state machine and the
// single authoritative teardown path, Session.Wipe, that the rest of the
// engine core relies on to release secret-bearing material.
package session
