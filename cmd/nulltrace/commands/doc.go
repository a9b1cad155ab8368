// Package commands wires the nulltrace CLI's cobra command tree: building
// and parsing access capsules, printing identity fingerprints, and running
// a local demo of a two-party room join over a loopback relay.
package commands
