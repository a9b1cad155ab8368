// Package loopback is an in-memory fake of the broadcasting relay the
// engine core treats as an external collaborator. It exists for tests and
// the CLI demo; unlike the core it is explicitly concurrency-safe, since
// multiple goroutines (one per simulated participant) may call into it at
// once.
package loopback
