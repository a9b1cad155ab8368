// Package domain defines the wire and state types shared across the
// engine, plus the small set of contracts (transport, clock, RNG) the core
// requires from its embedder.
//
// It contains plain types and interfaces only — no behaviour beyond trivial
// accessors. Concrete crypto lives in internal/primitives; everything else
// imports domain, and domain imports nothing else from this module.
package domain
