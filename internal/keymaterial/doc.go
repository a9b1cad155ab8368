// Package keymaterial builds a Member's own per-session key material and
// provides best-effort wiping of member keys, group state and pair keys
// when that material reaches end of life.
package keymaterial
