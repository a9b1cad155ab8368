// Package main runs the in-memory HTTP relay used as a real
// domain.Transport implementation during manual testing. It has no notion
// of frames, keys or rooms beyond a name to partition mailboxes: it only
// queues opaque payloads for recipients until they poll them.
//
// HTTP API
//
//	POST /rooms/{room}/broadcast/{from}
//	    Enqueue the request body for every other known member of {room}.
//
//	POST /rooms/{room}/send/{from}/{to}
//	    Enqueue the request body for exactly {to}.
//
//	GET /rooms/{room}/poll/{cid}
//	    Return and drain every payload queued for {cid}, as a JSON array
//	    of base64 strings. Also marks {cid} as a known member of {room},
//	    so it starts receiving future broadcasts.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - It never sees plaintext or private keys; it only stores the opaque
//     frame bytes the core hands it.
//   - The default listen address is :8080.
package main
