// Package httprelay implements domain.Transport over the HTTP relay server
// in cmd/relay: SendTo and SendToAll become POSTs against a room mailbox,
// and a background goroutine polls the room's inbox for this participant
// and hands each payload to a Handler.
//
// The relay itself never sees plaintext or private keys; it only queues
// the opaque frame bytes the core hands it. POST bodies are the raw frame
// bytes; a poll response is a JSON array of base64 strings. SendTo and
// SendToAll take a context for cancellation and deadlines. Non-2xx
// statuses are returned as errors carrying the HTTP method, request path,
// and status text to aid diagnostics.
package httprelay
