// Package router dispatches incoming wire frames by type into the
// handshake, group-core and mls-lite layers, and drives the two retry/
// throttle loops that sit above them: GK retry on the responder side when
// a group key never arrives, and the gk_req throttle on the initiator
// side.
package router
