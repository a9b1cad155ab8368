// Package capsule builds and parses the access capsule: the signed,
// TTL-bound, size-padded invitation a host hands a guest out of band so the
// guest can locate the room and begin a handshake.
package capsule
