// Package realtime implements the server side of the live-update channel:
// a WebSocket endpoint that authenticates connections, tracks per-user
// sockets and their channel subscriptions, and fans domain change events
// out to every matching connection.
//
// Delivery is best-effort by design: an event is attempted once per
// matching socket, and a socket that is closing or has a full outbound
// queue is skipped silently. Nothing in this package blocks a caller on a
// slow consumer, and no event is ever persisted or retried.
package realtime
