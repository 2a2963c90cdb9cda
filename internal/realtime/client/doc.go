// Package client implements the consumer side of the realtime protocol:
// a reconnecting WebSocket client with exponential backoff, a typed event
// dispatcher for decoded envelopes, and id-keyed collections that
// reconcile created/updated/deleted events into local snapshots.
//
// The client owns a single logical connection. Transport drops are retried
// automatically with a doubling delay until the attempt budget is spent,
// at which point the client parks in StateGivenUp until Connect is called
// again. Every successful (re)open resends the full subscription set,
// because the server keeps no memory of a previous socket's channels.
package client
