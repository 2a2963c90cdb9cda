// Package api implements the HTTP surface of the task board service:
// request/response models, handlers for each resource, and the
// error-to-status mapping. Every mutating handler publishes a change
// event through the realtime broadcaster after the write commits, which
// is how connected clients stay current without polling.
package api
