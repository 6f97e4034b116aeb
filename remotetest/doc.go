// Package remotetest provides in-process implementations of the remote
// collaborator surfaces for tests: a scriptable connection that records
// dispatches and serves queued deliveries on demand, a pending result with
// expiry semantics, and plain/callable reference values.
//
// The connection is deliberately synchronous and deterministic: replies to
// asynchronous dispatches are queued and delivered only when Serve runs,
// which is exactly what a background serving worker does in production.
package remotetest
