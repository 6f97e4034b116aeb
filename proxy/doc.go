// Package proxy turns blocking remote references into non-blocking ones.
//
// NewAsync wraps a callable remote reference so that every invocation
// dispatches asynchronously and returns a remote.Pending handle instead of
// blocking. Wrappers are cached per remote identity behind weak references,
// so wrapping the same target twice yields the same wrapper while any holder
// of the previous one is alive — store the wrapper in a variable rather than
// re-wrapping per call.
//
// NewTimed composes an async wrapper with a fixed timeout: the expiry is
// imprinted on every returned handle before the caller can observe it.
//
// Asynchronous dispatches carry no ordering guarantee. Two subsequent calls
// may complete, and be observed as delivered, in reverse order.
package proxy
