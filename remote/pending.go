package remote

import (
	"context"
	"time"
)

// Pending is the handle for the eventual outcome of an asynchronous remote
// call. It is produced by Conn.SendAsync and completed by whoever pumps the
// connection; this kit consumes it but never constructs one itself.
type Pending interface {
	// IsReady reports whether the result has been delivered or the expiry
	// has already passed. It never blocks.
	IsReady() bool

	// Wait blocks until the result is delivered, the expiry passes, or the
	// context is done. An expired wait returns a timeout-kind error.
	Wait(ctx context.Context) error

	// Value waits like Wait and then returns the delivered value or the
	// propagated remote error.
	Value(ctx context.Context) (any, error)

	// SetExpiry bounds how long the result may stay outstanding. A
	// non-positive duration clears a previously set expiry.
	SetExpiry(d time.Duration)
}
