package remote

import (
	"context"
	"time"
)

// HandleKind selects the remote operation a dispatch addresses.
type HandleKind int

const (
	// HandleCall invokes the referenced remote object.
	HandleCall HandleKind = iota
	// HandleBuffIter fetches the next batch from a remote iterator.
	HandleBuffIter
	// HandleGetAttr reads an attribute of the referenced remote object.
	HandleGetAttr
	// HandleSetAttr writes an attribute of the referenced remote object.
	HandleSetAttr
)

// String returns the handle name.
func (h HandleKind) String() string {
	switch h {
	case HandleCall:
		return "call"
	case HandleBuffIter:
		return "buffiter"
	case HandleGetAttr:
		return "getattr"
	case HandleSetAttr:
		return "setattr"
	default:
		return "unknown"
	}
}

// Conn is the duplex connection collaborator. It owns the wire protocol and
// the inbound message queue; this kit only pumps it and dispatches through it.
//
// A connection must be pumped by at most one serving loop at a time.
// Concurrent Serve calls from two goroutines race on the connection's
// internal buffers.
type Conn interface {
	// Serve processes one round of pending inbound traffic, waiting at most
	// timeout for more to arrive. A zero timeout drains whatever is already
	// ready without waiting. It returns an error only on unrecoverable
	// transport failure.
	Serve(ctx context.Context, timeout time.Duration) error

	// SendSync issues a blocking dispatch against ref and returns the reply
	// value or the propagated remote error.
	SendSync(ctx context.Context, ref Ref, handle HandleKind, args []any) (any, error)

	// SendAsync issues a non-blocking dispatch against ref and returns a
	// pending result immediately. The reply is delivered into the pending
	// result by whoever pumps the connection.
	SendAsync(ctx context.Context, ref Ref, handle HandleKind, args []any, kwargs []KV) (Pending, error)
}
