package proxy

import (
	"context"
	"fmt"
	"time"

	"github.com/ayalpani/remotekit/errors"
	"github.com/ayalpani/remotekit/remote"
)

// Timed composes an async wrapper with a fixed timeout. Every invocation
// dispatches like Async, then sets the expiry on the pending result before
// returning it, so a caller can never observe the handle without its expiry
// in place. Enforcement of the expiry belongs to the pending-result surface:
// waiting past the timeout yields a timeout-kind error.
//
// Unlike Async wrappers, Timed wrappers are not cached; each construction is
// independent.
type Timed struct {
	proxy   *Async
	timeout time.Duration
}

// NewTimed wraps target with a timeout bound on every call. The target must
// satisfy the same preconditions as NewAsync; a non-positive timeout is a
// configuration error.
func NewTimed(target any, timeout time.Duration) (*Timed, error) {
	if timeout <= 0 {
		return nil, errors.InvalidConfig("timeout", "must be positive")
	}
	a, err := NewAsync(target)
	if err != nil {
		return nil, err
	}
	return &Timed{proxy: a, timeout: timeout}, nil
}

// Call dispatches one asynchronous invocation and returns its pending
// result with the expiry already set.
func (t *Timed) Call(ctx context.Context, args ...any) (remote.Pending, error) {
	return t.CallKW(ctx, args, nil)
}

// CallKW is Call with keyword arguments.
func (t *Timed) CallKW(ctx context.Context, args []any, kwargs []remote.KV) (remote.Pending, error) {
	pending, err := t.proxy.CallKW(ctx, args, kwargs)
	if err != nil {
		return nil, err
	}
	pending.SetExpiry(t.timeout)
	return pending, nil
}

// Timeout returns the bound applied to every call.
func (t *Timed) Timeout() time.Duration {
	return t.timeout
}

// String implements fmt.Stringer.
func (t *Timed) String() string {
	return fmt.Sprintf("timed(%s, %s)", t.proxy.target.IDPack(), t.timeout)
}
