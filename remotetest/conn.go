package remotetest

import (
	"context"
	"sync"
	"time"

	"github.com/ayalpani/remotekit/remote"
)

// Dispatch records one request issued through the connection.
type Dispatch struct {
	Ref    remote.Ref
	Handle remote.HandleKind
	Args   []any
	Kwargs []remote.KV
}

// SyncHandler computes the reply for a synchronous dispatch.
type SyncHandler func(ref remote.Ref, handle remote.HandleKind, args []any) (any, error)

// AsyncHandler computes the eventual reply for an asynchronous dispatch.
// It runs when Serve delivers the queued reply, not at dispatch time.
type AsyncHandler func(ref remote.Ref, handle remote.HandleKind, args []any, kwargs []remote.KV) (any, error)

// Conn is a scriptable in-process connection. Synchronous dispatches are
// answered immediately by the sync handler. Asynchronous dispatches return
// an unresolved Pending and queue the reply; Serve drains the queue, which
// is when pendings resolve. Serve can be made to fail on its Nth call.
type Conn struct {
	mu           sync.Mutex
	syncHandler  SyncHandler
	asyncHandler AsyncHandler
	sendErr      error
	inbox        []func()
	syncCalls    []Dispatch
	asyncCalls   []Dispatch
	serveCalls   int
	failAt       int
	failErr      error
	serveDelay   time.Duration
}

// NewConn returns an idle connection with no handlers installed.
func NewConn() *Conn {
	return &Conn{}
}

// SetSyncHandler scripts replies for synchronous dispatches.
func (c *Conn) SetSyncHandler(fn SyncHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncHandler = fn
}

// SetAsyncHandler scripts eventual replies for asynchronous dispatches.
// Without one, async pendings stay unresolved until completed manually.
func (c *Conn) SetAsyncHandler(fn AsyncHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.asyncHandler = fn
}

// SetSendError makes every subsequent dispatch fail at send time.
func (c *Conn) SetSendError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sendErr = err
}

// FailServeAt makes the nth Serve call (1-based) return err.
func (c *Conn) FailServeAt(n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failAt = n
	c.failErr = err
}

// SetServeDelay makes every Serve call take at least d, regardless of the
// serve timeout, to simulate a pump blocked in the transport.
func (c *Conn) SetServeDelay(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.serveDelay = d
}

// Serve processes one round: it drains all queued async deliveries. The
// timeout is accepted for interface fidelity; queued replies are always
// "already pending", so a zero timeout still delivers them.
func (c *Conn) Serve(ctx context.Context, timeout time.Duration) error {
	c.mu.Lock()
	c.serveCalls++
	n := c.serveCalls
	var failErr error
	if c.failAt != 0 && n == c.failAt {
		failErr = c.failErr
	}
	pending := c.inbox
	c.inbox = nil
	delay := c.serveDelay
	c.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if failErr != nil {
		return failErr
	}
	for _, deliver := range pending {
		deliver()
	}
	return nil
}

// SendSync answers a synchronous dispatch via the installed handler.
func (c *Conn) SendSync(ctx context.Context, ref remote.Ref, handle remote.HandleKind, args []any) (any, error) {
	c.mu.Lock()
	c.syncCalls = append(c.syncCalls, Dispatch{Ref: ref, Handle: handle, Args: args})
	handler := c.syncHandler
	sendErr := c.sendErr
	c.mu.Unlock()

	if sendErr != nil {
		return nil, sendErr
	}
	if handler == nil {
		return nil, nil
	}
	return handler(ref, handle, args)
}

// SendAsync records the dispatch, queues its reply for the next Serve and
// returns the unresolved pending result.
func (c *Conn) SendAsync(ctx context.Context, ref remote.Ref, handle remote.HandleKind, args []any, kwargs []remote.KV) (remote.Pending, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sendErr != nil {
		return nil, c.sendErr
	}
	c.asyncCalls = append(c.asyncCalls, Dispatch{Ref: ref, Handle: handle, Args: args, Kwargs: kwargs})

	p := NewPending()
	if handler := c.asyncHandler; handler != nil {
		c.inbox = append(c.inbox, func() {
			v, err := handler(ref, handle, args, kwargs)
			if err != nil {
				p.Fail(err)
				return
			}
			p.Complete(v)
		})
	}
	return p, nil
}

// ServeCount returns how many times Serve has been called.
func (c *Conn) ServeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serveCalls
}

// SyncCalls returns all recorded synchronous dispatches.
func (c *Conn) SyncCalls() []Dispatch {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Dispatch(nil), c.syncCalls...)
}

// AsyncCalls returns all recorded asynchronous dispatches.
func (c *Conn) AsyncCalls() []Dispatch {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Dispatch(nil), c.asyncCalls...)
}

// DispatchCount returns the total number of dispatches, sync and async.
func (c *Conn) DispatchCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.syncCalls) + len(c.asyncCalls)
}
