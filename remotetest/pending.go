package remotetest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayalpani/remotekit/errors"
)

// Pending is an in-process pending result. Tests (or the Conn's serve loop)
// complete it; consumers poll or wait on it through the remote.Pending
// surface.
type Pending struct {
	id string

	mu        sync.Mutex
	completed bool
	value     any
	err       error
	hasExpiry bool
	deadline  time.Time

	done chan struct{}
}

// NewPending returns an unresolved pending result with a fresh ID.
func NewPending() *Pending {
	return &Pending{
		id:   uuid.NewString(),
		done: make(chan struct{}),
	}
}

// ID returns the correlation ID of this pending result.
func (p *Pending) ID() string { return p.id }

// Complete delivers a value. Only the first delivery wins.
func (p *Pending) Complete(v any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.completed {
		return
	}
	p.completed = true
	p.value = v
	close(p.done)
}

// Fail delivers a remote error. Only the first delivery wins.
func (p *Pending) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.completed {
		return
	}
	p.completed = true
	p.err = err
	close(p.done)
}

// IsReady reports whether a result was delivered or the expiry has passed.
func (p *Pending) IsReady() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.completed {
		return true
	}
	return p.hasExpiry && time.Now().After(p.deadline)
}

// Wait blocks until delivery, expiry or context cancellation.
func (p *Pending) Wait(ctx context.Context) error {
	p.mu.Lock()
	hasExpiry, deadline := p.hasExpiry, p.deadline
	p.mu.Unlock()

	var expire <-chan time.Time
	if hasExpiry {
		t := time.NewTimer(time.Until(deadline))
		defer t.Stop()
		expire = t.C
	}

	select {
	case <-p.done:
		return nil
	case <-expire:
		return errors.Timeout("wait")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Value waits like Wait and returns the delivered value or remote error.
func (p *Pending) Value(ctx context.Context) (any, error) {
	if err := p.Wait(ctx); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value, p.err
}

// SetExpiry bounds how long the result may stay outstanding. A non-positive
// duration clears a previously set expiry.
func (p *Pending) SetExpiry(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if d <= 0 {
		p.hasExpiry = false
		return
	}
	p.hasExpiry = true
	p.deadline = time.Now().Add(d)
}

// HasExpiry reports whether an expiry is currently set.
func (p *Pending) HasExpiry() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasExpiry
}

// Deadline returns the expiry deadline; valid only when HasExpiry is true.
func (p *Pending) Deadline() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.deadline
}
