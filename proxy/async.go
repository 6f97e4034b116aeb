package proxy

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ayalpani/remotekit/errors"
	"github.com/ayalpani/remotekit/logger"
	"github.com/ayalpani/remotekit/observability"
	"github.com/ayalpani/remotekit/remote"
)

// Async wraps one callable remote reference. Invoking it dispatches an
// asynchronous remote call and returns the pending result immediately; the
// reply is delivered by whoever pumps the connection (see bgserve).
type Async struct {
	target remote.Ref
	log    *logger.Logger
}

// NewAsync returns the async wrapper for target. The target must be a
// remote reference (remote.Ref) and callable (remote.Callable); anything
// else fails with an INVALID_PROXY error before any network interaction.
// Wrapping the same identity twice returns the same wrapper while any holder
// of the previous one is alive, and wrapping a wrapper returns it unchanged.
func NewAsync(target any) (*Async, error) {
	if a, ok := target.(*Async); ok {
		return a, nil
	}
	ref, ok := target.(remote.Ref)
	if !ok {
		return nil, errors.InvalidProxy("not a remote reference", target)
	}
	if _, ok := target.(remote.Callable); !ok {
		return nil, errors.InvalidProxy("not callable", target)
	}
	return cache.getOrCreate(ref.IDPack(), func() *Async {
		return &Async{
			target: ref,
			log:    logger.WithComponent("proxy"),
		}
	}), nil
}

// Call dispatches one asynchronous remote invocation with positional
// arguments and returns its pending result without blocking.
func (a *Async) Call(ctx context.Context, args ...any) (remote.Pending, error) {
	return a.CallKW(ctx, args, nil)
}

// CallKW dispatches one asynchronous remote invocation with positional and
// keyword arguments and returns its pending result without blocking.
// Successive calls carry no completion-order guarantee.
func (a *Async) CallKW(ctx context.Context, args []any, kwargs []remote.KV) (remote.Pending, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanAsyncCall)
	defer span.End()

	callID := uuid.NewString()
	span.SetAttributes(
		attribute.String(observability.AttrCallID, callID),
		attribute.String(observability.AttrTarget, a.target.IDPack().String()),
	)

	pending, err := a.target.Conn().SendAsync(ctx, a.target, remote.HandleCall, args, kwargs)
	if err != nil {
		observability.SetSpanError(ctx, err)
		a.log.Error("async dispatch failed", logger.Fields(
			logger.FieldCallID, callID,
			logger.FieldTarget, a.target.IDPack().String(),
			logger.FieldError, err.Error(),
		))
		return nil, err
	}

	observability.Default().RecordAsyncCall(ctx)
	a.log.Debug("async call dispatched", logger.Fields(
		logger.FieldCallID, callID,
		logger.FieldTarget, a.target.IDPack().String(),
	))
	return pending, nil
}

// Target returns the wrapped remote reference.
func (a *Async) Target() remote.Ref {
	return a.target
}

// String implements fmt.Stringer.
func (a *Async) String() string {
	return fmt.Sprintf("async(%s)", a.target.IDPack())
}
