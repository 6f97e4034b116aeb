package proxy

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/ayalpani/remotekit/errors"
	"github.com/ayalpani/remotekit/remote"
	"github.com/ayalpani/remotekit/remotetest"
)

func TestNewAsyncRejectsNonRemote(t *testing.T) {
	_, err := NewAsync(42)
	if err == nil {
		t.Fatal("expected error for non-remote target")
	}
	if errors.CodeOf(err) != errors.ErrCodeInvalidProxy {
		t.Errorf("expected code %s, got %s", errors.ErrCodeInvalidProxy, errors.CodeOf(err))
	}
}

func TestNewAsyncRejectsNonCallable(t *testing.T) {
	conn := remotetest.NewConn()
	ref := remotetest.NewRef(conn, "svc.plain", 1)

	_, err := NewAsync(ref)
	if err == nil {
		t.Fatal("expected error for non-callable target")
	}
	if errors.CodeOf(err) != errors.ErrCodeInvalidProxy {
		t.Errorf("expected code %s, got %s", errors.ErrCodeInvalidProxy, errors.CodeOf(err))
	}
	if n := conn.DispatchCount(); n != 0 {
		t.Errorf("rejection must not touch the connection, got %d dispatches", n)
	}
}

func TestNewAsyncReturnsSameWrapperForSameIdentity(t *testing.T) {
	conn := remotetest.NewConn()
	ref1 := remotetest.NewCallableRef(conn, "svc.echo", 7)
	ref2 := remotetest.NewCallableRef(conn, "svc.echo", 7)

	a1, err := NewAsync(ref1)
	if err != nil {
		t.Fatal(err)
	}
	a2, err := NewAsync(ref2)
	if err != nil {
		t.Fatal(err)
	}
	if a1 != a2 {
		t.Error("same identity must yield the same wrapper")
	}

	other, err := NewAsync(remotetest.NewCallableRef(conn, "svc.echo", 8))
	if err != nil {
		t.Fatal(err)
	}
	if other == a1 {
		t.Error("distinct identities must yield distinct wrappers")
	}
}

func TestNewAsyncReturnsExistingWrapperUnchanged(t *testing.T) {
	conn := remotetest.NewConn()
	a, err := NewAsync(remotetest.NewCallableRef(conn, "svc.rewrap", 1))
	if err != nil {
		t.Fatal(err)
	}
	rewrapped, err := NewAsync(a)
	if err != nil {
		t.Fatal(err)
	}
	if rewrapped != a {
		t.Error("wrapping a wrapper must return it unchanged")
	}
}

func TestAsyncWrapperCacheReleasesReclaimedEntries(t *testing.T) {
	conn := remotetest.NewConn()
	ref := remotetest.NewCallableRef(conn, "svc.ephemeral", 99)
	id := ref.IDPack()

	a, err := NewAsync(ref)
	if err != nil {
		t.Fatal(err)
	}
	if !cacheHas(id) {
		t.Fatal("expected cache entry after construction")
	}
	_ = a
	a = nil

	deadline := time.Now().Add(2 * time.Second)
	for cacheHas(id) {
		if time.Now().After(deadline) {
			t.Fatal("cache entry not released after wrapper reclamation")
		}
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
}

func cacheHas(id remote.IDPack) bool {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	wp, ok := cache.entries[id]
	if !ok {
		return false
	}
	return wp.Value() != nil
}

func TestAsyncCallDoesNotBlock(t *testing.T) {
	conn := remotetest.NewConn()
	conn.SetAsyncHandler(func(ref remote.Ref, handle remote.HandleKind, args []any, kwargs []remote.KV) (any, error) {
		return len(args), nil
	})
	ref := remotetest.NewCallableRef(conn, "svc.count", 1)

	a, err := NewAsync(ref)
	if err != nil {
		t.Fatal(err)
	}
	pending, err := a.Call(context.Background(), "x", "y", "z")
	if err != nil {
		t.Fatal(err)
	}
	if pending.IsReady() {
		t.Error("pending must not be ready before the connection is served")
	}

	if err := conn.Serve(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	if !pending.IsReady() {
		t.Fatal("pending must be ready once the reply was served")
	}
	v, err := pending.Value(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if v != 3 {
		t.Errorf("expected 3, got %v", v)
	}

	calls := conn.AsyncCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 async dispatch, got %d", len(calls))
	}
	if calls[0].Handle != remote.HandleCall {
		t.Errorf("expected %s dispatch, got %s", remote.HandleCall, calls[0].Handle)
	}
}

func TestAsyncCallKWCarriesKeywordArguments(t *testing.T) {
	conn := remotetest.NewConn()
	ref := remotetest.NewCallableRef(conn, "svc.kw", 1)

	a, err := NewAsync(ref)
	if err != nil {
		t.Fatal(err)
	}
	kwargs := []remote.KV{{Key: "mode", Value: "fast"}}
	if _, err := a.CallKW(context.Background(), []any{1}, kwargs); err != nil {
		t.Fatal(err)
	}

	calls := conn.AsyncCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 async dispatch, got %d", len(calls))
	}
	if len(calls[0].Kwargs) != 1 || calls[0].Kwargs[0].Key != "mode" {
		t.Errorf("keyword arguments not carried: %+v", calls[0].Kwargs)
	}
}

func TestAsyncCallPropagatesDispatchFailure(t *testing.T) {
	conn := remotetest.NewConn()
	conn.SetSendError(errors.ConnectionFailed(context.DeadlineExceeded))
	ref := remotetest.NewCallableRef(conn, "svc.broken", 1)

	a, err := NewAsync(ref)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Call(context.Background()); err == nil {
		t.Fatal("expected dispatch failure to propagate")
	}
}

func TestAsyncString(t *testing.T) {
	conn := remotetest.NewConn()
	a, err := NewAsync(remotetest.NewCallableRef(conn, "svc.str", 3))
	if err != nil {
		t.Fatal(err)
	}
	want := "async(" + a.Target().IDPack().String() + ")"
	if got := a.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
