package remote

import (
	"context"
	"fmt"
)

// IDPack identifies a remote object across a connection boundary.
// TypeID identifies the remote class, InstanceID the particular instance
// (zero for class-level references). The pack is stable for the lifetime of
// the remote object and is the identity token used by the proxy cache.
type IDPack struct {
	Name       string
	TypeID     uint64
	InstanceID uint64
}

// String returns a compact form useful in logs.
func (p IDPack) String() string {
	return fmt.Sprintf("%s#%d.%d", p.Name, p.TypeID, p.InstanceID)
}

// Ref is a local handle that represents an object living on the other side
// of a connection. Any value exposing both the connection and the identity
// pack is recognized as a remote reference.
type Ref interface {
	// Conn returns the connection this reference belongs to.
	Conn() Conn
	// IDPack returns the stable identity of the referenced remote object.
	IDPack() IDPack
}

// Callable is implemented by remote references that can be invoked.
// Call performs a synchronous remote invocation: it blocks until the remote
// side replies and returns the result or the remote error.
type Callable interface {
	Call(ctx context.Context, args ...any) (any, error)
}

// KV is a single keyword argument carried on an asynchronous dispatch.
// Keyword arguments travel as ordered pairs rather than a map so the wire
// layer can preserve ordering.
type KV struct {
	Key   string
	Value any
}
