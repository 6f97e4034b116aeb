package remotetest

import (
	"context"
	"hash/fnv"

	"github.com/ayalpani/remotekit/remote"
)

// Ref is a plain remote reference bound to a test connection. It is not
// callable; use CallableRef for targets that proxies may wrap.
type Ref struct {
	conn remote.Conn
	id   remote.IDPack
}

// NewRef builds a reference to the remote object named name with the given
// instance identity.
func NewRef(conn remote.Conn, name string, instance uint64) *Ref {
	h := fnv.New64a()
	h.Write([]byte(name))
	return &Ref{
		conn: conn,
		id: remote.IDPack{
			Name:       name,
			TypeID:     h.Sum64(),
			InstanceID: instance,
		},
	}
}

// Conn returns the connection this reference belongs to.
func (r *Ref) Conn() remote.Conn { return r.conn }

// IDPack returns the identity of the referenced object.
func (r *Ref) IDPack() remote.IDPack { return r.id }

// CallableRef is a remote reference that can be invoked synchronously.
type CallableRef struct {
	*Ref
}

// NewCallableRef builds a callable reference bound to conn.
func NewCallableRef(conn remote.Conn, name string, instance uint64) *CallableRef {
	return &CallableRef{Ref: NewRef(conn, name, instance)}
}

// Call performs a blocking invocation through the connection.
func (r *CallableRef) Call(ctx context.Context, args ...any) (any, error) {
	return r.conn.SendSync(ctx, r, remote.HandleCall, args)
}
