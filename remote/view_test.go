package remote_test

import (
	"context"
	"testing"

	"github.com/ayalpani/remotekit/errors"
	"github.com/ayalpani/remotekit/remote"
	"github.com/ayalpani/remotekit/remotetest"
)

func attrStore(values map[string]any) remotetest.SyncHandler {
	return func(_ remote.Ref, handle remote.HandleKind, args []any) (any, error) {
		switch handle {
		case remote.HandleGetAttr:
			return values[args[0].(string)], nil
		case remote.HandleSetAttr:
			values[args[0].(string)] = args[1]
			return nil, nil
		default:
			return nil, errors.Remote(nil)
		}
	}
}

func TestAttrViewGetAllowlisted(t *testing.T) {
	conn := remotetest.NewConn()
	conn.SetSyncHandler(attrStore(map[string]any{"host": "db1", "port": 5432}))
	ref := remotetest.NewRef(conn, "svc.db", 1)

	v := remote.NewAttrView(ref, []string{"host"}, nil)
	got, err := v.Get(context.Background(), "host")
	if err != nil {
		t.Fatal(err)
	}
	if got != "db1" {
		t.Errorf("expected db1, got %v", got)
	}
}

func TestAttrViewDeniesUnlistedAttr(t *testing.T) {
	conn := remotetest.NewConn()
	ref := remotetest.NewRef(conn, "svc.db", 2)

	v := remote.NewAttrView(ref, []string{"host"}, nil)
	_, err := v.Get(context.Background(), "password")
	if errors.CodeOf(err) != errors.ErrCodeAttrDenied {
		t.Errorf("expected code %s, got %v", errors.ErrCodeAttrDenied, err)
	}
	if n := conn.DispatchCount(); n != 0 {
		t.Errorf("denied access must not reach the wire, got %d dispatches", n)
	}
}

func TestAttrViewNilWattrsMirrorsReadSet(t *testing.T) {
	conn := remotetest.NewConn()
	store := map[string]any{}
	conn.SetSyncHandler(attrStore(store))
	ref := remotetest.NewRef(conn, "svc.cfg", 3)

	v := remote.NewAttrView(ref, []string{"mode"}, nil)
	if !v.CanWrite("mode") {
		t.Fatal("nil write set must mirror the read set")
	}
	if err := v.Set(context.Background(), "mode", "fast"); err != nil {
		t.Fatal(err)
	}
	if store["mode"] != "fast" {
		t.Errorf("write not forwarded, store: %v", store)
	}
}

func TestAttrViewEmptyWattrsDisablesWrites(t *testing.T) {
	conn := remotetest.NewConn()
	ref := remotetest.NewRef(conn, "svc.ro", 4)

	v := remote.NewAttrView(ref, []string{"state"}, []string{})
	if v.CanWrite("state") {
		t.Error("empty write set must disable writes entirely")
	}
	err := v.Set(context.Background(), "state", "x")
	if errors.CodeOf(err) != errors.ErrCodeAttrDenied {
		t.Errorf("expected code %s, got %v", errors.ErrCodeAttrDenied, err)
	}
	if v.CanRead("state") != true {
		t.Error("read set must be unaffected by the write set")
	}
}

func TestIDPackString(t *testing.T) {
	id := remote.IDPack{Name: "svc.db", TypeID: 17, InstanceID: 4}
	if got := id.String(); got != "svc.db#17.4" {
		t.Errorf("unexpected format: %q", got)
	}
}

func TestHandleKindString(t *testing.T) {
	cases := map[remote.HandleKind]string{
		remote.HandleCall:     "call",
		remote.HandleBuffIter: "buffiter",
		remote.HandleGetAttr:  "getattr",
		remote.HandleSetAttr:  "setattr",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("%d: expected %q, got %q", kind, want, got)
		}
	}
}
