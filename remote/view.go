package remote

import (
	"context"

	"github.com/ayalpani/remotekit/errors"
)

// AttrView is a restricted view of a remote object: attribute access is
// forwarded over the connection only for names allowlisted at construction.
// It is the safe shape for handing a broad or dangerous remote object to a
// party that should see only a few of its attributes.
type AttrView struct {
	ref      Ref
	readable map[string]struct{}
	writable map[string]struct{}
}

// NewAttrView builds a restricted view over target. attrs is the set of
// attribute names exposed for reading. wattrs is the set exposed for writing;
// nil means "same as attrs", an empty non-nil slice disables writes entirely.
func NewAttrView(target Ref, attrs []string, wattrs []string) *AttrView {
	v := &AttrView{
		ref:      target,
		readable: make(map[string]struct{}, len(attrs)),
	}
	for _, name := range attrs {
		v.readable[name] = struct{}{}
	}
	if wattrs == nil {
		v.writable = v.readable
	} else {
		v.writable = make(map[string]struct{}, len(wattrs))
		for _, name := range wattrs {
			v.writable[name] = struct{}{}
		}
	}
	return v
}

// Get reads an allowlisted attribute of the underlying remote object.
func (v *AttrView) Get(ctx context.Context, name string) (any, error) {
	if _, ok := v.readable[name]; !ok {
		return nil, errors.AttrDenied(name)
	}
	return v.ref.Conn().SendSync(ctx, v.ref, HandleGetAttr, []any{name})
}

// Set writes an allowlisted attribute of the underlying remote object.
func (v *AttrView) Set(ctx context.Context, name string, value any) error {
	if _, ok := v.writable[name]; !ok {
		return errors.AttrDenied(name)
	}
	_, err := v.ref.Conn().SendSync(ctx, v.ref, HandleSetAttr, []any{name, value})
	return err
}

// CanRead reports whether name is readable through this view.
func (v *AttrView) CanRead(name string) bool {
	_, ok := v.readable[name]
	return ok
}

// CanWrite reports whether name is writable through this view.
func (v *AttrView) CanWrite(name string) bool {
	_, ok := v.writable[name]
	return ok
}
