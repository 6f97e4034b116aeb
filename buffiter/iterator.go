package buffiter

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ayalpani/remotekit/errors"
	"github.com/ayalpani/remotekit/logger"
	"github.com/ayalpani/remotekit/observability"
	"github.com/ayalpani/remotekit/remote"
)

// Iterator is a lazy, forward-only view of a remote sequence, fetched in
// geometrically growing batches. It is not safe for concurrent use and
// cannot be restarted once exhausted.
type Iterator struct {
	ref   remote.Ref
	cfg   Config
	count int
	batch []any
	pos   int
	done  bool
	log   *logger.Logger
}

// New builds a buffered iterator over target. The target must be a remote
// reference addressing an iterable; configuration is validated before any
// network call, so a bad schedule (factor < 1) never reaches the wire.
func New(target any, cfg Config) (*Iterator, error) {
	ref, ok := target.(remote.Ref)
	if !ok {
		return nil, errors.InvalidProxy("not a remote reference", target)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Iterator{
		ref:   ref,
		cfg:   cfg,
		count: cfg.Chunk,
		log:   logger.WithComponent("buffiter"),
	}, nil
}

// Next returns the next element. It blocks only when the current batch is
// exhausted and a new one must be fetched. Returns (nil, false, nil) once
// the remote sequence ends.
func (it *Iterator) Next(ctx context.Context) (any, bool, error) {
	for {
		if it.pos < len(it.batch) {
			v := it.batch[it.pos]
			it.pos++
			return v, true, nil
		}
		if it.done {
			return nil, false, nil
		}
		if err := it.fetch(ctx); err != nil {
			return nil, false, err
		}
	}
}

// Close drops the buffered remainder. Further Next calls report exhaustion.
func (it *Iterator) Close() error {
	it.done = true
	it.batch = nil
	it.pos = 0
	return nil
}

// fetch requests one batch of up to it.count elements and advances the
// batch-size schedule.
func (it *Iterator) fetch(ctx context.Context) error {
	ctx, span := observability.StartSpan(ctx, observability.SpanBuffFetch)
	defer span.End()
	span.SetAttributes(attribute.Int(observability.AttrBatchSize, it.count))

	requested := it.count
	reply, err := it.ref.Conn().SendSync(ctx, it.ref, remote.HandleBuffIter, []any{requested})
	if err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}
	observability.Default().RecordBatch(ctx, requested)
	it.count = nextCount(it.count, it.cfg)

	items, err := coerceBatch(reply)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}
	if len(items) == 0 {
		it.done = true
		it.batch = nil
		it.pos = 0
		return nil
	}
	it.batch = items
	it.pos = 0
	it.log.Trace("batch fetched", logger.Fields(
		logger.FieldTarget, it.ref.IDPack().String(),
		logger.FieldBatchSize, requested,
		"received", len(items),
	))
	return nil
}

// nextCount grows count by the configured factor, capped at MaxChunk.
// The schedule is monotonically non-decreasing even under rounding.
func nextCount(count int, cfg Config) int {
	next := int(float64(count) * cfg.Factor)
	if next > cfg.MaxChunk {
		next = cfg.MaxChunk
	}
	if next < count {
		next = count
	}
	return next
}

// coerceBatch normalizes the wire reply into a slice of elements.
func coerceBatch(reply any) ([]any, error) {
	switch b := reply.(type) {
	case nil:
		return nil, nil
	case []any:
		return b, nil
	default:
		return nil, errors.Remote(fmt.Errorf("unexpected batch reply type %T", reply))
	}
}

// Collect pulls the whole remaining sequence into a slice.
func Collect(ctx context.Context, it *Iterator) ([]any, error) {
	defer it.Close()
	var out []any
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}

// ForEach pulls all elements and calls fn for each.
func ForEach(ctx context.Context, it *Iterator, fn func(context.Context, any) error) error {
	defer it.Close()
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(ctx, v); err != nil {
			return err
		}
	}
}
