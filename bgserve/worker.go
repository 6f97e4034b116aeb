package bgserve

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ayalpani/remotekit/errors"
	"github.com/ayalpani/remotekit/logger"
	"github.com/ayalpani/remotekit/observability"
	"github.com/ayalpani/remotekit/remote"
)

// Worker serves one connection from a dedicated goroutine. It starts at
// construction and is single-use: once stopped, explicitly or by a pump
// failure, it never serves again.
type Worker struct {
	l *loop
}

// loop is the state shared with the serving goroutine. It is split from the
// Worker handle so that dropping the handle can trigger the cleanup safety
// net while the goroutine still references the loop.
type loop struct {
	conn      remote.Conn
	cfg       Config
	onFailure func(error)
	log       *logger.Logger

	active atomic.Bool
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// Option configures a Worker at construction.
type Option func(*loop)

// WithFailureHandler installs a handler invoked exactly once if a pump
// fails. Without one, a pump failure panics the worker goroutine.
func WithFailureHandler(fn func(error)) Option {
	return func(l *loop) { l.onFailure = fn }
}

// WithLogger routes the worker's logging through log.
func WithLogger(log *logger.Logger) Option {
	return func(l *loop) { l.log = log.WithComponent("bgserve") }
}

// New starts serving conn in the background and returns the running worker.
// The worker borrows the connection; it must be the only loop pumping it.
func New(conn remote.Conn, cfg Config, opts ...Option) *Worker {
	cfg.ApplyDefaults()
	l := &loop{
		conn: conn,
		cfg:  cfg,
		log:  logger.WithComponent("bgserve"),
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.active.Store(true)
	go l.run()

	w := &Worker{l: l}
	// Safety net: a worker handle dropped while still active is stopped when
	// the handle is reclaimed. Reclamation timing is not deterministic;
	// explicit Stop is the supported teardown path.
	runtime.AddCleanup(w, func(l *loop) {
		if l.active.CompareAndSwap(true, false) {
			<-l.done
		}
	}, l)
	return w
}

// Stop halts the serving loop and blocks until the goroutine has fully
// exited, then releases the connection. After Stop returns, no further pump
// call occurs on the connection. Stopping an already-stopped worker is a
// programming error and panics.
func (w *Worker) Stop() {
	if !w.l.active.CompareAndSwap(true, false) {
		panic("bgserve: Stop called on a stopped worker")
	}
	<-w.l.done
	w.l.conn = nil
	w.l.log.Debug("worker stopped")
}

// Active reports whether the worker is still serving.
func (w *Worker) Active() bool {
	return w.l.active.Load()
}

// Err returns the pump error that stopped the worker, or nil.
func (w *Worker) Err() error {
	w.l.mu.Lock()
	defer w.l.mu.Unlock()
	return w.l.err
}

// run is the serving loop. It pumps the connection for up to ServeInterval,
// sleeps SleepInterval, and repeats until the active flag drops or a pump
// fails. The flag check bounds stop latency by one serve plus one sleep.
func (l *loop) run() {
	defer close(l.done)
	ctx := context.Background()

	l.log.Debug("worker serving", logger.Fields(
		"serve_interval", l.cfg.ServeInterval.String(),
		"sleep_interval", l.cfg.SleepInterval.String(),
	))

	for l.active.Load() {
		if err := l.conn.Serve(ctx, l.cfg.ServeInterval); err != nil {
			l.fail(ctx, err)
			return
		}
		observability.Default().RecordPump(ctx)
		time.Sleep(l.cfg.SleepInterval)
	}
}

// fail performs the one-shot terminal transition for a pump error. The loop
// condition already excludes a second failure, and the swap excludes racing
// with Stop.
func (l *loop) fail(ctx context.Context, err error) {
	if !l.active.CompareAndSwap(true, false) {
		// Stop won the race; the failure belongs to a pump that was
		// already being shut down.
		return
	}

	observability.Default().RecordPumpFailure(ctx)
	wrapped := err
	if errors.CodeOf(err) == "" {
		wrapped = errors.ConnectionFailed(err)
	}
	l.mu.Lock()
	l.err = wrapped
	l.mu.Unlock()

	if l.onFailure == nil {
		panic(err)
	}
	l.log.Error("serving failed", logger.ErrorFields("serve", err))
	l.onFailure(wrapped)
}
