package actor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrLoopNotStarted = errors.New("loop: not started")
	ErrLoopStopped    = errors.New("loop: stopped")
)

// Turn is one unit of work executed on the loop goroutine.
type Turn func(ctx context.Context)

// Config controls the behaviour of a single actor loop.
type Config struct {
	Name      string
	QueueSize int
	Logger    *slog.Logger
}

// Loop runs submitted turns one at a time, in submission order, on a single
// goroutine.
type Loop struct {
	name   string
	queue  chan Turn
	logger *slog.Logger

	started  atomic.Bool
	quit     chan struct{}
	quitOnce sync.Once

	done chan struct{}
}

// NewLoop creates a Loop with the supplied configuration.
func NewLoop(cfg Config) *Loop {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 128
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		name:   cfg.Name,
		queue:  make(chan Turn, queueSize),
		logger: logger,
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start launches the loop goroutine. It must be called once.
func (l *Loop) Start(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return errors.New("loop: start called multiple times")
	}
	go l.run(ctx)
	return nil
}

func (l *Loop) run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			l.logger.DebugContext(ctx, "loop: context cancelled, shutting down", "loop", l.name, "err", ctx.Err())
			return
		case <-l.quit:
			l.drain(ctx)
			return
		case turn := <-l.queue:
			turn(ctx)
		}
	}
}

// drain runs the turns that were accepted before Shutdown.
func (l *Loop) drain(ctx context.Context) {
	for {
		select {
		case turn := <-l.queue:
			turn(ctx)
		default:
			return
		}
	}
}

// Submit enqueues a turn. It blocks while the queue is full.
func (l *Loop) Submit(ctx context.Context, turn Turn) error {
	if !l.started.Load() {
		return ErrLoopNotStarted
	}
	select {
	case <-l.quit:
		return ErrLoopStopped
	case <-l.done:
		return ErrLoopStopped
	default:
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.quit:
		return ErrLoopStopped
	case <-l.done:
		return ErrLoopStopped
	case l.queue <- turn:
		return nil
	}
}

// TrySubmit enqueues a turn without blocking. It reports false when the loop
// is not running or its queue is full.
func (l *Loop) TrySubmit(turn Turn) bool {
	if !l.started.Load() {
		return false
	}
	select {
	case <-l.quit:
		return false
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- turn:
		return true
	default:
		return false
	}
}

// Shutdown asks the loop to finish the accepted turns and exit. It does not
// wait, so it is safe to call from inside a turn.
func (l *Loop) Shutdown() {
	l.quitOnce.Do(func() { close(l.quit) })
}

// Stop shuts the loop down and waits for it to exit.
func (l *Loop) Stop(ctx context.Context) error {
	if !l.started.Load() {
		return ErrLoopNotStarted
	}
	l.Shutdown()
	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// DrainTimeout stops the loop and waits for completion with the given timeout.
func (l *Loop) DrainTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return l.Stop(ctx)
}

// Done is closed once the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
