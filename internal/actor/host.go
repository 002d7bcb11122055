package actor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "botarena/internal/actor"

// ErrHostClosed is returned for calls issued after Close.
var ErrHostClosed = errors.New("actor: host closed")

// errRetired never leaves the package: a call that lands on a retired
// activation is forwarded to a fresh one.
var errRetired = errors.New("actor: activation retired")

// CallError reports a failed call to an actor and names the actor it
// was addressed to.
type CallError struct {
	Kind string
	Key  string
	Err  error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("actor %s/%s: %v", e.Kind, e.Key, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// Lifecycle is handed to an actor at activation so it can release its
// in-memory residency. The key stays addressable; the next call activates a
// fresh instance from durable state.
type Lifecycle interface {
	DeactivateOnIdle()
}

// Activator builds the actor for key. It runs inside the first turn of the
// activation, so loading state is serialized with the calls that follow.
type Activator[K comparable, A any] func(ctx context.Context, key K, lc Lifecycle) (A, error)

// Pinned is implemented by actors that must stay resident while they own
// background work. Idle collection skips an actor whose Pinned returns true.
type Pinned interface {
	Pinned() bool
}

type options struct {
	logger      *slog.Logger
	queueSize   int
	idleTimeout time.Duration
	now         func() time.Time
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithQueueSize(n int) Option {
	return func(o *options) {
		o.queueSize = n
	}
}

// WithIdleTimeout retires activations that have not run a turn for d. Zero
// keeps activations resident until they deactivate themselves.
func WithIdleTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.idleTimeout = d
		}
	}
}

// WithClock replaces the time source used for idle collection.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Host owns every activation of one actor kind. Each activation has its own
// Loop, so calls to the same key run one at a time and calls to different keys
// run in parallel. Calls accepted by one activation run in submission order.
// Calls that were queued behind a retirement are resubmitted to the next
// activation and may run after calls that reached it first.
type Host[K comparable, A any] struct {
	kind        string
	activate    Activator[K, A]
	logger      *slog.Logger
	queue       int
	tracer      trace.Tracer
	idleTimeout time.Duration
	now         func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	activations map[K]*activation[A]
	closed      bool
}

type activation[A any] struct {
	loop *Loop

	// lastTurn is written by the loop and read by the idle sweeper.
	lastTurn atomic.Int64

	// owned by the loop goroutine
	actor      A
	ready      bool
	retired    bool
	deactivate bool
}

func (a *activation[A]) DeactivateOnIdle() {
	a.deactivate = true
}

func NewHost[K comparable, A any](kind string, activate Activator[K, A], opts ...Option) *Host[K, A] {
	o := options{logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	ctx, cancel := context.WithCancel(context.Background())
	h := &Host[K, A]{
		kind:        kind,
		activate:    activate,
		logger:      o.logger,
		queue:       o.queueSize,
		tracer:      otel.Tracer(tracerName),
		idleTimeout: o.idleTimeout,
		now:         o.now,
		ctx:         ctx,
		cancel:      cancel,
		activations: make(map[K]*activation[A]),
	}
	if h.idleTimeout > 0 {
		go h.sweepLoop()
	}
	return h
}

// Kind returns the actor kind served by the host.
func (h *Host[K, A]) Kind() string {
	return h.kind
}

// Invoke resolves the actor for key, activating it if needed, and runs work
// on it as one turn. Any failure is returned as a *CallError.
func (h *Host[K, A]) Invoke(ctx context.Context, key K, work func(ctx context.Context, actor A) error) error {
	ctx, span := h.tracer.Start(ctx, h.kind+".invoke", trace.WithAttributes(
		attribute.String("actor.kind", h.kind),
		attribute.String("actor.key", fmt.Sprint(key)),
	))
	defer span.End()

	if err := h.invoke(ctx, key, work); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return &CallError{Kind: h.kind, Key: fmt.Sprint(key), Err: err}
	}
	return nil
}

// Ask is Invoke for work that produces a value.
func Ask[K comparable, A any, R any](ctx context.Context, h *Host[K, A], key K, work func(ctx context.Context, actor A) (R, error)) (R, error) {
	result := make(chan R, 1)
	err := h.Invoke(ctx, key, func(ctx context.Context, actor A) error {
		r, err := work(ctx, actor)
		if err != nil {
			return err
		}
		result <- r
		return nil
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return <-result, nil
}

func (h *Host[K, A]) invoke(ctx context.Context, key K, work func(ctx context.Context, actor A) error) error {
	for {
		act, err := h.resolve(key)
		if err != nil {
			return err
		}
		err = h.call(ctx, key, act, work)
		if err == errRetired {
			continue
		}
		return err
	}
}

func (h *Host[K, A]) resolve(key K) (*activation[A], error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrHostClosed
	}
	if act, ok := h.activations[key]; ok {
		return act, nil
	}
	act := &activation[A]{
		loop: NewLoop(Config{
			Name:      fmt.Sprintf("%s/%v", h.kind, key),
			QueueSize: h.queue,
			Logger:    h.logger,
		}),
	}
	act.lastTurn.Store(h.now().UnixNano())
	if err := act.loop.Start(h.ctx); err != nil {
		return nil, err
	}
	h.activations[key] = act
	return act, nil
}

func (h *Host[K, A]) call(ctx context.Context, key K, act *activation[A], work func(ctx context.Context, actor A) error) error {
	reply := make(chan error, 1)
	err := act.loop.Submit(ctx, func(context.Context) {
		reply <- h.turn(ctx, key, act, work)
	})
	if errors.Is(err, ErrLoopStopped) {
		return h.stoppedErr()
	}
	if err != nil {
		return err
	}

	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-act.loop.Done():
		select {
		case err := <-reply:
			return err
		default:
		}
		return h.stoppedErr()
	}
}

func (h *Host[K, A]) turn(ctx context.Context, key K, act *activation[A], work func(ctx context.Context, actor A) error) error {
	if act.retired {
		return errRetired
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	act.lastTurn.Store(h.now().UnixNano())
	defer func() {
		act.lastTurn.Store(h.now().UnixNano())
		if act.deactivate {
			h.retire(key, act)
		}
	}()

	if !act.ready {
		a, err := h.activate(ctx, key, act)
		if err != nil {
			act.deactivate = true
			return fmt.Errorf("activate: %w", err)
		}
		act.actor = a
		act.ready = true
		h.logger.DebugContext(ctx, "actor activated", "kind", h.kind, "key", key)
	}
	return work(ctx, act.actor)
}

func (h *Host[K, A]) retire(key K, act *activation[A]) {
	act.retired = true
	h.mu.Lock()
	if h.activations[key] == act {
		delete(h.activations, key)
	}
	h.mu.Unlock()
	act.loop.Shutdown()
	h.logger.Debug("actor deactivated", "kind", h.kind, "key", key)
}

func (h *Host[K, A]) sweepLoop() {
	interval := max(h.idleTimeout/2, time.Millisecond)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			h.CollectIdle()
		}
	}
}

// CollectIdle queues a retire turn on every activation that has been idle
// longer than the idle timeout and returns how many were queued. The turn
// re-checks idleness on the activation's own loop, so a call that slipped in
// first keeps the activation alive.
func (h *Host[K, A]) CollectIdle() int {
	if h.idleTimeout <= 0 {
		return 0
	}
	type candidate struct {
		key K
		act *activation[A]
	}
	now := h.now()
	var idle []candidate
	h.mu.Lock()
	for key, act := range h.activations {
		if h.idleAt(act, now) {
			idle = append(idle, candidate{key: key, act: act})
		}
	}
	h.mu.Unlock()

	queued := 0
	for _, c := range idle {
		if c.act.loop.TrySubmit(func(context.Context) { h.collect(c.key, c.act) }) {
			queued++
		}
	}
	return queued
}

// collect runs on the activation's loop.
func (h *Host[K, A]) collect(key K, act *activation[A]) {
	if act.retired || !h.idleAt(act, h.now()) {
		return
	}
	if p, ok := any(act.actor).(Pinned); act.ready && ok && p.Pinned() {
		return
	}
	h.retire(key, act)
}

func (h *Host[K, A]) idleAt(act *activation[A], now time.Time) bool {
	return now.Sub(time.Unix(0, act.lastTurn.Load())) > h.idleTimeout
}

func (h *Host[K, A]) stoppedErr() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHostClosed
	}
	return errRetired
}

// Count returns the number of live activations.
func (h *Host[K, A]) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.activations)
}

// Active reports whether key currently has an activation.
func (h *Host[K, A]) Active(key K) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.activations[key]
	return ok
}

// Close lets every activation finish its accepted turns and stops it.
func (h *Host[K, A]) Close(ctx context.Context) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	acts := make([]*activation[A], 0, len(h.activations))
	for _, act := range h.activations {
		acts = append(acts, act)
	}
	h.activations = make(map[K]*activation[A])
	h.mu.Unlock()

	defer h.cancel()
	for _, act := range acts {
		act.loop.Shutdown()
	}
	for _, act := range acts {
		select {
		case <-act.loop.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
