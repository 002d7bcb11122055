package processing

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"botarena/internal/actor"
)

// Kind is the actor kind of processing actors. They are keyed by arena name
// and keep no durable state.
const Kind = "processing"

const (
	DefaultTick        = 500 * time.Millisecond
	DefaultIdleTimeout = 30 * time.Second
)

// Stepper advances the simulation of one arena by one tick.
type Stepper interface {
	Step(ctx context.Context, arena string, tick uint64) error
}

type StepperFunc func(ctx context.Context, arena string, tick uint64) error

func (f StepperFunc) Step(ctx context.Context, arena string, tick uint64) error {
	return f(ctx, arena, tick)
}

// LogStepper only traces ticks.
type LogStepper struct {
	Logger *slog.Logger
}

func (s LogStepper) Step(ctx context.Context, arena string, tick uint64) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.DebugContext(ctx, "processing: tick", "arena", arena, "tick", tick)
	return nil
}

type Config struct {
	Tick        time.Duration
	IdleTimeout time.Duration
}

type Deps struct {
	// Base bounds every tick loop. Cancelling it stops all loops.
	Base    context.Context
	Stepper Stepper
	Logger  *slog.Logger
	Clock   func() time.Time
}

// Status is a snapshot of a processing actor.
type Status struct {
	Arena    string    `json:"arena"`
	Running  bool      `json:"running"`
	Ticks    uint64    `json:"ticks"`
	LastPing time.Time `json:"lastPing"`
}

// Processor drives the tick loop of one arena. The loop runs on its own
// goroutine and stops when it is not pinged within the idle timeout.
type Processor struct {
	arena     string
	cfg       Config
	base      context.Context
	stepper   Stepper
	logger    *slog.Logger
	clk       func() time.Time
	lifecycle actor.Lifecycle

	// lastPing と ticks はtickループからも読み書きされる
	lastPing atomic.Int64
	ticks    atomic.Uint64

	cancel context.CancelFunc
	done   chan struct{}
}

func Activate(cfg Config, deps Deps) actor.Activator[string, *Processor] {
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	base := deps.Base
	if base == nil {
		base = context.Background()
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	stepper := deps.Stepper
	if stepper == nil {
		stepper = LogStepper{Logger: logger}
	}
	clk := deps.Clock
	if clk == nil {
		clk = time.Now
	}
	return func(ctx context.Context, arena string, lc actor.Lifecycle) (*Processor, error) {
		return &Processor{
			arena:     arena,
			cfg:       cfg,
			base:      base,
			stepper:   stepper,
			logger:    logger.With("arena", arena),
			clk:       clk,
			lifecycle: lc,
		}, nil
	}
}

// Ping records liveness and starts the tick loop if it is not running.
func (p *Processor) Ping(ctx context.Context) error {
	p.lastPing.Store(p.clk().UnixNano())
	if p.running() {
		return nil
	}
	if p.cancel != nil {
		p.cancel()
	}
	loopCtx, cancel := context.WithCancel(p.base)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done
	go p.run(loopCtx, done)
	p.logger.InfoContext(ctx, "processing started")
	return nil
}

// Stop cancels the tick loop without waiting for it. A step in flight may
// still be calling into other actors.
func (p *Processor) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
		p.logger.InfoContext(ctx, "processing stopped")
	}
	p.lifecycle.DeactivateOnIdle()
	return nil
}

func (p *Processor) Status(context.Context) Status {
	st := Status{
		Arena:   p.arena,
		Running: p.running(),
		Ticks:   p.ticks.Load(),
	}
	if ns := p.lastPing.Load(); ns != 0 {
		st.LastPing = time.Unix(0, ns)
	}
	return st
}

// Pinned keeps the activation resident while its tick loop runs. Once the
// loop has stopped for lack of pings the host may collect it.
func (p *Processor) Pinned() bool {
	return p.running()
}

func (p *Processor) running() bool {
	if p.done == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

func (p *Processor) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.cfg.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			idle := p.clk().Sub(time.Unix(0, p.lastPing.Load()))
			if idle > p.cfg.IdleTimeout {
				p.logger.InfoContext(ctx, "processing idle, stopping", "idle", idle)
				return
			}
			n := p.ticks.Add(1)
			if err := p.stepper.Step(ctx, p.arena, n); err != nil {
				p.logger.WarnContext(ctx, "processing step failed", "tick", n, "err", err)
			}
		}
	}
}
