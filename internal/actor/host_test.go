package actor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type counter struct {
	key         string
	activations int
	value       int
	lc          Lifecycle
}

func newCounterHost(t *testing.T, activations *atomic.Int32) *Host[string, *counter] {
	t.Helper()
	h := NewHost("counter", func(ctx context.Context, key string, lc Lifecycle) (*counter, error) {
		n := activations.Add(1)
		return &counter{key: key, activations: int(n), lc: lc}, nil
	})
	t.Cleanup(func() {
		_ = h.Close(context.Background())
	})
	return h
}

func TestHost_ActivatesOncePerKey(t *testing.T) {
	var activations atomic.Int32
	h := newCounterHost(t, &activations)
	ctx := context.Background()

	for range 3 {
		if err := h.Invoke(ctx, "a", func(ctx context.Context, c *counter) error {
			c.value++
			return nil
		}); err != nil {
			t.Fatalf("invoke: %v", err)
		}
	}

	got, err := Ask(ctx, h, "a", func(ctx context.Context, c *counter) (int, error) {
		return c.value, nil
	})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if got != 3 {
		t.Fatalf("expected value 3, got %d", got)
	}
	if activations.Load() != 1 {
		t.Fatalf("expected one activation, got %d", activations.Load())
	}
}

func TestHost_SerializesTurnsPerKey(t *testing.T) {
	var activations atomic.Int32
	h := newCounterHost(t, &activations)
	ctx := context.Background()

	var (
		inside  atomic.Int32
		overlap atomic.Bool
		wg      sync.WaitGroup
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = h.Invoke(ctx, "same", func(ctx context.Context, c *counter) error {
				if inside.Add(1) > 1 {
					overlap.Store(true)
				}
				time.Sleep(time.Millisecond)
				c.value++
				inside.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()

	if overlap.Load() {
		t.Fatalf("turns for the same key overlapped")
	}
	got, err := Ask(ctx, h, "same", func(ctx context.Context, c *counter) (int, error) {
		return c.value, nil
	})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if got != 20 {
		t.Fatalf("expected 20 increments, got %d", got)
	}
}

func TestHost_DifferentKeysRunInParallel(t *testing.T) {
	var activations atomic.Int32
	h := newCounterHost(t, &activations)
	ctx := context.Background()

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = h.Invoke(ctx, "slow", func(ctx context.Context, c *counter) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	done := make(chan error, 1)
	go func() {
		done <- h.Invoke(ctx, "fast", func(ctx context.Context, c *counter) error { return nil })
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("invoke fast: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("call to another key was blocked by a busy actor")
	}
	close(release)
}

func TestHost_DeactivateOnIdleStartsFreshActivation(t *testing.T) {
	var activations atomic.Int32
	h := newCounterHost(t, &activations)
	ctx := context.Background()

	if err := h.Invoke(ctx, "a", func(ctx context.Context, c *counter) error {
		c.value = 42
		c.lc.DeactivateOnIdle()
		return nil
	}); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if h.Active("a") {
		t.Fatalf("expected activation to be retired")
	}

	got, err := Ask(ctx, h, "a", func(ctx context.Context, c *counter) (int, error) {
		return c.value, nil
	})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected fresh in-memory state, got %d", got)
	}
	if activations.Load() != 2 {
		t.Fatalf("expected two activations, got %d", activations.Load())
	}
}

func TestHost_QueuedCallsSurviveDeactivation(t *testing.T) {
	var activations atomic.Int32
	h := newCounterHost(t, &activations)
	ctx := context.Background()

	release := make(chan struct{})
	started := make(chan struct{})
	first := make(chan error, 1)
	go func() {
		first <- h.Invoke(ctx, "a", func(ctx context.Context, c *counter) error {
			close(started)
			<-release
			c.lc.DeactivateOnIdle()
			return nil
		})
	}()
	<-started

	results := make(chan error, 5)
	for range 5 {
		go func() {
			results <- h.Invoke(ctx, "a", func(ctx context.Context, c *counter) error {
				c.value++
				return nil
			})
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)

	if err := <-first; err != nil {
		t.Fatalf("first invoke: %v", err)
	}
	for range 5 {
		if err := <-results; err != nil {
			t.Fatalf("queued invoke: %v", err)
		}
	}
	got, err := Ask(ctx, h, "a", func(ctx context.Context, c *counter) (int, error) {
		return c.value, nil
	})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if got != 5 {
		t.Fatalf("expected the 5 forwarded calls on the new activation, got %d", got)
	}
}

func TestHost_ActivationFailureIsRetried(t *testing.T) {
	var attempts atomic.Int32
	h := NewHost("flaky", func(ctx context.Context, key string, lc Lifecycle) (*counter, error) {
		if attempts.Add(1) == 1 {
			return nil, errors.New("store offline")
		}
		return &counter{key: key}, nil
	})
	defer h.Close(context.Background())
	ctx := context.Background()

	err := h.Invoke(ctx, "a", func(ctx context.Context, c *counter) error { return nil })
	var callErr *CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("expected *CallError, got %v", err)
	}
	if callErr.Kind != "flaky" || callErr.Key != "a" {
		t.Fatalf("unexpected call error: %+v", callErr)
	}

	if err := h.Invoke(ctx, "a", func(ctx context.Context, c *counter) error { return nil }); err != nil {
		t.Fatalf("second invoke: %v", err)
	}
}

func TestHost_WrapsWorkErrors(t *testing.T) {
	var activations atomic.Int32
	h := newCounterHost(t, &activations)
	sentinel := errors.New("boom")

	err := h.Invoke(context.Background(), "a", func(ctx context.Context, c *counter) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel through CallError, got %v", err)
	}
	if err.Error() != "actor counter/a: boom" {
		t.Fatalf("unexpected error text: %q", err.Error())
	}
}

func TestHost_Closed(t *testing.T) {
	var activations atomic.Int32
	h := newCounterHost(t, &activations)
	ctx := context.Background()

	if err := h.Invoke(ctx, "a", func(ctx context.Context, c *counter) error { return nil }); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if err := h.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	err := h.Invoke(ctx, "a", func(ctx context.Context, c *counter) error { return nil })
	if !errors.Is(err, ErrHostClosed) {
		t.Fatalf("expected ErrHostClosed, got %v", err)
	}
	if h.Count() != 0 {
		t.Fatalf("expected no activations after close, got %d", h.Count())
	}
}

type manualClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func waitRetired[K comparable, A any](t *testing.T, h *Host[K, A], key K) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Active(key) {
		if time.Now().After(deadline) {
			t.Fatalf("activation %v was not retired", key)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestHost_CollectIdleRetiresIdleKeys(t *testing.T) {
	var activations atomic.Int32
	clk := &manualClock{t: time.Unix(1_700_000_000, 0)}
	h := NewHost("counter", func(ctx context.Context, key string, lc Lifecycle) (*counter, error) {
		activations.Add(1)
		return &counter{key: key, lc: lc}, nil
	}, WithIdleTimeout(time.Minute), WithClock(clk.Now))
	t.Cleanup(func() { _ = h.Close(context.Background()) })
	ctx := context.Background()

	bump := func(key string) {
		if err := h.Invoke(ctx, key, func(ctx context.Context, c *counter) error {
			c.value++
			return nil
		}); err != nil {
			t.Fatalf("invoke %s: %v", key, err)
		}
	}
	bump("idle")
	bump("busy")

	clk.Advance(2 * time.Minute)
	bump("busy")

	if n := h.CollectIdle(); n != 1 {
		t.Fatalf("expected one retire turn, got %d", n)
	}
	waitRetired(t, h, "idle")
	if !h.Active("busy") {
		t.Fatalf("recently used activation must stay resident")
	}

	got, err := Ask(ctx, h, "idle", func(ctx context.Context, c *counter) (int, error) {
		return c.value, nil
	})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if got != 0 || activations.Load() != 3 {
		t.Fatalf("expected a fresh activation, got value %d after %d activations", got, activations.Load())
	}
}

func TestHost_CollectIdleSkipsWithoutTimeout(t *testing.T) {
	var activations atomic.Int32
	h := newCounterHost(t, &activations)
	if err := h.Invoke(context.Background(), "a", func(context.Context, *counter) error { return nil }); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if n := h.CollectIdle(); n != 0 || !h.Active("a") {
		t.Fatalf("collection must be disabled, queued %d", n)
	}
}

type pinnedCounter struct {
	pinned bool
}

func (p *pinnedCounter) Pinned() bool { return p.pinned }

func TestHost_CollectIdleRespectsPinned(t *testing.T) {
	clk := &manualClock{t: time.Unix(1_700_000_000, 0)}
	h := NewHost("pinned", func(ctx context.Context, key string, lc Lifecycle) (*pinnedCounter, error) {
		return &pinnedCounter{pinned: true}, nil
	}, WithIdleTimeout(time.Minute), WithClock(clk.Now))
	t.Cleanup(func() { _ = h.Close(context.Background()) })
	ctx := context.Background()

	if err := h.Invoke(ctx, "a", func(context.Context, *pinnedCounter) error { return nil }); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	clk.Advance(2 * time.Minute)
	h.CollectIdle()
	// a call on the same loop runs after the retire turn
	if err := h.Invoke(ctx, "a", func(ctx context.Context, p *pinnedCounter) error {
		p.pinned = false
		return nil
	}); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if !h.Active("a") {
		t.Fatalf("pinned activation must not be collected")
	}

	clk.Advance(2 * time.Minute)
	h.CollectIdle()
	waitRetired(t, h, "a")
}

func TestHost_SweeperCollectsOnItsOwn(t *testing.T) {
	h := NewHost("counter", func(ctx context.Context, key string, lc Lifecycle) (*counter, error) {
		return &counter{key: key, lc: lc}, nil
	}, WithIdleTimeout(10*time.Millisecond))
	t.Cleanup(func() { _ = h.Close(context.Background()) })

	for _, key := range []string{"a", "b", "c"} {
		if err := h.Invoke(context.Background(), key, func(context.Context, *counter) error { return nil }); err != nil {
			t.Fatalf("invoke: %v", err)
		}
	}
	deadline := time.Now().Add(2 * time.Second)
	for h.Count() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected every idle activation to be collected, %d left", h.Count())
		}
		time.Sleep(5 * time.Millisecond)
	}
}
