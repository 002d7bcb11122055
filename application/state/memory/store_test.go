package memory

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStoreReadWriteClear(t *testing.T) {
	ctx := context.Background()
	store := NewStore().WithClock(func() time.Time { return time.Unix(100, 0) })

	if _, ok, err := store.Read(ctx, "arena", "alpha"); err != nil || ok {
		t.Fatalf("expected missing record, got ok=%v err=%v", ok, err)
	}

	if err := store.Write(ctx, "arena", "alpha", []byte(`{"exists":true}`)); err != nil {
		t.Fatalf("write returned error: %v", err)
	}
	payload, ok, err := store.Read(ctx, "arena", "alpha")
	if err != nil || !ok {
		t.Fatalf("expected record, got ok=%v err=%v", ok, err)
	}
	if string(payload) != `{"exists":true}` {
		t.Errorf("unexpected payload: %s", payload)
	}
	if ts, _ := store.UpdatedAt("arena", "alpha"); !ts.Equal(time.Unix(100, 0)) {
		t.Errorf("expected UpdatedAt to use the injected clock, got %v", ts)
	}

	if err := store.Clear(ctx, "arena", "alpha"); err != nil {
		t.Fatalf("clear returned error: %v", err)
	}
	if _, ok, _ := store.Read(ctx, "arena", "alpha"); ok {
		t.Errorf("expected record to be cleared")
	}
}

func TestStoreKindsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if err := store.Write(ctx, "arena", "x", []byte("a")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := store.Write(ctx, "player", "x", []byte("p")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", store.Len())
	}
	payload, _, _ := store.Read(ctx, "player", "x")
	if string(payload) != "p" {
		t.Errorf("unexpected payload for player/x: %s", payload)
	}
}

func TestStorePayloadIsCopied(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	buf := []byte("abc")
	if err := store.Write(ctx, "bot", "1", buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	buf[0] = 'z'
	got, _, _ := store.Read(ctx, "bot", "1")
	if string(got) != "abc" {
		t.Fatalf("store kept a reference to the caller's buffer: %s", got)
	}
}

func TestStoreClosed(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	_ = store.Close()

	if err := store.Write(ctx, "bot", "1", nil); !errors.Is(err, ErrStoreClosed) {
		t.Fatalf("expected ErrStoreClosed, got %v", err)
	}
	if _, _, err := store.Read(ctx, "bot", "1"); !errors.Is(err, ErrStoreClosed) {
		t.Fatalf("expected ErrStoreClosed, got %v", err)
	}
}
