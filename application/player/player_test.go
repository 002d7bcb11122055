package player_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"botarena/application/player"
	"botarena/application/state"
	"botarena/application/state/memory"
	"botarena/domain"
)

type failingWrites struct {
	*memory.Store
	err error
}

func (s *failingWrites) Write(ctx context.Context, kind, key string, payload []byte) error {
	if s.err != nil {
		return s.err
	}
	return s.Store.Write(ctx, kind, key, payload)
}

func activate(t *testing.T, store state.Store, maxBots int) *player.Player {
	t.Helper()
	act, err := player.Activate(player.Config{MaxBots: maxBots}, store, nil)
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	p, err := act(context.Background(), "p1", nil)
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	return p
}

func TestValidateBotDeploymentLimit(t *testing.T) {
	ctx := context.Background()
	p := activate(t, memory.NewStore(), 2)

	for range 2 {
		if err := p.ValidateBotDeploymentLimit(ctx); err != nil {
			t.Fatalf("unexpected rejection: %v", err)
		}
		if err := p.BotCreated(ctx, uuid.New()); err != nil {
			t.Fatalf("BotCreated: %v", err)
		}
	}
	if err := p.ValidateBotDeploymentLimit(ctx); !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
}

func TestDefaultMaxBots(t *testing.T) {
	ctx := context.Background()
	p := activate(t, memory.NewStore(), 0)
	for range player.DefaultMaxBots {
		if err := p.BotCreated(ctx, uuid.New()); err != nil {
			t.Fatalf("BotCreated: %v", err)
		}
	}
	if err := p.ValidateBotDeploymentLimit(ctx); !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded at the default limit, got %v", err)
	}
}

func TestBotCreatedAndDeletedArePersisted(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	a, b := uuid.New(), uuid.New()

	p := activate(t, store, 5)
	if err := p.BotCreated(ctx, a); err != nil {
		t.Fatalf("BotCreated: %v", err)
	}
	if err := p.BotCreated(ctx, a); err != nil {
		t.Fatalf("BotCreated (duplicate): %v", err)
	}
	if err := p.BotCreated(ctx, b); err != nil {
		t.Fatalf("BotCreated: %v", err)
	}
	if err := p.BotDeleted(ctx, a); err != nil {
		t.Fatalf("BotDeleted: %v", err)
	}
	if err := p.BotDeleted(ctx, uuid.New()); err != nil {
		t.Fatalf("BotDeleted of an unknown id: %v", err)
	}

	got := activate(t, store, 5).GetBots(ctx)
	if len(got) != 1 || got[0] != b {
		t.Fatalf("unexpected bots after reactivation: %v", got)
	}
}

func TestBotCreated_WriteFailureKeepsQuota(t *testing.T) {
	ctx := context.Background()
	store := &failingWrites{Store: memory.NewStore(), err: errors.New("disk full")}
	p := activate(t, store, 1)

	if err := p.BotCreated(ctx, uuid.New()); !errors.Is(err, state.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if err := p.ValidateBotDeploymentLimit(ctx); err != nil {
		t.Fatalf("failed write must not consume quota: %v", err)
	}
}
