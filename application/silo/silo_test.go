package silo_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"botarena/application/arena"
	"botarena/application/player"
	"botarena/application/processing"
	"botarena/application/silo"
	"botarena/application/state/memory"
	"botarena/domain"
	"botarena/internal/actor"
)

func noDrain(context.Context, time.Duration) error { return nil }

func newSilo(t *testing.T, store *memory.Store, maxBots int) *silo.Silo {
	t.Helper()
	s, err := silo.New(silo.Config{
		Arena:  arena.Config{Width: 100, Height: 50},
		Player: player.Config{MaxBots: maxBots},
	}, store, silo.WithArenaOptions(arena.WithSleep(noDrain)))
	if err != nil {
		t.Fatalf("silo.New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func spec(name string) domain.BotToCreate {
	return domain.BotToCreate{Name: name, MaximumHealth: 100, MaximumStamina: 100}
}

func TestScenarioAlpha(t *testing.T) {
	ctx := context.Background()
	s := newSilo(t, memory.NewStore(), 5)

	details, err := s.GetArenaDetails(ctx, "alpha")
	if err != nil {
		t.Fatalf("GetArenaDetails: %v", err)
	}
	if details != (domain.Arena{Name: "alpha", Width: 100, Height: 50}) {
		t.Fatalf("unexpected details: %+v", details)
	}

	bot, err := s.CreateBot(ctx, "alpha", "p1", spec("terminator"))
	if err != nil {
		t.Fatalf("CreateBot: %v", err)
	}
	if bot.ID == uuid.Nil || bot.ArenaName != "alpha" || bot.PlayerName != "p1" {
		t.Fatalf("unexpected bot: %+v", bot)
	}
	if bot.X < 0 || bot.X >= 100 || bot.Y < 0 || bot.Y >= 50 {
		t.Fatalf("bot placed outside the arena: (%d,%d)", bot.X, bot.Y)
	}

	live, err := s.GetAllLiveBots(ctx, "alpha")
	if err != nil {
		t.Fatalf("GetAllLiveBots: %v", err)
	}
	if len(live) != 1 || live[0].ID != bot.ID {
		t.Fatalf("expected exactly the created bot, got %+v", live)
	}

	if err := s.UnlistBot(ctx, "alpha", bot.ID); err != nil {
		t.Fatalf("UnlistBot: %v", err)
	}
	live, err = s.GetAllLiveBots(ctx, "alpha")
	if err != nil {
		t.Fatalf("GetAllLiveBots: %v", err)
	}
	if len(live) != 0 {
		t.Fatalf("expected empty roster, got %+v", live)
	}
	if _, err := s.GetBot(ctx, bot.ID); err != nil {
		t.Fatalf("unlisting must keep the bot's own state: %v", err)
	}
}

func TestCreateBot_BeforeInitialization(t *testing.T) {
	s := newSilo(t, memory.NewStore(), 5)

	_, err := s.CreateBot(context.Background(), "fresh", "p1", spec("b"))
	if !errors.Is(err, domain.ErrArenaNotInitialized) {
		t.Fatalf("expected ErrArenaNotInitialized, got %v", err)
	}
	var callErr *actor.CallError
	if !errors.As(err, &callErr) || callErr.Kind != arena.Kind || callErr.Key != "fresh" {
		t.Fatalf("expected a CallError naming the arena, got %v", err)
	}
}

func TestQuotaAcrossArenas(t *testing.T) {
	ctx := context.Background()
	s := newSilo(t, memory.NewStore(), 2)

	for _, name := range []string{"a", "b"} {
		if _, err := s.GetArenaDetails(ctx, name); err != nil {
			t.Fatalf("GetArenaDetails(%s): %v", name, err)
		}
	}
	if _, err := s.CreateBot(ctx, "a", "p1", spec("one")); err != nil {
		t.Fatalf("CreateBot: %v", err)
	}
	if _, err := s.CreateBot(ctx, "b", "p1", spec("two")); err != nil {
		t.Fatalf("CreateBot: %v", err)
	}
	if _, err := s.CreateBot(ctx, "a", "p1", spec("three")); !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	live, _ := s.GetAllLiveBots(ctx, "a")
	if len(live) != 1 {
		t.Fatalf("quota rejection must not touch the roster, got %d bots", len(live))
	}
	if _, err := s.CreateBot(ctx, "a", "p2", spec("other player")); err != nil {
		t.Fatalf("another player must not be limited: %v", err)
	}
}

func TestDeleteBotReleasesQuotaAndUnlists(t *testing.T) {
	ctx := context.Background()
	s := newSilo(t, memory.NewStore(), 1)

	if _, err := s.GetArenaDetails(ctx, "alpha"); err != nil {
		t.Fatalf("GetArenaDetails: %v", err)
	}
	bot, err := s.CreateBot(ctx, "alpha", "p1", spec("b"))
	if err != nil {
		t.Fatalf("CreateBot: %v", err)
	}
	if err := s.DeleteBot(ctx, bot.ID); err != nil {
		t.Fatalf("DeleteBot: %v", err)
	}

	live, _ := s.GetAllLiveBots(ctx, "alpha")
	if len(live) != 0 {
		t.Fatalf("expected bot to be unlisted, got %+v", live)
	}
	owned, _ := s.GetPlayerBots(ctx, "p1")
	if len(owned) != 0 {
		t.Fatalf("expected player bookkeeping to be released, got %v", owned)
	}
	if _, err := s.GetBot(ctx, bot.ID); !errors.Is(err, domain.ErrBotNotFound) {
		t.Fatalf("expected ErrBotNotFound, got %v", err)
	}
	if _, err := s.CreateBot(ctx, "alpha", "p1", spec("again")); err != nil {
		t.Fatalf("quota must be available again: %v", err)
	}
}

func TestActiveFiltersDiedBots(t *testing.T) {
	ctx := context.Background()
	s := newSilo(t, memory.NewStore(), 5)

	if _, err := s.GetArenaDetails(ctx, "alpha"); err != nil {
		t.Fatalf("GetArenaDetails: %v", err)
	}
	alive, _ := s.CreateBot(ctx, "alpha", "p1", spec("alive"))
	died, _ := s.CreateBot(ctx, "alpha", "p1", spec("died"))
	if _, err := s.ApplyMove(ctx, died.ID, domain.MoveDied); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}

	active, err := s.GetAllActiveBots(ctx, "alpha")
	if err != nil {
		t.Fatalf("GetAllActiveBots: %v", err)
	}
	if len(active) != 1 || active[0].ID != alive.ID {
		t.Fatalf("expected only the alive bot, got %+v", active)
	}
	live, _ := s.GetAllLiveBots(ctx, "alpha")
	if len(live) != 2 {
		t.Fatalf("expected both bots, got %+v", live)
	}

	status, err := s.ProcessingStatus(ctx, "alpha")
	if err != nil {
		t.Fatalf("ProcessingStatus: %v", err)
	}
	if !status.Running {
		t.Fatalf("listing active bots must keep processing alive: %+v", status)
	}
}

func TestDeleteArenaTearsEverythingDown(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	s := newSilo(t, store, 5)

	if _, err := s.GetArenaDetails(ctx, "alpha"); err != nil {
		t.Fatalf("GetArenaDetails: %v", err)
	}
	var ids []uuid.UUID
	for _, name := range []string{"a", "b", "c"} {
		b, err := s.CreateBot(ctx, "alpha", "p1", spec(name))
		if err != nil {
			t.Fatalf("CreateBot: %v", err)
		}
		ids = append(ids, b.ID)
	}

	if err := s.DeleteArena(ctx, "alpha"); err != nil {
		t.Fatalf("DeleteArena: %v", err)
	}
	for _, id := range ids {
		if _, err := s.GetBot(ctx, id); !errors.Is(err, domain.ErrBotNotFound) {
			t.Fatalf("expected bot %s to be deleted, got %v", id, err)
		}
	}
	owned, _ := s.GetPlayerBots(ctx, "p1")
	if len(owned) != 0 {
		t.Fatalf("expected player quota to be released, got %v", owned)
	}
	status, _ := s.ProcessingStatus(ctx, "alpha")
	if status.Running {
		t.Fatalf("expected processing to be stopped")
	}
	if err := s.DeleteArena(ctx, "alpha"); err != nil {
		t.Fatalf("second DeleteArena: %v", err)
	}

	details, err := s.GetArenaDetails(ctx, "alpha")
	if err != nil {
		t.Fatalf("recreate arena: %v", err)
	}
	if details.Name != "alpha" {
		t.Fatalf("unexpected details after recreation: %+v", details)
	}
	live, _ := s.GetAllLiveBots(ctx, "alpha")
	if len(live) != 0 {
		t.Fatalf("recreated arena must start empty, got %+v", live)
	}
}

func TestStateSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	first, err := silo.New(silo.Config{Arena: arena.Config{Width: 10, Height: 10}}, store)
	if err != nil {
		t.Fatalf("silo.New: %v", err)
	}
	if _, err := first.GetArenaDetails(ctx, "alpha"); err != nil {
		t.Fatalf("GetArenaDetails: %v", err)
	}
	bot, err := first.CreateBot(ctx, "alpha", "p1", spec("persisted"))
	if err != nil {
		t.Fatalf("CreateBot: %v", err)
	}
	if err := first.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := first.GetArenaDetails(ctx, "alpha"); !errors.Is(err, actor.ErrHostClosed) {
		t.Fatalf("expected ErrHostClosed after Close, got %v", err)
	}

	second := newSilo(t, store, 5)
	live, err := second.GetAllLiveBots(ctx, "alpha")
	if err != nil {
		t.Fatalf("GetAllLiveBots: %v", err)
	}
	if len(live) != 1 || live[0] != bot {
		t.Fatalf("expected the persisted bot, got %+v", live)
	}
}

func TestConcurrentCreatesAreSerialized(t *testing.T) {
	ctx := context.Background()
	s := newSilo(t, memory.NewStore(), 100)
	if _, err := s.GetArenaDetails(ctx, "alpha"); err != nil {
		t.Fatalf("GetArenaDetails: %v", err)
	}

	const n = 30
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			player := "p" + string(rune('a'+i%3))
			if _, err := s.CreateBot(ctx, "alpha", player, spec("bot")); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("CreateBot: %v", err)
	}

	live, err := s.GetAllLiveBots(ctx, "alpha")
	if err != nil {
		t.Fatalf("GetAllLiveBots: %v", err)
	}
	if len(live) != n {
		t.Fatalf("expected %d bots, got %d", n, len(live))
	}
	seen := make(map[uuid.UUID]bool, n)
	for _, b := range live {
		if seen[b.ID] {
			t.Fatalf("duplicate id on roster: %s", b.ID)
		}
		seen[b.ID] = true
	}
}

func TestIdleActivationsAreCollectedAndReactivateFromStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	s, err := silo.New(silo.Config{
		Arena:       arena.Config{Width: 100, Height: 50},
		Player:      player.Config{MaxBots: 5},
		Processing:  processing.Config{Tick: 5 * time.Millisecond, IdleTimeout: 50 * time.Millisecond},
		IdleTimeout: 200 * time.Millisecond,
	}, store, silo.WithArenaOptions(arena.WithSleep(noDrain)))
	if err != nil {
		t.Fatalf("silo.New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	const arenas = 50
	for i := range arenas {
		if _, err := s.GetArenaDetails(ctx, fmt.Sprintf("arena-%d", i)); err != nil {
			t.Fatalf("GetArenaDetails: %v", err)
		}
	}
	if got := s.Activations(); got[arena.Kind] != arenas || got[processing.Kind] != arenas {
		t.Fatalf("expected %d resident arenas and processors, got %v", arenas, got)
	}
	written, ok := store.UpdatedAt(arena.Kind, "arena-7")
	if !ok {
		t.Fatalf("expected arena-7 to be persisted")
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		got := s.Activations()
		if got[arena.Kind] == 0 && got[processing.Kind] == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("idle activations were not collected: %v", got)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if store.Len() != arenas {
		t.Fatalf("collection must not touch durable state, store has %d records", store.Len())
	}
	details, err := s.GetArenaDetails(ctx, "arena-7")
	if err != nil {
		t.Fatalf("GetArenaDetails after collection: %v", err)
	}
	if details != (domain.Arena{Name: "arena-7", Width: 100, Height: 50}) {
		t.Fatalf("unexpected details after reactivation: %+v", details)
	}
	if again, _ := store.UpdatedAt(arena.Kind, "arena-7"); !again.Equal(written) {
		t.Fatalf("reactivation must read the stored arena, not rewrite it")
	}
}
