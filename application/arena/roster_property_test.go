package arena_test

import (
	"context"
	"slices"
	"testing"

	"github.com/google/uuid"
	"pgregory.net/rapid"

	"botarena/application/arena"
	"botarena/application/state/memory"
	"botarena/domain"
)

type fakeBots struct {
	bots map[uuid.UUID]domain.Bot
}

type fakeBotRef struct {
	id    uuid.UUID
	owner *fakeBots
}

func (d *fakeBots) WithBot(ctx context.Context, id uuid.UUID, work func(context.Context, arena.BotRef) error) error {
	return work(ctx, fakeBotRef{id: id, owner: d})
}

func (r fakeBotRef) GetState(context.Context) (domain.Bot, error) {
	b, ok := r.owner.bots[r.id]
	if !ok {
		return domain.Bot{}, domain.ErrBotNotFound
	}
	return b, nil
}

func (r fakeBotRef) CreateBot(_ context.Context, spec domain.BotToCreate) (domain.Bot, error) {
	b := domain.Bot{ID: r.id, Name: spec.Name, PlayerName: spec.PlayerName, ArenaName: spec.Arena.Name}
	r.owner.bots[r.id] = b
	return b, nil
}

func (r fakeBotRef) DeleteBot(context.Context, bool) error {
	delete(r.owner.bots, r.id)
	return nil
}

type allowAll struct{}

func (allowAll) WithPlayer(ctx context.Context, _ string, work func(context.Context, arena.PlayerRef) error) error {
	return work(ctx, allowAll{})
}

func (allowAll) ValidateBotDeploymentLimit(context.Context) error { return nil }

func (allowAll) BotCreated(context.Context, uuid.UUID) error { return nil }

func (allowAll) WithProcessor(ctx context.Context, _ string, work func(context.Context, arena.ProcessingRef) error) error {
	return work(ctx, allowAll{})
}

func (allowAll) Ping(context.Context) error { return nil }

func (allowAll) Stop(context.Context) error { return nil }

func TestRosterMembershipProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		store := memory.NewStore()
		bots := &fakeBots{bots: make(map[uuid.UUID]domain.Bot)}
		activate, err := arena.Activate(arena.Config{Width: 10, Height: 10}, arena.Deps{
			Store:      store,
			Bots:       bots,
			Players:    allowAll{},
			Processors: allowAll{},
		})
		if err != nil {
			rt.Fatalf("Activate: %v", err)
		}
		lc := &fakeLifecycle{}
		a, err := activate(ctx, "prop", lc)
		if err != nil {
			rt.Fatalf("activate: %v", err)
		}
		if _, err := a.GetArenaDetails(ctx); err != nil {
			rt.Fatalf("GetArenaDetails: %v", err)
		}

		var expected []uuid.UUID
		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := range steps {
			switch op := rapid.IntRange(0, 3).Draw(rt, "op"); {
			case op <= 1:
				bot, err := a.CreateBot(ctx, "p", domain.BotToCreate{Name: "b"})
				if err != nil {
					rt.Fatalf("step %d CreateBot: %v", i, err)
				}
				expected = append(expected, bot.ID)
			case op == 2 && len(expected) > 0:
				idx := rapid.IntRange(0, len(expected)-1).Draw(rt, "victim")
				if err := a.DeleteBot(ctx, expected[idx]); err != nil {
					rt.Fatalf("step %d DeleteBot: %v", i, err)
				}
				expected = slices.Delete(expected, idx, idx+1)
			default:
				if err := a.DeleteBot(ctx, uuid.New()); err != nil {
					rt.Fatalf("step %d DeleteBot unknown: %v", i, err)
				}
			}

			if rapid.Bool().Draw(rt, "reactivate") {
				a, err = activate(ctx, "prop", lc)
				if err != nil {
					rt.Fatalf("reactivate: %v", err)
				}
			}

			live, err := a.GetAllLiveBots(ctx)
			if err != nil {
				rt.Fatalf("step %d GetAllLiveBots: %v", i, err)
			}
			got := make([]uuid.UUID, 0, len(live))
			for _, b := range live {
				got = append(got, b.ID)
			}
			if !slices.Equal(got, expected) {
				rt.Fatalf("step %d: roster %v, expected %v", i, got, expected)
			}
		}
	})
}
