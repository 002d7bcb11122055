package arena

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"botarena/application/journal"
	"botarena/application/state"
	"botarena/domain"
	"botarena/internal/actor"
)

// Kind is the actor kind and the store namespace of arena state.
const Kind = "arena"

// DefaultDrainWindow is how long DeleteArena waits between stopping the
// processing loop and tearing down bots. It is a best-effort settle time, not
// an acknowledgement that processing has stopped.
const DefaultDrainWindow = 2 * time.Second

// Config is read once per activation. Zero dimensions are kept as zero.
type Config struct {
	Width       int
	Height      int
	DrainWindow time.Duration
}

// Deps are the collaborators shared by every arena activation.
type Deps struct {
	Store      state.Store
	Bots       BotDirectory
	Players    PlayerDirectory
	Processors ProcessingDirectory
	Journal    Journal
	Logger     *slog.Logger
}

func (d Deps) validate() error {
	if d.Store == nil || d.Bots == nil || d.Players == nil || d.Processors == nil {
		return fmt.Errorf("arena: missing dependencies: store=%v bots=%v players=%v processors=%v", d.Store, d.Bots, d.Players, d.Processors)
	}
	return nil
}

type Option func(*Arena)

// WithIDGenerator replaces the bot id source.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(a *Arena) {
		if gen != nil {
			a.newID = gen
		}
	}
}

// WithSleep replaces the drain window timer.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(a *Arena) {
		if sleep != nil {
			a.sleep = sleep
		}
	}
}

// Arena owns the state of one arena. All methods must be called from the
// arena's own turns; the actor host guarantees that.
type Arena struct {
	name       string
	cfg        Config
	state      *state.Persistent[domain.ArenaState]
	bots       BotDirectory
	players    PlayerDirectory
	processors ProcessingDirectory
	journal    Journal
	lifecycle  actor.Lifecycle
	logger     *slog.Logger

	newID func() uuid.UUID
	sleep func(ctx context.Context, d time.Duration) error
}

// Activate returns the activator used by the arena host. Each activation
// loads its state from the store before serving the first call.
func Activate(cfg Config, deps Deps, opts ...Option) (actor.Activator[string, *Arena], error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if cfg.DrainWindow < 0 {
		cfg.DrainWindow = 0
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	j := deps.Journal
	if j == nil {
		j = journal.Nop{}
	}
	return func(ctx context.Context, name string, lc actor.Lifecycle) (*Arena, error) {
		a := &Arena{
			name:       name,
			cfg:        cfg,
			state:      state.NewPersistent[domain.ArenaState](deps.Store, Kind, name),
			bots:       deps.Bots,
			players:    deps.Players,
			processors: deps.Processors,
			journal:    j,
			lifecycle:  lc,
			logger:     logger.With("arena", name),
			newID:      uuid.New,
			sleep:      sleepContext,
		}
		for _, opt := range opts {
			opt(a)
		}
		if err := a.state.Read(ctx); err != nil {
			return nil, err
		}
		return a, nil
	}, nil
}

// GetArenaDetails initializes the arena on first use and pings its
// processing actor.
func (a *Arena) GetArenaDetails(ctx context.Context) (domain.Arena, error) {
	st := a.state.State()
	if !st.Exists {
		st.Name = a.name
		st.Width = a.cfg.Width
		st.Height = a.cfg.Height
		st.BotIDs = []uuid.UUID{}
		st.Exists = true
		if err := a.state.Write(ctx); err != nil {
			*st = domain.ArenaState{}
			return domain.Arena{}, err
		}
		a.logger.InfoContext(ctx, "arena initialized", "width", st.Width, "height", st.Height)
		a.record(ctx, journal.Event{Type: journal.ArenaInitialized, Arena: a.name, Width: st.Width, Height: st.Height})
	}
	if err := a.ping(ctx); err != nil {
		return domain.Arena{}, err
	}
	return st.Details(), nil
}

// GetAllActiveBots lists every rostered bot that has not died and keeps the
// processing loop alive.
func (a *Arena) GetAllActiveBots(ctx context.Context) ([]domain.Bot, error) {
	bots, err := a.listBots(ctx, func(b domain.Bot) bool { return !b.Died() })
	if err != nil {
		return nil, err
	}
	if err := a.ping(ctx); err != nil {
		return nil, err
	}
	return bots, nil
}

// GetAllLiveBots lists every rostered bot as it reports itself.
func (a *Arena) GetAllLiveBots(ctx context.Context) ([]domain.Bot, error) {
	return a.listBots(ctx, func(domain.Bot) bool { return true })
}

func (a *Arena) listBots(ctx context.Context, keep func(domain.Bot) bool) ([]domain.Bot, error) {
	if !a.state.State().Exists {
		if _, err := a.GetArenaDetails(ctx); err != nil {
			return nil, err
		}
	}
	ids := a.state.State().BotIDs
	bots := make([]domain.Bot, 0, len(ids))
	for _, id := range ids {
		var bot domain.Bot
		err := a.bots.WithBot(ctx, id, func(ctx context.Context, ref BotRef) error {
			var err error
			bot, err = ref.GetState(ctx)
			return err
		})
		if err != nil {
			return nil, err
		}
		if keep(bot) {
			bots = append(bots, bot)
		}
	}
	return bots, nil
}

// CreateBot reserves quota with the player, materializes the bot and then
// commits it to the roster. Player bookkeeping is not rolled back when the
// bot cannot be created.
func (a *Arena) CreateBot(ctx context.Context, playerName string, spec domain.BotToCreate) (domain.Bot, error) {
	st := a.state.State()
	if !st.Initialized() {
		return domain.Bot{}, domain.ErrArenaNotInitialized
	}

	id := a.newID()
	err := a.players.WithPlayer(ctx, playerName, func(ctx context.Context, player PlayerRef) error {
		if err := player.ValidateBotDeploymentLimit(ctx); err != nil {
			return err
		}
		return player.BotCreated(ctx, id)
	})
	if err != nil {
		return domain.Bot{}, err
	}

	spec.PlayerName = playerName
	spec.Arena = st.Details()
	var bot domain.Bot
	err = a.bots.WithBot(ctx, id, func(ctx context.Context, ref BotRef) error {
		var err error
		bot, err = ref.CreateBot(ctx, spec)
		return err
	})
	if err != nil {
		a.logger.WarnContext(ctx, "bot creation failed after player bookkeeping", "bot", id, "player", playerName, "err", err)
		return domain.Bot{}, err
	}

	st.AddBot(id)
	if err := a.state.Write(ctx); err != nil {
		st.RemoveBot(id)
		return domain.Bot{}, err
	}
	a.logger.InfoContext(ctx, "bot created", "bot", id, "player", playerName)
	a.record(ctx, journal.Event{Type: journal.BotCreated, Arena: a.name, BotID: id, Player: playerName})
	return bot, nil
}

// DeleteBot unlists id from the roster. The bot's own state is untouched.
func (a *Arena) DeleteBot(ctx context.Context, id uuid.UUID) error {
	st := a.state.State()
	if !st.Exists || !st.RemoveBot(id) {
		return nil
	}
	if err := a.state.Write(ctx); err != nil {
		a.lifecycle.DeactivateOnIdle()
		return err
	}
	a.logger.InfoContext(ctx, "bot unlisted", "bot", id)
	a.record(ctx, journal.Event{Type: journal.BotUnlisted, Arena: a.name, BotID: id})
	return nil
}

// DeleteArena tears the arena down. Every removed bot is checkpointed, so a
// failed teardown resumes from the remaining roster when called again.
func (a *Arena) DeleteArena(ctx context.Context) error {
	defer a.lifecycle.DeactivateOnIdle()

	st := a.state.State()
	if !st.Exists {
		return nil
	}

	if err := a.processors.WithProcessor(ctx, a.name, func(ctx context.Context, p ProcessingRef) error {
		return p.Stop(ctx)
	}); err != nil {
		return err
	}
	if err := a.sleep(ctx, a.cfg.DrainWindow); err != nil {
		return err
	}

	for len(st.BotIDs) > 0 {
		id := st.BotIDs[0]
		if err := a.bots.WithBot(ctx, id, func(ctx context.Context, ref BotRef) error {
			return ref.DeleteBot(ctx, true)
		}); err != nil {
			return err
		}
		st.RemoveBot(id)
		if err := a.state.Write(ctx); err != nil {
			return err
		}
	}

	if err := a.state.Clear(ctx); err != nil {
		return err
	}
	a.logger.InfoContext(ctx, "arena deleted")
	a.record(ctx, journal.Event{Type: journal.ArenaDeleted, Arena: a.name})
	return nil
}

func (a *Arena) ping(ctx context.Context) error {
	return a.processors.WithProcessor(ctx, a.name, func(ctx context.Context, p ProcessingRef) error {
		return p.Ping(ctx)
	})
}

func (a *Arena) record(ctx context.Context, ev journal.Event) {
	if err := a.journal.Record(ctx, ev); err != nil {
		a.logger.WarnContext(ctx, "journal write failed", "event", ev.Type, "err", err)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
