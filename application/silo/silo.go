package silo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"botarena/application/arena"
	"botarena/application/bot"
	"botarena/application/player"
	"botarena/application/processing"
	"botarena/application/state"
	"botarena/domain"
	"botarena/internal/actor"
)

type Config struct {
	Arena       arena.Config
	Player      player.Config
	Processing  processing.Config
	QueueSize   int
	// IdleTimeout retires activations that have been idle this long. Zero
	// keeps them resident until they deactivate themselves.
	IdleTimeout time.Duration
}

type options struct {
	logger    *slog.Logger
	journal   arena.Journal
	stepper   processing.Stepper
	botIntN   func(int) int
	arenaOpts []arena.Option
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func WithJournal(j arena.Journal) Option {
	return func(o *options) { o.journal = j }
}

func WithStepper(s processing.Stepper) Option {
	return func(o *options) { o.stepper = s }
}

// WithBotPlacement replaces the random source used to place new bots.
func WithBotPlacement(intN func(int) int) Option {
	return func(o *options) { o.botIntN = intN }
}

func WithArenaOptions(opts ...arena.Option) Option {
	return func(o *options) { o.arenaOpts = append(o.arenaOpts, opts...) }
}

// Silo hosts every actor kind of the process over one shared store.
type Silo struct {
	arenas     *actor.Host[string, *arena.Arena]
	bots       *actor.Host[uuid.UUID, *bot.Bot]
	players    *actor.Host[string, *player.Player]
	processors *actor.Host[string, *processing.Processor]

	logger *slog.Logger
	cancel context.CancelFunc
}

func New(cfg Config, store state.Store, opts ...Option) (*Silo, error) {
	if store == nil {
		return nil, errors.New("silo: missing store")
	}
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	s := &Silo{logger: o.logger}
	hostOpts := []actor.Option{
		actor.WithLogger(o.logger),
		actor.WithQueueSize(cfg.QueueSize),
		actor.WithIdleTimeout(cfg.IdleTimeout),
	}

	activateArena, err := arena.Activate(cfg.Arena, arena.Deps{
		Store:      store,
		Bots:       arenaBots{s},
		Players:    arenaPlayers{s},
		Processors: arenaProcessors{s},
		Journal:    o.journal,
		Logger:     o.logger,
	}, o.arenaOpts...)
	if err != nil {
		return nil, err
	}
	activateBot, err := bot.Activate(bot.Deps{
		Store:   store,
		Arenas:  botArenas{s},
		Players: botPlayers{s},
		Logger:  o.logger,
		IntN:    o.botIntN,
	})
	if err != nil {
		return nil, err
	}
	activatePlayer, err := player.Activate(cfg.Player, store, o.logger)
	if err != nil {
		return nil, err
	}

	base, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	activateProcessor := processing.Activate(cfg.Processing, processing.Deps{
		Base:    base,
		Stepper: o.stepper,
		Logger:  o.logger,
	})

	s.arenas = actor.NewHost(arena.Kind, activateArena, hostOpts...)
	s.bots = actor.NewHost(bot.Kind, activateBot, hostOpts...)
	s.players = actor.NewHost(player.Kind, activatePlayer, hostOpts...)
	s.processors = actor.NewHost(processing.Kind, activateProcessor, hostOpts...)
	return s, nil
}

func (s *Silo) GetArenaDetails(ctx context.Context, name string) (domain.Arena, error) {
	return actor.Ask(ctx, s.arenas, name, func(ctx context.Context, a *arena.Arena) (domain.Arena, error) {
		return a.GetArenaDetails(ctx)
	})
}

func (s *Silo) GetAllActiveBots(ctx context.Context, name string) ([]domain.Bot, error) {
	return actor.Ask(ctx, s.arenas, name, func(ctx context.Context, a *arena.Arena) ([]domain.Bot, error) {
		return a.GetAllActiveBots(ctx)
	})
}

func (s *Silo) GetAllLiveBots(ctx context.Context, name string) ([]domain.Bot, error) {
	return actor.Ask(ctx, s.arenas, name, func(ctx context.Context, a *arena.Arena) ([]domain.Bot, error) {
		return a.GetAllLiveBots(ctx)
	})
}

func (s *Silo) CreateBot(ctx context.Context, arenaName, playerName string, spec domain.BotToCreate) (domain.Bot, error) {
	return actor.Ask(ctx, s.arenas, arenaName, func(ctx context.Context, a *arena.Arena) (domain.Bot, error) {
		return a.CreateBot(ctx, playerName, spec)
	})
}

// UnlistBot removes id from the arena roster and leaves the bot itself alone.
func (s *Silo) UnlistBot(ctx context.Context, arenaName string, id uuid.UUID) error {
	return s.arenas.Invoke(ctx, arenaName, func(ctx context.Context, a *arena.Arena) error {
		return a.DeleteBot(ctx, id)
	})
}

func (s *Silo) DeleteArena(ctx context.Context, name string) error {
	return s.arenas.Invoke(ctx, name, func(ctx context.Context, a *arena.Arena) error {
		return a.DeleteArena(ctx)
	})
}

// DeleteBot deletes a bot through the bot itself, which unlists it from its
// arena and releases the player's quota.
func (s *Silo) DeleteBot(ctx context.Context, id uuid.UUID) error {
	return s.bots.Invoke(ctx, id, func(ctx context.Context, b *bot.Bot) error {
		return b.DeleteBot(ctx, false)
	})
}

func (s *Silo) GetBot(ctx context.Context, id uuid.UUID) (domain.Bot, error) {
	return actor.Ask(ctx, s.bots, id, func(ctx context.Context, b *bot.Bot) (domain.Bot, error) {
		return b.GetState(ctx)
	})
}

func (s *Silo) ApplyMove(ctx context.Context, id uuid.UUID, move domain.Move) (domain.Bot, error) {
	return actor.Ask(ctx, s.bots, id, func(ctx context.Context, b *bot.Bot) (domain.Bot, error) {
		return b.ApplyMove(ctx, move)
	})
}

func (s *Silo) GetPlayerBots(ctx context.Context, name string) ([]uuid.UUID, error) {
	return actor.Ask(ctx, s.players, name, func(ctx context.Context, p *player.Player) ([]uuid.UUID, error) {
		return p.GetBots(ctx), nil
	})
}

func (s *Silo) ProcessingStatus(ctx context.Context, arenaName string) (processing.Status, error) {
	return actor.Ask(ctx, s.processors, arenaName, func(ctx context.Context, p *processing.Processor) (processing.Status, error) {
		return p.Status(ctx), nil
	})
}

// Activations reports the number of live activations per actor kind.
func (s *Silo) Activations() map[string]int {
	return map[string]int{
		arena.Kind:      s.arenas.Count(),
		bot.Kind:        s.bots.Count(),
		player.Kind:     s.players.Count(),
		processing.Kind: s.processors.Count(),
	}
}

// Close stops the processing loops and then every host.
func (s *Silo) Close(ctx context.Context) error {
	s.cancel()
	var errs []error
	for _, c := range []interface{ Close(context.Context) error }{s.arenas, s.bots, s.players, s.processors} {
		if err := c.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("silo: close: %w", errors.Join(errs...))
	}
	s.logger.Info("silo closed")
	return nil
}
