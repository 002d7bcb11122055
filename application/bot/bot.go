package bot

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"botarena/application/state"
	"botarena/domain"
	"botarena/internal/actor"
)

//go:generate go tool mockgen -destination=./mocks/contracts_mock.go -package=mocks . ArenaRef,ArenaDirectory,PlayerRef,PlayerDirectory

// Kind is the actor kind and the store namespace of bot state.
const Kind = "bot"

// ArenaRef is the part of the arena actor a bot talks to.
type ArenaRef interface {
	DeleteBot(ctx context.Context, id uuid.UUID) error
}

type ArenaDirectory interface {
	WithArena(ctx context.Context, name string, work func(ctx context.Context, arena ArenaRef) error) error
}

// PlayerRef is the part of the player actor a bot talks to.
type PlayerRef interface {
	BotDeleted(ctx context.Context, id uuid.UUID) error
}

type PlayerDirectory interface {
	WithPlayer(ctx context.Context, name string, work func(ctx context.Context, player PlayerRef) error) error
}

// State is the durable state of one bot.
type State struct {
	Exists bool       `json:"exists"`
	Bot    domain.Bot `json:"bot"`
	Script string     `json:"script,omitempty"`
}

type Deps struct {
	Store   state.Store
	Arenas  ArenaDirectory
	Players PlayerDirectory
	Logger  *slog.Logger
	// IntN places new bots. It must be safe for concurrent use; defaults to
	// rand.IntN.
	IntN func(n int) int
}

// Bot is the actor owning one bot's simulation state.
type Bot struct {
	id        uuid.UUID
	state     *state.Persistent[State]
	arenas    ArenaDirectory
	players   PlayerDirectory
	lifecycle actor.Lifecycle
	logger    *slog.Logger
	intN      func(n int) int
}

func Activate(deps Deps) (actor.Activator[uuid.UUID, *Bot], error) {
	if deps.Store == nil || deps.Arenas == nil || deps.Players == nil {
		return nil, fmt.Errorf("bot: missing dependencies: store=%v arenas=%v players=%v", deps.Store, deps.Arenas, deps.Players)
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	intN := deps.IntN
	if intN == nil {
		intN = rand.IntN
	}
	return func(ctx context.Context, id uuid.UUID, lc actor.Lifecycle) (*Bot, error) {
		b := &Bot{
			id:        id,
			state:     state.NewPersistent[State](deps.Store, Kind, id.String()),
			arenas:    deps.Arenas,
			players:   deps.Players,
			lifecycle: lc,
			logger:    logger.With("bot", id),
			intN:      intN,
		}
		if err := b.state.Read(ctx); err != nil {
			return nil, err
		}
		return b, nil
	}, nil
}

func (b *Bot) GetState(ctx context.Context) (domain.Bot, error) {
	st := b.state.State()
	if !st.Exists {
		return domain.Bot{}, domain.ErrBotNotFound
	}
	return st.Bot, nil
}

// CreateBot places the bot on a random cell of its arena, facing a random
// direction, with full health and stamina.
func (b *Bot) CreateBot(ctx context.Context, spec domain.BotToCreate) (domain.Bot, error) {
	st := b.state.State()
	if st.Exists {
		return domain.Bot{}, domain.ErrBotAlreadyExists
	}

	st.Bot = domain.Bot{
		ID:             b.id,
		Name:           spec.Name,
		PlayerName:     spec.PlayerName,
		ArenaName:      spec.Arena.Name,
		X:              b.intN(max(spec.Arena.Width, 1)),
		Y:              b.intN(max(spec.Arena.Height, 1)),
		Orientation:    domain.Orientation(b.intN(4)),
		MaximumHealth:  spec.MaximumHealth,
		CurrentHealth:  spec.MaximumHealth,
		MaximumStamina: spec.MaximumStamina,
		CurrentStamina: spec.MaximumStamina,
		Move:           domain.MoveIdle,
	}
	st.Script = spec.Script
	st.Exists = true
	if err := b.state.Write(ctx); err != nil {
		*st = State{}
		return domain.Bot{}, err
	}
	b.logger.InfoContext(ctx, "bot created", "arena", st.Bot.ArenaName, "player", st.Bot.PlayerName, "x", st.Bot.X, "y", st.Bot.Y)
	return st.Bot, nil
}

// DeleteBot removes the bot. Unless force is set the owning arena is asked
// to unlist it first; arena teardown passes force because the arena is the
// caller and drops the id itself.
func (b *Bot) DeleteBot(ctx context.Context, force bool) error {
	st := b.state.State()
	if !st.Exists {
		return nil
	}
	bot := st.Bot

	if !force {
		if err := b.arenas.WithArena(ctx, bot.ArenaName, func(ctx context.Context, arena ArenaRef) error {
			return arena.DeleteBot(ctx, b.id)
		}); err != nil {
			return err
		}
	}
	if err := b.players.WithPlayer(ctx, bot.PlayerName, func(ctx context.Context, player PlayerRef) error {
		return player.BotDeleted(ctx, b.id)
	}); err != nil {
		return err
	}
	if err := b.state.Clear(ctx); err != nil {
		return err
	}
	b.lifecycle.DeactivateOnIdle()
	b.logger.InfoContext(ctx, "bot deleted", "arena", bot.ArenaName, "force", force)
	return nil
}

// ApplyMove records the bot's latest move. A died bot keeps its state until
// it is deleted.
func (b *Bot) ApplyMove(ctx context.Context, move domain.Move) (domain.Bot, error) {
	st := b.state.State()
	if !st.Exists {
		return domain.Bot{}, domain.ErrBotNotFound
	}
	if st.Bot.Died() {
		return st.Bot, nil
	}
	prev := st.Bot
	st.Bot.Move = move
	if move == domain.MoveDied {
		st.Bot.CurrentHealth = 0
	}
	if err := b.state.Write(ctx); err != nil {
		st.Bot = prev
		return domain.Bot{}, err
	}
	return st.Bot, nil
}
