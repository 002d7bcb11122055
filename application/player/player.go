package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"botarena/application/state"
	"botarena/domain"
	"botarena/internal/actor"
)

// Kind is the actor kind and the store namespace of player state.
const Kind = "player"

// DefaultMaxBots is used when the configured limit is not positive.
const DefaultMaxBots = 5

var ErrMissingStore = errors.New("player: missing store")

// State is the durable bookkeeping of one player.
type State struct {
	Exists bool        `json:"exists"`
	Name   string      `json:"name"`
	BotIDs []uuid.UUID `json:"botIds"`
}

type Config struct {
	MaxBots int
}

// Player enforces the deployment quota of one player.
type Player struct {
	name    string
	maxBots int
	state   *state.Persistent[State]
	logger  *slog.Logger
}

func Activate(cfg Config, store state.Store, logger *slog.Logger) (actor.Activator[string, *Player], error) {
	if store == nil {
		return nil, ErrMissingStore
	}
	if cfg.MaxBots <= 0 {
		cfg.MaxBots = DefaultMaxBots
	}
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, name string, _ actor.Lifecycle) (*Player, error) {
		p := &Player{
			name:    name,
			maxBots: cfg.MaxBots,
			state:   state.NewPersistent[State](store, Kind, name),
			logger:  logger.With("player", name),
		}
		if err := p.state.Read(ctx); err != nil {
			return nil, err
		}
		return p, nil
	}, nil
}

// ValidateBotDeploymentLimit fails with domain.ErrQuotaExceeded when the
// player already owns the maximum number of bots.
func (p *Player) ValidateBotDeploymentLimit(ctx context.Context) error {
	if n := len(p.state.State().BotIDs); n >= p.maxBots {
		p.logger.InfoContext(ctx, "bot deployment rejected", "bots", n, "max", p.maxBots)
		return fmt.Errorf("%w: %d of %d", domain.ErrQuotaExceeded, n, p.maxBots)
	}
	return nil
}

func (p *Player) BotCreated(ctx context.Context, id uuid.UUID) error {
	st := p.state.State()
	if slices.Contains(st.BotIDs, id) {
		return nil
	}
	st.Exists = true
	st.Name = p.name
	st.BotIDs = append(st.BotIDs, id)
	if err := p.state.Write(ctx); err != nil {
		st.BotIDs = st.BotIDs[:len(st.BotIDs)-1]
		return err
	}
	return nil
}

func (p *Player) BotDeleted(ctx context.Context, id uuid.UUID) error {
	st := p.state.State()
	i := slices.Index(st.BotIDs, id)
	if i < 0 {
		return nil
	}
	prev := slices.Clone(st.BotIDs)
	st.BotIDs = slices.Delete(st.BotIDs, i, i+1)
	if err := p.state.Write(ctx); err != nil {
		st.BotIDs = prev
		return err
	}
	return nil
}

// GetBots lists the ids of the bots the player owns.
func (p *Player) GetBots(context.Context) []uuid.UUID {
	return slices.Clone(p.state.State().BotIDs)
}
