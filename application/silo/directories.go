package silo

import (
	"context"

	"github.com/google/uuid"

	"botarena/application/arena"
	"botarena/application/bot"
	"botarena/application/player"
	"botarena/application/processing"
)

// The adapters below turn hosts into the narrow directories each actor
// consumes. They hold the silo rather than the hosts because the hosts are
// built after the activators that need them.

type arenaBots struct{ s *Silo }

func (d arenaBots) WithBot(ctx context.Context, id uuid.UUID, work func(context.Context, arena.BotRef) error) error {
	return d.s.bots.Invoke(ctx, id, func(ctx context.Context, b *bot.Bot) error {
		return work(ctx, b)
	})
}

type arenaPlayers struct{ s *Silo }

func (d arenaPlayers) WithPlayer(ctx context.Context, name string, work func(context.Context, arena.PlayerRef) error) error {
	return d.s.players.Invoke(ctx, name, func(ctx context.Context, p *player.Player) error {
		return work(ctx, p)
	})
}

type arenaProcessors struct{ s *Silo }

func (d arenaProcessors) WithProcessor(ctx context.Context, name string, work func(context.Context, arena.ProcessingRef) error) error {
	return d.s.processors.Invoke(ctx, name, func(ctx context.Context, p *processing.Processor) error {
		return work(ctx, p)
	})
}

type botArenas struct{ s *Silo }

func (d botArenas) WithArena(ctx context.Context, name string, work func(context.Context, bot.ArenaRef) error) error {
	return d.s.arenas.Invoke(ctx, name, func(ctx context.Context, a *arena.Arena) error {
		return work(ctx, a)
	})
}

type botPlayers struct{ s *Silo }

func (d botPlayers) WithPlayer(ctx context.Context, name string, work func(context.Context, bot.PlayerRef) error) error {
	return d.s.players.Invoke(ctx, name, func(ctx context.Context, p *player.Player) error {
		return work(ctx, p)
	})
}
