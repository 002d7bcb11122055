package arena

import (
	"context"

	"github.com/google/uuid"

	"botarena/application/journal"
	"botarena/domain"
)

//go:generate go tool mockgen -destination=./mocks/contracts_mock.go -package=mocks . BotRef,PlayerRef,ProcessingRef,BotDirectory,PlayerDirectory,ProcessingDirectory,Journal

// BotRef is the part of the bot actor the arena talks to.
type BotRef interface {
	GetState(ctx context.Context) (domain.Bot, error)
	CreateBot(ctx context.Context, spec domain.BotToCreate) (domain.Bot, error)
	DeleteBot(ctx context.Context, force bool) error
}

// PlayerRef is the part of the player actor the arena talks to.
type PlayerRef interface {
	ValidateBotDeploymentLimit(ctx context.Context) error
	BotCreated(ctx context.Context, id uuid.UUID) error
}

// ProcessingRef is the part of the processing actor the arena talks to.
type ProcessingRef interface {
	Ping(ctx context.Context) error
	Stop(ctx context.Context) error
}

// BotDirectory resolves the bot actor for id and runs work as one turn of it.
type BotDirectory interface {
	WithBot(ctx context.Context, id uuid.UUID, work func(ctx context.Context, bot BotRef) error) error
}

// PlayerDirectory resolves the player actor for name and runs work as one turn of it.
type PlayerDirectory interface {
	WithPlayer(ctx context.Context, name string, work func(ctx context.Context, player PlayerRef) error) error
}

// ProcessingDirectory resolves the processing actor of an arena and runs
// work as one turn of it.
type ProcessingDirectory interface {
	WithProcessor(ctx context.Context, arena string, work func(ctx context.Context, processor ProcessingRef) error) error
}

// Journal receives workflow events. Failures are logged and never abort a
// workflow.
type Journal interface {
	Record(ctx context.Context, ev journal.Event) error
}
