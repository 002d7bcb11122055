package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"botarena/application/request"
	"botarena/domain"
)

var (
	ErrInvalidPayload = errors.New("service: invalid payload")
)

// Silo is the actor system the service drives.
type Silo interface {
	GetArenaDetails(ctx context.Context, name string) (domain.Arena, error)
	GetAllActiveBots(ctx context.Context, name string) ([]domain.Bot, error)
	GetAllLiveBots(ctx context.Context, name string) ([]domain.Bot, error)
	CreateBot(ctx context.Context, arenaName, playerName string, spec domain.BotToCreate) (domain.Bot, error)
	UnlistBot(ctx context.Context, arenaName string, id uuid.UUID) error
	DeleteBot(ctx context.Context, id uuid.UUID) error
	DeleteArena(ctx context.Context, name string) error
	GetPlayerBots(ctx context.Context, name string) ([]uuid.UUID, error)
}

type ArenaService struct {
	silo     Silo
	metrics  MetricsRecorder
	clock    Clock
	validate Validator
	timeout  time.Duration
}

func NewArenaService(s Silo, m MetricsRecorder, clock Clock, validator Validator) (*ArenaService, error) {
	if s == nil || m == nil || clock == nil || validator == nil {
		return nil, fmt.Errorf("service: missing dependencies: silo=%v metrics=%v clock=%v validator=%v", s, m, clock, validator)
	}
	return &ArenaService{
		silo:     s,
		metrics:  m,
		clock:    clock,
		validate: validator,
	}, nil
}

// WithCallTimeout bounds every call into the silo. Zero disables the bound.
func (s *ArenaService) WithCallTimeout(d time.Duration) *ArenaService {
	if d >= 0 {
		s.timeout = d
	}
	return s
}

func (s *ArenaService) Details(ctx context.Context, req request.Arena) (domain.Arena, error) {
	start := s.clock.Now()
	defer s.record(ctx, "details", start)

	if err := s.validate.Arena(req); err != nil {
		return domain.Arena{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.silo.GetArenaDetails(ctx, req.Arena)
}

func (s *ArenaService) ActiveBots(ctx context.Context, req request.Arena) ([]domain.Bot, error) {
	start := s.clock.Now()
	defer s.record(ctx, "active_bots", start)

	if err := s.validate.Arena(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.silo.GetAllActiveBots(ctx, req.Arena)
}

func (s *ArenaService) LiveBots(ctx context.Context, req request.Arena) ([]domain.Bot, error) {
	start := s.clock.Now()
	defer s.record(ctx, "live_bots", start)

	if err := s.validate.Arena(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.silo.GetAllLiveBots(ctx, req.Arena)
}

func (s *ArenaService) CreateBot(ctx context.Context, req request.CreateBot) (domain.Bot, error) {
	start := s.clock.Now()
	defer s.record(ctx, "create_bot", start)

	if err := s.validate.CreateBot(req); err != nil {
		return domain.Bot{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.silo.CreateBot(ctx, req.Arena, req.Player, req.Bot)
}

func (s *ArenaService) UnlistBot(ctx context.Context, req request.UnlistBot) error {
	start := s.clock.Now()
	defer s.record(ctx, "unlist_bot", start)

	if err := s.validate.UnlistBot(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.silo.UnlistBot(ctx, req.Arena, req.BotID)
}

func (s *ArenaService) DeleteBot(ctx context.Context, req request.DeleteBot) error {
	start := s.clock.Now()
	defer s.record(ctx, "delete_bot", start)

	if err := s.validate.DeleteBot(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.silo.DeleteBot(ctx, req.BotID)
}

func (s *ArenaService) DeleteArena(ctx context.Context, req request.Arena) error {
	start := s.clock.Now()
	defer s.record(ctx, "delete_arena", start)

	if err := s.validate.Arena(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.silo.DeleteArena(ctx, req.Arena)
}

func (s *ArenaService) PlayerBots(ctx context.Context, req request.Player) ([]uuid.UUID, error) {
	start := s.clock.Now()
	defer s.record(ctx, "player_bots", start)

	if err := s.validate.Player(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.silo.GetPlayerBots(ctx, req.Player)
}

func (s *ArenaService) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *ArenaService) record(ctx context.Context, endpoint string, started time.Time) {
	duration := s.clock.Since(started)
	ctx = context.WithoutCancel(ctx)
	s.metrics.RecordLatency(ctx, endpoint, duration)
	s.metrics.IncrementCounter(ctx, "requests."+endpoint, 1)
}

type Clock interface {
	Now() time.Time
	Since(time.Time) time.Duration
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Since(t time.Time) time.Duration { return time.Since(t) }

type MetricsRecorder interface {
	RecordLatency(ctx context.Context, endpoint string, duration time.Duration)
	IncrementCounter(ctx context.Context, name string, delta int)
}

type Validator interface {
	Arena(request.Arena) error
	CreateBot(request.CreateBot) error
	UnlistBot(request.UnlistBot) error
	DeleteBot(request.DeleteBot) error
	Player(request.Player) error
}
