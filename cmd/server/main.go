package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"botarena/application/arena"
	"botarena/application/journal"
	"botarena/application/player"
	"botarena/application/processing"
	"botarena/application/service"
	"botarena/application/silo"
	"botarena/application/state"
	"botarena/application/state/memory"
	"botarena/application/state/sqlite"
	"botarena/internal/config"
	"botarena/internal/telemetry"
	"botarena/server"
	"botarena/server/auth"
	"botarena/server/handler"
)

type closableStore interface {
	state.Store
	Close() error
}

func main() {
	configPath := flag.String("config", os.Getenv("BOTARENA_CONFIG"), "path to the YAML config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath); err != nil {
		log.Fatalf("botarena: %v", err)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	level, _ := cfg.Log.SlogLevel()

	tel, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: "botarena",
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Level:       level,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()
	logger := tel.Logger
	slog.SetDefault(logger)

	store, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.ErrorContext(ctx, "store close failed", "err", err)
		}
	}()

	var events arena.Journal = journal.Nop{}
	if cfg.Journal.Dir != "" {
		w := journal.NewWriter(cfg.Journal.Dir, "arena")
		defer w.Close()
		events = w
	}

	s, err := silo.New(silo.Config{
		Arena: arena.Config{
			Width:       cfg.Arena.Width,
			Height:      cfg.Arena.Height,
			DrainWindow: cfg.Arena.DrainWindow,
		},
		Player:      player.Config{MaxBots: cfg.Player.MaxBots},
		Processing:  processing.Config{Tick: cfg.Processing.Tick, IdleTimeout: cfg.Processing.IdleTimeout},
		IdleTimeout: cfg.Actor.IdleTimeout,
	}, store,
		silo.WithLogger(logger),
		silo.WithJournal(events),
		silo.WithStepper(processing.LogStepper{Logger: logger}),
	)
	if err != nil {
		return err
	}

	metrics, err := service.NewOTelMetrics(tel.MeterProvider)
	if err != nil {
		return err
	}
	svc, err := service.NewArenaService(s, metrics, service.SystemClock{}, service.SimpleValidator{})
	if err != nil {
		return err
	}
	svc.WithCallTimeout(cfg.Server.CallTimeout)

	secret := cfg.Auth.Secret
	if secret == "" {
		return errors.New("AUTH_SECRET is required")
	}
	tokens, err := auth.NewTokens(secret)
	if err != nil {
		return err
	}
	schema, err := handler.NewBotSchema()
	if err != nil {
		return err
	}

	routes := server.Route(server.RouteConfig{
		API:            svc,
		Tokens:         tokens,
		Schema:         schema,
		Activations:    s.Activations,
		StreamInterval: cfg.Server.StreamInterval,
	})
	srv := server.NewServer(ctx, cfg.Server.ListenAddr(), routes)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.InfoContext(ctx, "server listening", "addr", srv.Addr(), "store", cfg.Store.Driver)
		if err := srv.Serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		logger.InfoContext(ctx, "shutdown initiated")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.ErrorContext(ctx, "graceful shutdown failed", "error", err)
			if err := srv.Close(); err != nil {
				logger.ErrorContext(ctx, "forced close failed", "error", err)
			}
		}
		if err := s.Close(shutdownCtx); err != nil {
			logger.ErrorContext(ctx, "silo close failed", "error", err)
		}
		return nil
	})
	err = eg.Wait()
	logger.InfoContext(ctx, "server shutdown complete")
	return err
}

func openStore(cfg config.StoreConfig) (closableStore, error) {
	switch cfg.Driver {
	case config.StoreSQLite:
		st, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return memory.NewStore(), nil
	}
}
