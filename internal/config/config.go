package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"botarena/utils"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

type Config struct {
	Actor      ActorConfig      `yaml:"actor"`
	Arena      ArenaConfig      `yaml:"arena"`
	Player     PlayerConfig     `yaml:"player"`
	Processing ProcessingConfig `yaml:"processing"`
	Store      StoreConfig      `yaml:"store"`
	Journal    JournalConfig    `yaml:"journal"`
	Server     ServerConfig     `yaml:"server"`
	Auth       AuthConfig       `yaml:"auth"`
	Log        LogConfig        `yaml:"log"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

type ActorConfig struct {
	// IdleTimeout is how long an activation may go without a call before it
	// is collected. Zero disables collection.
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

type ArenaConfig struct {
	Width       int           `yaml:"width"`
	Height      int           `yaml:"height"`
	DrainWindow time.Duration `yaml:"drain_window"`
}

type PlayerConfig struct {
	MaxBots int `yaml:"max_bots"`
}

type ProcessingConfig struct {
	Tick        time.Duration `yaml:"tick"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type JournalConfig struct {
	// Dir empty disables the journal.
	Dir string `yaml:"dir"`
}

type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	Port           string        `yaml:"port"`
	CallTimeout    time.Duration `yaml:"call_timeout"`
	StreamInterval time.Duration `yaml:"stream_interval"`
}

type AuthConfig struct {
	Secret string `yaml:"secret"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type TelemetryConfig struct {
	// OTLPEndpoint empty keeps traces and logs local.
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

// Load reads the YAML file at path over the defaults and then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, fmt.Errorf("config env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Defaults leaves the arena dimensions at zero: an arena created without
// configured dimensions is a zero sized arena.
func Defaults() Config {
	return Config{
		Actor:      ActorConfig{IdleTimeout: 15 * time.Minute},
		Arena:      ArenaConfig{DrainWindow: 2 * time.Second},
		Player:     PlayerConfig{MaxBots: 5},
		Processing: ProcessingConfig{Tick: 500 * time.Millisecond, IdleTimeout: 30 * time.Second},
		Store:      StoreConfig{Driver: StoreMemory, Path: "data/botarena.db"},
		Server: ServerConfig{
			Addr:           "0.0.0.0",
			Port:           "9090",
			CallTimeout:    30 * time.Second,
			StreamInterval: time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

func (c *Config) applyEnv() error {
	var errs []error
	intVar := func(dst *int, key string) {
		v, err := utils.GetEnvInt(key, *dst)
		errs = append(errs, err)
		*dst = v
	}
	durVar := func(dst *time.Duration, key string) {
		v, err := utils.GetEnvDuration(key, *dst)
		errs = append(errs, err)
		*dst = v
	}

	durVar(&c.Actor.IdleTimeout, "ACTOR_IDLE_TIMEOUT")
	intVar(&c.Arena.Width, "ARENA_WIDTH")
	intVar(&c.Arena.Height, "ARENA_HEIGHT")
	durVar(&c.Arena.DrainWindow, "ARENA_DRAIN_WINDOW")
	intVar(&c.Player.MaxBots, "PLAYER_MAX_BOTS")
	durVar(&c.Processing.Tick, "PROCESSING_TICK")
	durVar(&c.Processing.IdleTimeout, "PROCESSING_IDLE_TIMEOUT")
	c.Store.Driver = utils.GetEnvDefault("STORE_DRIVER", c.Store.Driver)
	c.Store.Path = utils.GetEnvDefault("STORE_PATH", c.Store.Path)
	c.Journal.Dir = utils.GetEnvDefault("JOURNAL_DIR", c.Journal.Dir)
	c.Server.Addr = utils.GetEnvDefault("ADDR", c.Server.Addr)
	c.Server.Port = utils.GetEnvDefault("PORT", c.Server.Port)
	c.Auth.Secret = utils.GetEnvDefault("AUTH_SECRET", c.Auth.Secret)
	c.Log.Level = utils.GetEnvDefault("LOG_LEVEL", c.Log.Level)
	c.Telemetry.OTLPEndpoint = utils.GetEnvDefault("OTEL_EXPORTER_OTLP_ENDPOINT", c.Telemetry.OTLPEndpoint)
	return errors.Join(errs...)
}

func (c Config) Validate() error {
	if c.Arena.Width < 0 || c.Arena.Height < 0 {
		return fmt.Errorf("arena dimensions must not be negative: %dx%d", c.Arena.Width, c.Arena.Height)
	}
	if c.Actor.IdleTimeout < 0 {
		return fmt.Errorf("actor idle timeout must not be negative: %v", c.Actor.IdleTimeout)
	}
	if c.Arena.DrainWindow < 0 {
		return fmt.Errorf("arena drain window must not be negative: %v", c.Arena.DrainWindow)
	}
	switch c.Store.Driver {
	case StoreMemory:
	case StoreSQLite:
		if c.Store.Path == "" {
			return errors.New("sqlite store needs a path")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// ListenAddr joins Addr and Port.
func (c ServerConfig) ListenAddr() string {
	return c.Addr + ":" + c.Port
}

func (c LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}
