// Package factory wires the application's components together.
package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mcoot/connections-leaderboard/internal/config"
	"github.com/mcoot/connections-leaderboard/internal/delivery"
	"github.com/mcoot/connections-leaderboard/internal/dependencies/clock"
	"github.com/mcoot/connections-leaderboard/internal/metrics"
	"github.com/mcoot/connections-leaderboard/internal/scheduler"
	"github.com/mcoot/connections-leaderboard/internal/services/broadcast"
	"github.com/mcoot/connections-leaderboard/internal/services/commands"
	"github.com/mcoot/connections-leaderboard/internal/services/leaderboard"
	"github.com/mcoot/connections-leaderboard/internal/storage"
	filestorage "github.com/mcoot/connections-leaderboard/internal/storage/file"
	"github.com/mcoot/connections-leaderboard/internal/storage/memory"
	redisstorage "github.com/mcoot/connections-leaderboard/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	LeaderboardService *leaderboard.Service
	DeliveryGate       *delivery.Gate
	BroadcastService   *broadcast.Service
	CommandsController *commands.Controller
	Scheduler          *scheduler.Scheduler

	// Metrics
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry
}

// Options holds the factory's inputs beyond process configuration
type Options struct {
	// Config is the loaded process configuration (required)
	Config *config.Config
	// Sender is the platform's outbound capability (required)
	Sender delivery.Sender
	// Resolver locates each community's designated channel (required)
	Resolver broadcast.ChannelResolver
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New("Config is required")
	}
	if opts.Sender == nil || opts.Resolver == nil {
		return nil, errors.New("Sender and Resolver are required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	weekday, err := cfg.Weekday()
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	clk := clock.New()

	boards := leaderboard.New(store, logger)
	gate := delivery.New(opts.Sender, clk, delivery.DefaultConfig(), logger)
	broadcaster := broadcast.New(boards, gate, opts.Resolver, cfg.ChannelName, m, logger)
	controller := commands.New(boards, cfg.ChannelName, m, logger)
	sched := scheduler.New(clk, scheduler.Config{
		Hour:         cfg.BroadcastHour,
		Minute:       cfg.BroadcastMinute,
		Weekday:      weekday,
		TickInterval: scheduler.DefaultTickInterval,
	}, broadcaster, m, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		LeaderboardService: boards,
		DeliveryGate:       gate,
		BroadcastService:   broadcaster,
		CommandsController: controller,
		Scheduler:          sched,
		Metrics:            m,
		Registry:           registry,
	}, nil
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageType {
	case config.StorageTypeMemory:
		return memory.New(), nil
	case config.StorageTypeFile:
		return filestorage.New(cfg.DataDir)
	case config.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		store, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("invalid storage type %q", cfg.StorageType)
	}
}

// Close releases storage resources
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
