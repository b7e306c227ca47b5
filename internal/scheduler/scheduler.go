// Package scheduler fires the daily and weekly leaderboard broadcasts at a
// configured UTC time, at most once per minute boundary.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/connections-leaderboard/internal/dependencies/clock"
	"github.com/mcoot/connections-leaderboard/internal/metrics"
)

// boundaryLayout keys one UTC wall-clock minute
const boundaryLayout = "2006-01-02T15:04"

// DefaultTickInterval is comfortably finer than the minute boundary, so a
// boundary is never stepped over between ticks
const DefaultTickInterval = 20 * time.Second

// Broadcaster runs the actual broadcast sweeps
type Broadcaster interface {
	BroadcastDaily(ctx context.Context) error
	BroadcastWeekly(ctx context.Context) error
}

// Config holds the broadcast schedule
type Config struct {
	// Hour and Minute are the daily broadcast time, UTC
	Hour   int
	Minute int
	// Weekday additionally triggers the weekly broadcast after the daily one
	Weekday time.Weekday
	// TickInterval is how often the scheduler wakes; defaults to
	// DefaultTickInterval
	TickInterval time.Duration
}

// DefaultConfig broadcasts daily at 21:00 UTC, weekly on Sundays
func DefaultConfig() Config {
	return Config{
		Hour:         21,
		Minute:       0,
		Weekday:      time.Sunday,
		TickInterval: DefaultTickInterval,
	}
}

// Scheduler drives scheduled broadcasts off an injectable clock.
// Not safe for concurrent Tick calls; Run is the single driver.
type Scheduler struct {
	clock       clock.Clock
	cfg         Config
	broadcaster Broadcaster
	metrics     *metrics.Metrics
	logger      *slog.Logger

	// lastFired is the minute boundary key of the most recent firing,
	// guarding against double-firing when ticks land in the same minute
	lastFired string
}

// New creates a scheduler
func New(clk clock.Clock, cfg Config, broadcaster Broadcaster, m *metrics.Metrics, logger *slog.Logger) *Scheduler {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	return &Scheduler{
		clock:       clk,
		cfg:         cfg,
		broadcaster: broadcaster,
		metrics:     m,
		logger:      logger,
	}
}

// Run ticks until ctx is cancelled. A failure inside one tick never stops
// the loop or future ticks.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	s.logger.Info("scheduler started",
		slog.Int("hour", s.cfg.Hour),
		slog.Int("minute", s.cfg.Minute),
		slog.String("weekly_day", s.cfg.Weekday.String()),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick checks whether the current minute is the broadcast boundary and
// fires at most once for it. Exported for deterministic tests.
func (s *Scheduler) Tick(ctx context.Context) {
	s.metrics.SchedulerTicks.Inc()

	now := s.clock.Now().UTC()
	key := now.Format(boundaryLayout)
	if key == s.lastFired {
		return
	}

	if now.Hour() != s.cfg.Hour || now.Minute() != s.cfg.Minute {
		return
	}

	s.lastFired = key
	s.fire(ctx, key, now.Weekday() == s.cfg.Weekday)
}

// fire runs the broadcasts, containing panics so a bad sweep can't take
// down the scheduling loop
func (s *Scheduler) fire(ctx context.Context, boundary string, weekly bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic during scheduled broadcast",
				slog.String("boundary", boundary),
				slog.Any("panic", r),
			)
		}
	}()

	s.logger.Info("firing daily broadcast", slog.String("boundary", boundary))
	if err := s.broadcaster.BroadcastDaily(ctx); err != nil {
		s.logger.Error("daily broadcast failed",
			slog.String("boundary", boundary),
			slog.String("error", err.Error()),
		)
	}

	if !weekly {
		return
	}

	s.logger.Info("firing weekly broadcast", slog.String("boundary", boundary))
	if err := s.broadcaster.BroadcastWeekly(ctx); err != nil {
		s.logger.Error("weekly broadcast failed",
			slog.String("boundary", boundary),
			slog.String("error", err.Error()),
		)
	}
}
