// Package delivery sends composed text to the platform adapter with bounded
// retries on throttling.
package delivery

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mcoot/connections-leaderboard/internal/dependencies/clock"
)

// Default gate behavior
const (
	DefaultMaxAttempts       = 3
	DefaultRetryAfter        = 1 * time.Second
	DefaultInterSendInterval = 1 * time.Second
)

// Sender is the outbound capability the platform adapter provides.
// A rate-limited send must return a *ThrottledError.
type Sender interface {
	SendText(ctx context.Context, destination string, text string) error
}

// Config tunes the gate's retry and pacing behavior
type Config struct {
	// MaxAttempts bounds send attempts per message, including the first
	MaxAttempts int
	// RetryAfter is the wait between attempts when the platform doesn't
	// supply one
	RetryAfter time.Duration
	// InterSendInterval is the pause between successive sends in a
	// broadcast sweep
	InterSendInterval time.Duration
}

// DefaultConfig returns the default gate configuration
func DefaultConfig() Config {
	return Config{
		MaxAttempts:       DefaultMaxAttempts,
		RetryAfter:        DefaultRetryAfter,
		InterSendInterval: DefaultInterSendInterval,
	}
}

// Gate wraps a Sender with bounded retry on throttling and pacing between
// sends. Send never returns an error: delivery failure is reported via the
// returned flag and logged, and callers treat it as non-fatal.
type Gate struct {
	sender Sender
	clock  clock.Clock
	cfg    Config
	logger *slog.Logger
}

// New creates a delivery gate
func New(sender Sender, clk clock.Clock, cfg Config, logger *slog.Logger) *Gate {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.RetryAfter <= 0 {
		cfg.RetryAfter = DefaultRetryAfter
	}
	return &Gate{
		sender: sender,
		clock:  clk,
		cfg:    cfg,
		logger: logger,
	}
}

// Send delivers text to destination, retrying on throttling up to the
// configured bound. Returns whether delivery succeeded.
func (g *Gate) Send(ctx context.Context, destination string, text string) bool {
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		err := g.sender.SendText(ctx, destination, text)
		if err == nil {
			return true
		}

		var throttled *ThrottledError
		if !errors.As(err, &throttled) {
			g.logger.Error("delivery failed",
				slog.String("destination", destination),
				slog.String("error", err.Error()),
			)
			return false
		}

		if attempt == g.cfg.MaxAttempts {
			break
		}

		wait := throttled.RetryAfter
		if wait <= 0 {
			wait = g.cfg.RetryAfter
		}
		g.logger.Warn("delivery throttled, retrying",
			slog.String("destination", destination),
			slog.Int("attempt", attempt),
			slog.Duration("wait", wait),
		)
		if err := g.clock.Sleep(ctx, wait); err != nil {
			return false
		}
	}

	g.logger.Error("delivery retries exhausted",
		slog.String("destination", destination),
		slog.Int("attempts", g.cfg.MaxAttempts),
	)
	return false
}

// Pace sleeps the inter-send interval; called between per-community sends
// during a broadcast sweep to stay under platform-wide limits
func (g *Gate) Pace(ctx context.Context) {
	if g.cfg.InterSendInterval <= 0 {
		return
	}
	_ = g.clock.Sleep(ctx, g.cfg.InterSendInterval)
}
