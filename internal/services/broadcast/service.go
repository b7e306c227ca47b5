// Package broadcast composes leaderboard messages and sweeps them out to
// every community's designated channel.
package broadcast

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/connections-leaderboard/internal/delivery"
	"github.com/mcoot/connections-leaderboard/internal/metrics"
	"github.com/mcoot/connections-leaderboard/internal/model"
	"github.com/mcoot/connections-leaderboard/internal/ranking"
	"github.com/mcoot/connections-leaderboard/internal/services/leaderboard"
)

// ChannelResolver locates a community's designated channel.
// Returns model.ErrChannelNotFound when the community has no such channel.
type ChannelResolver interface {
	ResolveChannel(ctx context.Context, community model.CommunityID, channelName string) (string, error)
}

// Service runs broadcast sweeps. One community's failure never blocks the
// rest of the sweep.
type Service struct {
	boards      *leaderboard.Service
	gate        *delivery.Gate
	resolver    ChannelResolver
	channelName string
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// New creates a broadcast service targeting channels named channelName
func New(boards *leaderboard.Service, gate *delivery.Gate, resolver ChannelResolver, channelName string, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		boards:      boards,
		gate:        gate,
		resolver:    resolver,
		channelName: channelName,
		metrics:     m,
		logger:      logger,
	}
}

// BroadcastDaily sends the final daily leaderboard to every community.
// Communities with nothing recorded still get a notice, matching the
// long-standing end-of-day post.
func (s *Service) BroadcastDaily(ctx context.Context) error {
	return s.sweep(ctx, "daily", func(lb *model.Leaderboard) (string, bool) {
		if lb.IsEmpty() {
			return NoticeNoPuzzles, true
		}
		latest, _ := lb.LatestPuzzle()
		entries := ranking.Daily(lb, latest)
		if len(entries) == 0 {
			return NoticeNoResults, true
		}
		return RenderFinalDaily(latest, entries), true
	})
}

// BroadcastWeekly sends the weekly aggregate to every community that has at
// least one stored submission
func (s *Service) BroadcastWeekly(ctx context.Context) error {
	return s.sweep(ctx, "weekly", func(lb *model.Leaderboard) (string, bool) {
		if lb.IsEmpty() {
			return "", false
		}
		considered := len(lb.RecentPuzzles(ranking.WeeklyWindow))
		return RenderWeekly(considered, ranking.Weekly(lb)), true
	})
}

// sweep iterates all communities, composing a message per community via
// compose and delivering it. compose returning false skips the community.
func (s *Service) sweep(ctx context.Context, kind string, compose func(*model.Leaderboard) (string, bool)) error {
	communities, err := s.boards.Communities(ctx)
	if err != nil {
		return fmt.Errorf("enumerating communities for %s broadcast: %w", kind, err)
	}

	for i, community := range communities {
		if i > 0 {
			s.gate.Pace(ctx)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.broadcastOne(ctx, kind, community, compose)
	}
	return nil
}

func (s *Service) broadcastOne(ctx context.Context, kind string, community model.CommunityID, compose func(*model.Leaderboard) (string, bool)) {
	logger := s.logger.With(
		slog.String("kind", kind),
		slog.String("community", string(community)),
	)

	lb, err := s.boards.Snapshot(ctx, community)
	if err != nil {
		logger.Error("broadcast skipped, snapshot failed", slog.String("error", err.Error()))
		s.metrics.BroadcastsSkipped.WithLabelValues("snapshot_error").Inc()
		return
	}

	text, ok := compose(lb)
	if !ok {
		s.metrics.BroadcastsSkipped.WithLabelValues("empty").Inc()
		return
	}

	destination, err := s.resolver.ResolveChannel(ctx, community, s.channelName)
	if err != nil {
		logger.Warn("broadcast skipped, no designated channel",
			slog.String("channel", s.channelName),
			slog.String("error", err.Error()),
		)
		s.metrics.BroadcastsSkipped.WithLabelValues("no_channel").Inc()
		return
	}

	if !s.gate.Send(ctx, destination, text) {
		logger.Error("broadcast delivery failed")
		s.metrics.DeliveryFailures.Inc()
		return
	}

	s.metrics.BroadcastsSent.WithLabelValues(kind).Inc()
}
