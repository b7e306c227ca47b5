// Package commands implements the bot's user-facing operations: automatic
// submission capture plus the leaderboard command surface. Replies are plain
// text; the platform adapter owns prefixes, permissions and delivery.
package commands

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mcoot/connections-leaderboard/internal/metrics"
	"github.com/mcoot/connections-leaderboard/internal/model"
	"github.com/mcoot/connections-leaderboard/internal/parser"
	"github.com/mcoot/connections-leaderboard/internal/ranking"
	"github.com/mcoot/connections-leaderboard/internal/services/broadcast"
	"github.com/mcoot/connections-leaderboard/internal/services/leaderboard"
)

// Controller backs the command surface for every community
type Controller struct {
	boards      *leaderboard.Service
	channelName string
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// New creates a commands controller watching channels named channelName
func New(boards *leaderboard.Service, channelName string, m *metrics.Metrics, logger *slog.Logger) *Controller {
	return &Controller{
		boards:      boards,
		channelName: channelName,
		metrics:     m,
		logger:      logger,
	}
}

// HandleMessage inspects an inbound message for a puzzle submission and
// records it. The returned reply is empty when the message is not a
// submission (wrong channel or no parse), which is not an error.
func (c *Controller) HandleMessage(ctx context.Context, msg model.InboundMessage) (string, error) {
	if msg.ChannelName != c.channelName {
		return "", nil
	}

	result, ok := parser.Parse(msg.Text)
	if !ok {
		return "", nil
	}

	inserted, err := c.boards.Record(ctx, msg.CommunityID, result.PuzzleID, model.Submission{
		UserID:      msg.AuthorID,
		DisplayName: msg.AuthorDisplayName,
		Score:       result.Score,
	})
	if err != nil {
		return "", err
	}

	if !inserted {
		c.metrics.SubmissionsDuplicate.Inc()
		return broadcast.RenderDuplicateWarning(msg.AuthorDisplayName, result.PuzzleID), nil
	}

	c.metrics.SubmissionsRecorded.Inc()
	c.logger.Info("submission recorded",
		slog.String("community", string(msg.CommunityID)),
		slog.Int("puzzle", int(result.PuzzleID)),
		slog.String("user", string(msg.AuthorID)),
		slog.Int("score", result.Score),
	)
	return broadcast.RenderRecordedAck(msg.AuthorDisplayName, result.PuzzleID, result.Score), nil
}

// Daily returns the leaderboard for one puzzle. arg is a puzzle number or
// "today", which resolves to the latest stored puzzle.
func (c *Controller) Daily(ctx context.Context, community model.CommunityID, arg string) (string, error) {
	lb, err := c.boards.Snapshot(ctx, community)
	if err != nil {
		return "", err
	}

	var puzzle model.PuzzleID
	if strings.EqualFold(arg, "today") {
		latest, ok := lb.LatestPuzzle()
		if !ok {
			return broadcast.NoticeNoPuzzles, nil
		}
		puzzle = latest
	} else {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return "Usage: leaderboard <puzzle number|today>", nil
		}
		puzzle = model.PuzzleID(n)
	}

	entries := ranking.Daily(lb, puzzle)
	if len(entries) == 0 {
		return "No results yet for Puzzle #" + strconv.Itoa(int(puzzle)) + ".", nil
	}
	return broadcast.RenderDaily(puzzle, entries), nil
}

// Weekly returns the rolling weekly leaderboard
func (c *Controller) Weekly(ctx context.Context, community model.CommunityID) (string, error) {
	lb, err := c.boards.Snapshot(ctx, community)
	if err != nil {
		return "", err
	}
	if lb.IsEmpty() {
		return broadcast.NoticeNoPuzzles, nil
	}

	considered := len(lb.RecentPuzzles(ranking.WeeklyWindow))
	return broadcast.RenderWeekly(considered, ranking.Weekly(lb)), nil
}

// Clear wipes the community's leaderboard. The adapter gates this behind a
// permission check.
func (c *Controller) Clear(ctx context.Context, community model.CommunityID) (string, error) {
	if err := c.boards.Clear(ctx, community); err != nil {
		return "", err
	}
	c.logger.Info("leaderboard cleared", slog.String("community", string(community)))
	return "🗑️ Leaderboard cleared. All recorded results are gone.", nil
}

// RecordKey returns the community's storage record identifier (diagnostic)
func (c *Controller) RecordKey(community model.CommunityID) string {
	return c.boards.RecordKey(community)
}
