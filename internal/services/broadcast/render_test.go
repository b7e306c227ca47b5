package broadcast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcoot/connections-leaderboard/internal/model"
)

func TestRenderDailyBadgesByRank(t *testing.T) {
	entries := []model.RankedEntry{
		{DisplayName: "Alice", Score: 3, Rank: 1},
		{DisplayName: "Bob", Score: 3, Rank: 1},
		{DisplayName: "Cara", Score: 5, Rank: 3},
		{DisplayName: "Dan", Score: 6, Rank: 4},
	}

	msg := RenderDaily(510, entries)

	require.Equal(t,
		"🏆 Leaderboard for Puzzle #510 🏆\n"+
			"🥇 Alice: 3 guesses\n"+
			"🥇 Bob: 3 guesses\n"+
			"🥉 Cara: 5 guesses\n"+
			"• Dan: 6 guesses\n",
		msg)
}

func TestRenderFinalDailyHeader(t *testing.T) {
	msg := RenderFinalDaily(510, []model.RankedEntry{
		{DisplayName: "Alice", Score: 4, Rank: 1},
	})
	require.Contains(t, msg, "Final Leaderboard for Puzzle #510")
}

func TestRenderWeekly(t *testing.T) {
	entries := []model.WeeklyEntry{
		{DisplayName: "X", Total: 13, Played: 3, Rank: 1},
		{DisplayName: "Y", Total: 15, Played: 1, Rank: 2},
	}

	msg := RenderWeekly(3, entries)

	require.Equal(t,
		"📅 Weekly Leaderboard (last 3 puzzles) 📅\n"+
			"🥇 X: 13 points (3/3 played)\n"+
			"🥈 Y: 15 points (1/3 played)\n",
		msg)
}

func TestRenderAcks(t *testing.T) {
	require.Equal(t,
		"✅ Recorded Alice's result for Puzzle #510 (4 guesses)",
		RenderRecordedAck("Alice", 510, 4))
	require.Contains(t,
		RenderDuplicateWarning("Alice", 510),
		"already submitted a result for Puzzle #510")
}
