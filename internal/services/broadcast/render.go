package broadcast

import (
	"fmt"
	"strings"

	"github.com/mcoot/connections-leaderboard/internal/model"
)

// Badges for the top three ranks; everyone else gets a bullet
var medals = [3]string{"🥇", "🥈", "🥉"}

// Notices reused by commands and scheduled broadcasts
const (
	NoticeNoPuzzles = "No puzzles have been recorded yet."
	NoticeNoResults = "No results for today's puzzle yet."
)

func badge(rank int) string {
	if rank >= 1 && rank <= len(medals) {
		return medals[rank-1]
	}
	return "•"
}

// RenderDaily composes the daily leaderboard message for one puzzle
func RenderDaily(puzzle model.PuzzleID, entries []model.RankedEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏆 Leaderboard for Puzzle #%d 🏆\n", puzzle)
	writeDailyEntries(&b, entries)
	return b.String()
}

// RenderFinalDaily composes the end-of-day broadcast variant
func RenderFinalDaily(puzzle model.PuzzleID, entries []model.RankedEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏆 Final Leaderboard for Puzzle #%d 🏆\n", puzzle)
	writeDailyEntries(&b, entries)
	return b.String()
}

func writeDailyEntries(b *strings.Builder, entries []model.RankedEntry) {
	for _, entry := range entries {
		fmt.Fprintf(b, "%s %s: %d guesses\n", badge(entry.Rank), entry.DisplayName, entry.Score)
	}
}

// RenderWeekly composes the weekly leaderboard message. considered is the
// number of puzzles in the aggregation window.
func RenderWeekly(considered int, entries []model.WeeklyEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 Weekly Leaderboard (last %d puzzles) 📅\n", considered)
	for _, entry := range entries {
		fmt.Fprintf(&b, "%s %s: %d points (%d/%d played)\n",
			badge(entry.Rank), entry.DisplayName, entry.Total, entry.Played, considered)
	}
	return b.String()
}

// RenderRecordedAck composes the acknowledgment for a stored submission
func RenderRecordedAck(name string, puzzle model.PuzzleID, score int) string {
	return fmt.Sprintf("✅ Recorded %s's result for Puzzle #%d (%d guesses)", name, puzzle, score)
}

// RenderDuplicateWarning composes the duplicate-submission warning
func RenderDuplicateWarning(name string, puzzle model.PuzzleID) string {
	return fmt.Sprintf("⚠️ %s, you've already submitted a result for Puzzle #%d. Only your first submission counts.", name, puzzle)
}
