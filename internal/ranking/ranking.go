// Package ranking computes daily and weekly leaderboard orderings.
// All functions are pure and never mutate the leaderboard they are given.
package ranking

import (
	"sort"

	"github.com/mcoot/connections-leaderboard/internal/model"
)

const (
	// WeeklyWindow is the number of most recent puzzles aggregated into the
	// weekly leaderboard
	WeeklyWindow = 7

	// MissedPuzzlePenalty is added to a user's weekly total for each puzzle
	// in the considered window they did not play
	MissedPuzzlePenalty = 6
)

// Daily ranks all submissions for one puzzle, fewest guesses first.
// Ties share a rank (competition ranking); equal scores order by ascending
// user id, which keeps the result independent of insertion order.
func Daily(lb *model.Leaderboard, puzzle model.PuzzleID) []model.RankedEntry {
	subs := lb.Submissions(puzzle)

	entries := make([]model.RankedEntry, 0, len(subs))
	for _, sub := range subs {
		entries = append(entries, model.RankedEntry{
			UserID:      sub.UserID,
			DisplayName: sub.DisplayName,
			Score:       sub.Score,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score < entries[j].Score
		}
		return entries[i].UserID < entries[j].UserID
	})

	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}

	return entries
}

// Weekly aggregates the most recent WeeklyWindow puzzles into per-user
// totals, penalizing missed puzzles, and ranks ascending by total with the
// same competition-ranking tie rule as Daily. Users who played none of the
// considered puzzles do not appear.
func Weekly(lb *model.Leaderboard) []model.WeeklyEntry {
	window := lb.RecentPuzzles(WeeklyWindow)

	totals := make(map[model.UserID]*model.WeeklyEntry)
	for _, puzzle := range window {
		for user, sub := range lb.Submissions(puzzle) {
			entry, ok := totals[user]
			if !ok {
				entry = &model.WeeklyEntry{
					UserID:      user,
					DisplayName: sub.DisplayName,
				}
				totals[user] = entry
			}
			entry.Total += sub.Score
			entry.Played++
		}
	}

	entries := make([]model.WeeklyEntry, 0, len(totals))
	for _, entry := range totals {
		entry.Total += MissedPuzzlePenalty * (len(window) - entry.Played)
		entries = append(entries, *entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total < entries[j].Total
		}
		return entries[i].UserID < entries[j].UserID
	})

	for i := range entries {
		if i > 0 && entries[i].Total == entries[i-1].Total {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}

	return entries
}
