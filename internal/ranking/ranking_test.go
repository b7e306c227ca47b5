package ranking

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/connections-leaderboard/internal/model"
)

type RankingSuite struct {
	suite.Suite
}

func TestRankingSuite(t *testing.T) {
	suite.Run(t, new(RankingSuite))
}

func board(subs map[model.PuzzleID][]model.Submission) *model.Leaderboard {
	lb := model.NewLeaderboard()
	for puzzle, entries := range subs {
		for _, sub := range entries {
			lb.Set(puzzle, sub)
		}
	}
	return lb
}

// Daily ranking

func (s *RankingSuite) TestDailySortsByScoreAscending() {
	lb := board(map[model.PuzzleID][]model.Submission{
		510: {
			{UserID: "u1", DisplayName: "Alice", Score: 6},
			{UserID: "u2", DisplayName: "Bob", Score: 4},
			{UserID: "u3", DisplayName: "Cara", Score: 5},
		},
	})

	entries := Daily(lb, 510)

	s.Require().Len(entries, 3)
	s.Equal(model.UserID("u2"), entries[0].UserID)
	s.Equal(model.UserID("u3"), entries[1].UserID)
	s.Equal(model.UserID("u1"), entries[2].UserID)
	s.Equal([]int{1, 2, 3}, []int{entries[0].Rank, entries[1].Rank, entries[2].Rank})
}

func (s *RankingSuite) TestDailyCompetitionRanking() {
	// Scores {A:3, B:3, C:5}: A and B share rank 1, C ranks 3 (not 2)
	lb := board(map[model.PuzzleID][]model.Submission{
		510: {
			{UserID: "a", DisplayName: "A", Score: 3},
			{UserID: "b", DisplayName: "B", Score: 3},
			{UserID: "c", DisplayName: "C", Score: 5},
		},
	})

	entries := Daily(lb, 510)

	s.Require().Len(entries, 3)
	s.Equal(1, entries[0].Rank)
	s.Equal(1, entries[1].Rank)
	s.Equal(3, entries[2].Rank)
}

func (s *RankingSuite) TestDailyTieBreakByUserID() {
	lb := board(map[model.PuzzleID][]model.Submission{
		510: {
			{UserID: "zed", DisplayName: "Zed", Score: 4},
			{UserID: "amy", DisplayName: "Amy", Score: 4},
		},
	})

	entries := Daily(lb, 510)

	s.Require().Len(entries, 2)
	s.Equal(model.UserID("amy"), entries[0].UserID)
	s.Equal(model.UserID("zed"), entries[1].UserID)
}

func (s *RankingSuite) TestDailyStableUnderInsertionOrder() {
	subs := []model.Submission{
		{UserID: "u1", DisplayName: "Alice", Score: 4},
		{UserID: "u2", DisplayName: "Bob", Score: 4},
		{UserID: "u3", DisplayName: "Cara", Score: 6},
		{UserID: "u4", DisplayName: "Dan", Score: 5},
	}

	forward := model.NewLeaderboard()
	for _, sub := range subs {
		forward.Set(510, sub)
	}
	backward := model.NewLeaderboard()
	for i := len(subs) - 1; i >= 0; i-- {
		backward.Set(510, subs[i])
	}

	s.Equal(Daily(forward, 510), Daily(backward, 510))
}

func (s *RankingSuite) TestDailyEmptyPuzzle() {
	s.Empty(Daily(model.NewLeaderboard(), 510))
}

// Weekly aggregate

func (s *RankingSuite) TestWeeklyPenalizesMissedPuzzles() {
	// Three considered puzzles: X plays all (4+5+4=13), Y plays one
	// (3 + 2*6 = 15); X ranks ahead
	lb := board(map[model.PuzzleID][]model.Submission{
		510: {
			{UserID: "x", DisplayName: "X", Score: 4},
			{UserID: "y", DisplayName: "Y", Score: 3},
		},
		511: {{UserID: "x", DisplayName: "X", Score: 5}},
		512: {{UserID: "x", DisplayName: "X", Score: 4}},
	})

	entries := Weekly(lb)

	s.Require().Len(entries, 2)
	s.Equal(model.UserID("x"), entries[0].UserID)
	s.Equal(13, entries[0].Total)
	s.Equal(3, entries[0].Played)
	s.Equal(1, entries[0].Rank)

	s.Equal(model.UserID("y"), entries[1].UserID)
	s.Equal(15, entries[1].Total)
	s.Equal(1, entries[1].Played)
	s.Equal(2, entries[1].Rank)
}

func (s *RankingSuite) TestWeeklyWindowIsLargestSevenPuzzles() {
	lb := model.NewLeaderboard()
	// Ten puzzles; u1 plays all, u2 plays only the three oldest
	for i := 1; i <= 10; i++ {
		lb.Set(model.PuzzleID(i), model.Submission{UserID: "u1", DisplayName: "One", Score: 4})
	}
	for i := 1; i <= 3; i++ {
		lb.Set(model.PuzzleID(i), model.Submission{UserID: "u2", DisplayName: "Two", Score: 4})
	}

	entries := Weekly(lb)

	// u2's puzzles all fall outside the window of the 7 largest ids
	s.Require().Len(entries, 1)
	s.Equal(model.UserID("u1"), entries[0].UserID)
	s.Equal(7, entries[0].Played)
	s.Equal(28, entries[0].Total)
}

func (s *RankingSuite) TestWeeklyFewerPuzzlesThanWindow() {
	// Only two stored puzzles: missing one of two costs a single penalty
	lb := board(map[model.PuzzleID][]model.Submission{
		510: {{UserID: "u1", DisplayName: "One", Score: 4}},
		511: {
			{UserID: "u1", DisplayName: "One", Score: 5},
			{UserID: "u2", DisplayName: "Two", Score: 3},
		},
	})

	entries := Weekly(lb)

	s.Require().Len(entries, 2)
	s.Equal(9, entries[0].Total)
	s.Equal(model.UserID("u1"), entries[0].UserID)
	s.Equal(3+MissedPuzzlePenalty, entries[1].Total)
}

func (s *RankingSuite) TestWeeklyCompetitionRanking() {
	lb := board(map[model.PuzzleID][]model.Submission{
		510: {
			{UserID: "a", DisplayName: "A", Score: 4},
			{UserID: "b", DisplayName: "B", Score: 4},
			{UserID: "c", DisplayName: "C", Score: 6},
		},
	})

	entries := Weekly(lb)

	s.Require().Len(entries, 3)
	s.Equal(1, entries[0].Rank)
	s.Equal(1, entries[1].Rank)
	s.Equal(3, entries[2].Rank)
}

func (s *RankingSuite) TestWeeklyEmptyBoard() {
	s.Empty(Weekly(model.NewLeaderboard()))
}

func (s *RankingSuite) TestWeeklyDoesNotMutateBoard() {
	lb := board(map[model.PuzzleID][]model.Submission{
		510: {{UserID: "u1", DisplayName: "One", Score: 4}},
	})
	clone := lb.Clone()

	_ = Weekly(lb)
	_ = Daily(lb, 510)

	s.Equal(clone, lb)
}
