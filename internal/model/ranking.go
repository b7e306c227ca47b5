package model

// RankedEntry is one row of a daily leaderboard.
// Rank is 1-based competition ranking: tied scores share a rank, and the
// next distinct score's rank is its 1-based position in the sorted list.
type RankedEntry struct {
	UserID      UserID
	DisplayName string
	Score       int
	Rank        int
}

// WeeklyEntry is one row of a weekly leaderboard.
// Total includes the missed-puzzle penalty for puzzles in the considered
// window the user did not play.
type WeeklyEntry struct {
	UserID      UserID
	DisplayName string
	Total       int
	Played      int
	Rank        int
}
