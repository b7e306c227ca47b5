package model

import "sort"

// CommunityID identifies an isolated tenant (guild/server); each community
// owns exactly one leaderboard
type CommunityID string

// UserID is the platform's opaque stable identifier for a user
type UserID string

// PuzzleID identifies one daily puzzle instance
type PuzzleID int

// Submission is one user's first reported result for a puzzle.
// Immutable once stored; Score is always >= 1.
type Submission struct {
	UserID      UserID
	DisplayName string
	Score       int
}

// Leaderboard holds every recorded submission for one community,
// keyed by puzzle then by user
type Leaderboard struct {
	Puzzles map[PuzzleID]map[UserID]Submission
}

// NewLeaderboard creates an empty leaderboard
func NewLeaderboard() *Leaderboard {
	return &Leaderboard{
		Puzzles: make(map[PuzzleID]map[UserID]Submission),
	}
}

// IsEmpty reports whether no submissions have been recorded
func (l *Leaderboard) IsEmpty() bool {
	return len(l.Puzzles) == 0
}

// Has reports whether the user already has a submission for the puzzle
func (l *Leaderboard) Has(puzzle PuzzleID, user UserID) bool {
	_, ok := l.Puzzles[puzzle][user]
	return ok
}

// Set records a submission, overwriting any existing entry.
// First-write-wins semantics are enforced by the caller via Has.
func (l *Leaderboard) Set(puzzle PuzzleID, sub Submission) {
	if l.Puzzles[puzzle] == nil {
		l.Puzzles[puzzle] = make(map[UserID]Submission)
	}
	l.Puzzles[puzzle][sub.UserID] = sub
}

// Submissions returns the submissions for one puzzle (nil if none)
func (l *Leaderboard) Submissions(puzzle PuzzleID) map[UserID]Submission {
	return l.Puzzles[puzzle]
}

// LatestPuzzle returns the numerically largest puzzle id present
func (l *Leaderboard) LatestPuzzle() (PuzzleID, bool) {
	if l.IsEmpty() {
		return 0, false
	}
	var latest PuzzleID
	first := true
	for id := range l.Puzzles {
		if first || id > latest {
			latest = id
			first = false
		}
	}
	return latest, true
}

// RecentPuzzles returns up to n puzzle ids, largest first
func (l *Leaderboard) RecentPuzzles(n int) []PuzzleID {
	ids := make([]PuzzleID, 0, len(l.Puzzles))
	for id := range l.Puzzles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}

// Clone returns a deep copy, so callers can hand out snapshots without
// aliasing stored state
func (l *Leaderboard) Clone() *Leaderboard {
	out := NewLeaderboard()
	for puzzle, users := range l.Puzzles {
		clone := make(map[UserID]Submission, len(users))
		for user, sub := range users {
			clone[user] = sub
		}
		out.Puzzles[puzzle] = clone
	}
	return out
}
