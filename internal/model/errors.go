package model

import "errors"

// Common errors used across the application
var (
	// Storage errors
	ErrRecordCorrupt = errors.New("leaderboard record is corrupt")

	// Leaderboard errors
	ErrNoPuzzles      = errors.New("no puzzles have been recorded")
	ErrPuzzleNotFound = errors.New("no results for puzzle")

	// Platform errors
	ErrChannelNotFound = errors.New("designated channel not found")
)
