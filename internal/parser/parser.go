// Package parser extracts puzzle submissions from raw chat message text.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mcoot/connections-leaderboard/internal/model"
)

// ScoreBias is added to the count of marker-bearing lines to produce the
// final score. The shared result format's header line is not itself a guess
// line, so the raw line count under-reports attempts by one.
const ScoreBias = 1

var (
	puzzleIDPattern = regexp.MustCompile(`Puzzle #(\d+)`)
	markerPattern   = regexp.MustCompile(`[🟩🟦🟧🟨]`)
)

// Result is a candidate submission extracted from message text
type Result struct {
	PuzzleID model.PuzzleID
	Score    int
}

// Parse examines message text for a shared puzzle result. It returns the
// extracted result and true, or a zero Result and false when the text is
// not a submission. Pure: no side effects, no I/O.
func Parse(text string) (Result, bool) {
	match := puzzleIDPattern.FindStringSubmatch(text)
	if match == nil {
		return Result{}, false
	}
	if !markerPattern.MatchString(text) {
		return Result{}, false
	}

	id, err := strconv.Atoi(match[1])
	if err != nil {
		// Digits too large to fit an int; not a real puzzle id
		return Result{}, false
	}

	markerLines := 0
	for _, line := range strings.Split(text, "\n") {
		if markerPattern.MatchString(line) {
			markerLines++
		}
	}

	return Result{
		PuzzleID: model.PuzzleID(id),
		Score:    markerLines + ScoreBias,
	}, true
}
