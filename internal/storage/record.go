package storage

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mcoot/connections-leaderboard/internal/model"
)

// The on-disk/on-wire record format: puzzle id (decimal string) -> user id
// -> submission. Human-readable, pretty-printed JSON, stable across
// backends so a record written by one backend loads under another.

type recordSubmission struct {
	Name    string `json:"name"`
	Guesses int    `json:"guesses"`
}

type record map[string]map[string]recordSubmission

// EncodeRecord serializes a leaderboard to the pretty-printed record format
func EncodeRecord(lb *model.Leaderboard) ([]byte, error) {
	rec := make(record, len(lb.Puzzles))
	for puzzle, users := range lb.Puzzles {
		entry := make(map[string]recordSubmission, len(users))
		for user, sub := range users {
			entry[string(user)] = recordSubmission{
				Name:    sub.DisplayName,
				Guesses: sub.Score,
			}
		}
		rec[strconv.Itoa(int(puzzle))] = entry
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding leaderboard record: %w", err)
	}
	return data, nil
}

// DecodeRecord parses a record back into a leaderboard. Unknown fields on
// submission entries are ignored, as are top-level keys that are not puzzle
// ids, so records written by newer versions still load. Unparseable JSON
// yields model.ErrRecordCorrupt.
func DecodeRecord(data []byte) (*model.Leaderboard, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrRecordCorrupt, err)
	}

	lb := model.NewLeaderboard()
	for key, users := range rec {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		for user, sub := range users {
			lb.Set(model.PuzzleID(id), model.Submission{
				UserID:      model.UserID(user),
				DisplayName: sub.Name,
				Score:       sub.Guesses,
			})
		}
	}
	return lb, nil
}
