package storage

import (
	"context"

	"github.com/mcoot/connections-leaderboard/internal/model"
)

// Storage defines the interface for leaderboard persistence.
// The persistence unit is one record per community; saves replace the whole
// record and must be atomic with respect to concurrent loads.
type Storage interface {
	// LoadLeaderboard returns the community's leaderboard. A missing record
	// yields an empty leaderboard, not an error. An unreadable record yields
	// model.ErrRecordCorrupt.
	LoadLeaderboard(ctx context.Context, community model.CommunityID) (*model.Leaderboard, error)

	// SaveLeaderboard replaces the community's record with a full snapshot
	SaveLeaderboard(ctx context.Context, community model.CommunityID, lb *model.Leaderboard) error

	// DeleteLeaderboard removes the community's record entirely
	DeleteLeaderboard(ctx context.Context, community model.CommunityID) error

	// ListCommunities returns every community with a stored record
	ListCommunities(ctx context.Context) ([]model.CommunityID, error)

	// RecordKey returns the logical identifier of the community's record
	// (file path, redis key, ...) for diagnostics
	RecordKey(community model.CommunityID) string
}
