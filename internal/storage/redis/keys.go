package redis

import (
	"fmt"

	"github.com/mcoot/connections-leaderboard/internal/model"
)

// Key prefix for all leaderboard data
const keyPrefix = "connlb"

// boardKey returns the Redis key for a community's leaderboard record
func boardKey(community model.CommunityID) string {
	return fmt.Sprintf("%s:board:%s", keyPrefix, community)
}

// communityIndexKey returns the Redis key for the SET of known communities
func communityIndexKey() string {
	return fmt.Sprintf("%s:communities", keyPrefix)
}
