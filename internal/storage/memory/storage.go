package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mcoot/connections-leaderboard/internal/model"
	"github.com/mcoot/connections-leaderboard/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu     sync.RWMutex
	boards map[model.CommunityID]*model.Leaderboard
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		boards: make(map[model.CommunityID]*model.Leaderboard),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) LoadLeaderboard(ctx context.Context, community model.CommunityID) (*model.Leaderboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lb, ok := s.boards[community]
	if !ok {
		return model.NewLeaderboard(), nil
	}
	return lb.Clone(), nil
}

func (s *Storage) SaveLeaderboard(ctx context.Context, community model.CommunityID, lb *model.Leaderboard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards[community] = lb.Clone()
	return nil
}

func (s *Storage) DeleteLeaderboard(ctx context.Context, community model.CommunityID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.boards, community)
	return nil
}

func (s *Storage) ListCommunities(ctx context.Context) ([]model.CommunityID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	communities := make([]model.CommunityID, 0, len(s.boards))
	for id := range s.boards {
		communities = append(communities, id)
	}
	return communities, nil
}

func (s *Storage) RecordKey(community model.CommunityID) string {
	return fmt.Sprintf("memory:%s", community)
}
