// Package leaderboard layers submission semantics over raw storage:
// first-write-wins upserts, clears, and read-only snapshots.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mcoot/connections-leaderboard/internal/model"
	"github.com/mcoot/connections-leaderboard/internal/storage"
)

// Service provides leaderboard operations for all communities.
// Mutations for the same community serialize through a per-community lock,
// so a submission racing an admin clear can never produce a lost update.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger

	mu    sync.Mutex
	locks map[model.CommunityID]*sync.Mutex
}

// New creates a new leaderboard service
func New(store storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		logger:  logger,
		locks:   make(map[model.CommunityID]*sync.Mutex),
	}
}

// Record stores a submission if the user has none for this puzzle yet.
// Returns whether the submission was inserted; false means a submission
// already existed and storage was left untouched.
func (s *Service) Record(ctx context.Context, community model.CommunityID, puzzle model.PuzzleID, sub model.Submission) (bool, error) {
	if sub.Score < 1 {
		return false, fmt.Errorf("submission score must be at least 1, got %d", sub.Score)
	}

	lock := s.communityLock(community)
	lock.Lock()
	defer lock.Unlock()

	lb, err := s.loadFailOpen(ctx, community)
	if err != nil {
		return false, err
	}

	if lb.Has(puzzle, sub.UserID) {
		return false, nil
	}

	lb.Set(puzzle, sub)
	if err := s.storage.SaveLeaderboard(ctx, community, lb); err != nil {
		return false, fmt.Errorf("saving submission: %w", err)
	}
	return true, nil
}

// Clear wipes the community's record
func (s *Service) Clear(ctx context.Context, community model.CommunityID) error {
	lock := s.communityLock(community)
	lock.Lock()
	defer lock.Unlock()

	return s.storage.DeleteLeaderboard(ctx, community)
}

// Snapshot returns a point-in-time copy of the community's leaderboard.
// A corrupt record degrades to an empty board rather than failing the
// caller; the corruption is logged.
func (s *Service) Snapshot(ctx context.Context, community model.CommunityID) (*model.Leaderboard, error) {
	return s.loadFailOpen(ctx, community)
}

// Communities returns every community with stored submissions
func (s *Service) Communities(ctx context.Context) ([]model.CommunityID, error) {
	return s.storage.ListCommunities(ctx)
}

// RecordKey returns the storage record's logical identifier (diagnostic)
func (s *Service) RecordKey(community model.CommunityID) string {
	return s.storage.RecordKey(community)
}

func (s *Service) loadFailOpen(ctx context.Context, community model.CommunityID) (*model.Leaderboard, error) {
	lb, err := s.storage.LoadLeaderboard(ctx, community)
	if err != nil {
		if errors.Is(err, model.ErrRecordCorrupt) {
			s.logger.Error("leaderboard record corrupt, treating as empty",
				slog.String("community", string(community)),
				slog.String("record", s.storage.RecordKey(community)),
				slog.String("error", err.Error()),
			)
			return model.NewLeaderboard(), nil
		}
		return nil, err
	}
	return lb, nil
}

func (s *Service) communityLock(community model.CommunityID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[community]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[community] = lock
	}
	return lock
}
