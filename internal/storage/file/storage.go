// Package file persists each community's leaderboard as one pretty-printed
// JSON file in a data directory.
package file

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/mcoot/connections-leaderboard/internal/model"
	"github.com/mcoot/connections-leaderboard/internal/storage"
)

const recordExt = ".json"

// Storage is a file-backed implementation of the storage interface.
// Writes replace the record via an atomic rename, so a concurrent load (or
// a crash mid-write) never observes a half-written record.
type Storage struct {
	mu  sync.RWMutex
	dir string
}

// New creates a file storage rooted at dir, creating it if needed
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) LoadLeaderboard(ctx context.Context, community model.CommunityID) (*model.Leaderboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.recordPath(community))
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewLeaderboard(), nil
		}
		return nil, fmt.Errorf("reading leaderboard record: %w", err)
	}

	return storage.DecodeRecord(data)
}

func (s *Storage) SaveLeaderboard(ctx context.Context, community model.CommunityID, lb *model.Leaderboard) error {
	data, err := storage.EncodeRecord(lb)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := atomic.WriteFile(s.recordPath(community), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing leaderboard record: %w", err)
	}
	return nil
}

func (s *Storage) DeleteLeaderboard(ctx context.Context, community model.CommunityID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.recordPath(community)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting leaderboard record: %w", err)
	}
	return nil
}

func (s *Storage) ListCommunities(ctx context.Context) ([]model.CommunityID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing data directory: %w", err)
	}

	var communities []model.CommunityID
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, recordExt) {
			continue
		}
		communities = append(communities, model.CommunityID(strings.TrimSuffix(name, recordExt)))
	}
	return communities, nil
}

func (s *Storage) RecordKey(community model.CommunityID) string {
	return s.recordPath(community)
}

func (s *Storage) recordPath(community model.CommunityID) string {
	// Community ids are platform snowflakes (digits), but guard against
	// path separators anyway
	name := strings.ReplaceAll(string(community), string(filepath.Separator), "_")
	return filepath.Join(s.dir, name+recordExt)
}
