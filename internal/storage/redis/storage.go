package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/connections-leaderboard/internal/model"
	"github.com/mcoot/connections-leaderboard/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Each community's record is one string value; a set of community ids is
// maintained alongside so broadcasts can enumerate communities.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) LoadLeaderboard(ctx context.Context, community model.CommunityID) (*model.Leaderboard, error) {
	data, err := s.client.Get(ctx, boardKey(community)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.NewLeaderboard(), nil
		}
		return nil, fmt.Errorf("loading leaderboard record: %w", err)
	}

	return storage.DecodeRecord(data)
}

func (s *Storage) SaveLeaderboard(ctx context.Context, community model.CommunityID, lb *model.Leaderboard) error {
	data, err := storage.EncodeRecord(lb)
	if err != nil {
		return err
	}

	// Pipeline keeps the record write and the community index in step
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, boardKey(community), data, 0)
	pipe.SAdd(ctx, communityIndexKey(), string(community))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("saving leaderboard record: %w", err)
	}
	return nil
}

func (s *Storage) DeleteLeaderboard(ctx context.Context, community model.CommunityID) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, boardKey(community))
	pipe.SRem(ctx, communityIndexKey(), string(community))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("deleting leaderboard record: %w", err)
	}
	return nil
}

func (s *Storage) ListCommunities(ctx context.Context) ([]model.CommunityID, error) {
	members, err := s.client.SMembers(ctx, communityIndexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("listing communities: %w", err)
	}

	communities := make([]model.CommunityID, 0, len(members))
	for _, m := range members {
		communities = append(communities, model.CommunityID(m))
	}
	return communities, nil
}

func (s *Storage) RecordKey(community model.CommunityID) string {
	return boardKey(community)
}
