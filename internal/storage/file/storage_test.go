package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/connections-leaderboard/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	dir     string
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.dir = s.T().TempDir()
	store, err := New(s.dir)
	s.Require().NoError(err)
	s.storage = store
	s.ctx = context.Background()
}

func (s *StorageSuite) sampleLeaderboard() *model.Leaderboard {
	lb := model.NewLeaderboard()
	lb.Set(510, model.Submission{UserID: "u1", DisplayName: "Alice", Score: 4})
	lb.Set(511, model.Submission{UserID: "u2", DisplayName: "Bob", Score: 7})
	return lb
}

func (s *StorageSuite) TestSaveAndLoadRoundTrip() {
	lb := s.sampleLeaderboard()

	err := s.storage.SaveLeaderboard(s.ctx, "guild-1", lb)
	s.Require().NoError(err)

	loaded, err := s.storage.LoadLeaderboard(s.ctx, "guild-1")
	s.Require().NoError(err)
	s.Equal(lb, loaded)
}

func (s *StorageSuite) TestLoadMissingRecord() {
	lb, err := s.storage.LoadLeaderboard(s.ctx, "nonexistent")
	s.Require().NoError(err)
	s.True(lb.IsEmpty())
}

func (s *StorageSuite) TestLoadCorruptRecord() {
	path := filepath.Join(s.dir, "guild-1.json")
	s.Require().NoError(os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := s.storage.LoadLeaderboard(s.ctx, "guild-1")
	s.ErrorIs(err, model.ErrRecordCorrupt)
}

func (s *StorageSuite) TestDeleteLeaderboard() {
	s.Require().NoError(s.storage.SaveLeaderboard(s.ctx, "guild-1", s.sampleLeaderboard()))

	err := s.storage.DeleteLeaderboard(s.ctx, "guild-1")
	s.Require().NoError(err)

	lb, err := s.storage.LoadLeaderboard(s.ctx, "guild-1")
	s.Require().NoError(err)
	s.True(lb.IsEmpty())
}

func (s *StorageSuite) TestDeleteMissingRecordIsNoop() {
	s.NoError(s.storage.DeleteLeaderboard(s.ctx, "nonexistent"))
}

func (s *StorageSuite) TestListCommunities() {
	s.Require().NoError(s.storage.SaveLeaderboard(s.ctx, "guild-1", s.sampleLeaderboard()))
	s.Require().NoError(s.storage.SaveLeaderboard(s.ctx, "guild-2", s.sampleLeaderboard()))

	communities, err := s.storage.ListCommunities(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]model.CommunityID{"guild-1", "guild-2"}, communities)
}

func (s *StorageSuite) TestListCommunitiesIgnoresStrays() {
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "README.txt"), []byte("hi"), 0o644))
	s.Require().NoError(s.storage.SaveLeaderboard(s.ctx, "guild-1", s.sampleLeaderboard()))

	communities, err := s.storage.ListCommunities(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.CommunityID{"guild-1"}, communities)
}

func (s *StorageSuite) TestRecordKeyIsFilePath() {
	s.Equal(filepath.Join(s.dir, "guild-1.json"), s.storage.RecordKey("guild-1"))
}

func (s *StorageSuite) TestSaveOverwritesWholeRecord() {
	s.Require().NoError(s.storage.SaveLeaderboard(s.ctx, "guild-1", s.sampleLeaderboard()))

	replacement := model.NewLeaderboard()
	replacement.Set(600, model.Submission{UserID: "u3", DisplayName: "Cara", Score: 5})
	s.Require().NoError(s.storage.SaveLeaderboard(s.ctx, "guild-1", replacement))

	loaded, err := s.storage.LoadLeaderboard(s.ctx, "guild-1")
	s.Require().NoError(err)
	s.Equal(replacement, loaded)
}
