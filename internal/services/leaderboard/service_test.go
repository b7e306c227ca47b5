package leaderboard

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/connections-leaderboard/internal/model"
	"github.com/mcoot/connections-leaderboard/internal/storage/memory"
	"github.com/mcoot/connections-leaderboard/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	logger := testutil.NopLogger()
	s.service = New(s.storage, logger)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestRecordInsertsFirstSubmission() {
	inserted, err := s.service.Record(s.ctx, "guild-1", 510, model.Submission{
		UserID: "u1", DisplayName: "Alice", Score: 4,
	})
	s.Require().NoError(err)
	s.True(inserted)

	lb, err := s.service.Snapshot(s.ctx, "guild-1")
	s.Require().NoError(err)
	s.Equal(4, lb.Puzzles[510]["u1"].Score)
}

func (s *ServiceSuite) TestDuplicateSubmissionKeepsOriginal() {
	_, err := s.service.Record(s.ctx, "guild-1", 510, model.Submission{
		UserID: "u1", DisplayName: "Alice", Score: 4,
	})
	s.Require().NoError(err)

	inserted, err := s.service.Record(s.ctx, "guild-1", 510, model.Submission{
		UserID: "u1", DisplayName: "Alice", Score: 2,
	})
	s.Require().NoError(err)
	s.False(inserted)

	lb, err := s.service.Snapshot(s.ctx, "guild-1")
	s.Require().NoError(err)
	s.Equal(4, lb.Puzzles[510]["u1"].Score, "first write wins")
}

func (s *ServiceSuite) TestSameUserDifferentPuzzles() {
	inserted, err := s.service.Record(s.ctx, "guild-1", 510, model.Submission{
		UserID: "u1", DisplayName: "Alice", Score: 4,
	})
	s.Require().NoError(err)
	s.True(inserted)

	inserted, err = s.service.Record(s.ctx, "guild-1", 511, model.Submission{
		UserID: "u1", DisplayName: "Alice", Score: 6,
	})
	s.Require().NoError(err)
	s.True(inserted)
}

func (s *ServiceSuite) TestCommunitiesAreIsolated() {
	_, err := s.service.Record(s.ctx, "guild-1", 510, model.Submission{
		UserID: "u1", DisplayName: "Alice", Score: 4,
	})
	s.Require().NoError(err)

	inserted, err := s.service.Record(s.ctx, "guild-2", 510, model.Submission{
		UserID: "u1", DisplayName: "Alice", Score: 7,
	})
	s.Require().NoError(err)
	s.True(inserted, "same user+puzzle in another community is a fresh submission")

	lb, err := s.service.Snapshot(s.ctx, "guild-1")
	s.Require().NoError(err)
	s.Equal(4, lb.Puzzles[510]["u1"].Score)
}

func (s *ServiceSuite) TestRejectsInvalidScore() {
	_, err := s.service.Record(s.ctx, "guild-1", 510, model.Submission{
		UserID: "u1", DisplayName: "Alice", Score: 0,
	})
	s.Error(err)
}

func (s *ServiceSuite) TestClear() {
	_, err := s.service.Record(s.ctx, "guild-1", 510, model.Submission{
		UserID: "u1", DisplayName: "Alice", Score: 4,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.service.Clear(s.ctx, "guild-1"))

	lb, err := s.service.Snapshot(s.ctx, "guild-1")
	s.Require().NoError(err)
	s.True(lb.IsEmpty())
}

func (s *ServiceSuite) TestConcurrentRecordsKeepExactlyOne() {
	const writers = 16
	results := make([]bool, writers)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			inserted, err := s.service.Record(s.ctx, "guild-1", 510, model.Submission{
				UserID: "u1", DisplayName: "Alice", Score: i + 1,
			})
			s.NoError(err)
			results[i] = inserted
		}(i)
	}
	wg.Wait()

	insertedCount := 0
	for _, inserted := range results {
		if inserted {
			insertedCount++
		}
	}
	s.Equal(1, insertedCount)
}
