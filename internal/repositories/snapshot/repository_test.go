package snapshot_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-fitness/internal/progression"
	"github.com/KirkDiggler/rpg-fitness/internal/repositories/snapshot"
	"github.com/KirkDiggler/rpg-fitness/internal/testutils"
)

var testNow = testutils.TestNow

// RepositoryTestSuite runs the same contract against every backend
type RepositoryTestSuite struct {
	suite.Suite
	ctx   context.Context
	clock *clock.Fixed
	open  func(s *RepositoryTestSuite) snapshot.Repository
	repo  snapshot.Repository
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		open: func(s *RepositoryTestSuite) snapshot.Repository {
			return snapshot.NewInMemory(s.clock)
		},
	})
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		open: func(s *RepositoryTestSuite) snapshot.Repository {
			client, cleanup := testutils.CreateTestRedisClient(s.T())
			s.T().Cleanup(cleanup)

			repo, err := snapshot.NewRedisRepository(&snapshot.RedisConfig{Client: client, Clock: s.clock})
			s.Require().NoError(err)
			return repo
		},
	})
}

func TestSQLiteRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		open: func(s *RepositoryTestSuite) snapshot.Repository {
			repo, err := snapshot.OpenSQLite(s.ctx, &snapshot.SQLiteConfig{
				Path:  filepath.Join(s.T().TempDir(), "fitness.db"),
				Clock: s.clock,
			})
			s.Require().NoError(err)
			s.T().Cleanup(func() { _ = repo.Close() })
			return repo
		},
	})
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewFixed(testNow)
	s.repo = s.open(s)
}

func (s *RepositoryTestSuite) newSnapshot(userID string) *fitness.Snapshot {
	snap := progression.NewSnapshot(userID, testNow.Add(-time.Hour))
	snap.User.Name = "Ana"
	snap.User.Stats.Strength = 14
	snap.DailyQuests = []fitness.Quest{{
		ID:       "q-1",
		Name:     "Standard Push-up",
		Type:     fitness.QuestDaily,
		Pillar:   fitness.PillarPush,
		Sets:     3,
		Reps:     "8-12",
		XPReward: 28,
		Status:   fitness.QuestPending,
	}}
	return snap
}

func (s *RepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, snapshot.GetInput{UserID: "nobody"})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestInputValidation() {
	_, err := s.repo.Get(s.ctx, snapshot.GetInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Save(s.ctx, snapshot.SaveInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Save(s.ctx, snapshot.SaveInput{Snapshot: &fitness.Snapshot{}})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Delete(s.ctx, snapshot.DeleteInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestSaveAndGet() {
	snap := s.newSnapshot("user-1")
	snap.Version = 1

	out, err := s.repo.Save(s.ctx, snapshot.SaveInput{Snapshot: snap})
	s.Require().NoError(err)
	s.Equal(fitness.SnapshotVersion, out.Snapshot.Version)
	s.True(out.Snapshot.SavedAt.Equal(testNow))
	s.Equal(1, snap.Version, "input must not be modified")

	got, err := s.repo.Get(s.ctx, snapshot.GetInput{UserID: "user-1"})
	s.Require().NoError(err)

	opt := cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })
	s.Empty(cmp.Diff(out.Snapshot, got.Snapshot, opt))
}

func (s *RepositoryTestSuite) TestSaveOverwrites() {
	snap := s.newSnapshot("user-1")
	_, err := s.repo.Save(s.ctx, snapshot.SaveInput{Snapshot: snap})
	s.Require().NoError(err)

	snap.User.Name = "Bea"
	s.clock.Advance(time.Minute)
	_, err = s.repo.Save(s.ctx, snapshot.SaveInput{Snapshot: snap})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, snapshot.GetInput{UserID: "user-1"})
	s.Require().NoError(err)
	s.Equal("Bea", got.Snapshot.User.Name)
	s.True(got.Snapshot.SavedAt.Equal(testNow.Add(time.Minute)))
}

func (s *RepositoryTestSuite) TestGetReturnsIndependentCopies() {
	_, err := s.repo.Save(s.ctx, snapshot.SaveInput{Snapshot: s.newSnapshot("user-1")})
	s.Require().NoError(err)

	first, err := s.repo.Get(s.ctx, snapshot.GetInput{UserID: "user-1"})
	s.Require().NoError(err)
	first.Snapshot.User.Stats.Strength = 99

	second, err := s.repo.Get(s.ctx, snapshot.GetInput{UserID: "user-1"})
	s.Require().NoError(err)
	s.Equal(14, second.Snapshot.User.Stats.Strength)
}

func (s *RepositoryTestSuite) TestListAndDelete() {
	for _, id := range []string{"user-b", "user-a", "user-c"} {
		_, err := s.repo.Save(s.ctx, snapshot.SaveInput{Snapshot: s.newSnapshot(id)})
		s.Require().NoError(err)
	}

	list, err := s.repo.List(s.ctx, snapshot.ListInput{})
	s.Require().NoError(err)
	s.Equal([]string{"user-a", "user-b", "user-c"}, list.UserIDs)

	del, err := s.repo.Delete(s.ctx, snapshot.DeleteInput{UserID: "user-b"})
	s.Require().NoError(err)
	s.True(del.Deleted)

	del, err = s.repo.Delete(s.ctx, snapshot.DeleteInput{UserID: "user-b"})
	s.Require().NoError(err)
	s.False(del.Deleted)

	list, err = s.repo.List(s.ctx, snapshot.ListInput{})
	s.Require().NoError(err)
	s.Equal([]string{"user-a", "user-c"}, list.UserIDs)

	_, err = s.repo.Get(s.ctx, snapshot.GetInput{UserID: "user-b"})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestConfigValidation() {
	_, err := snapshot.NewRedisRepository(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = snapshot.NewRedisRepository(&snapshot.RedisConfig{})
	s.True(errors.IsInvalidArgument(err))

	_, err = snapshot.OpenSQLite(s.ctx, &snapshot.SQLiteConfig{Clock: s.clock})
	s.True(errors.IsInvalidArgument(err))
}
