package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
	"github.com/vytor/lexiflash/internal/repository/sqlite"
	"github.com/vytor/lexiflash/internal/testutil"
)

type ProfileRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ProfileRepository
}

func (s *ProfileRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProfileRepository(s.db)
}

func (s *ProfileRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProfileRepositorySuite) TestUpsert_IsIdempotent() {
	ctx := context.Background()
	first, err := s.repo.Upsert(ctx, "ana", 15)
	s.Require().NoError(err)
	s.Equal(15, first.Progress.DailyGoal)
	s.True(first.Progress.LastStudyDate.IsZero())

	second, err := s.repo.Upsert(ctx, "ana", 30)
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)
	s.Equal(15, second.Progress.DailyGoal)

	profiles, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Len(profiles, 1)
}

func (s *ProfileRepositorySuite) TestUpdateProgress_RoundTrip() {
	ctx := context.Background()
	p, err := s.repo.Upsert(ctx, "ana", 20)
	s.Require().NoError(err)

	progress := models.DailyProgress{
		WordsStudiedToday: 4,
		LastStudyDate:     models.Day{Year: 2024, Month: 3, Day: 10},
		Streak:            3,
		LongestStreak:     7,
		StreakFreeze:      1,
		XP:                420,
		DailyGoal:         20,
	}
	s.Require().NoError(s.repo.UpdateProgress(ctx, p.ID, progress))

	got, err := s.repo.Get(ctx, p.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(progress, got.Progress)
}

func (s *ProfileRepositorySuite) TestGet_Missing() {
	got, err := s.repo.Get(context.Background(), 99)
	s.NoError(err)
	s.Nil(got)
}

func (s *ProfileRepositorySuite) TestDelete_CascadesItems() {
	ctx := context.Background()
	p, err := s.repo.Upsert(ctx, "ana", 20)
	s.Require().NoError(err)
	_, err = s.db.ExecContext(ctx, `INSERT INTO vocabulary_items (id, profile_id, term) VALUES ('x', ?, 'hola')`, p.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(ctx, p.ID))

	var count int
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vocabulary_items`).Scan(&count))
	s.Equal(0, count)
	s.ErrorIs(s.repo.Delete(ctx, p.ID), sql.ErrNoRows)
}

func TestProfileRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProfileRepositorySuite))
}
