package services

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/vytor/lexiflash/internal/clock"
	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/progress"
	"github.com/vytor/lexiflash/internal/repository"
)

// ProgressView is a learner's progress as seen on a given day.
type ProgressView struct {
	Progress   models.DailyProgress `json:"progress"`
	Today      models.Day           `json:"today"`
	WordsToday int                  `json:"words_today"`
	GoalMet    bool                 `json:"goal_met"`
	League     progress.League      `json:"league"`
}

// ProgressService owns every read-modify-write of DailyProgress.
type ProgressService interface {
	Get(ctx context.Context, profileID int64) (*ProgressView, error)
	RecordReview(ctx context.Context, profileID int64, grade models.Grade) (*ProgressView, int, error)
	AwardXP(ctx context.Context, profileID int64, amount int, source string) (*ProgressView, error)
	BuyStreakFreeze(ctx context.Context, profileID int64) (*ProgressView, error)
}

type progressService struct {
	profileRepo repository.ProfileRepository
	clock       clock.Clock
	loc         *time.Location
	// serializes progress updates; each one reads then writes the whole record
	mu sync.Mutex
}

// NewProgressService creates a new ProgressService. Calendar days are taken
// in loc.
func NewProgressService(profileRepo repository.ProfileRepository, clk clock.Clock, loc *time.Location) ProgressService {
	if loc == nil {
		loc = time.UTC
	}
	return &progressService{profileRepo: profileRepo, clock: clk, loc: loc}
}

func (s *progressService) today() models.Day {
	return models.DayOf(s.clock.Now().In(s.loc))
}

func (s *progressService) view(p models.DailyProgress, today models.Day) *ProgressView {
	return &ProgressView{
		Progress:   p,
		Today:      today,
		WordsToday: progress.WordsToday(p, today),
		GoalMet:    progress.GoalMet(p, today),
		League:     progress.LeagueFor(p.XP),
	}
}

func (s *progressService) load(ctx context.Context, profileID int64) (*models.Profile, error) {
	profile, err := s.profileRepo.Get(ctx, profileID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load profile %d: %v", profileID, err)
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", profileID)
	}
	return profile, nil
}

func (s *progressService) update(ctx context.Context, profileID int64, fn func(models.DailyProgress, models.Day) (models.DailyProgress, error)) (*ProgressView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	today := s.today()
	next, err := fn(profile.Progress, today)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.UpdateProgress(ctx, profileID, next); err != nil {
		logger.FromContext(ctx).Error("failed to save progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.view(next, today), nil
}

func (s *progressService) Get(ctx context.Context, profileID int64) (*ProgressView, error) {
	profile, err := s.load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return s.view(profile.Progress, s.today()), nil
}

// RecordReview counts one studied word and its XP. It returns the XP gained.
func (s *progressService) RecordReview(ctx context.Context, profileID int64, grade models.Grade) (*ProgressView, int, error) {
	xp := progress.XPForGrade(grade)
	v, err := s.update(ctx, profileID, func(p models.DailyProgress, today models.Day) (models.DailyProgress, error) {
		return progress.RecordStudy(p, 1, xp, today), nil
	})
	if err != nil {
		return nil, 0, err
	}
	logger.FromContext(ctx).Debug("recorded review: profile_id=%d, xp=+%d, streak=%d", profileID, xp, v.Progress.Streak)
	return v, xp, nil
}

func (s *progressService) AwardXP(ctx context.Context, profileID int64, amount int, source string) (*ProgressView, error) {
	log := logger.FromContext(ctx)
	if amount <= 0 {
		return nil, errors.NewValidationError("amount", "must be positive")
	}
	log.Info("awarding xp: profile_id=%d, amount=%d, source=%s", profileID, amount, source)

	return s.update(ctx, profileID, func(p models.DailyProgress, today models.Day) (models.DailyProgress, error) {
		return progress.AwardXP(p, amount, today), nil
	})
}

func (s *progressService) BuyStreakFreeze(ctx context.Context, profileID int64) (*ProgressView, error) {
	log := logger.FromContext(ctx)
	log.Debug("buying streak freeze: profile_id=%d", profileID)

	return s.update(ctx, profileID, func(p models.DailyProgress, _ models.Day) (models.DailyProgress, error) {
		next, err := progress.BuyStreakFreeze(p)
		if stderrors.Is(err, progress.ErrInsufficientFunds) {
			log.Debug("streak freeze rejected: xp=%d", p.XP)
			return p, errors.NewInsufficientFundsError(p.XP, progress.StreakFreezeCost)
		}
		return next, err
	})
}
