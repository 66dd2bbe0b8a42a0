package services

import (
	"context"
	"slices"
	"time"

	"github.com/vytor/lexiflash/internal/clock"
	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/pronunciation"
	"github.com/vytor/lexiflash/internal/repository"
	"github.com/vytor/lexiflash/internal/session"
	"github.com/vytor/lexiflash/internal/srs"
)

// SessionView reports a study session against the live queues.
type SessionView struct {
	Active          bool                   `json:"active"`
	State           models.SessionState    `json:"state"`
	ProgressPercent float64                `json:"progress_percent"`
	Complete        bool                   `json:"complete"`
	DueCount        int                    `json:"due_count"`
	WeakCount       int                    `json:"weak_count"`
	Summary         *models.SessionSummary `json:"summary,omitempty"`
}

// NextCard is the item to present next with the interaction to use.
type NextCard struct {
	Item    models.VocabularyItem `json:"item"`
	Mode    models.StudyMode      `json:"mode"`
	Preview srs.Preview           `json:"preview"`
	FromDue bool                  `json:"from_due"`
}

// ReviewOutcome is the result of grading one item.
type ReviewOutcome struct {
	Item     models.VocabularyItem `json:"item"`
	XPGained int                   `json:"xp_gained"`
	Progress *ProgressView         `json:"progress"`
	Session  *SessionView          `json:"session,omitempty"`
}

// SpeakOutcome is a pronunciation attempt turned into a review.
type SpeakOutcome struct {
	Score        int            `json:"score"`
	DisplayScore int            `json:"display_score"`
	Passed       bool           `json:"passed"`
	Grade        models.Grade   `json:"grade"`
	Review       *ReviewOutcome `json:"review"`
}

// StudyService drives study sessions: queue selection, grading and the
// progress updates that follow.
type StudyService interface {
	StartSession(ctx context.Context, profileID int64) (*SessionView, error)
	Session(ctx context.Context, profileID int64) (*SessionView, error)
	EndSession(ctx context.Context, profileID int64) (*models.SessionSummary, error)
	Next(ctx context.Context, profileID int64, override models.StudyMode) (*NextCard, error)
	Review(ctx context.Context, profileID int64, itemID string, grade models.Grade, mode models.StudyMode, timeSeconds float64) (*ReviewOutcome, error)
	Speak(ctx context.Context, profileID int64, itemID string, transcript string) (*SpeakOutcome, error)
}

type studyService struct {
	vocabRepo   repository.VocabularyRepository
	historyRepo repository.ReviewHistoryRepository
	progress    ProgressService
	sessions    *SessionStore
	modes       *srs.ModeSelector
	clock       clock.Clock
}

// NewStudyService creates a new StudyService
func NewStudyService(
	vocabRepo repository.VocabularyRepository,
	historyRepo repository.ReviewHistoryRepository,
	progress ProgressService,
	sessions *SessionStore,
	modes *srs.ModeSelector,
	clk clock.Clock,
) StudyService {
	return &studyService{
		vocabRepo:   vocabRepo,
		historyRepo: historyRepo,
		progress:    progress,
		sessions:    sessions,
		modes:       modes,
		clock:       clk,
	}
}

type queues struct {
	due  []models.VocabularyItem
	weak []models.VocabularyItem
}

// loadQueues rebuilds both queues from storage. Items already graded in the
// active session are kept out of the weak fallback so a session can finish.
func (s *studyService) loadQueues(ctx context.Context, profileID int64, now time.Time) (queues, error) {
	items, err := s.vocabRepo.ListByProfile(ctx, profileID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load vocabulary: %v", err)
		return queues{}, errors.NewInternalError(err)
	}

	candidates := items
	s.sessions.With(profileID, func(l *session.Ledger) {
		candidates = slices.DeleteFunc(slices.Clone(items), func(it models.VocabularyItem) bool {
			return l.Reviewed(it.ID)
		})
	})

	return queues{
		due:  srs.DueQueue(items, now),
		weak: srs.WeakQueue(candidates),
	}, nil
}

func (s *studyService) sessionView(profileID int64, q queues, now time.Time) *SessionView {
	v := &SessionView{DueCount: len(q.due), WeakCount: len(q.weak)}
	s.sessions.With(profileID, func(l *session.Ledger) {
		v.Active = true
		v.State = l.State()
		v.ProgressPercent = l.ProgressPercent()
		v.Complete = l.IsComplete(len(q.due), len(q.weak))
		if v.Complete {
			sum := l.Summary(now)
			v.Summary = &sum
		}
	})
	return v
}

func (s *studyService) StartSession(ctx context.Context, profileID int64) (*SessionView, error) {
	log := logger.FromContext(ctx)
	now := s.clock.Now()

	// A restart must not inherit the reviewed set of the previous session.
	s.sessions.Remove(profileID)
	q, err := s.loadQueues(ctx, profileID, now)
	if err != nil {
		return nil, err
	}
	s.sessions.Put(profileID, session.Start(len(q.due), len(q.weak), now))
	log.Info("study session started: profile_id=%d, due=%d, weak=%d", profileID, len(q.due), len(q.weak))

	return s.sessionView(profileID, q, now), nil
}

func (s *studyService) Session(ctx context.Context, profileID int64) (*SessionView, error) {
	now := s.clock.Now()
	q, err := s.loadQueues(ctx, profileID, now)
	if err != nil {
		return nil, err
	}
	v := s.sessionView(profileID, q, now)
	if !v.Active {
		return nil, errors.NewNotFoundError("study session for profile", profileID)
	}
	return v, nil
}

func (s *studyService) EndSession(ctx context.Context, profileID int64) (*models.SessionSummary, error) {
	l, ok := s.sessions.Remove(profileID)
	if !ok {
		return nil, errors.NewNotFoundError("study session for profile", profileID)
	}
	sum := l.Summary(s.clock.Now())
	logger.FromContext(ctx).Info("study session ended: profile_id=%d, reviewed=%d, accuracy=%.0f%%", profileID, sum.Total, sum.AccuracyPercent)
	return &sum, nil
}

// Next returns nil when nothing is due and no weak item is left.
func (s *studyService) Next(ctx context.Context, profileID int64, override models.StudyMode) (*NextCard, error) {
	log := logger.FromContext(ctx)
	if !override.Valid() {
		return nil, errors.NewValidationError("mode", "unknown study mode")
	}

	now := s.clock.Now()
	q, err := s.loadQueues(ctx, profileID, now)
	if err != nil {
		return nil, err
	}

	item, fromDue, ok := srs.NextItem(q.due, q.weak)
	if !ok {
		log.Debug("nothing to review: profile_id=%d", profileID)
		return nil, nil
	}

	mode := s.modes.ChooseMode(item.Memory, override)
	log.Debug("next item: id=%s, mode=%s, from_due=%t", item.ID, mode, fromDue)
	return &NextCard{
		Item:    item,
		Mode:    mode,
		Preview: srs.PreviewIntervals(item.Memory),
		FromDue: fromDue,
	}, nil
}

func (s *studyService) Review(ctx context.Context, profileID int64, itemID string, grade models.Grade, mode models.StudyMode, timeSeconds float64) (*ReviewOutcome, error) {
	log := logger.FromContext(ctx)
	log.Debug("reviewing item: id=%s, grade=%s, mode=%s", itemID, grade, mode)

	if !grade.Valid() {
		return nil, errors.NewValidationError("grade", "must be one of again, hard, good, easy")
	}
	if mode == "" {
		mode = models.ModeAuto
	}
	if !mode.Valid() {
		return nil, errors.NewValidationError("mode", "unknown study mode")
	}
	if timeSeconds < 0 {
		return nil, errors.NewValidationError("time_seconds", "cannot be negative")
	}

	item, err := s.vocabRepo.Get(ctx, itemID, profileID)
	if err != nil {
		log.WithError(err).Error("failed to get item")
		return nil, errors.NewInternalError(err)
	}
	if item == nil {
		return nil, errors.NewNotFoundError("vocabulary item", itemID)
	}

	now := s.clock.Now()
	memory, err := srs.Grade(item.Memory, grade, now)
	if err != nil {
		return nil, errors.NewValidationError("grade", err.Error())
	}
	if err := s.vocabRepo.UpdateMemory(ctx, item.ID, memory); err != nil {
		log.WithError(err).Error("failed to update memory")
		return nil, errors.NewInternalError(err)
	}
	item.Memory = memory
	log.Debug("graded: interval=%.2f days, ease=%.2f, streak=%d", memory.IntervalDays, memory.EaseFactor, memory.Streak)

	// History is best effort and never fails the review.
	if err := s.historyRepo.Insert(ctx, models.ReviewHistory{
		ItemID:      item.ID,
		Grade:       grade,
		Mode:        mode,
		TimeSeconds: timeSeconds,
		ReviewedAt:  now,
	}); err != nil {
		log.WithError(err).Warn("failed to store review history")
	}

	s.sessions.With(profileID, func(l *session.Ledger) {
		l.Record(item.ID, item.Term, grade)
	})

	pv, xp, err := s.progress.RecordReview(ctx, profileID, grade)
	if err != nil {
		return nil, err
	}

	out := &ReviewOutcome{Item: *item, XPGained: xp, Progress: pv}
	q, err := s.loadQueues(ctx, profileID, now)
	if err != nil {
		log.WithError(err).Warn("failed to refresh queues after review")
		return out, nil
	}
	if v := s.sessionView(profileID, q, now); v.Active {
		out.Session = v
	}
	return out, nil
}

func (s *studyService) Speak(ctx context.Context, profileID int64, itemID string, transcript string) (*SpeakOutcome, error) {
	log := logger.FromContext(ctx)

	item, err := s.vocabRepo.Get(ctx, itemID, profileID)
	if err != nil {
		log.WithError(err).Error("failed to get item")
		return nil, errors.NewInternalError(err)
	}
	if item == nil {
		return nil, errors.NewNotFoundError("vocabulary item", itemID)
	}

	score := pronunciation.Score(item.Term, transcript)
	grade := pronunciation.GradeFor(score)
	log.Debug("pronunciation scored: id=%s, score=%d, grade=%s", item.ID, score, grade)

	review, err := s.Review(ctx, profileID, item.ID, grade, models.ModeSpeaking, 0)
	if err != nil {
		return nil, err
	}
	return &SpeakOutcome{
		Score:        score,
		DisplayScore: pronunciation.DisplayScore(score),
		Passed:       pronunciation.Passed(score),
		Grade:        grade,
		Review:       review,
	}, nil
}
