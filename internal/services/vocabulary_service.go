package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/google/uuid"
	"github.com/vytor/lexiflash/internal/clock"
	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/importer"
	"github.com/vytor/lexiflash/internal/jobs"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
	"github.com/vytor/lexiflash/internal/srs"
	"github.com/vytor/lexiflash/internal/worker"
)

// LearnedIntervalDays is the interval from which an item counts as learned.
const LearnedIntervalDays = 21

// VocabularyService handles vocabulary management
type VocabularyService interface {
	AddItem(ctx context.Context, profileID int64, in models.VocabularyInput) (*models.VocabularyItem, error)
	ListItems(ctx context.Context, filter models.VocabularyFilter) ([]models.VocabularyItem, int, error)
	DeleteItem(ctx context.Context, profileID int64, id string) error
	Stats(ctx context.Context, profileID int64) (*models.VocabularyStat, error)
	StartImport(ctx context.Context, profileID int64, filename string, data []byte) (*models.VocabularyImport, error)
	GetImport(ctx context.Context, profileID int64, id int64) (*models.VocabularyImport, error)
}

type vocabularyService struct {
	vocabRepo  repository.VocabularyRepository
	importRepo repository.ImportRepository
	jobQueue   jobs.JobQueue
	clock      clock.Clock
}

// NewVocabularyService creates a new VocabularyService
func NewVocabularyService(
	vocabRepo repository.VocabularyRepository,
	importRepo repository.ImportRepository,
	jobQueue jobs.JobQueue,
	clk clock.Clock,
) VocabularyService {
	return &vocabularyService{
		vocabRepo:  vocabRepo,
		importRepo: importRepo,
		jobQueue:   jobQueue,
		clock:      clk,
	}
}

func (s *vocabularyService) AddItem(ctx context.Context, profileID int64, in models.VocabularyInput) (*models.VocabularyItem, error) {
	log := logger.FromContext(ctx)

	term := strings.TrimSpace(in.Term)
	if term == "" {
		return nil, errors.NewValidationError("term", "cannot be empty")
	}
	log.Debug("adding item: profile_id=%d, term=%s", profileID, term)

	now := s.clock.Now()
	item := models.VocabularyItem{
		ID:               uuid.NewString(),
		ProfileID:        profileID,
		Term:             term,
		Translation:      strings.TrimSpace(in.Translation),
		Definition:       strings.TrimSpace(in.Definition),
		ExampleSentence:  strings.TrimSpace(in.ExampleSentence),
		Pronunciation:    strings.TrimSpace(in.Pronunciation),
		PhoneticSpelling: strings.TrimSpace(in.PhoneticSpelling),
		PartOfSpeech:     strings.ToLower(strings.TrimSpace(in.PartOfSpeech)),
		Memory:           srs.NewState(now),
		DateAdded:        now,
	}

	if err := s.vocabRepo.Insert(ctx, item); err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.NewValidationError("term", "already exists")
		}
		log.Error("failed to add item: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &item, nil
}

// ListItems returns one page of items and the total matching count.
func (s *vocabularyService) ListItems(ctx context.Context, filter models.VocabularyFilter) ([]models.VocabularyItem, int, error) {
	log := logger.FromContext(ctx)

	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, 0, errors.NewValidationError("pagination", "limit and offset cannot be negative")
	}
	if filter.Limit == 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.DueOnly && filter.DueBefore == nil {
		now := s.clock.Now()
		filter.DueBefore = &now
	}

	items, err := s.vocabRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list items: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.vocabRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count items: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return items, total, nil
}

func (s *vocabularyService) DeleteItem(ctx context.Context, profileID int64, id string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting item: profile_id=%d, id=%s", profileID, id)

	if err := s.vocabRepo.Delete(ctx, id, profileID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("vocabulary item", id)
		}
		log.Error("failed to delete item: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *vocabularyService) Stats(ctx context.Context, profileID int64) (*models.VocabularyStat, error) {
	log := logger.FromContext(ctx)

	items, err := s.vocabRepo.ListByProfile(ctx, profileID)
	if err != nil {
		log.Error("failed to load items for stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	now := s.clock.Now()
	st := &models.VocabularyStat{TotalItems: len(items)}
	var easeSum, intervalSum float64
	for _, it := range items {
		m := it.Memory
		if m.IsDue(now) {
			st.DueItems++
		}
		if srs.IsWeak(m) {
			st.WeakItems++
		}
		if m.IntervalDays == 0 && m.Streak == 0 {
			st.NewItems++
		}
		if m.IntervalDays >= LearnedIntervalDays {
			st.LearnedItems++
		}
		easeSum += m.EaseFactor
		intervalSum += m.IntervalDays
	}
	if len(items) > 0 {
		st.AvgEase = easeSum / float64(len(items))
		st.AvgInterval = intervalSum / float64(len(items))
	}
	return st, nil
}

func (s *vocabularyService) StartImport(ctx context.Context, profileID int64, filename string, data []byte) (*models.VocabularyImport, error) {
	log := logger.FromContext(ctx)

	if !importer.Supported(filename) {
		return nil, errors.NewValidationError("file", "must be an .xlsx or .csv file")
	}
	if len(data) == 0 {
		return nil, errors.NewValidationError("file", "is empty")
	}

	imp, err := s.importRepo.Create(ctx, profileID, filename)
	if err != nil {
		log.Error("failed to create import: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if err := s.jobQueue.EnqueueImport(*imp, data); err != nil {
		log.Warn("failed to enqueue import %d: %v", imp.ID, err)
		now := s.clock.Now()
		imp.Status = models.ImportStatusFailed
		imp.Error = err.Error()
		imp.FinishedAt = &now
		if ferr := s.importRepo.Finish(ctx, *imp); ferr != nil {
			log.Warn("failed to mark import failed: %v", ferr)
		}
		if stderrors.Is(err, worker.ErrQueueFull) || stderrors.Is(err, worker.ErrPoolStopped) {
			return nil, errors.NewUnavailableError("import queue is busy, try again later", err)
		}
		return nil, errors.NewInternalError(err)
	}

	log.Info("queued vocabulary import: id=%d, filename=%s, bytes=%d", imp.ID, filename, len(data))
	return imp, nil
}

func (s *vocabularyService) GetImport(ctx context.Context, profileID int64, id int64) (*models.VocabularyImport, error) {
	imp, err := s.importRepo.Get(ctx, id, profileID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get import: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if imp == nil {
		return nil, errors.NewNotFoundError("import", id)
	}
	return imp, nil
}
