package repository

import (
	"context"
	"time"

	"github.com/vytor/lexiflash/internal/models"
)

// VocabularyRepository handles vocabulary item data access
type VocabularyRepository interface {
	Get(ctx context.Context, id string, profileID int64) (*models.VocabularyItem, error)
	List(ctx context.Context, filter models.VocabularyFilter) ([]models.VocabularyItem, error)
	Count(ctx context.Context, filter models.VocabularyFilter) (int, error)
	ListByProfile(ctx context.Context, profileID int64) ([]models.VocabularyItem, error)
	Insert(ctx context.Context, item models.VocabularyItem) error
	InsertBatch(ctx context.Context, items []models.VocabularyItem) (int, error)
	UpdateMemory(ctx context.Context, id string, memory models.MemoryState) error
	Delete(ctx context.Context, id string, profileID int64) error
	CountDue(ctx context.Context, profileID int64, now time.Time) (int, error)
}

// ProfileRepository handles profile data access
type ProfileRepository interface {
	Get(ctx context.Context, id int64) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Upsert(ctx context.Context, username string, dailyGoal int) (*models.Profile, error)
	UpdateProgress(ctx context.Context, id int64, progress models.DailyProgress) error
	Delete(ctx context.Context, id int64) error
}

// ReviewHistoryRepository stores one row per graded review
type ReviewHistoryRepository interface {
	Insert(ctx context.Context, review models.ReviewHistory) error
	ListForItem(ctx context.Context, itemID string) ([]models.ReviewHistory, error)
}

// ImportRepository tracks background vocabulary imports
type ImportRepository interface {
	Create(ctx context.Context, profileID int64, filename string) (*models.VocabularyImport, error)
	Get(ctx context.Context, id int64, profileID int64) (*models.VocabularyImport, error)
	MarkRunning(ctx context.Context, id int64) error
	Finish(ctx context.Context, imp models.VocabularyImport) error
}
