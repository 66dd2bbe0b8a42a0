package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lexiflash/internal/clock"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository/sqlite"
	"github.com/vytor/lexiflash/internal/testutil"
	"github.com/vytor/lexiflash/internal/worker"
)

func TestImportVocabularyJob_InsertsNewRows(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.MustClose(t, db)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	profileID := testutil.InsertProfile(t, db, "ana")
	importRepo := sqlite.NewImportRepository(db)
	vocabRepo := sqlite.NewVocabularyRepository(db, func() time.Time { return now })

	imp, err := importRepo.Create(ctx, profileID, "deck.csv")
	require.NoError(t, err)

	job := &worker.ImportVocabularyJob{
		ImportRepo:     importRepo,
		VocabularyRepo: vocabRepo,
		Clock:          clock.Fixed(now),
		Import:         *imp,
		Data:           []byte("term,translation\nhola,hello\nhola,hi\n,missing\nadios,bye\n"),
	}
	require.NoError(t, job.Run(ctx))

	got, err := importRepo.Get(ctx, imp.ID, profileID)
	require.NoError(t, err)
	assert.Equal(t, models.ImportStatusCompleted, got.Status)
	assert.Equal(t, 4, got.TotalRows)
	assert.Equal(t, 2, got.CreatedCount)
	assert.Equal(t, 2, got.SkippedCount)

	items, err := vocabRepo.ListByProfile(ctx, profileID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		assert.Equal(t, 2.5, it.Memory.EaseFactor)
		assert.True(t, it.Memory.IsDue(now))
	}
}

func TestImportVocabularyJob_FailsOnUnsupportedFile(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.MustClose(t, db)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	profileID := testutil.InsertProfile(t, db, "ana")
	importRepo := sqlite.NewImportRepository(db)

	imp, err := importRepo.Create(ctx, profileID, "deck.pdf")
	require.NoError(t, err)

	job := &worker.ImportVocabularyJob{
		ImportRepo:     importRepo,
		VocabularyRepo: sqlite.NewVocabularyRepository(db, nil),
		Clock:          clock.Fixed(now),
		Import:         *imp,
		Data:           []byte("%PDF"),
	}
	assert.Error(t, job.Run(ctx))

	got, err := importRepo.Get(ctx, imp.ID, profileID)
	require.NoError(t, err)
	assert.Equal(t, models.ImportStatusFailed, got.Status)
	assert.NotEmpty(t, got.Error)
	assert.NotNil(t, got.FinishedAt)
}
