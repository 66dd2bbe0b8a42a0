package services_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lexiflash/internal/clock"
	apperrors "github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
	"github.com/vytor/lexiflash/internal/services"
	"github.com/vytor/lexiflash/internal/testutil/mocks"
	"github.com/vytor/lexiflash/internal/worker"
)

func newVocabularyService() (services.VocabularyService, *mocks.MockVocabularyRepository, *mocks.MockImportRepository, *mocks.MockJobQueue) {
	vocab := new(mocks.MockVocabularyRepository)
	imports := new(mocks.MockImportRepository)
	queue := new(mocks.MockJobQueue)
	return services.NewVocabularyService(vocab, imports, queue, clock.Fixed(now)), vocab, imports, queue
}

func TestVocabularyService_AddItem(t *testing.T) {
	svc, vocab, _, _ := newVocabularyService()
	vocab.On("Insert", mock.Anything, mock.MatchedBy(func(it models.VocabularyItem) bool {
		return it.Term == "perro" && it.PartOfSpeech == "noun" && it.ID != "" &&
			it.Memory.EaseFactor == 2.5 && it.Memory.NextReviewAt.Equal(now)
	})).Return(nil).Once()

	item, err := svc.AddItem(context.Background(), 1, models.VocabularyInput{Term: " perro ", Translation: "dog", PartOfSpeech: "Noun"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ProfileID)
	assert.Len(t, item.ID, 36)

	vocab.On("Insert", mock.Anything, mock.Anything).Return(repository.ErrDuplicate).Once()
	_, err = svc.AddItem(context.Background(), 1, models.VocabularyInput{Term: "perro"})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.AsAppError(err).Code)

	_, err = svc.AddItem(context.Background(), 1, models.VocabularyInput{Term: "   "})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.AsAppError(err).Code)
}

func TestVocabularyService_ListItemsClampsLimit(t *testing.T) {
	svc, vocab, _, _ := newVocabularyService()
	want := models.VocabularyFilter{ProfileID: 1, Limit: 50}
	vocab.On("List", mock.Anything, want).Return([]models.VocabularyItem{{ID: "a"}}, nil)
	vocab.On("Count", mock.Anything, want).Return(12, nil)

	items, total, err := svc.ListItems(context.Background(), models.VocabularyFilter{ProfileID: 1, Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 12, total)
}

func TestVocabularyService_ListItemsDueOnlyUsesClock(t *testing.T) {
	svc, vocab, _, _ := newVocabularyService()
	dueAtNow := mock.MatchedBy(func(f models.VocabularyFilter) bool {
		return f.DueBefore != nil && f.DueBefore.Equal(now)
	})
	vocab.On("List", mock.Anything, dueAtNow).Return([]models.VocabularyItem{}, nil)
	vocab.On("Count", mock.Anything, dueAtNow).Return(0, nil)

	_, _, err := svc.ListItems(context.Background(), models.VocabularyFilter{ProfileID: 1, DueOnly: true})
	require.NoError(t, err)
	vocab.AssertExpectations(t)
}

func TestVocabularyService_DeleteMissing(t *testing.T) {
	svc, vocab, _, _ := newVocabularyService()
	vocab.On("Delete", mock.Anything, "x", int64(1)).Return(sql.ErrNoRows)

	err := svc.DeleteItem(context.Background(), 1, "x")
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.AsAppError(err).Code)
}

func TestVocabularyService_Stats(t *testing.T) {
	svc, vocab, _, _ := newVocabularyService()
	vocab.On("ListByProfile", mock.Anything, int64(1)).Return([]models.VocabularyItem{
		{ID: "new", Memory: models.MemoryState{NextReviewAt: now, EaseFactor: 2.5}},
		{ID: "weak", Memory: models.MemoryState{NextReviewAt: now.Add(time.Hour), IntervalDays: 2, EaseFactor: 1.9, Streak: 1}},
		{ID: "learned", Memory: models.MemoryState{NextReviewAt: now.Add(30 * 24 * time.Hour), IntervalDays: 30, EaseFactor: 2.6, Streak: 5}},
	}, nil)

	st, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalItems)
	assert.Equal(t, 1, st.DueItems)
	assert.Equal(t, 1, st.WeakItems)
	assert.Equal(t, 1, st.NewItems)
	assert.Equal(t, 1, st.LearnedItems)
	assert.InDelta(t, 2.3333, st.AvgEase, 1e-3)
	assert.InDelta(t, 32.0/3, st.AvgInterval, 1e-9)
}

func TestVocabularyService_StartImport(t *testing.T) {
	svc, _, imports, queue := newVocabularyService()
	imp := &models.VocabularyImport{ID: 7, ProfileID: 1, Filename: "deck.csv", Status: models.ImportStatusPending}
	imports.On("Create", mock.Anything, int64(1), "deck.csv").Return(imp, nil)
	queue.On("EnqueueImport", *imp, []byte("term\nhola\n")).Return(nil)

	got, err := svc.StartImport(context.Background(), 1, "deck.csv", []byte("term\nhola\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	queue.AssertExpectations(t)

	_, err = svc.StartImport(context.Background(), 1, "deck.pdf", []byte("x"))
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.AsAppError(err).Code)
}

func TestVocabularyService_StartImportQueueFull(t *testing.T) {
	svc, _, imports, queue := newVocabularyService()
	imp := &models.VocabularyImport{ID: 8, ProfileID: 1, Filename: "deck.xlsx"}
	imports.On("Create", mock.Anything, int64(1), "deck.xlsx").Return(imp, nil)
	queue.On("EnqueueImport", mock.Anything, mock.Anything).Return(worker.ErrQueueFull)
	imports.On("Finish", mock.Anything, mock.MatchedBy(func(i models.VocabularyImport) bool {
		return i.ID == 8 && i.Status == models.ImportStatusFailed
	})).Return(nil)

	_, err := svc.StartImport(context.Background(), 1, "deck.xlsx", []byte("PK"))
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrCodeUnavailable, appErr.Code)
	assert.Equal(t, 503, appErr.Status)
	imports.AssertExpectations(t)
}
