package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lexiflash/internal/models"
)

// MockVocabularyRepository is a mock implementation of repository.VocabularyRepository
type MockVocabularyRepository struct {
	mock.Mock
}

func (m *MockVocabularyRepository) Get(ctx context.Context, id string, profileID int64) (*models.VocabularyItem, error) {
	args := m.Called(ctx, id, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VocabularyItem), args.Error(1)
}

func (m *MockVocabularyRepository) List(ctx context.Context, filter models.VocabularyFilter) ([]models.VocabularyItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VocabularyItem), args.Error(1)
}

func (m *MockVocabularyRepository) Count(ctx context.Context, filter models.VocabularyFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockVocabularyRepository) ListByProfile(ctx context.Context, profileID int64) ([]models.VocabularyItem, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VocabularyItem), args.Error(1)
}

func (m *MockVocabularyRepository) Insert(ctx context.Context, item models.VocabularyItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockVocabularyRepository) InsertBatch(ctx context.Context, items []models.VocabularyItem) (int, error) {
	args := m.Called(ctx, items)
	return args.Int(0), args.Error(1)
}

func (m *MockVocabularyRepository) UpdateMemory(ctx context.Context, id string, memory models.MemoryState) error {
	args := m.Called(ctx, id, memory)
	return args.Error(0)
}

func (m *MockVocabularyRepository) Delete(ctx context.Context, id string, profileID int64) error {
	args := m.Called(ctx, id, profileID)
	return args.Error(0)
}

func (m *MockVocabularyRepository) CountDue(ctx context.Context, profileID int64, now time.Time) (int, error) {
	args := m.Called(ctx, profileID, now)
	return args.Int(0), args.Error(1)
}
