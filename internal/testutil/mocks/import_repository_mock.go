package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lexiflash/internal/models"
)

// MockImportRepository is a mock implementation of repository.ImportRepository
type MockImportRepository struct {
	mock.Mock
}

func (m *MockImportRepository) Create(ctx context.Context, profileID int64, filename string) (*models.VocabularyImport, error) {
	args := m.Called(ctx, profileID, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VocabularyImport), args.Error(1)
}

func (m *MockImportRepository) Get(ctx context.Context, id int64, profileID int64) (*models.VocabularyImport, error) {
	args := m.Called(ctx, id, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VocabularyImport), args.Error(1)
}

func (m *MockImportRepository) MarkRunning(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockImportRepository) Finish(ctx context.Context, imp models.VocabularyImport) error {
	args := m.Called(ctx, imp)
	return args.Error(0)
}
