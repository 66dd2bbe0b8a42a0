package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lexiflash/internal/models"
)

// MockReviewHistoryRepository is a mock implementation of repository.ReviewHistoryRepository
type MockReviewHistoryRepository struct {
	mock.Mock
}

func (m *MockReviewHistoryRepository) Insert(ctx context.Context, review models.ReviewHistory) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewHistoryRepository) ListForItem(ctx context.Context, itemID string) ([]models.ReviewHistory, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewHistory), args.Error(1)
}
