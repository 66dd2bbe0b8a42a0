package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/lexiflash/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueImport(imp models.VocabularyImport, data []byte) error {
	args := m.Called(imp, data)
	return args.Error(0)
}
