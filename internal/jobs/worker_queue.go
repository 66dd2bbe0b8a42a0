package jobs

import (
	"github.com/vytor/lexiflash/internal/clock"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
	"github.com/vytor/lexiflash/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	importPool     *worker.Pool
	importRepo     repository.ImportRepository
	vocabularyRepo repository.VocabularyRepository
	clock          clock.Clock
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(
	importPool *worker.Pool,
	importRepo repository.ImportRepository,
	vocabularyRepo repository.VocabularyRepository,
	clk clock.Clock,
) JobQueue {
	return &WorkerQueue{
		importPool:     importPool,
		importRepo:     importRepo,
		vocabularyRepo: vocabularyRepo,
		clock:          clk,
	}
}

func (q *WorkerQueue) EnqueueImport(imp models.VocabularyImport, data []byte) error {
	return q.importPool.Submit(&worker.ImportVocabularyJob{
		ImportRepo:     q.importRepo,
		VocabularyRepo: q.vocabularyRepo,
		Clock:          q.clock,
		Import:         imp,
		Data:           data,
	})
}
