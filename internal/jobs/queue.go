package jobs

import "github.com/vytor/lexiflash/internal/models"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueImport(imp models.VocabularyImport, data []byte) error
}
