package api

import (
	"context"

	"github.com/vytor/lexiflash/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	DB                Pinger
	ProfileService    services.ProfileService
	VocabularyService services.VocabularyService
	StudyService      services.StudyService
	ProgressService   services.ProgressService
	MaxUploadBytes    int64
}
