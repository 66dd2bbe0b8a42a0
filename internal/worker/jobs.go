package worker

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/lexiflash/internal/clock"
	"github.com/vytor/lexiflash/internal/importer"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
	"github.com/vytor/lexiflash/internal/srs"
)

// ImportVocabularyJob parses an uploaded spreadsheet and inserts its rows as
// new vocabulary items for one profile.
type ImportVocabularyJob struct {
	ImportRepo     repository.ImportRepository
	VocabularyRepo repository.VocabularyRepository
	Clock          clock.Clock
	Import         models.VocabularyImport
	Data           []byte
}

func (j *ImportVocabularyJob) Name() string { return "import_vocabulary" }

func (j *ImportVocabularyJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"import_id":  j.Import.ID,
		"profile_id": j.Import.ProfileID,
	})
	log.Info("starting vocabulary import: %s", j.Import.Filename)

	if err := j.ImportRepo.MarkRunning(ctx, j.Import.ID); err != nil {
		log.WithError(err).Warn("failed to mark import running")
	}

	imp := j.Import
	res, err := importer.Parse(bytes.NewReader(j.Data), imp.Filename)
	if err != nil {
		log.WithError(err).Error("failed to parse upload")
		j.finish(ctx, log, imp, err)
		return err
	}

	now := j.Clock.Now()
	items := make([]models.VocabularyItem, 0, len(res.Rows))
	for _, row := range res.Rows {
		items = append(items, models.VocabularyItem{
			ID:               uuid.NewString(),
			ProfileID:        imp.ProfileID,
			Term:             row.Term,
			Translation:      row.Translation,
			Definition:       row.Definition,
			ExampleSentence:  row.ExampleSentence,
			Pronunciation:    row.Pronunciation,
			PhoneticSpelling: row.PhoneticSpelling,
			PartOfSpeech:     row.PartOfSpeech,
			Memory:           srs.NewState(now),
			DateAdded:        now,
		})
	}

	created, err := j.VocabularyRepo.InsertBatch(ctx, items)
	if err != nil {
		log.WithError(err).Error("failed to insert imported items")
		j.finish(ctx, log, imp, err)
		return err
	}

	imp.TotalRows = len(res.Rows) + len(res.Errors)
	imp.CreatedCount = created
	imp.SkippedCount = imp.TotalRows - created
	for _, msg := range res.Errors {
		log.Debug("skipped %s", msg)
	}
	log.Info("imported %d new items (%d skipped)", created, imp.SkippedCount)
	j.finish(ctx, log, imp, nil)
	return nil
}

func (j *ImportVocabularyJob) finish(ctx context.Context, log *logger.Logger, imp models.VocabularyImport, runErr error) {
	finished := j.Clock.Now()
	imp.FinishedAt = &finished
	imp.Status = models.ImportStatusCompleted
	if runErr != nil {
		imp.Status = models.ImportStatusFailed
		imp.Error = runErr.Error()
	}
	// The job context may already be cancelled during shutdown.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := j.ImportRepo.Finish(saveCtx, imp); err != nil {
		log.WithError(err).Warn("failed to record import result")
	}
}
