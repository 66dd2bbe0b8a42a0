package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
)

type importRepository struct {
	db *sql.DB
}

// NewImportRepository creates a new ImportRepository implementation
func NewImportRepository(db *sql.DB) repository.ImportRepository {
	return &importRepository{db: db}
}

const importColumns = `id, profile_id, filename, status, total_rows, created_count, skipped_count, error, created_at, finished_at`

func scanImport(row rowScanner) (models.VocabularyImport, error) {
	var (
		imp      models.VocabularyImport
		finished sql.NullTime
	)
	err := row.Scan(&imp.ID, &imp.ProfileID, &imp.Filename, &imp.Status, &imp.TotalRows,
		&imp.CreatedCount, &imp.SkippedCount, &imp.Error, &imp.CreatedAt, &finished)
	if finished.Valid {
		imp.FinishedAt = &finished.Time
	}
	return imp, err
}

func (r *importRepository) Create(ctx context.Context, profileID int64, filename string) (*models.VocabularyImport, error) {
	log := logger.FromContext(ctx).WithPrefix("import_repo")
	log.Debug("creating import: profile_id=%d, filename=%s", profileID, filename)

	imp, err := scanImport(r.db.QueryRowContext(ctx, `
INSERT INTO vocabulary_imports (profile_id, filename, status)
VALUES (?, ?, ?)
RETURNING `+importColumns, profileID, filename, models.ImportStatusPending))
	if err != nil {
		log.Error("failed to create import: %v", err)
		return nil, err
	}
	return &imp, nil
}

func (r *importRepository) Get(ctx context.Context, id int64, profileID int64) (*models.VocabularyImport, error) {
	imp, err := scanImport(r.db.QueryRowContext(ctx,
		`SELECT `+importColumns+` FROM vocabulary_imports WHERE id = ? AND profile_id = ?`, id, profileID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromContext(ctx).WithPrefix("import_repo").Error("failed to get import: %v", err)
		return nil, err
	}
	return &imp, nil
}

func (r *importRepository) MarkRunning(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE vocabulary_imports SET status = ? WHERE id = ?`, models.ImportStatusRunning, id)
	return err
}

func (r *importRepository) Finish(ctx context.Context, imp models.VocabularyImport) error {
	log := logger.FromContext(ctx).WithPrefix("import_repo")
	log.Debug("finishing import: id=%d, status=%s, created=%d, skipped=%d", imp.ID, imp.Status, imp.CreatedCount, imp.SkippedCount)

	var finished any
	if imp.FinishedAt != nil {
		finished = imp.FinishedAt.UTC()
	}
	_, err := r.db.ExecContext(ctx, `
UPDATE vocabulary_imports
SET status = ?, total_rows = ?, created_count = ?, skipped_count = ?, error = ?, finished_at = ?
WHERE id = ?
`, imp.Status, imp.TotalRows, imp.CreatedCount, imp.SkippedCount, imp.Error, finished, imp.ID)
	if err != nil {
		log.Error("failed to finish import: %v", err)
	}
	return err
}
