package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
)

type reviewHistoryRepository struct {
	db *sql.DB
}

// NewReviewHistoryRepository creates a new ReviewHistoryRepository implementation
func NewReviewHistoryRepository(db *sql.DB) repository.ReviewHistoryRepository {
	return &reviewHistoryRepository{db: db}
}

func (r *reviewHistoryRepository) Insert(ctx context.Context, h models.ReviewHistory) error {
	log := logger.FromContext(ctx).WithPrefix("review_history_repo")
	log.Debug("inserting review: item_id=%s, grade=%s", h.ItemID, h.Grade)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_history (item_id, grade, mode, time_seconds, reviewed_at)
VALUES (?, ?, ?, ?, ?)
`, h.ItemID, string(h.Grade), string(h.Mode), h.TimeSeconds, h.ReviewedAt.UTC())
	if err != nil {
		log.Error("failed to insert review history: %v", err)
	}
	return err
}

func (r *reviewHistoryRepository) ListForItem(ctx context.Context, itemID string) ([]models.ReviewHistory, error) {
	log := logger.FromContext(ctx).WithPrefix("review_history_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, item_id, grade, mode, time_seconds, reviewed_at
FROM review_history
WHERE item_id = ?
ORDER BY reviewed_at ASC, id ASC
`, itemID)
	if err != nil {
		log.Error("failed to list review history: %v", err)
		return nil, err
	}
	defer rows.Close()

	history := []models.ReviewHistory{}
	for rows.Next() {
		var (
			h           models.ReviewHistory
			grade, mode string
		)
		if err := rows.Scan(&h.ID, &h.ItemID, &grade, &mode, &h.TimeSeconds, &h.ReviewedAt); err != nil {
			return nil, err
		}
		h.Grade = models.Grade(grade)
		h.Mode = models.StudyMode(mode)
		history = append(history, h)
	}
	return history, rows.Err()
}
