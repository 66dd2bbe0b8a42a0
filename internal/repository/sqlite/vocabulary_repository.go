package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
	"github.com/vytor/lexiflash/internal/srs"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

var vocabularyColumns = []string{
	"id", "profile_id", "term", "translation", "definition", "example_sentence",
	"pronunciation", "phonetic_spelling", "part_of_speech",
	"next_review_at", "interval_days", "ease_factor", "streak", "date_added",
}

type vocabularyRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewVocabularyRepository creates a new VocabularyRepository implementation.
// now is used to fill in missing review times on load; nil means time.Now.
func NewVocabularyRepository(db *sql.DB, now func() time.Time) repository.VocabularyRepository {
	if now == nil {
		now = time.Now
	}
	return &vocabularyRepository{db: db, now: now}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *vocabularyRepository) scanItem(row rowScanner) (models.VocabularyItem, error) {
	var (
		it       models.VocabularyItem
		next     sql.NullTime
		interval sql.NullFloat64
		ease     sql.NullFloat64
		streak   sql.NullInt64
	)
	err := row.Scan(&it.ID, &it.ProfileID, &it.Term, &it.Translation, &it.Definition, &it.ExampleSentence,
		&it.Pronunciation, &it.PhoneticSpelling, &it.PartOfSpeech,
		&next, &interval, &ease, &streak, &it.DateAdded)
	if err != nil {
		return it, err
	}
	it.Memory = srs.Normalize(models.MemoryState{
		NextReviewAt: next.Time,
		IntervalDays: interval.Float64,
		EaseFactor:   ease.Float64,
		Streak:       int(streak.Int64),
	}, r.now())
	return it, nil
}

func applyVocabularyFilter(q squirrel.SelectBuilder, filter models.VocabularyFilter) squirrel.SelectBuilder {
	if filter.ProfileID != 0 {
		q = q.Where(squirrel.Eq{"profile_id": filter.ProfileID})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.Like{"term": pattern},
			squirrel.Like{"translation": pattern},
		})
	}
	if filter.PartOfSpeech != "" {
		q = q.Where(squirrel.Eq{"part_of_speech": filter.PartOfSpeech})
	}
	if filter.DueBefore != nil {
		q = q.Where(squirrel.Or{
			squirrel.Eq{"next_review_at": nil},
			squirrel.LtOrEq{"next_review_at": filter.DueBefore.UTC()},
		})
	}
	return q
}

func (r *vocabularyRepository) Get(ctx context.Context, id string, profileID int64) (*models.VocabularyItem, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	log.Debug("getting item: id=%s, profile_id=%d", id, profileID)

	query, args, err := sqlBuilder.Select(vocabularyColumns...).
		From("vocabulary_items").
		Where(squirrel.Eq{"id": id, "profile_id": profileID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	it, err := r.scanItem(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("item not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get item: %v", err)
		return nil, err
	}
	return &it, nil
}

func (r *vocabularyRepository) List(ctx context.Context, filter models.VocabularyFilter) ([]models.VocabularyItem, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	log.Debug("listing items: profile_id=%d, search=%q, pos=%q", filter.ProfileID, filter.Search, filter.PartOfSpeech)

	q := applyVocabularyFilter(sqlBuilder.Select(vocabularyColumns...).From("vocabulary_items"), filter).
		OrderBy("date_added DESC", "id ASC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	q = q.Limit(uint64(limit)).Offset(uint64(offset))

	return r.query(ctx, q)
}

func (r *vocabularyRepository) ListByProfile(ctx context.Context, profileID int64) ([]models.VocabularyItem, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	log.Debug("loading all items: profile_id=%d", profileID)

	q := sqlBuilder.Select(vocabularyColumns...).
		From("vocabulary_items").
		Where(squirrel.Eq{"profile_id": profileID}).
		OrderBy("id ASC")
	return r.query(ctx, q)
}

func (r *vocabularyRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]models.VocabularyItem, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")

	query, args, err := q.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query items: %v", err)
		return nil, err
	}
	defer rows.Close()

	items := []models.VocabularyItem{}
	for rows.Next() {
		it, err := r.scanItem(rows)
		if err != nil {
			log.Error("failed to scan item row: %v", err)
			return nil, err
		}
		items = append(items, it)
	}
	log.Debug("found %d items", len(items))
	return items, rows.Err()
}

func (r *vocabularyRepository) Count(ctx context.Context, filter models.VocabularyFilter) (int, error) {
	q := applyVocabularyFilter(sqlBuilder.Select("COUNT(*)").From("vocabulary_items"), filter)
	query, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.FromContext(ctx).WithPrefix("vocabulary_repo").Error("failed to count items: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *vocabularyRepository) CountDue(ctx context.Context, profileID int64, now time.Time) (int, error) {
	return r.Count(ctx, models.VocabularyFilter{ProfileID: profileID, DueBefore: &now})
}

func insertItem(ctx context.Context, exec interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}, it models.VocabularyItem) (sql.Result, error) {
	query, args, err := sqlBuilder.Insert("vocabulary_items").
		Columns(vocabularyColumns...).
		Values(it.ID, it.ProfileID, it.Term, it.Translation, it.Definition, it.ExampleSentence,
			it.Pronunciation, it.PhoneticSpelling, it.PartOfSpeech,
			it.Memory.NextReviewAt.UTC(), it.Memory.IntervalDays, it.Memory.EaseFactor, it.Memory.Streak,
			it.DateAdded.UTC()).
		Suffix("ON CONFLICT(profile_id, term) DO NOTHING").
		ToSql()
	if err != nil {
		return nil, err
	}
	return exec.ExecContext(ctx, query, args...)
}

func (r *vocabularyRepository) Insert(ctx context.Context, it models.VocabularyItem) error {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	log.Debug("inserting item: id=%s, term=%s", it.ID, it.Term)

	res, err := insertItem(ctx, r.db, it)
	if err != nil {
		log.Error("failed to insert item: %v", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrDuplicate
	}
	return nil
}

// InsertBatch inserts items in one transaction and returns how many were new.
// Terms the profile already owns are skipped.
func (r *vocabularyRepository) InsertBatch(ctx context.Context, items []models.VocabularyItem) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	log.Debug("inserting batch of %d items", len(items))

	created := 0
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, it := range items {
			res, err := insertItem(ctx, tx, it)
			if err != nil {
				log.Error("failed to insert item %s: %v", it.Term, err)
				return err
			}
			if n, _ := res.RowsAffected(); n > 0 {
				created++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.Debug("batch inserted: created=%d, skipped=%d", created, len(items)-created)
	return created, nil
}

func (r *vocabularyRepository) UpdateMemory(ctx context.Context, id string, m models.MemoryState) error {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	log.Debug("updating memory: id=%s, interval=%.2f, ease=%.2f, streak=%d", id, m.IntervalDays, m.EaseFactor, m.Streak)

	_, err := r.db.ExecContext(ctx, `
UPDATE vocabulary_items
SET next_review_at = ?, interval_days = ?, ease_factor = ?, streak = ?
WHERE id = ?
`, m.NextReviewAt.UTC(), m.IntervalDays, m.EaseFactor, m.Streak, id)
	if err != nil {
		log.Error("failed to update memory: %v", err)
	}
	return err
}

func (r *vocabularyRepository) Delete(ctx context.Context, id string, profileID int64) error {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	log.Debug("deleting item: id=%s, profile_id=%d", id, profileID)

	res, err := r.db.ExecContext(ctx, `DELETE FROM vocabulary_items WHERE id = ? AND profile_id = ?`, id, profileID)
	if err != nil {
		log.Error("failed to delete item: %v", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
