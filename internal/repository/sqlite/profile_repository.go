package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
)

const profileColumns = `id, username, created_at, words_studied_today, last_study_date,
streak, longest_streak, streak_freeze, xp, daily_goal`

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository implementation
func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func scanProfile(row rowScanner) (models.Profile, error) {
	var (
		p    models.Profile
		last string
	)
	err := row.Scan(&p.ID, &p.Username, &p.CreatedAt, &p.Progress.WordsStudiedToday, &last,
		&p.Progress.Streak, &p.Progress.LongestStreak, &p.Progress.StreakFreeze, &p.Progress.XP, &p.Progress.DailyGoal)
	if err != nil {
		return p, err
	}
	day, err := models.ParseDay(last)
	if err != nil {
		return p, err
	}
	p.Progress.LastStudyDate = day
	return p, nil
}

func (r *profileRepository) Upsert(ctx context.Context, username string, dailyGoal int) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("upserting profile for username: %s", username)

	p, err := scanProfile(r.db.QueryRowContext(ctx, `
INSERT INTO profiles (username, daily_goal)
VALUES (?, ?)
ON CONFLICT(username) DO UPDATE SET username = excluded.username
RETURNING `+profileColumns, username, dailyGoal))
	if err != nil {
		log.Error("failed to upsert profile: %v", err)
		return nil, err
	}
	log.Debug("profile upserted: id=%d", p.ID)
	return &p, nil
}

func (r *profileRepository) Get(ctx context.Context, id int64) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("getting profile: id=%d", id)

	p, err := scanProfile(r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("profile not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("listing profiles")

	rows, err := r.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY created_at ASC, id ASC`)
	if err != nil {
		log.Error("failed to list profiles: %v", err)
		return nil, err
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			log.Error("failed to scan profile row: %v", err)
			return nil, err
		}
		profiles = append(profiles, p)
	}

	log.Debug("found %d profiles", len(profiles))
	return profiles, rows.Err()
}

func (r *profileRepository) UpdateProgress(ctx context.Context, id int64, p models.DailyProgress) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("updating progress: profile_id=%d, xp=%d, streak=%d", id, p.XP, p.Streak)

	last := ""
	if !p.LastStudyDate.IsZero() {
		last = p.LastStudyDate.String()
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE profiles
SET words_studied_today = ?, last_study_date = ?, streak = ?, longest_streak = ?,
    streak_freeze = ?, xp = ?, daily_goal = ?
WHERE id = ?
`, p.WordsStudiedToday, last, p.Streak, p.LongestStreak, p.StreakFreeze, p.XP, p.DailyGoal, id)
	if err != nil {
		log.Error("failed to update progress: %v", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *profileRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Info("deleting profile: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete profile: %v", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
