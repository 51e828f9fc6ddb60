package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mindcare/internal/model"
)

type MoodRepository struct {
	db *sql.DB
}

func NewMoodRepository(db *sql.DB) *MoodRepository {
	return &MoodRepository{db: db}
}

func (r *MoodRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return tx, nil
}

func (r *MoodRepository) InsertTx(ctx context.Context, tx *sql.Tx, mood *model.Mood) error {
	_, err := tx.ExecContext(
		ctx,
		`INSERT INTO moods (id, user_id, mood, source, day, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		mood.ID,
		mood.UserID,
		mood.Mood,
		mood.Source,
		mood.Day,
		formatTime(mood.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert mood: %w", err)
	}
	return nil
}

// ListSince returns moods recorded on or after the given day, oldest first.
// An empty userID lists every user's moods.
func (r *MoodRepository) ListSince(ctx context.Context, userID, day string) ([]model.Mood, error) {
	query := `SELECT id, user_id, mood, source, day, created_at FROM moods WHERE day >= ?`
	args := []interface{}{day}
	if userID != "" {
		query += ` AND user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}
	defer rows.Close()

	moods := make([]model.Mood, 0)
	for rows.Next() {
		var mood model.Mood
		var createdAt string
		if err := rows.Scan(&mood.ID, &mood.UserID, &mood.Mood, &mood.Source, &mood.Day, &createdAt); err != nil {
			return nil, fmt.Errorf("scan mood: %w", err)
		}
		parsed, err := parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse mood created_at: %w", err)
		}
		mood.CreatedAt = parsed
		moods = append(moods, mood)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate moods: %w", err)
	}
	return moods, nil
}
