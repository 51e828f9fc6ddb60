package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mindcare/internal/model"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, name, role, campus, specialization,
	available_days, available_hours, languages, points, streak_count,
	last_checkin_day, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	specialization, err := encodeList(user.Specialization)
	if err != nil {
		return err
	}
	days, err := encodeList(user.AvailableDays)
	if err != nil {
		return err
	}
	languages, err := encodeList(user.Languages)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(
		ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Role,
		user.Campus,
		specialization,
		days,
		user.AvailableHours,
		languages,
		user.Points,
		user.StreakCount,
		user.LastCheckInDay,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByIDTx(ctx context.Context, tx *sql.Tx, id string) (*model.User, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *UserRepository) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE role = ? ORDER BY name, email`,
		role,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) CountByRole(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role, COUNT(1) FROM users GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var role string
		var count int
		if err := rows.Scan(&role, &count); err != nil {
			return nil, fmt.Errorf("scan user count: %w", err)
		}
		counts[role] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user counts: %w", err)
	}
	return counts, nil
}

func (r *UserRepository) UpdatePointsTx(ctx context.Context, tx *sql.Tx, user *model.User) error {
	_, err := tx.ExecContext(
		ctx,
		`UPDATE users
		 SET points = ?,
		     streak_count = ?,
			 last_checkin_day = ?,
			 updated_at = ?
		 WHERE id = ?`,
		user.Points,
		user.StreakCount,
		user.LastCheckInDay,
		formatTime(user.UpdatedAt),
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("update points: %w", err)
	}
	return nil
}

func scanUser(s scanner) (*model.User, error) {
	var user model.User
	var specialization, days, languages string
	var createdAt, updatedAt string
	err := s.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Role,
		&user.Campus,
		&specialization,
		&days,
		&user.AvailableHours,
		&languages,
		&user.Points,
		&user.StreakCount,
		&user.LastCheckInDay,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	if user.Specialization, err = decodeList(specialization); err != nil {
		return nil, fmt.Errorf("user specialization: %w", err)
	}
	if user.AvailableDays, err = decodeList(days); err != nil {
		return nil, fmt.Errorf("user available_days: %w", err)
	}
	if user.Languages, err = decodeList(languages); err != nil {
		return nil, fmt.Errorf("user languages: %w", err)
	}
	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse user created_at: %w", err)
	}
	if user.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse user updated_at: %w", err)
	}
	return &user, nil
}
