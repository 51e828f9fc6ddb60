package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mindcare/internal/model"
)

type AlertRepository struct {
	db *sql.DB
}

func NewAlertRepository(db *sql.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, alert *model.Alert) error {
	var studentID interface{}
	if alert.StudentID != nil {
		studentID = *alert.StudentID
	}

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO alerts (id, student_id, message, level, created_at) VALUES (?, ?, ?, ?, ?)`,
		alert.ID,
		studentID,
		alert.Message,
		alert.Level,
		formatTime(alert.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

func (r *AlertRepository) ListRecent(ctx context.Context, limit int) ([]model.Alert, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT a.id, a.student_id, a.message, a.level, a.created_at, u.email, u.role
		 FROM alerts a
		 LEFT JOIN users u ON u.id = a.student_id
		 ORDER BY a.created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]model.Alert, 0, limit)
	for rows.Next() {
		var alert model.Alert
		var studentID, email, role sql.NullString
		var createdAt string
		if err := rows.Scan(&alert.ID, &studentID, &alert.Message, &alert.Level, &createdAt, &email, &role); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		if studentID.Valid {
			value := studentID.String
			alert.StudentID = &value
			alert.Student = &model.UserRef{ID: value, Email: email.String, Role: role.String}
		}
		parsed, err := parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse alert created_at: %w", err)
		}
		alert.CreatedAt = parsed
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alerts: %w", err)
	}
	return alerts, nil
}
