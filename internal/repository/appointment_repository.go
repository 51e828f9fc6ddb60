package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mindcare/internal/model"
)

type AppointmentRepository struct {
	db *sql.DB
}

func NewAppointmentRepository(db *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// The joined columns carry the student and counsellor references so the
// list endpoints can return populated records in one query.
const appointmentSelect = `SELECT a.id, a.student_id, a.counsellor_id, a.date, a.time, a.status,
		a.created_at, a.updated_at, s.email, s.role, c.email, c.role
	FROM appointments a
	JOIN users s ON s.id = a.student_id
	JOIN users c ON c.id = a.counsellor_id`

func (r *AppointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO appointments (id, student_id, counsellor_id, date, time, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		appointment.ID,
		appointment.StudentID,
		appointment.CounsellorID,
		appointment.Date,
		appointment.Time,
		appointment.Status,
		formatTime(appointment.CreatedAt),
		formatTime(appointment.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	row := r.db.QueryRowContext(ctx, appointmentSelect+` WHERE a.id = ?`, id)
	return scanAppointment(row)
}

// ListForUser returns the appointments where userID is either party.
func (r *AppointmentRepository) ListForUser(ctx context.Context, userID string) ([]model.Appointment, error) {
	rows, err := r.db.QueryContext(
		ctx,
		appointmentSelect+` WHERE a.student_id = ? OR a.counsellor_id = ? ORDER BY a.date, a.time`,
		userID,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	appointments := make([]model.Appointment, 0)
	for rows.Next() {
		appointment, scanErr := scanAppointment(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		appointments = append(appointments, *appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}
	return appointments, nil
}

// IsSlotTaken reports whether a scheduled appointment already holds the
// counsellor's date and time.
func (r *AppointmentRepository) IsSlotTaken(ctx context.Context, counsellorID, date, slot string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(
		ctx,
		`SELECT EXISTS(
			SELECT 1 FROM appointments
			WHERE counsellor_id = ? AND date = ? AND time = ? AND status = ?
		)`,
		counsellorID,
		date,
		slot,
		model.AppointmentScheduled,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slot: %w", err)
	}
	return exists, nil
}

func (r *AppointmentRepository) CountScheduledFrom(ctx context.Context, date string) (int, error) {
	var count int
	err := r.db.QueryRowContext(
		ctx,
		`SELECT COUNT(1) FROM appointments WHERE status = ? AND date >= ?`,
		model.AppointmentScheduled,
		date,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count appointments: %w", err)
	}
	return count, nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, appointment *model.Appointment) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE appointments SET status = ?, updated_at = ? WHERE id = ?`,
		appointment.Status,
		formatTime(appointment.UpdatedAt),
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	return nil
}

func scanAppointment(s scanner) (*model.Appointment, error) {
	var appointment model.Appointment
	var createdAt, updatedAt string
	student := model.UserRef{}
	counsellor := model.UserRef{}
	err := s.Scan(
		&appointment.ID,
		&appointment.StudentID,
		&appointment.CounsellorID,
		&appointment.Date,
		&appointment.Time,
		&appointment.Status,
		&createdAt,
		&updatedAt,
		&student.Email,
		&student.Role,
		&counsellor.Email,
		&counsellor.Role,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan appointment: %w", err)
	}

	student.ID = appointment.StudentID
	counsellor.ID = appointment.CounsellorID
	appointment.Student = &student
	appointment.Counsellor = &counsellor

	if appointment.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse appointment created_at: %w", err)
	}
	if appointment.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse appointment updated_at: %w", err)
	}
	return &appointment, nil
}
