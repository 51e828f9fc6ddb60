package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "mindcare/internal/errors"
	"mindcare/internal/model"
	"mindcare/internal/repository"
)

const dateLayout = "2006-01-02"

type AppointmentService struct {
	appointmentRepo *repository.AppointmentRepository
	userRepo        *repository.UserRepository
}

type CreateAppointmentInput struct {
	StudentID    string
	CounsellorID string
	Date         string
	Time         string
}

func NewAppointmentService(
	appointmentRepo *repository.AppointmentRepository,
	userRepo *repository.UserRepository,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
	}
}

func (s *AppointmentService) Counsellors(ctx context.Context) ([]model.User, *apperrors.APIError) {
	counsellors, err := s.userRepo.ListByRole(ctx, model.RoleCounsellor)
	if err != nil {
		return nil, apperrors.Internal("failed to list counsellors")
	}
	return counsellors, nil
}

func (s *AppointmentService) Create(ctx context.Context, input CreateAppointmentInput) (*model.Appointment, *apperrors.APIError) {
	date := strings.TrimSpace(input.Date)
	slot := strings.TrimSpace(input.Time)
	if input.CounsellorID == "" || date == "" || slot == "" {
		return nil, apperrors.BadRequest("invalid_appointment", "counsellorId, date and time are required")
	}
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, apperrors.BadRequest("invalid_date", "date must be formatted as YYYY-MM-DD")
	}

	counsellor, err := s.userRepo.GetByID(ctx, input.CounsellorID)
	if err == repository.ErrNotFound || (err == nil && counsellor.Role != model.RoleCounsellor) {
		return nil, apperrors.NotFound("counsellor_not_found", "counsellor not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to query counsellor")
	}

	if len(counsellor.AvailableDays) > 0 && !containsFold(counsellor.AvailableDays, day.Weekday().String()) {
		return nil, apperrors.BadRequest("counsellor_unavailable", "counsellor is not available on "+day.Weekday().String())
	}

	taken, err := s.appointmentRepo.IsSlotTaken(ctx, counsellor.ID, date, slot)
	if err != nil {
		return nil, apperrors.Internal("failed to check slot")
	}
	if taken {
		return nil, apperrors.Conflict("slot_taken", "this slot is already booked", slotDetails(date, slot))
	}

	now := time.Now().UTC()
	appointment := model.Appointment{
		ID:           uuid.NewString(),
		StudentID:    input.StudentID,
		CounsellorID: counsellor.ID,
		Date:         date,
		Time:         slot,
		Status:       model.AppointmentScheduled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.appointmentRepo.Create(ctx, &appointment); err != nil {
		return nil, apperrors.Internal("failed to create appointment")
	}

	created, err := s.appointmentRepo.GetByID(ctx, appointment.ID)
	if err != nil {
		return nil, apperrors.Internal("failed to load appointment")
	}
	return created, nil
}

func (s *AppointmentService) ListMine(ctx context.Context, userID string) ([]model.Appointment, *apperrors.APIError) {
	appointments, err := s.appointmentRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list appointments")
	}
	return appointments, nil
}

// UpdateStatus is reserved to the appointment's counsellor and to admins.
func (s *AppointmentService) UpdateStatus(
	ctx context.Context,
	userID, role, appointmentID, status string,
) (*model.Appointment, *apperrors.APIError) {
	if !isValidStatus(status) {
		return nil, apperrors.BadRequest("invalid_status", "status must be one of scheduled, completed, cancelled")
	}

	appointment, apiErr := s.get(ctx, appointmentID)
	if apiErr != nil {
		return nil, apiErr
	}
	if role != model.RoleAdmin && appointment.CounsellorID != userID {
		return nil, apperrors.Forbidden("only the counsellor can change this appointment")
	}

	appointment.Status = status
	appointment.UpdatedAt = time.Now().UTC()
	if err := s.appointmentRepo.UpdateStatus(ctx, appointment); err != nil {
		return nil, apperrors.Internal("failed to update appointment")
	}
	return appointment, nil
}

func (s *AppointmentService) Delete(ctx context.Context, userID, role, appointmentID string) *apperrors.APIError {
	appointment, apiErr := s.get(ctx, appointmentID)
	if apiErr != nil {
		return apiErr
	}
	if role != model.RoleAdmin && appointment.StudentID != userID && appointment.CounsellorID != userID {
		return apperrors.Forbidden("not a participant of this appointment")
	}
	if err := s.appointmentRepo.Delete(ctx, appointment.ID); err != nil {
		return apperrors.Internal("failed to delete appointment")
	}
	return nil
}

func (s *AppointmentService) get(ctx context.Context, id string) (*model.Appointment, *apperrors.APIError) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("appointment_not_found", "appointment not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get appointment")
	}
	return appointment, nil
}

func isValidStatus(status string) bool {
	switch status {
	case model.AppointmentScheduled, model.AppointmentCompleted, model.AppointmentCancelled:
		return true
	default:
		return false
	}
}

func containsFold(items []string, value string) bool {
	for _, item := range items {
		if strings.EqualFold(strings.TrimSpace(item), value) {
			return true
		}
	}
	return false
}

func slotDetails(date, slot string) map[string]string {
	return map[string]string{"date": date, "time": slot}
}
