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

const inboxLimit = 50

type AlertService struct {
	alertRepo *repository.AlertRepository
}

func NewAlertService(alertRepo *repository.AlertRepository) *AlertService {
	return &AlertService{alertRepo: alertRepo}
}

// Create records an escalation. studentID is empty for anonymous senders.
func (s *AlertService) Create(ctx context.Context, studentID, message, level string) (*model.Alert, *apperrors.APIError) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.BadRequest("invalid_alert", "message is required")
	}
	if level == "" {
		level = model.AlertWarning
	}
	if level != model.AlertWarning && level != model.AlertCritical {
		return nil, apperrors.BadRequest("invalid_level", "level must be one of warning, critical")
	}

	alert := model.Alert{
		ID:        uuid.NewString(),
		Message:   message,
		Level:     level,
		CreatedAt: time.Now().UTC(),
	}
	if studentID != "" {
		alert.StudentID = &studentID
	}
	if err := s.alertRepo.Create(ctx, &alert); err != nil {
		return nil, apperrors.Internal("failed to create alert")
	}
	return &alert, nil
}

func (s *AlertService) Inbox(ctx context.Context, role string) ([]model.Alert, *apperrors.APIError) {
	if role != model.RoleCounsellor && role != model.RoleAdmin {
		return nil, apperrors.Forbidden("inbox is available to counsellors only")
	}
	alerts, err := s.alertRepo.ListRecent(ctx, inboxLimit)
	if err != nil {
		return nil, apperrors.Internal("failed to list alerts")
	}
	return alerts, nil
}
