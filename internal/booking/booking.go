// Package booking checks appointment requests against a counsellor's
// published availability before handing them to the backend, which remains
// the authority on conflicts.
package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"mindcare/internal/api"
	apperrors "mindcare/internal/errors"
)

const dateLayout = "2006-01-02"

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ErrBookingFailed wraps every transport or backend failure of Book. It is
// safe to retry.
var ErrBookingFailed = errors.New("failed to book appointment, please try again")

type Backend interface {
	Counsellors(ctx context.Context) ([]api.Counsellor, error)
	MyAppointments(ctx context.Context) ([]api.Appointment, error)
	CreateAppointment(ctx context.Context, counsellorID, date, slot string) (*api.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id, status string) (*api.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
}

type Request struct {
	Counsellor *api.Counsellor
	Date       string
	Slot       string
}

// Validate applies the local booking rules. Every failure is a validation
// error and nothing is sent.
func Validate(req Request, now time.Time) error {
	if req.Counsellor == nil {
		return apperrors.Validation("no_counsellor", "No counselor selected. Please try again.")
	}
	if req.Date == "" || req.Slot == "" {
		return apperrors.Validation("missing_fields", "Please select both a date and a time.")
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return apperrors.Validation("invalid_date", "Please pick a valid date.")
	}
	// Today is the caller's calendar day, in now's own location.
	year, month, day := now.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return apperrors.Validation("past_date", "Please choose today or a later date.")
	}

	weekday := date.Weekday().String()
	if !contains(req.Counsellor.AvailableDays, weekday) {
		return apperrors.Validation(
			"day_unavailable",
			fmt.Sprintf("Dr. %s is not available on %ss.", req.Counsellor.LastName(), weekday),
		)
	}

	if !contains(SlotsFor(req.Counsellor.AvailableHours), req.Slot) {
		return apperrors.Validation("slot_unavailable", "Please pick one of the offered time slots.")
	}
	return nil
}

type Negotiator struct {
	backend Backend
	now     func() time.Time
}

func NewNegotiator(backend Backend) *Negotiator {
	return &Negotiator{backend: backend, now: time.Now}
}

func (n *Negotiator) Counsellors(ctx context.Context) ([]api.Counsellor, error) {
	return n.backend.Counsellors(ctx)
}

// FindCounsellor looks a counsellor up by id.
func (n *Negotiator) FindCounsellor(ctx context.Context, id string) (*api.Counsellor, error) {
	counsellors, err := n.backend.Counsellors(ctx)
	if err != nil {
		return nil, err
	}
	for i := range counsellors {
		if counsellors[i].ID == id {
			return &counsellors[i], nil
		}
	}
	return nil, apperrors.Validation("no_counsellor", "No counselor selected. Please try again.")
}

// Book validates req and then submits it. A rejected submission, slot
// conflicts included, surfaces as ErrBookingFailed with the backend error
// wrapped alongside.
func (n *Negotiator) Book(ctx context.Context, req Request) (*api.Appointment, error) {
	if err := Validate(req, n.now()); err != nil {
		return nil, err
	}
	appointment, err := n.backend.CreateAppointment(ctx, req.Counsellor.ID, req.Date, req.Slot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBookingFailed, err)
	}
	return appointment, nil
}

// Upcoming returns scheduled appointments, soonest first. limit <= 0 means
// all of them.
func (n *Negotiator) Upcoming(ctx context.Context, limit int) ([]api.Appointment, error) {
	appointments, err := n.backend.MyAppointments(ctx)
	if err != nil {
		return nil, err
	}

	upcoming := make([]api.Appointment, 0, len(appointments))
	for _, appointment := range appointments {
		if appointment.Status == StatusScheduled {
			upcoming = append(upcoming, appointment)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		if upcoming[i].Date != upcoming[j].Date {
			return upcoming[i].Date < upcoming[j].Date
		}
		return minutesOf(upcoming[i].Time) < minutesOf(upcoming[j].Time)
	})

	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming, nil
}

// Cancel deletes the appointment and re-reads the list so the caller shows
// the backend's state.
func (n *Negotiator) Cancel(ctx context.Context, id string) ([]api.Appointment, error) {
	if err := n.backend.DeleteAppointment(ctx, id); err != nil {
		return nil, err
	}
	return n.Upcoming(ctx, 0)
}

func (n *Negotiator) SetStatus(ctx context.Context, id, status string) (*api.Appointment, error) {
	switch status {
	case StatusScheduled, StatusCompleted, StatusCancelled:
	default:
		return nil, apperrors.Validation("invalid_status", "status must be one of scheduled, completed, cancelled")
	}
	return n.backend.UpdateAppointmentStatus(ctx, id, status)
}

// All returns every appointment of the signed-in user, newest date first.
func (n *Negotiator) All(ctx context.Context) ([]api.Appointment, error) {
	appointments, err := n.backend.MyAppointments(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].Date > appointments[j].Date
	})
	return appointments, nil
}

func minutesOf(slot string) int {
	minutes, ok := parseClock(slot)
	if !ok {
		return 0
	}
	return minutes
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
