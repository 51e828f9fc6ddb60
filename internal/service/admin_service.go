package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	apperrors "mindcare/internal/errors"
	"mindcare/internal/model"
	"mindcare/internal/repository"
)

const trendWeeks = 4

type AdminService struct {
	userRepo        *repository.UserRepository
	appointmentRepo *repository.AppointmentRepository
	moodRepo        *repository.MoodRepository
	now             func() time.Time
}

func NewAdminService(
	userRepo *repository.UserRepository,
	appointmentRepo *repository.AppointmentRepository,
	moodRepo *repository.MoodRepository,
) *AdminService {
	return &AdminService{
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		moodRepo:        moodRepo,
		now:             time.Now,
	}
}

func (s *AdminService) Overview(ctx context.Context) (*model.Overview, *apperrors.APIError) {
	counts, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to count users")
	}
	upcoming, err := s.appointmentRepo.CountScheduledFrom(ctx, s.now().UTC().Format(dateLayout))
	if err != nil {
		return nil, apperrors.Internal("failed to count appointments")
	}

	overview := model.Overview{
		Counsellors:          counts[model.RoleCounsellor],
		Students:             counts[model.RoleStudent],
		Admins:               counts[model.RoleAdmin],
		UpcomingAppointments: upcoming,
	}
	for _, count := range counts {
		overview.TotalUsers += count
	}
	return &overview, nil
}

// WeeklyTrends buckets every check-in of the last four weeks, oldest week first.
func (s *AdminService) WeeklyTrends(ctx context.Context) ([]model.WeeklyTrend, *apperrors.APIError) {
	now := s.now().UTC()
	today, _ := time.Parse(dateLayout, now.Format(dateLayout))
	first := today.AddDate(0, 0, -(trendWeeks*7 - 1))

	moods, err := s.moodRepo.ListSince(ctx, "", first.Format(dateLayout))
	if err != nil {
		return nil, apperrors.Internal("failed to list moods")
	}

	trends := make([]model.WeeklyTrend, trendWeeks)
	for i := range trends {
		trends[i].Label = fmt.Sprintf("Week %d", i+1)
	}
	for _, mood := range moods {
		day, parseErr := time.Parse(dateLayout, mood.Day)
		if parseErr != nil || day.Before(first) {
			continue
		}
		week := int(day.Sub(first).Hours()/24) / 7
		if week >= trendWeeks {
			continue
		}
		switch MoodLevel(mood.Mood) {
		case 3:
			trends[week].Happy++
		case 2:
			trends[week].Neutral++
		case 1:
			trends[week].Sad++
		}
	}
	return trends, nil
}

func (s *AdminService) CampusBreakdown(ctx context.Context) ([]model.CampusCount, *apperrors.APIError) {
	counsellors, err := s.userRepo.ListByRole(ctx, model.RoleCounsellor)
	if err != nil {
		return nil, apperrors.Internal("failed to list counsellors")
	}

	byCampus := make(map[string]int)
	for _, counsellor := range counsellors {
		campus := counsellor.Campus
		if campus == "" {
			campus = "Main Campus"
		}
		byCampus[campus]++
	}

	breakdown := make([]model.CampusCount, 0, len(byCampus))
	for campus, count := range byCampus {
		breakdown = append(breakdown, model.CampusCount{Campus: campus, Counsellors: count})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Campus < breakdown[j].Campus
	})
	return breakdown, nil
}
