package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "mindcare/internal/errors"
	"mindcare/internal/model"
	"mindcare/internal/repository"
)

const (
	pointsPerCheckIn = 10
	historyDays      = 7
)

var moodLevels = map[string]int{
	"Happy":   3,
	"Okay":    2,
	"Neutral": 2,
	"Sad":     1,
	"Angry":   1,
}

type WellnessService struct {
	moodRepo    *repository.MoodRepository
	userRepo    *repository.UserRepository
	voucherRepo *repository.VoucherRepository
	now         func() time.Time
}

type CheckInResult struct {
	Mood         model.Mood         `json:"mood"`
	Gamification model.Gamification `json:"gamification"`
}

type RedeemResult struct {
	Redemption      model.Redemption `json:"redemption"`
	RemainingPoints int              `json:"remainingPoints"`
}

func NewWellnessService(
	moodRepo *repository.MoodRepository,
	userRepo *repository.UserRepository,
	voucherRepo *repository.VoucherRepository,
) *WellnessService {
	return &WellnessService{
		moodRepo:    moodRepo,
		userRepo:    userRepo,
		voucherRepo: voucherRepo,
		now:         time.Now,
	}
}

// MoodLevel maps a mood label onto the 1..3 chart scale, 0 when unknown.
func MoodLevel(mood string) int {
	return moodLevels[mood]
}

func (s *WellnessService) CheckIn(ctx context.Context, userID, mood, source string) (*CheckInResult, *apperrors.APIError) {
	mood = strings.TrimSpace(mood)
	if MoodLevel(mood) == 0 {
		return nil, apperrors.BadRequest("invalid_mood", "mood must be one of Happy, Okay, Neutral, Sad, Angry")
	}
	if source == "" {
		source = "self"
	}

	now := s.now().UTC()
	today := now.Format(dateLayout)

	tx, err := s.moodRepo.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to start transaction")
	}
	defer tx.Rollback()

	user, err := s.userRepo.GetByIDTx(ctx, tx, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.Unauthorized("user no longer exists")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to query user")
	}

	switch user.LastCheckInDay {
	case today:
	case now.AddDate(0, 0, -1).Format(dateLayout):
		user.StreakCount++
	default:
		user.StreakCount = 1
	}
	user.LastCheckInDay = today
	user.Points += pointsPerCheckIn
	user.UpdatedAt = now

	entry := model.Mood{
		ID:        uuid.NewString(),
		UserID:    userID,
		Mood:      mood,
		Source:    source,
		Day:       today,
		CreatedAt: now,
	}
	if err := s.moodRepo.InsertTx(ctx, tx, &entry); err != nil {
		return nil, apperrors.Internal("failed to record mood")
	}
	if err := s.userRepo.UpdatePointsTx(ctx, tx, user); err != nil {
		return nil, apperrors.Internal("failed to update points")
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return nil, apperrors.Internal("failed to commit transaction")
	}

	return &CheckInResult{
		Mood: entry,
		Gamification: model.Gamification{
			Points:        user.Points,
			StreakCount:   user.StreakCount,
			PointsAwarded: pointsPerCheckIn,
		},
	}, nil
}

// Stats returns one bar per day for the last week, today last. A day with
// several check-ins shows the latest one.
func (s *WellnessService) Stats(ctx context.Context, userID string) (*model.MoodStats, *apperrors.APIError) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.Unauthorized("user no longer exists")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to query user")
	}

	now := s.now().UTC()
	first := now.AddDate(0, 0, -(historyDays - 1))
	moods, err := s.moodRepo.ListSince(ctx, userID, first.Format(dateLayout))
	if err != nil {
		return nil, apperrors.Internal("failed to list moods")
	}

	latest := make(map[string]int, historyDays)
	for _, mood := range moods {
		latest[mood.Day] = MoodLevel(mood.Mood)
	}

	history := make([]model.MoodDay, 0, historyDays)
	for i := 0; i < historyDays; i++ {
		day := first.AddDate(0, 0, i)
		history = append(history, model.MoodDay{
			Day:  day.Format("Mon"),
			Mood: latest[day.Format(dateLayout)],
		})
	}

	streak := user.StreakCount
	if user.LastCheckInDay != now.Format(dateLayout) &&
		user.LastCheckInDay != now.AddDate(0, 0, -1).Format(dateLayout) {
		streak = 0
	}

	return &model.MoodStats{
		History7d:   history,
		Points:      user.Points,
		StreakCount: streak,
	}, nil
}

func (s *WellnessService) Vouchers(ctx context.Context) ([]model.Voucher, *apperrors.APIError) {
	vouchers, err := s.voucherRepo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list vouchers")
	}
	return vouchers, nil
}

func (s *WellnessService) Redeem(ctx context.Context, userID, voucherID string) (*RedeemResult, *apperrors.APIError) {
	if voucherID == "" {
		return nil, apperrors.BadRequest("invalid_voucher", "voucherId is required")
	}

	now := s.now().UTC()
	tx, err := s.voucherRepo.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to start transaction")
	}
	defer tx.Rollback()

	voucher, err := s.voucherRepo.GetTx(ctx, tx, voucherID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("voucher_not_found", "Voucher not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get voucher")
	}
	if voucher.Stock <= 0 {
		return nil, apperrors.Conflict("out_of_stock", "Voucher is out of stock", nil)
	}

	user, err := s.userRepo.GetByIDTx(ctx, tx, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.Unauthorized("user no longer exists")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to query user")
	}
	if user.Points < voucher.PointsCost {
		return nil, apperrors.BadRequest(
			"insufficient_points",
			fmt.Sprintf("Not enough points: %d needed, %d available", voucher.PointsCost, user.Points),
		)
	}

	user.Points -= voucher.PointsCost
	user.UpdatedAt = now
	if err := s.userRepo.UpdatePointsTx(ctx, tx, user); err != nil {
		return nil, apperrors.Internal("failed to update points")
	}
	if err := s.voucherRepo.DecrementStockTx(ctx, tx, voucher.ID); err != nil {
		return nil, apperrors.Internal("failed to update stock")
	}

	redemption := model.Redemption{
		ID:        uuid.NewString(),
		UserID:    userID,
		VoucherID: voucher.ID,
		Code:      voucher.Code + "-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8]),
		CreatedAt: now,
	}
	if err := s.voucherRepo.InsertRedemptionTx(ctx, tx, &redemption); err != nil {
		return nil, apperrors.Internal("failed to record redemption")
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return nil, apperrors.Internal("failed to commit transaction")
	}

	return &RedeemResult{
		Redemption:      redemption,
		RemainingPoints: user.Points,
	}, nil
}
