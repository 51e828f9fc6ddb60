// Package wellness records mood check-ins and spends the points they earn on
// vouchers.
package wellness

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"mindcare/internal/api"
	apperrors "mindcare/internal/errors"
	"mindcare/internal/pending"
)

const SourceSelf = "self"

// Moods offered for a check-in.
var Moods = []string{"Happy", "Okay", "Sad", "Angry"}

var levelLabels = map[int]string{1: "Sad", 2: "Okay", 3: "Happy"}

// LevelLabel names a history level; 0 means no check-in that day.
func LevelLabel(level int) string {
	return levelLabels[level]
}

type Backend interface {
	RecordMood(ctx context.Context, mood, source string) (*api.MoodResult, error)
	MoodStats(ctx context.Context) (*api.MoodStats, error)
	Vouchers(ctx context.Context) ([]api.Voucher, error)
	RedeemVoucher(ctx context.Context, voucherID string) (*api.RedeemResult, error)
}

type CheckIn struct {
	Mood   string
	Source string
	Reward *api.Gamification
}

type Tracker struct {
	backend  Backend
	checkIns *pending.Tracker[CheckIn]

	mu       sync.RWMutex
	stats    api.MoodStats
	vouchers []api.Voucher
}

func New(backend Backend) *Tracker {
	return &Tracker{
		backend:  backend,
		checkIns: pending.NewTracker[CheckIn](),
	}
}

// CheckIn records mood and then refreshes the stats. The returned reward is
// the backend's gamification update for this check-in.
func (t *Tracker) CheckIn(ctx context.Context, mood, source string) (*api.Gamification, error) {
	if !isMood(mood) {
		return nil, apperrors.Validation("invalid_mood", "mood must be one of Happy, Okay, Sad, Angry")
	}
	if source == "" {
		source = SourceSelf
	}
	id := t.checkIns.Begin(CheckIn{Mood: mood, Source: source})
	return t.submit(ctx, id, mood, source)
}

// Retry resubmits a failed check-in.
func (t *Tracker) Retry(ctx context.Context, id string) (*api.Gamification, error) {
	draft, err := t.checkIns.Retry(id)
	if err != nil {
		return nil, err
	}
	return t.submit(ctx, id, draft.Mood, draft.Source)
}

func (t *Tracker) submit(ctx context.Context, id, mood, source string) (*api.Gamification, error) {
	result, err := t.backend.RecordMood(ctx, mood, source)
	if err != nil {
		if failErr := t.checkIns.Fail(id, err); failErr != nil {
			log.Printf("mark check-in failed: %v", failErr)
		}
		return nil, err
	}
	reward := result.Gamification
	if err := t.checkIns.Confirm(id, CheckIn{Mood: mood, Source: source, Reward: &reward}); err != nil {
		log.Printf("confirm check-in: %v", err)
	}

	t.mu.Lock()
	t.stats.Points = reward.Points
	t.stats.StreakCount = reward.StreakCount
	t.mu.Unlock()

	if _, err := t.Stats(ctx); err != nil {
		log.Printf("refresh mood stats: %v", err)
	}
	return &reward, nil
}

// CheckIns lists this session's check-ins, oldest first.
func (t *Tracker) CheckIns() []pending.Entry[CheckIn] {
	return t.checkIns.List()
}

// Stats fetches the 7-day history with the current points and streak.
func (t *Tracker) Stats(ctx context.Context) (*api.MoodStats, error) {
	stats, err := t.backend.MoodStats(ctx)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	t.stats = *stats
	t.mu.Unlock()
	return stats, nil
}

// Points is the last known balance.
func (t *Tracker) Points() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.stats.Points
}

func (t *Tracker) Vouchers(ctx context.Context) ([]api.Voucher, error) {
	vouchers, err := t.backend.Vouchers(ctx)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	t.vouchers = append([]api.Voucher(nil), vouchers...)
	t.mu.Unlock()
	return vouchers, nil
}

// Redeem spends points on voucherID. The message is ready to show whether or
// not the redemption succeeded.
func (t *Tracker) Redeem(ctx context.Context, voucherID string) (string, error) {
	result, err := t.backend.RedeemVoucher(ctx, voucherID)
	if err != nil {
		var apiErr *apperrors.APIError
		if errors.As(err, &apiErr) && apiErr.Status > 0 && apiErr.Message != "" {
			return apiErr.Message, err
		}
		return "Failed to redeem", err
	}

	t.mu.Lock()
	for i := range t.vouchers {
		if t.vouchers[i].ID == voucherID && t.vouchers[i].Stock > 0 {
			t.vouchers[i].Stock--
		}
	}
	t.stats.Points = result.RemainingPoints
	t.mu.Unlock()

	return fmt.Sprintf("Redeemed! Code: %s. Remaining points: %d", result.Redemption.Code, result.RemainingPoints), nil
}

// CachedVouchers returns the last fetched list with local stock updates.
func (t *Tracker) CachedVouchers() []api.Voucher {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]api.Voucher(nil), t.vouchers...)
}

func isMood(mood string) bool {
	for _, m := range Moods {
		if m == mood {
			return true
		}
	}
	return false
}
