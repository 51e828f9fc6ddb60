package api

import (
	"context"
	"net/http"
	"net/url"
)

type RegisterRequest struct {
	Email          string   `json:"email"`
	Password       string   `json:"password"`
	Name           string   `json:"name,omitempty"`
	Role           string   `json:"role,omitempty"`
	Campus         string   `json:"campus,omitempty"`
	Specialization []string `json:"specialization,omitempty"`
	AvailableDays  []string `json:"availableDays,omitempty"`
	AvailableHours string   `json:"availableHours,omitempty"`
	Languages      []string `json:"languages,omitempty"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*LoginResult, error) {
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Counsellors(ctx context.Context) ([]Counsellor, error) {
	var counsellors []Counsellor
	if err := c.do(ctx, http.MethodGet, "/api/counsellors", nil, &counsellors); err != nil {
		return nil, err
	}
	return counsellors, nil
}

func (c *Client) MyAppointments(ctx context.Context) ([]Appointment, error) {
	var appointments []Appointment
	if err := c.do(ctx, http.MethodGet, "/api/appointments/me", nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (c *Client) CreateAppointment(ctx context.Context, counsellorID, date, slot string) (*Appointment, error) {
	var appointment Appointment
	body := map[string]string{"counsellorId": counsellorID, "date": date, "time": slot}
	if err := c.do(ctx, http.MethodPost, "/api/appointments", body, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (c *Client) UpdateAppointmentStatus(ctx context.Context, id, status string) (*Appointment, error) {
	var appointment Appointment
	path := "/api/appointments/" + url.PathEscape(id) + "/status"
	if err := c.do(ctx, http.MethodPatch, path, map[string]string{"status": status}, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/appointments/"+url.PathEscape(id), nil, nil)
}

// Chat is paced by its own, stricter limiter on top of the shared one.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	if err := c.chatLimiter.Wait(ctx); err != nil {
		return "", err
	}
	var resp struct {
		Reply string `json:"reply"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/chat", map[string]string{"message": message}, &resp); err != nil {
		return "", err
	}
	return resp.Reply, nil
}

func (c *Client) CreateAlert(ctx context.Context, message, level string) error {
	return c.do(ctx, http.MethodPost, "/api/alerts", map[string]string{"message": message, "level": level}, nil)
}

func (c *Client) AlertInbox(ctx context.Context) ([]Alert, error) {
	var alerts []Alert
	if err := c.do(ctx, http.MethodGet, "/api/alerts/inbox", nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (c *Client) RecordMood(ctx context.Context, mood, source string) (*MoodResult, error) {
	var result MoodResult
	if err := c.do(ctx, http.MethodPost, "/api/moods", map[string]string{"mood": mood, "source": source}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) MoodStats(ctx context.Context) (*MoodStats, error) {
	var stats MoodStats
	if err := c.do(ctx, http.MethodGet, "/api/moods/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) ForumPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.do(ctx, http.MethodGet, "/api/forum", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) CreatePost(ctx context.Context, post NewPost) (*Post, error) {
	var created Post
	if err := c.do(ctx, http.MethodPost, "/api/forum", post, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/forum/"+url.PathEscape(id), nil, nil)
}

func (c *Client) LikePost(ctx context.Context, id string) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodPost, "/api/forum/"+url.PathEscape(id)+"/like", nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) ReplyToPost(ctx context.Context, id, text string) (*Post, error) {
	var post Post
	path := "/api/forum/" + url.PathEscape(id) + "/reply"
	if err := c.do(ctx, http.MethodPost, path, map[string]string{"text": text}, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) Vouchers(ctx context.Context) ([]Voucher, error) {
	var vouchers []Voucher
	if err := c.do(ctx, http.MethodGet, "/api/vouchers", nil, &vouchers); err != nil {
		return nil, err
	}
	return vouchers, nil
}

func (c *Client) RedeemVoucher(ctx context.Context, voucherID string) (*RedeemResult, error) {
	var result RedeemResult
	if err := c.do(ctx, http.MethodPost, "/api/vouchers/redeem", map[string]string{"voucherId": voucherID}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) AdminOverview(ctx context.Context) (*Overview, error) {
	var overview Overview
	if err := c.do(ctx, http.MethodGet, "/api/admin/overview", nil, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

func (c *Client) WeeklyTrends(ctx context.Context) ([]WeeklyTrend, error) {
	var trends []WeeklyTrend
	if err := c.do(ctx, http.MethodGet, "/api/admin/weekly-trends", nil, &trends); err != nil {
		return nil, err
	}
	return trends, nil
}

func (c *Client) CampusBreakdown(ctx context.Context) ([]CampusCount, error) {
	var breakdown []CampusCount
	if err := c.do(ctx, http.MethodGet, "/api/admin/campus-breakdown", nil, &breakdown); err != nil {
		return nil, err
	}
	return breakdown, nil
}
