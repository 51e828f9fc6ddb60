package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mindcare/internal/stubtest"
)

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"_id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

type apiErrorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type appointmentResponse struct {
	ID         string `json:"_id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     string `json:"status"`
	Counsellor struct {
		ID    string `json:"_id"`
		Email string `json:"email"`
	} `json:"counsellor"`
}

type postResponse struct {
	ID          string          `json:"_id"`
	Author      json.RawMessage `json:"author"`
	IsAnonymous bool            `json:"isAnonymous"`
	Likes       []string        `json:"likes"`
	Replies     []struct {
		Text string `json:"text"`
	} `json:"replies"`
}

func TestBookingFlow(t *testing.T) {
	engine := stubtest.NewEngine(t, stubtest.Config())
	student := registerUser(t, engine, "student@example.com", "123456", "student")

	status, raw := requestJSON(t, engine, http.MethodGet, "/api/counsellors", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for counsellors, got %d", status)
	}
	var counsellors []struct {
		ID            string   `json:"_id"`
		AvailableDays []string `json:"availableDays"`
	}
	mustUnmarshal(t, raw, &counsellors)
	if len(counsellors) != 2 {
		t.Fatalf("expected 2 seeded counsellors, got %d", len(counsellors))
	}

	monday := nextWeekday(time.Monday)
	booking := map[string]string{"counsellorId": stubtest.PriyaID, "date": monday, "time": "10:00 AM"}
	status, raw = requestJSON(t, engine, http.MethodPost, "/api/appointments", student.Token, booking)
	if status != http.StatusCreated {
		t.Fatalf("expected 201 on booking, got %d: %s", status, raw)
	}
	var created appointmentResponse
	mustUnmarshal(t, raw, &created)
	if created.Status != "scheduled" || created.Counsellor.ID != stubtest.PriyaID {
		t.Fatalf("unexpected appointment %+v", created)
	}

	status, raw = requestJSON(t, engine, http.MethodPost, "/api/appointments", student.Token, booking)
	if status != http.StatusConflict {
		t.Fatalf("expected 409 for a taken slot, got %d", status)
	}
	if code := errorCode(t, raw); code != "slot_taken" {
		t.Fatalf("expected slot_taken, got %s", code)
	}

	tuesday := map[string]string{"counsellorId": stubtest.PriyaID, "date": nextWeekday(time.Tuesday), "time": "10:00 AM"}
	status, _ = requestJSON(t, engine, http.MethodPost, "/api/appointments", student.Token, tuesday)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unavailable day, got %d", status)
	}

	status, raw = requestJSON(t, engine, http.MethodGet, "/api/appointments/me", student.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for my appointments, got %d", status)
	}
	var mine []appointmentResponse
	mustUnmarshal(t, raw, &mine)
	if len(mine) != 1 || mine[0].ID != created.ID {
		t.Fatalf("expected the booked appointment, got %+v", mine)
	}

	status, _ = requestJSON(t, engine, http.MethodPatch, "/api/appointments/"+created.ID+"/status", student.Token,
		map[string]string{"status": "completed"})
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for a student status change, got %d", status)
	}

	status, _ = requestJSON(t, engine, http.MethodDelete, "/api/appointments/"+created.ID, student.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", status)
	}

	status, _ = requestJSON(t, engine, http.MethodGet, "/api/appointments/me", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
}

func TestCounsellorStatusChange(t *testing.T) {
	engine := stubtest.NewEngine(t, stubtest.Config())
	student := registerUser(t, engine, "student@example.com", "123456", "student")

	status, raw := requestJSON(t, engine, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":          "counsellor@example.com",
		"password":       "123456",
		"role":           "counsellor",
		"name":           "Dr. Kavya Rao",
		"availableDays":  []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
		"availableHours": "9:00 AM - 12:00 PM",
	})
	if status != http.StatusCreated {
		t.Fatalf("register counsellor failed with %d: %s", status, raw)
	}
	var counsellor authResponse
	mustUnmarshal(t, raw, &counsellor)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	status, raw = requestJSON(t, engine, http.MethodPost, "/api/appointments", student.Token,
		map[string]string{"counsellorId": counsellor.User.ID, "date": tomorrow, "time": "9:00 AM"})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 on booking, got %d: %s", status, raw)
	}
	var created appointmentResponse
	mustUnmarshal(t, raw, &created)

	status, raw = requestJSON(t, engine, http.MethodPatch, "/api/appointments/"+created.ID+"/status", counsellor.Token,
		map[string]string{"status": "completed"})
	if status != http.StatusOK {
		t.Fatalf("expected 200 on status change, got %d: %s", status, raw)
	}
	var updated appointmentResponse
	mustUnmarshal(t, raw, &updated)
	if updated.Status != "completed" {
		t.Fatalf("expected completed, got %s", updated.Status)
	}

	status, _ = requestJSON(t, engine, http.MethodPatch, "/api/appointments/"+created.ID+"/status", counsellor.Token,
		map[string]string{"status": "archived"})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown status, got %d", status)
	}

	status, raw = requestJSON(t, engine, http.MethodGet, "/api/auth/profile", counsellor.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for profile, got %d", status)
	}
	var profile struct {
		Role string `json:"role"`
		Name string `json:"name"`
	}
	mustUnmarshal(t, raw, &profile)
	if profile.Role != "counsellor" || profile.Name != "Dr. Kavya Rao" {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestMoodPointsAndRedeem(t *testing.T) {
	engine := stubtest.NewEngine(t, stubtest.Config())
	student := registerUser(t, engine, "student@example.com", "123456", "")

	var checkIn struct {
		Gamification struct {
			Points      int `json:"points"`
			StreakCount int `json:"streakCount"`
		} `json:"gamification"`
	}
	status, raw := requestJSON(t, engine, http.MethodPost, "/api/moods", student.Token,
		map[string]string{"mood": "Happy", "source": "self"})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 on check-in, got %d: %s", status, raw)
	}
	mustUnmarshal(t, raw, &checkIn)
	if checkIn.Gamification.Points != 10 || checkIn.Gamification.StreakCount != 1 {
		t.Fatalf("unexpected gamification %+v", checkIn.Gamification)
	}

	status, _ = requestJSON(t, engine, http.MethodPost, "/api/moods", student.Token, map[string]string{"mood": "Elated"})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown mood, got %d", status)
	}

	status, raw = requestJSON(t, engine, http.MethodGet, "/api/moods/stats", student.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for stats, got %d", status)
	}
	var stats struct {
		History7d []struct {
			Mood int `json:"mood"`
		} `json:"history7d"`
		Points int `json:"points"`
	}
	mustUnmarshal(t, raw, &stats)
	if len(stats.History7d) != 7 || stats.History7d[6].Mood != 3 || stats.Points != 10 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	redeem := map[string]string{"voucherId": stubtest.CoffeeVoucher}
	status, raw = requestJSON(t, engine, http.MethodPost, "/api/vouchers/redeem", student.Token, redeem)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 with too few points, got %d", status)
	}
	if code := errorCode(t, raw); code != "insufficient_points" {
		t.Fatalf("expected insufficient_points, got %s", code)
	}

	for i := 0; i < 4; i++ {
		status, _ = requestJSON(t, engine, http.MethodPost, "/api/moods", student.Token, map[string]string{"mood": "Okay"})
		if status != http.StatusCreated {
			t.Fatalf("check-in %d failed with %d", i, status)
		}
	}

	status, raw = requestJSON(t, engine, http.MethodPost, "/api/vouchers/redeem", student.Token, redeem)
	if status != http.StatusOK {
		t.Fatalf("expected 200 on redeem, got %d: %s", status, raw)
	}
	var redeemed struct {
		Redemption struct {
			Code string `json:"code"`
		} `json:"redemption"`
		RemainingPoints int `json:"remainingPoints"`
	}
	mustUnmarshal(t, raw, &redeemed)
	if !strings.HasPrefix(redeemed.Redemption.Code, "CAFE-") || redeemed.RemainingPoints != 0 {
		t.Fatalf("unexpected redemption %+v", redeemed)
	}

	status, raw = requestJSON(t, engine, http.MethodGet, "/api/vouchers", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for vouchers, got %d", status)
	}
	var vouchers []struct {
		ID    string `json:"_id"`
		Stock int    `json:"stock"`
	}
	mustUnmarshal(t, raw, &vouchers)
	for _, voucher := range vouchers {
		if voucher.ID == stubtest.CoffeeVoucher && voucher.Stock != 24 {
			t.Fatalf("expected stock 24 after redeem, got %d", voucher.Stock)
		}
	}
}

func TestForumLifecycle(t *testing.T) {
	engine := stubtest.NewEngine(t, stubtest.Config())
	author := registerUser(t, engine, "author@example.com", "123456", "student")
	other := registerUser(t, engine, "other@example.com", "123456", "student")
	admin := registerUser(t, engine, "admin@example.com", "123456", "admin")

	status, raw := requestJSON(t, engine, http.MethodPost, "/api/forum", "", map[string]interface{}{
		"title":   "Guest post",
		"content": "Posting without an account",
	})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 for guest post, got %d: %s", status, raw)
	}
	var guestPost postResponse
	mustUnmarshal(t, raw, &guestPost)
	if !guestPost.IsAnonymous || string(guestPost.Author) != `"Anonymous"` {
		t.Fatalf("expected anonymous guest post, got %+v", guestPost)
	}

	status, raw = requestJSON(t, engine, http.MethodPost, "/api/forum", author.Token, map[string]interface{}{
		"title":    "Exam stress",
		"content":  "How do you all cope?",
		"category": "Academic Stress",
		"tags":     []string{"exams", " "},
	})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 for post, got %d", status)
	}
	var post postResponse
	mustUnmarshal(t, raw, &post)

	status, raw = requestJSON(t, engine, http.MethodPost, "/api/forum/"+post.ID+"/like", other.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 on like, got %d", status)
	}
	mustUnmarshal(t, raw, &post)
	if len(post.Likes) != 1 {
		t.Fatalf("expected 1 like, got %d", len(post.Likes))
	}
	_, raw = requestJSON(t, engine, http.MethodPost, "/api/forum/"+post.ID+"/like", other.Token, nil)
	mustUnmarshal(t, raw, &post)
	if len(post.Likes) != 0 {
		t.Fatalf("expected like toggled off, got %d", len(post.Likes))
	}

	status, raw = requestJSON(t, engine, http.MethodPost, "/api/forum/"+post.ID+"/reply", other.Token,
		map[string]string{"text": "Short breaks help me"})
	if status != http.StatusOK {
		t.Fatalf("expected 200 on reply, got %d", status)
	}
	mustUnmarshal(t, raw, &post)
	if len(post.Replies) != 1 || post.Replies[0].Text != "Short breaks help me" {
		t.Fatalf("unexpected replies %+v", post.Replies)
	}

	status, _ = requestJSON(t, engine, http.MethodDelete, "/api/forum/"+post.ID, other.Token, nil)
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 deleting another user's post, got %d", status)
	}
	status, _ = requestJSON(t, engine, http.MethodDelete, "/api/forum/"+post.ID, author.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 deleting own post, got %d", status)
	}
	status, _ = requestJSON(t, engine, http.MethodDelete, "/api/forum/"+guestPost.ID, admin.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for admin delete, got %d", status)
	}

	status, raw = requestJSON(t, engine, http.MethodGet, "/api/forum", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 listing posts, got %d", status)
	}
	var posts []postResponse
	mustUnmarshal(t, raw, &posts)
	if len(posts) != 0 {
		t.Fatalf("expected empty board, got %d posts", len(posts))
	}
}

func TestAlertsInbox(t *testing.T) {
	engine := stubtest.NewEngine(t, stubtest.Config())
	student := registerUser(t, engine, "student@example.com", "123456", "student")
	counsellor := registerUser(t, engine, "counsellor@example.com", "123456", "counsellor")

	status, _ := requestJSON(t, engine, http.MethodPost, "/api/alerts", "",
		map[string]string{"message": "Crisis keywords detected in chat", "level": "critical"})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 for anonymous alert, got %d", status)
	}
	status, _ = requestJSON(t, engine, http.MethodPost, "/api/alerts", student.Token,
		map[string]string{"message": "Crisis keywords detected in chat", "level": "critical"})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 for student alert, got %d", status)
	}

	status, _ = requestJSON(t, engine, http.MethodGet, "/api/alerts/inbox", student.Token, nil)
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for student inbox, got %d", status)
	}

	status, raw := requestJSON(t, engine, http.MethodGet, "/api/alerts/inbox", counsellor.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for counsellor inbox, got %d", status)
	}
	var alerts []struct {
		Level   string `json:"level"`
		Student *struct {
			Email string `json:"email"`
		} `json:"student"`
	}
	mustUnmarshal(t, raw, &alerts)
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}
	withStudent := 0
	for _, alert := range alerts {
		if alert.Level != "critical" {
			t.Fatalf("unexpected level %s", alert.Level)
		}
		if alert.Student != nil && alert.Student.Email == "student@example.com" {
			withStudent++
		}
	}
	if withStudent != 1 {
		t.Fatalf("expected one alert linked to the student, got %d", withStudent)
	}
}

func TestChatReply(t *testing.T) {
	engine := stubtest.NewEngine(t, stubtest.Config())

	status, raw := requestJSON(t, engine, http.MethodPost, "/api/chat", "", map[string]string{"message": "I can't sleep"})
	if status != http.StatusOK {
		t.Fatalf("expected 200 for chat, got %d", status)
	}
	var reply struct {
		Reply string `json:"reply"`
	}
	mustUnmarshal(t, raw, &reply)
	if !strings.Contains(reply.Reply, "bedtime") {
		t.Fatalf("unexpected reply %q", reply.Reply)
	}

	status, _ = requestJSON(t, engine, http.MethodPost, "/api/chat", "", map[string]string{"message": "  "})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for an empty message, got %d", status)
	}
}

func TestAdminAnalytics(t *testing.T) {
	engine := stubtest.NewEngine(t, stubtest.Config())
	student := registerUser(t, engine, "student@example.com", "123456", "student")
	registerUser(t, engine, "admin@example.com", "123456", "admin")
	requestJSON(t, engine, http.MethodPost, "/api/moods", student.Token, map[string]string{"mood": "Sad"})

	status, raw := requestJSON(t, engine, http.MethodGet, "/api/admin/overview", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for overview, got %d", status)
	}
	var overview struct {
		TotalUsers  int `json:"totalUsers"`
		Counsellors int `json:"counsellors"`
		Students    int `json:"students"`
		Admins      int `json:"admins"`
	}
	mustUnmarshal(t, raw, &overview)
	if overview.TotalUsers != 4 || overview.Counsellors != 2 || overview.Students != 1 || overview.Admins != 1 {
		t.Fatalf("unexpected overview %+v", overview)
	}

	_, raw = requestJSON(t, engine, http.MethodGet, "/api/admin/weekly-trends", "", nil)
	var trends []struct {
		Label string `json:"label"`
		Sad   int    `json:"sad"`
	}
	mustUnmarshal(t, raw, &trends)
	if len(trends) != 4 || trends[3].Label != "Week 4" || trends[3].Sad != 1 {
		t.Fatalf("unexpected trends %+v", trends)
	}

	_, raw = requestJSON(t, engine, http.MethodGet, "/api/admin/campus-breakdown", "", nil)
	var campus []struct {
		Campus      string `json:"campus"`
		Counsellors int    `json:"counsellors"`
	}
	mustUnmarshal(t, raw, &campus)
	if len(campus) != 2 || campus[0].Campus != "Main Campus" || campus[1].Campus != "North Campus" {
		t.Fatalf("unexpected campus breakdown %+v", campus)
	}
}

func TestLoginRateLimit(t *testing.T) {
	cfg := stubtest.Config()
	cfg.LoginRatePerSecond = 1
	cfg.LoginBurst = 2
	engine := stubtest.NewEngine(t, cfg)

	credentials := map[string]string{"email": "nobody@example.com", "password": "wrong-password"}
	for i := 0; i < 2; i++ {
		status, _ := requestJSON(t, engine, http.MethodPost, "/api/auth/login", "", credentials)
		if status != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i, status)
		}
	}
	status, raw := requestJSON(t, engine, http.MethodPost, "/api/auth/login", "", credentials)
	if status != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after the burst, got %d", status)
	}
	if code := errorCode(t, raw); code != "rate_limited" {
		t.Fatalf("expected rate_limited, got %s", code)
	}
}

func TestCORSPreflight(t *testing.T) {
	engine := stubtest.NewEngine(t, stubtest.Config())
	req := httptest.NewRequest(http.MethodOptions, "/api/appointments/abc/status", nil)
	req.Header.Set("Origin", stubtest.DefaultOrigin)
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	recorder := httptest.NewRecorder()

	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", recorder.Code)
	}
	if recorder.Header().Get("Access-Control-Allow-Origin") != stubtest.DefaultOrigin {
		t.Fatalf("unexpected allow-origin header: %s", recorder.Header().Get("Access-Control-Allow-Origin"))
	}
	if !strings.Contains(recorder.Header().Get("Access-Control-Allow-Methods"), "PATCH") {
		t.Fatalf("expected PATCH to be allowed: %s", recorder.Header().Get("Access-Control-Allow-Methods"))
	}
}

func registerUser(t *testing.T, server http.Handler, email, password, role string) authResponse {
	t.Helper()
	status, body := requestJSON(t, server, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": password,
		"role":     role,
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s failed with status %d: %s", email, status, string(body))
	}
	var resp authResponse
	mustUnmarshal(t, body, &resp)
	if resp.Token == "" {
		t.Fatalf("empty token for user %s", email)
	}
	return resp
}

// nextWeekday returns the first date strictly after today that falls on day.
func nextWeekday(day time.Weekday) string {
	date := time.Now().UTC().AddDate(0, 0, 1)
	for date.Weekday() != day {
		date = date.AddDate(0, 0, 1)
	}
	return date.Format("2006-01-02")
}

func errorCode(t *testing.T, raw []byte) string {
	t.Helper()
	var envelope apiErrorEnvelope
	mustUnmarshal(t, raw, &envelope)
	return envelope.Error.Code
}

func mustUnmarshal(t *testing.T, raw []byte, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(raw, target); err != nil {
		t.Fatalf("unmarshal %s: %v", string(raw), err)
	}
}

func requestJSON(
	t *testing.T,
	server http.Handler,
	method, path, token string,
	body interface{},
) (int, []byte) {
	t.Helper()

	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		payload = raw
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder.Code, recorder.Body.Bytes()
}
