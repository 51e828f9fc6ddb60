package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mindcare/internal/api"
	apperrors "mindcare/internal/errors"
	"mindcare/internal/stubtest"
)

func newClient(baseURL string) *api.Client {
	return api.New(api.Options{BaseURL: baseURL, Timeout: 5 * time.Second})
}

func TestLoginAndBearerLifecycle(t *testing.T) {
	ctx := context.Background()
	server := stubtest.NewServer(t)
	client := newClient(server.URL)

	registered, err := client.Register(ctx, api.RegisterRequest{Email: "student@example.com", Password: "123456"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.User.ID == "" {
		t.Fatal("expected the user id to be decoded from _id")
	}

	if _, err := client.Profile(ctx); !apperrors.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized without bearer, got %v", err)
	}

	login, err := client.Login(ctx, "student@example.com", "123456")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	client.SetBearer(login.Token)

	profile, err := client.Profile(ctx)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Email != "student@example.com" || profile.Role != "student" {
		t.Fatalf("unexpected profile %+v", profile)
	}

	client.ClearBearer()
	if _, err := client.Profile(ctx); !apperrors.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized after clearing bearer, got %v", err)
	}
}

func TestBadCredentialsSurfaceServerError(t *testing.T) {
	server := stubtest.NewServer(t)
	client := newClient(server.URL)

	_, err := client.Login(context.Background(), "nobody@example.com", "wrong")
	var apiErr *apperrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected an APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "invalid email or password" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
	if apperrors.IsTransient(err) {
		t.Fatal("bad credentials must not be retried")
	}
}

func TestPublicEndpointsWithoutBearer(t *testing.T) {
	ctx := context.Background()
	server := stubtest.NewServer(t)
	client := newClient(server.URL)

	counsellors, err := client.Counsellors(ctx)
	if err != nil {
		t.Fatalf("counsellors: %v", err)
	}
	if len(counsellors) != 2 || counsellors[0].Title == "" {
		t.Fatalf("unexpected counsellors %+v", counsellors)
	}

	vouchers, err := client.Vouchers(ctx)
	if err != nil {
		t.Fatalf("vouchers: %v", err)
	}
	if len(vouchers) != 2 || vouchers[0].ID != stubtest.CoffeeVoucher {
		t.Fatalf("unexpected vouchers %+v", vouchers)
	}

	reply, err := client.Chat(ctx, "hello")
	if err != nil || reply == "" {
		t.Fatalf("chat: %q %v", reply, err)
	}
	if err := client.CreateAlert(ctx, "guest alert", "critical"); err != nil {
		t.Fatalf("anonymous alert: %v", err)
	}
}

func TestNetworkFailureIsTransient(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client := newClient(baseURL)
	_, err := client.Counsellors(context.Background())
	if !errors.Is(err, apperrors.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if !apperrors.IsTransient(err) {
		t.Fatal("network failures must be retry-able")
	}
}

func TestBearerHeaderAttachment(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	ctx := context.Background()
	client := newClient(server.URL)
	client.SetBearer("abc")
	if _, err := client.ForumPosts(ctx); err != nil {
		t.Fatalf("forum posts: %v", err)
	}
	client.ClearBearer()
	if _, err := client.ForumPosts(ctx); err != nil {
		t.Fatalf("forum posts: %v", err)
	}

	if len(seen) != 2 || seen[0] != "Bearer abc" || seen[1] != "" {
		t.Fatalf("unexpected authorization headers %q", seen)
	}
}

func TestRequestPacing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := api.New(api.Options{BaseURL: server.URL, RequestsPerSecond: 1})
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	if _, err := client.Vouchers(ctx); err != nil {
		t.Fatalf("first request: %v", err)
	}
	_, err := client.Vouchers(ctx)
	if err == nil || !strings.Contains(err.Error(), "context deadline") {
		t.Fatalf("expected the limiter to refuse a second request within the deadline, got %v", err)
	}
}
