package config

import (
	"testing"
	"time"
)

func TestLoadClientDefaults(t *testing.T) {
	t.Setenv("MINDCARE_API_URL", "")
	t.Setenv("MINDCARE_REQUESTS_PER_SECOND", "")

	cfg := LoadClient()
	if cfg.APIBaseURL != "http://localhost:5000" {
		t.Fatalf("unexpected base url %q", cfg.APIBaseURL)
	}
	if cfg.RequestsPerSecond != 10 {
		t.Fatalf("expected 10 rps, got %d", cfg.RequestsPerSecond)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.HTTPTimeout)
	}
}

func TestLoadClientOverrides(t *testing.T) {
	t.Setenv("MINDCARE_API_URL", "https://api.example.edu/")
	t.Setenv("MINDCARE_CHAT_PER_MINUTE", "abc")
	t.Setenv("MINDCARE_LANG", "hi")

	cfg := LoadClient()
	if cfg.APIBaseURL != "https://api.example.edu" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.APIBaseURL)
	}
	if cfg.ChatPerMinute != 20 {
		t.Fatalf("expected fallback for invalid int, got %d", cfg.ChatPerMinute)
	}
	if cfg.Language != "hi" {
		t.Fatalf("expected hi, got %q", cfg.Language)
	}
}

func TestLoadStubCORSList(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " http://a.test , ,http://b.test")

	cfg := LoadStub()
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "http://a.test" || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
}
