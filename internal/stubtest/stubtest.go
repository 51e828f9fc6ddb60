// Package stubtest runs the stub backend over a throwaway database for
// integration tests of the client packages.
package stubtest

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"mindcare/internal/config"
	"mindcare/internal/db"
	"mindcare/internal/router"
	"mindcare/migrations"
)

// Seeded records.
const (
	PriyaID       = "c0000000-0000-0000-0000-000000000001"
	ArjunID       = "c0000000-0000-0000-0000-000000000002"
	CoffeeVoucher = "v0000000-0000-0000-0000-000000000001"
	BookVoucher   = "v0000000-0000-0000-0000-000000000002"
	DefaultOrigin = "http://localhost:5173"
	DefaultSecret = "test-secret"
)

func Config() config.Stub {
	return config.Stub{
		JWTSecret:          DefaultSecret,
		TokenTTL:           24 * time.Hour,
		CORSOrigins:        []string{DefaultOrigin},
		LoginRatePerSecond: 100,
		LoginBurst:         100,
	}
}

// NewEngine returns the stub engine configured with cfg.
func NewEngine(t testing.TB, cfg config.Stub) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "stub.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	if err := db.RunMigrations(database, migrations.Stub()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return router.NewStub(database, cfg)
}

// NewServer serves the default stub engine over HTTP until the test ends.
func NewServer(t testing.TB) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(NewEngine(t, Config()))
	t.Cleanup(server.Close)
	return server
}
