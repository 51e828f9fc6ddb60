package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Client configures the terminal front end.
type Client struct {
	APIBaseURL        string
	DataPath          string
	Language          string
	RequestsPerSecond int
	ChatPerMinute     int
	HTTPTimeout       time.Duration
}

// Stub configures the local stand-in for the REST backend.
type Stub struct {
	Port               string
	DBPath             string
	JWTSecret          string
	TokenTTL           time.Duration
	CORSOrigins        []string
	LoginRatePerSecond int
	LoginBurst         int
}

// LoadEnv reads a .env file from the working directory when present.
func LoadEnv() {
	_ = godotenv.Load()
}

func LoadClient() Client {
	return Client{
		APIBaseURL:        strings.TrimRight(getEnv("MINDCARE_API_URL", "http://localhost:5000"), "/"),
		DataPath:          getEnv("MINDCARE_DATA_PATH", "./data/mindcare.db"),
		Language:          getEnv("MINDCARE_LANG", "en"),
		RequestsPerSecond: getEnvInt("MINDCARE_REQUESTS_PER_SECOND", 10),
		ChatPerMinute:     getEnvInt("MINDCARE_CHAT_PER_MINUTE", 20),
		HTTPTimeout:       time.Duration(getEnvInt("MINDCARE_HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
	}
}

func LoadStub() Stub {
	return Stub{
		Port:               getEnv("PORT", "5000"),
		DBPath:             getEnv("DB_PATH", "./data/stub.db"),
		JWTSecret:          getEnv("JWT_SECRET", "change-this-secret"),
		TokenTTL:           time.Duration(getEnvInt("TOKEN_TTL_HOURS", 72)) * time.Hour,
		CORSOrigins:        getEnvList("CORS_ORIGINS", []string{"http://localhost:5173", "http://127.0.0.1:5173"}),
		LoginRatePerSecond: getEnvInt("LOGIN_RATE_PER_SECOND", 5),
		LoginBurst:         getEnvInt("LOGIN_BURST", 10),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
