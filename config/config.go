package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime parameter of the service.
type Config struct {
	DatabaseURL string
	ServerPort  int

	// Scheduling grid: the start times offered each day and the minimum rest
	// gap between a team's matches.
	ScheduleGridTimes []string
	DefaultGapMinutes int

	// Cloudflare R2 snapshot export. Optional: when AccountID is empty the
	// export is disabled.
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// Load reads configuration from environment variables, optionally seeded
// from a .env file for local development.
func Load() (*Config, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	gridTimes := splitList(os.Getenv("SCHEDULE_GRID_TIMES"))

	gapStr := os.Getenv("SCHEDULE_GAP_MINUTES")
	if gapStr == "" {
		gapStr = "60"
	}
	gap, err := strconv.Atoi(gapStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_GAP_MINUTES environment variable: %w", err)
	}
	if gap < 0 {
		return nil, fmt.Errorf("SCHEDULE_GAP_MINUTES must not be negative, got %d", gap)
	}

	cfg := &Config{
		DatabaseURL:       dbURL,
		ServerPort:        port,
		ScheduleGridTimes: gridTimes,
		DefaultGapMinutes: gap,

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	return cfg, nil
}

// R2Enabled reports whether snapshot export is configured.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicBaseURL != ""
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
