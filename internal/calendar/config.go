package calendar

import (
	"os"
	"strconv"
)

// Config holds connection settings for the external calendar API.
type Config struct {
	Endpoint  string
	Token     string
	TimeoutMs int
}

// DefaultConfig returns calendar settings pointed at a local stub.
func DefaultConfig() Config {
	return Config{
		Endpoint:  "http://localhost:8091",
		TimeoutMs: 10000,
	}
}

// LoadConfig reads calendar configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TEMPO_CALENDAR_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("TEMPO_CALENDAR_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("TEMPO_CALENDAR_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	return cfg
}
