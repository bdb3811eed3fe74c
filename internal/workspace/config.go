package workspace

import (
	"os"
	"strconv"
)

// Config holds connection settings for the external workspace API.
type Config struct {
	Endpoint   string
	Token      string
	TimeoutMs  int
	MaxRetries int
	LogCalls   bool
}

// DefaultConfig returns workspace settings pointed at a local stub.
func DefaultConfig() Config {
	return Config{
		Endpoint:   "http://localhost:8090",
		TimeoutMs:  10000,
		MaxRetries: 1,
	}
}

// LoadConfig reads workspace configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TEMPO_WORKSPACE_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("TEMPO_WORKSPACE_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("TEMPO_WORKSPACE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("TEMPO_WORKSPACE_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("TEMPO_WORKSPACE_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}
