package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment. A .env
// file in the working directory is loaded first when present; real
// environment variables win over .env entries.
//
// Recognized variables:
//
//	PORTAL_SERVER_URL       base URL of the Portal API
//	PORTAL_DB_PATH          local credentials database path
//	PORTAL_REDIRECT_DELAY   duration, e.g. "1500ms"
//	PORTAL_REQUEST_TIMEOUT  duration, e.g. "10s"
//
// Malformed duration values are ignored and the previous value kept.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("PORTAL_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("PORTAL_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("PORTAL_REDIRECT_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RedirectDelay = d
		}
	}
	if v := os.Getenv("PORTAL_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
