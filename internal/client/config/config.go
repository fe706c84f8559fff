// Package config assembles runtime settings for the portalcli client.
//
// Sources are applied in order, later ones overriding earlier ones:
// built-in defaults, environment (including a .env file when present),
// a JSON config file (-c/-config), and command-line flags.
package config

import "time"

// Config holds runtime settings for the portalcli client.
//
// Fields:
//   - ServerURL: base URL of the Portal API, no trailing slash.
//   - DatabasePath: path of the local credentials database.
//   - RedirectDelay: how long a "session expired" notice stays visible
//     before the gate navigates back to login.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	ServerURL      string
	DatabasePath   string
	RedirectDelay  time.Duration
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.DatabasePath = "portal.db"
	c.RedirectDelay = 1500 * time.Millisecond
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays
// values from the environment, JSON (if present), and command-line
// flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
