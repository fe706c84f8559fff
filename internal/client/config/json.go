package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/portalcli/internal/flagx"
	"github.com/dmitrijs2005/portalcli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It uses
// timex.Duration so intervals can be written either as strings like
// "1500ms" or as integer nanoseconds.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	DatabasePath   string         `json:"database_path"`
	RedirectDelay  timex.Duration `json:"redirect_delay"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from the JSON file named
// by the -c/-config flag. When no flag is given, nothing is loaded.
// Read or unmarshal errors panic; the config stage runs before any
// user interaction, so failing fast is preferable to running with a
// half-applied file.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RedirectDelay.Duration != 0 {
		cfg.RedirectDelay = jc.RedirectDelay.Duration
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
