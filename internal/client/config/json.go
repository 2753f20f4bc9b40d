package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/familyaccount/internal/flagx"
	"github.com/dmitrijs2005/familyaccount/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "15s" or as integer nanoseconds. Absent fields leave the
// corresponding Config value untouched.
type JsonConfig struct {
	ServerURL       string         `json:"server_url"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	DatabasePath    string         `json:"database_path"`
	Ephemeral       *bool          `json:"ephemeral"`
	SearchDebounce  timex.Duration `json:"search_debounce"`
	SearchMinLength int            `json:"search_min_length"`
	LogLevel        string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing. Read or unmarshal
// errors panic.
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
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.Ephemeral != nil {
		cfg.Ephemeral = *jc.Ephemeral
	}
	if jc.SearchDebounce.Duration > 0 {
		cfg.SearchDebounce = jc.SearchDebounce.Duration
	}
	if jc.SearchMinLength > 0 {
		cfg.SearchMinLength = jc.SearchMinLength
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
