package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/jafa/internal/flagx"
	"github.com/dmitrijs2005/jafa/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations go
// through timex.Duration so they may be written as "5s" or as nanoseconds.
// Absent keys leave the corresponding Config field untouched.
type JsonConfig struct {
	BackendURL     string          `json:"backend_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	DatabasePath   string          `json:"database_path"`
	ToastTTL       *timex.Duration `json:"toast_ttl"`
	ToastCapacity  int             `json:"toast_capacity"`
	LogLevel       string          `json:"log_level"`
}

// parseJson overlays cfg with values loaded from the JSON file named by -c or
// -config. Without either flag it does nothing. It panics on read or
// unmarshal errors.
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

	if jc.BackendURL != "" {
		cfg.BackendURL = jc.BackendURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.ToastTTL != nil {
		cfg.ToastTTL = jc.ToastTTL.Duration
	}
	if jc.ToastCapacity != 0 {
		cfg.ToastCapacity = jc.ToastCapacity
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
