package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophforum/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerEndpointAddr  *string         `json:"server_endpoint_addr"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	SessionDBPath       *string         `json:"session_db_path"`
	LocaleFile          *string         `json:"locale_file"`
	OutputFormat        *string         `json:"output_format"`
	LogLevel            *string         `json:"log_level"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// parseJson overlays cfg with the file at path. An empty path is a no-op.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	set(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	set(&cfg.SessionDBPath, jc.SessionDBPath)
	set(&cfg.LocaleFile, jc.LocaleFile)
	set(&cfg.OutputFormat, jc.OutputFormat)

	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != nil {
		if err := cfg.LogLevel.UnmarshalText([]byte(*jc.LogLevel)); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return nil
}
