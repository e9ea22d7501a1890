package config

import (
	"log/slog"
	"time"
)

// Output formats understood by the output package.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Config holds runtime settings for the gophforum CLI.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	SessionDBPath       string
	// LocaleFile overlays the built-in English messages when set.
	LocaleFile   string
	OutputFormat string
	LogLevel     slog.Level
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.SessionDBPath = "gophforum_session.db"
	c.LocaleFile = ""
	c.OutputFormat = OutputTable
	c.LogLevel = slog.LevelWarn
}
