package config

import (
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"
)

// Flags binds the CLI's persistent flags. Only flags the user set
// explicitly override the JSON file.
type Flags struct {
	fs       *pflag.FlagSet
	path     string
	values   Config
	logLevel string
}

// RegisterFlags adds the config flags to fs with defaults shown in help.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	f.values.LoadDefaults()

	fs.StringVarP(&f.path, "config", "c", "", "path to a JSON config file")
	fs.StringVarP(&f.values.ServerEndpointAddr, "server", "a", f.values.ServerEndpointAddr, "address and port of the forum server")
	fs.DurationVarP(&f.values.OnlineCheckInterval, "online-interval", "i", f.values.OnlineCheckInterval, "how often to probe the server")
	fs.DurationVar(&f.values.RequestTimeout, "timeout", f.values.RequestTimeout, "timeout of a single request")
	fs.StringVar(&f.values.SessionDBPath, "session-db", f.values.SessionDBPath, "path to the local session database")
	fs.StringVar(&f.values.LocaleFile, "locale", f.values.LocaleFile, "YAML file overriding built-in messages")
	fs.StringVarP(&f.values.OutputFormat, "output", "o", f.values.OutputFormat, "output format: table, json or yaml")
	fs.StringVar(&f.logLevel, "log-level", f.values.LogLevel.String(), "log level: debug, info, warn or error")
	return f
}

// Load builds a Config from defaults, the JSON file and changed flags.
func (f *Flags) Load() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, f.path); err != nil {
		return nil, err
	}

	if f.fs.Changed("server") {
		cfg.ServerEndpointAddr = f.values.ServerEndpointAddr
	}
	if f.fs.Changed("online-interval") {
		cfg.OnlineCheckInterval = f.values.OnlineCheckInterval
	}
	if f.fs.Changed("timeout") {
		cfg.RequestTimeout = f.values.RequestTimeout
	}
	if f.fs.Changed("session-db") {
		cfg.SessionDBPath = f.values.SessionDBPath
	}
	if f.fs.Changed("locale") {
		cfg.LocaleFile = f.values.LocaleFile
	}
	if f.fs.Changed("output") {
		cfg.OutputFormat = f.values.OutputFormat
	}
	if f.fs.Changed("log-level") {
		var level slog.Level
		if err := level.UnmarshalText([]byte(f.logLevel)); err != nil {
			return nil, fmt.Errorf("invalid --log-level: %w", err)
		}
		cfg.LogLevel = level
	}

	switch cfg.OutputFormat {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q", cfg.OutputFormat)
	}
	return cfg, nil
}
