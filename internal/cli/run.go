package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/aretw0/serology/internal/config"
	"github.com/aretw0/serology/internal/logging"
)

// Options carries the persistent flags shared by every command.
type Options struct {
	ConfigPath string
	GraphPath  string
	Debug      bool
	Strict     bool
}

// ResolveConfig loads the config file and environment, then applies the
// flags the user set explicitly. Precedence is flag > env > file > default.
func ResolveConfig(opts Options, flags *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if changed(flags, "graph") {
		cfg.Graph = opts.GraphPath
	}
	if changed(flags, "strict") {
		cfg.Strict = opts.Strict
	}
	if opts.Debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func changed(flags *pflag.FlagSet, name string) bool {
	if flags == nil {
		return false
	}
	f := flags.Lookup(name)
	return f != nil && f.Changed
}

// createLogger configures the application logger. Interactive commands stay
// quiet unless debug is on so logs do not interleave with the prompt.
func createLogger(cfg *config.Config, quiet bool) *slog.Logger {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	if quiet && level > slog.LevelDebug {
		return logging.NewNop()
	}
	return logging.New(level)
}
