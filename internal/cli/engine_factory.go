package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/serology"
	"github.com/aretw0/serology/internal/config"
	"github.com/aretw0/serology/pkg/domain"
	"github.com/aretw0/serology/pkg/observability"
)

// createEngine builds the engine with the standard CLI conventions: the
// configured graph (or the built-in algorithm), strict mode, and debug hooks
// when the logger is at debug level.
func createEngine(cfg *config.Config, logger *slog.Logger, extra ...domain.LifecycleHooks) (*serology.Engine, error) {
	opts := []serology.Option{
		serology.WithLogger(logger),
		serology.WithStrict(cfg.Strict),
	}

	if cfg.LogLevel == "debug" {
		opts = append(opts, serology.WithLifecycleHooks(observability.LoggingHooks(logger)))
	}
	for _, h := range extra {
		opts = append(opts, serology.WithLifecycleHooks(h))
	}

	engine, err := serology.New(cfg.Graph, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}
