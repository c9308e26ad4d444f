package cli

import (
	"context"

	"github.com/aretw0/serology/internal/config"
	"github.com/aretw0/serology/pkg/adapters/mcp"
	"github.com/aretw0/serology/pkg/session"
)

// ServeMCP runs the MCP server over stdio. Logs go to stderr so they never
// corrupt the JSON-RPC stream on stdout.
func ServeMCP(ctx context.Context, cfg *config.Config) error {
	logger := createLogger(cfg, false)
	engine, err := createEngine(cfg, logger)
	if err != nil {
		return err
	}

	m := session.NewManager(ctx, engine, session.WithLogger(logger))
	logger.Info("starting serology MCP server (stdio)", "graph", engine.Name)
	return mcp.NewServer(m, mcp.WithLogger(logger)).ServeStdio()
}
