package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/serology/internal/config"
	"github.com/aretw0/serology/internal/logging"
	"github.com/aretw0/serology/internal/presentation/graph"
	"github.com/aretw0/serology/pkg/domain"
	"github.com/aretw0/serology/pkg/session"
)

// PrintGraph writes the Mermaid flowchart of the configured graph. When path
// is non-empty it is a comma separated list of answers replayed from the root,
// and the resulting walk is highlighted.
func PrintGraph(ctx context.Context, w io.Writer, cfg *config.Config, path string) error {
	engine, err := createEngine(cfg, logging.NewNop())
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if path != "" {
		m := session.NewManager(ctx, engine)
		for _, raw := range strings.Split(path, ",") {
			sel, err := domain.ParseSelection(raw)
			if err != nil {
				return fmt.Errorf("overlay: %w", err)
			}
			if _, err := m.Answer(ctx, sel); err != nil {
				return fmt.Errorf("overlay: %w", err)
			}
		}
		overlay = graph.OverlayFor(m.Snapshot())
	}

	_, err = io.WriteString(w, graph.GenerateMermaid(engine.Graph(), overlay))
	return err
}
