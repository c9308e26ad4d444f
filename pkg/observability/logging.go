package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/serology/pkg/domain"
)

// LoggingHooks logs every lifecycle event at Debug.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	transition := func(ctx context.Context, e *domain.TransitionEvent) {
		logger.DebugContext(ctx, string(e.Type),
			"session_id", e.SessionID,
			"from", e.FromNodeID,
			"to", e.ToNodeID,
			"selection", e.Selection.String(),
			"depth", e.Depth,
		)
	}
	return domain.LifecycleHooks{
		OnAdvance: transition,
		OnRetreat: transition,
		OnReset:   transition,
		OnConclude: func(ctx context.Context, e *domain.ConclusionEvent) {
			logger.InfoContext(ctx, "conclusion reached",
				"session_id", e.SessionID,
				"node_id", e.NodeID,
				"conclusion", e.Text,
				"depth", e.Depth,
			)
		},
	}
}
