package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/serology/pkg/domain"
)

// Engine is the core traversal state machine.
//
// It holds the read-only graph and applies one pure transition per operation:
// every method takes a Session and returns a new one, leaving the input untouched.
type Engine struct {
	graph  *domain.Graph
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	strict bool
	now    func() time.Time
}

// EngineOption configures the runtime Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithStrict makes unmet preconditions return *domain.InvalidOperationError
// instead of being ignored.
func WithStrict(strict bool) EngineOption {
	return func(e *Engine) {
		e.strict = strict
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an engine over a validated graph.
func NewEngine(graph *domain.Graph, opts ...EngineOption) *Engine {
	e := &Engine{
		graph:  graph,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Graph returns the graph the engine walks.
func (e *Engine) Graph() *domain.Graph {
	return e.graph
}

// Start creates a fresh session at the root question.
func (e *Engine) Start(ctx context.Context, sessionID string) *domain.Session {
	e.logger.Debug("session started", "session_id", sessionID, "root", e.graph.RootID())
	return domain.NewSession(sessionID, e.graph.RootID())
}

// ignore handles an unmet precondition: a silent no-op by default, an error in strict mode.
// The returned session is always the unchanged input (cloned).
func (e *Engine) ignore(s *domain.Session, op, reason string) (*domain.Session, error) {
	e.logger.Debug("operation ignored", "session_id", s.ID, "op", op, "reason", reason)
	if e.strict {
		return s.Clone(), &domain.InvalidOperationError{Op: op, Reason: reason}
	}
	return s.Clone(), nil
}

func (e *Engine) base(s *domain.Session, t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: e.now(), Type: t, SessionID: s.ID}
}

func (e *Engine) emitTransition(ctx context.Context, hook func(context.Context, *domain.TransitionEvent), ev *domain.TransitionEvent) {
	if hook != nil {
		hook(ctx, ev)
	}
}

func (e *Engine) emitConclusion(ctx context.Context, ev *domain.ConclusionEvent) {
	if e.hooks.OnConclude != nil {
		e.hooks.OnConclude(ctx, ev)
	}
}
