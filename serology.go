package serology

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/serology/internal/runtime"
	"github.com/aretw0/serology/internal/validator"
	yamlAdapter "github.com/aretw0/serology/pkg/adapters/yaml"
	"github.com/aretw0/serology/pkg/algorithms"
	"github.com/aretw0/serology/pkg/domain"
	"github.com/aretw0/serology/pkg/ports"
	"github.com/google/uuid"
)

// Engine is the high-level entry point for the serology library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine
	loader  ports.GraphLoader
	graph   *domain.Graph
	report  *validator.Report
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	strict  bool
	Name    string
}

// Ensure Engine satisfies the port adapters drive.
var _ ports.StatelessEngine = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
// Calling it more than once merges the hooks in order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLoader injects a custom GraphLoader, bypassing the YAML file and built-in graph.
func WithLoader(l ports.GraphLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithGraph uses an already constructed graph (for example from the dsl package).
func WithGraph(g *domain.Graph) Option {
	return func(e *Engine) {
		e.graph = g
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStrict reports unmet preconditions as *domain.InvalidOperationError
// instead of ignoring them.
func WithStrict(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// New initializes a new Engine.
//
// The graph comes from, in order of preference: WithGraph, WithLoader, the YAML
// file at graphPath, or the built-in hepatitis-B algorithm when graphPath is empty.
// The graph is validated before the engine is returned.
func New(graphPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.graph == nil {
		if eng.loader == nil {
			if graphPath != "" {
				absPath, err := filepath.Abs(graphPath)
				if err != nil {
					return nil, fmt.Errorf("invalid path: %w", err)
				}
				eng.loader = yamlAdapter.New(absPath)
			} else {
				eng.loader = algorithms.HBVLoader()
			}
		}

		g, err := eng.loader.LoadGraph()
		if err != nil {
			return nil, fmt.Errorf("failed to load graph: %w", err)
		}
		eng.graph = g
	}

	report, err := validator.ValidateGraph(eng.graph)
	if err != nil {
		return nil, fmt.Errorf("invalid graph: %w", err)
	}
	eng.report = report

	eng.Name = eng.graph.Name()
	if eng.Name == "" && graphPath != "" {
		eng.Name = filepath.Base(graphPath)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime, which would overwrite its default)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("graph", eng.Name)
	}

	eng.runtime = runtime.NewEngine(eng.graph,
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithStrict(eng.strict),
	)

	return eng, nil
}

// Start creates a new session at the root question.
// An empty sessionID is replaced by a random UUID.
func (e *Engine) Start(ctx context.Context, sessionID string) *domain.Session {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return e.runtime.Start(ctx, sessionID)
}

// Select records the pending answer for the displayed question.
func (e *Engine) Select(ctx context.Context, s *domain.Session, sel domain.Selection) (*domain.Session, error) {
	return e.runtime.Select(ctx, s, sel)
}

// Advance commits the pending answer and moves forward.
func (e *Engine) Advance(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	return e.runtime.Advance(ctx, s)
}

// Retreat undoes the most recent step.
func (e *Engine) Retreat(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	return e.runtime.Retreat(ctx, s)
}

// Reset returns the session to the root question with empty history.
func (e *Engine) Reset(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	return e.runtime.Reset(ctx, s)
}

// View projects the session into what should be rendered.
func (e *Engine) View(s *domain.Session) (domain.View, error) {
	return e.runtime.View(s)
}

// Findings resolves the session's answered questions to their labels.
func (e *Engine) Findings(s *domain.Session) ([]domain.Finding, error) {
	return e.runtime.Findings(s)
}

// Graph returns the validated decision graph.
func (e *Engine) Graph() *domain.Graph {
	return e.graph
}

// Report returns the validation summary of the graph.
func (e *Engine) Report() *validator.Report {
	return e.report
}
