package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/serology/internal/logging"
	"github.com/aretw0/serology/pkg/domain"
	"github.com/aretw0/serology/pkg/ports"
)

// Subscriber is notified with the new view after each committed operation.
type Subscriber func(domain.View)

// Manager orchestrates access to one session, ensuring each operation is applied atomically.
type Manager struct {
	engine ports.StatelessEngine

	mu      sync.Mutex
	current *domain.Session

	subMu  sync.Mutex
	nextID int
	subs   map[int]Subscriber

	sessionID string
	logger    *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithSessionID fixes the session id instead of letting the engine pick one.
func WithSessionID(id string) Option {
	return func(m *Manager) {
		m.sessionID = id
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager starts a fresh session on engine and takes ownership of it.
func NewManager(ctx context.Context, engine ports.StatelessEngine, opts ...Option) *Manager {
	m := &Manager{
		engine: engine,
		subs:   make(map[int]Subscriber),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.current = engine.Start(ctx, m.sessionID)
	return m
}

// Engine returns the engine the manager drives.
func (m *Manager) Engine() ports.StatelessEngine {
	return m.engine
}

// Select records the pending answer.
func (m *Manager) Select(ctx context.Context, sel domain.Selection) (domain.View, error) {
	return m.Apply(ctx, "select", func(ctx context.Context, s *domain.Session) (*domain.Session, error) {
		return m.engine.Select(ctx, s, sel)
	})
}

// Advance commits the pending answer.
func (m *Manager) Advance(ctx context.Context) (domain.View, error) {
	return m.Apply(ctx, "advance", m.engine.Advance)
}

// Retreat undoes the most recent step.
func (m *Manager) Retreat(ctx context.Context) (domain.View, error) {
	return m.Apply(ctx, "retreat", m.engine.Retreat)
}

// Reset returns to the root question.
func (m *Manager) Reset(ctx context.Context) (domain.View, error) {
	return m.Apply(ctx, "reset", m.engine.Reset)
}

// Answer selects and advances as one atomic step.
func (m *Manager) Answer(ctx context.Context, sel domain.Selection) (domain.View, error) {
	return m.Apply(ctx, "answer", func(ctx context.Context, s *domain.Session) (*domain.Session, error) {
		next, err := m.engine.Select(ctx, s, sel)
		if err != nil {
			return nil, err
		}
		return m.engine.Advance(ctx, next)
	})
}

// View projects the current session.
func (m *Manager) View() (domain.View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.View(m.current)
}

// Snapshot returns a copy of the current session.
func (m *Manager) Snapshot() *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Clone()
}

// Apply runs fn against the current session while holding the lock.
// The result replaces the current session only when fn and the following
// projection both succeed; otherwise the session is left untouched.
//
// Engine lifecycle hooks run inside fn, before the commit. The engine only
// fires them for results whose target node exists, so the projection that
// follows cannot reject a transition the hooks already reported.
func (m *Manager) Apply(ctx context.Context, op string, fn func(context.Context, *domain.Session) (*domain.Session, error)) (domain.View, error) {
	m.mu.Lock()
	id := m.current.ID
	next, err := fn(ctx, m.current)
	if err != nil {
		m.mu.Unlock()
		m.logger.Warn("session operation rejected", "session_id", id, "op", op, "err", err)
		return domain.View{}, fmt.Errorf("%s: %w", op, err)
	}
	view, err := m.engine.View(next)
	if err != nil {
		m.mu.Unlock()
		m.logger.Error("session view failed", "session_id", id, "op", op, "err", err)
		return domain.View{}, fmt.Errorf("%s: %w", op, err)
	}
	m.current = next
	m.mu.Unlock()

	m.notify(view)
	return view, nil
}

// Subscribe registers fn for post-commit notifications and returns a function
// that removes it. Subscribers run on the caller's goroutine after the lock is
// released, so they may call View or Snapshot.
func (m *Manager) Subscribe(fn Subscriber) func() {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		delete(m.subs, id)
	}
}

func (m *Manager) notify(view domain.View) {
	m.subMu.Lock()
	subs := make([]Subscriber, 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.subMu.Unlock()

	for _, fn := range subs {
		fn(view)
	}
}
