package ports

import (
	"context"

	"github.com/aretw0/serology/pkg/domain"
)

// StatelessEngine is the transition set over sessions. Implementations never mutate
// the session passed in; each call returns the next session value.
type StatelessEngine interface {
	// Start creates a fresh session at the root question.
	Start(ctx context.Context, sessionID string) *domain.Session

	// Select records the pending answer for the displayed question.
	Select(ctx context.Context, s *domain.Session, sel domain.Selection) (*domain.Session, error)

	// Advance commits the pending answer.
	Advance(ctx context.Context, s *domain.Session) (*domain.Session, error)

	// Retreat undoes the most recent step.
	Retreat(ctx context.Context, s *domain.Session) (*domain.Session, error)

	// Reset returns to the initial state.
	Reset(ctx context.Context, s *domain.Session) (*domain.Session, error)

	// View projects the session for rendering.
	View(s *domain.Session) (domain.View, error)

	// Graph returns the decision graph for introspection.
	Graph() *domain.Graph
}
