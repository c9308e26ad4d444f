package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/serology/pkg/domain"
)

// Select records the pending answer for the displayed question.
// Selecting the same value again changes nothing; the other value overwrites.
func (e *Engine) Select(ctx context.Context, s *domain.Session, sel domain.Selection) (*domain.Session, error) {
	if !sel.IsValid() {
		return s.Clone(), fmt.Errorf("%w: %d", domain.ErrInvalidSelection, sel)
	}
	if s.Concluded {
		return e.ignore(s, "select", "no question is displayed")
	}

	next := s.Clone()
	next.Pending = sel
	return next, nil
}

// Advance commits the pending answer: it appends to history and either moves to
// the next question or concludes.
func (e *Engine) Advance(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	if s.Concluded {
		return e.ignore(s, "advance", "already concluded")
	}
	if !s.Pending.IsValid() {
		return e.ignore(s, "advance", "no selection pending")
	}

	node, err := e.graph.NodeFor(s.CurrentNodeID)
	if err != nil {
		return s.Clone(), fmt.Errorf("advance: %w", err)
	}
	outcome, _ := node.Branch(s.Pending)
	if !outcome.IsDefined() {
		return s.Clone(), fmt.Errorf("advance: node %s has no %s branch: %w", node.ID, s.Pending, domain.ErrUnknownNode)
	}

	next := s.Clone()
	next.History = append(next.History, domain.HistoryEntry{NodeID: s.CurrentNodeID, Selection: s.Pending})
	next.Direction = domain.Forward

	ev := &domain.TransitionEvent{
		EventBase:  e.base(s, domain.EventAdvance),
		FromNodeID: s.CurrentNodeID,
		Selection:  s.Pending,
		Depth:      len(next.History),
	}

	switch outcome.Kind {
	case domain.OutcomeConclude:
		next.Concluded = true
		next.ConclusionText = outcome.Result
	case domain.OutcomeContinue:
		if _, err := e.graph.NodeFor(outcome.Next); err != nil {
			return s.Clone(), fmt.Errorf("advance from %s: %w", node.ID, err)
		}
		next.CurrentNodeID = outcome.Next
		next.Pending = domain.NoSelection
		ev.ToNodeID = outcome.Next
	}

	e.logger.Debug("advance",
		"session_id", s.ID,
		"from", s.CurrentNodeID,
		"selection", s.Pending.String(),
		"outcome", outcome.String(),
		"depth", len(next.History),
	)
	e.emitTransition(ctx, e.hooks.OnAdvance, ev)

	if next.Concluded {
		e.emitConclusion(ctx, &domain.ConclusionEvent{
			EventBase: e.base(s, domain.EventConclude),
			NodeID:    s.CurrentNodeID,
			Text:      next.ConclusionText,
			Depth:     len(next.History),
		})
	}
	return next, nil
}

// Retreat undoes the most recent step.
//
// From a conclusion it only re-opens the question that produced it (history is
// kept, so a second Retreat is needed to pop that answer). Otherwise it pops the
// last answer and re-asks the question it answered, so Advance followed by
// Retreat lands back where it started.
// The direction is set to Backward even when nothing else changes.
func (e *Engine) Retreat(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	next := s.Clone()
	next.Direction = domain.Backward

	ev := &domain.TransitionEvent{
		EventBase:  e.base(s, domain.EventRetreat),
		FromNodeID: s.CurrentNodeID,
	}

	switch {
	case s.Concluded:
		next.Concluded = false
		next.ConclusionText = ""
		next.Pending = domain.NoSelection
		ev.ToNodeID = next.CurrentNodeID

	case len(s.History) > 0:
		popped := next.History[len(next.History)-1]
		next.History = next.History[:len(next.History)-1]
		next.CurrentNodeID = popped.NodeID
		next.Pending = domain.NoSelection
		ev.ToNodeID = next.CurrentNodeID
		ev.Selection = popped.Selection

	default:
		e.logger.Debug("operation ignored", "session_id", s.ID, "op", "retreat", "reason", "already at root")
		if e.strict {
			return s.Clone(), &domain.InvalidOperationError{Op: "retreat", Reason: "already at root"}
		}
		return next, nil
	}

	if _, err := e.graph.NodeFor(next.CurrentNodeID); err != nil {
		return s.Clone(), fmt.Errorf("retreat: %w", err)
	}

	ev.Depth = len(next.History)
	e.logger.Debug("retreat",
		"session_id", s.ID,
		"from", ev.FromNodeID,
		"to", ev.ToNodeID,
		"from_conclusion", s.Concluded,
		"depth", ev.Depth,
	)
	e.emitTransition(ctx, e.hooks.OnRetreat, ev)
	return next, nil
}

// Reset returns the session to its initial state. The session id is kept.
func (e *Engine) Reset(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	next := domain.NewSession(s.ID, e.graph.RootID())

	e.logger.Debug("reset", "session_id", s.ID, "discarded_depth", len(s.History))
	e.emitTransition(ctx, e.hooks.OnReset, &domain.TransitionEvent{
		EventBase:  e.base(s, domain.EventReset),
		FromNodeID: s.CurrentNodeID,
		ToNodeID:   next.CurrentNodeID,
	})
	return next, nil
}
