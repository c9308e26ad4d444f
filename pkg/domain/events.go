package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventAdvance  EventType = "advance"
	EventRetreat  EventType = "retreat"
	EventReset    EventType = "reset"
	EventConclude EventType = "conclude"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// TransitionEvent describes a move between questions.
// ToNodeID is empty when an advance concluded.
type TransitionEvent struct {
	EventBase
	FromNodeID string    `json:"from_node_id"`
	ToNodeID   string    `json:"to_node_id,omitempty"`
	Selection  Selection `json:"selection,omitempty"`
	Depth      int       `json:"depth"`
}

// ConclusionEvent is emitted when an advance reaches a diagnosis.
type ConclusionEvent struct {
	EventBase
	NodeID string `json:"node_id"`
	Text   string `json:"text"`
	Depth  int    `json:"depth"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously inside the operation and must not block.
type LifecycleHooks struct {
	OnAdvance  func(context.Context, *TransitionEvent)
	OnRetreat  func(context.Context, *TransitionEvent)
	OnReset    func(context.Context, *TransitionEvent)
	OnConclude func(context.Context, *ConclusionEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnAdvance:  chainTransition(h.OnAdvance, other.OnAdvance),
		OnRetreat:  chainTransition(h.OnRetreat, other.OnRetreat),
		OnReset:    chainTransition(h.OnReset, other.OnReset),
		OnConclude: chainConclusion(h.OnConclude, other.OnConclude),
	}
}

func chainTransition(a, b func(context.Context, *TransitionEvent)) func(context.Context, *TransitionEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *TransitionEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainConclusion(a, b func(context.Context, *ConclusionEvent)) func(context.Context, *ConclusionEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *ConclusionEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
