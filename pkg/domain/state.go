package domain

// Direction records which way the last navigation moved.
// It is informational only (presentation layers animate on it).
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// HistoryEntry records one committed answer.
type HistoryEntry struct {
	NodeID    string    `json:"node_id"`
	Selection Selection `json:"selection"`
}

// Session is the runtime snapshot of one walk through the graph.
//
// Engine operations never mutate a Session in place; each returns a fresh value,
// so a holder swapping its pointer sees every transition as one atomic update.
type Session struct {
	// ID correlates log lines and events; it has no navigational meaning.
	ID string `json:"id"`

	// History holds committed answers, oldest first. Only Advance appends
	// and only Retreat pops.
	History []HistoryEntry `json:"history"`

	// CurrentNodeID is the question being asked. While Concluded it still names
	// the question that produced the conclusion.
	CurrentNodeID string `json:"current_node_id"`

	// Pending is the uncommitted answer for the current question.
	Pending Selection `json:"pending_selection,omitempty"`

	Concluded      bool   `json:"concluded"`
	ConclusionText string `json:"conclusion_text,omitempty"`

	Direction Direction `json:"direction"`
}

// NewSession creates a clean session positioned at the root question.
func NewSession(id, rootID string) *Session {
	return &Session{
		ID:            id,
		History:       []HistoryEntry{},
		CurrentNodeID: rootID,
		Direction:     Forward,
	}
}

// Clone returns a deep copy safe for mutation.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	next := *s
	next.History = make([]HistoryEntry, len(s.History))
	copy(next.History, s.History)
	return &next
}

// CanGoBack reports whether Retreat would change navigational state.
func (s *Session) CanGoBack() bool {
	return s.Concluded || len(s.History) > 0
}

// Depth is the number of committed answers.
func (s *Session) Depth() int {
	return len(s.History)
}

// Last returns the most recent history entry.
func (s *Session) Last() (HistoryEntry, bool) {
	if len(s.History) == 0 {
		return HistoryEntry{}, false
	}
	return s.History[len(s.History)-1], true
}
