package domain

// ViewKind distinguishes the two screens a presentation layer can show.
type ViewKind string

const (
	ViewQuestion   ViewKind = "question"
	ViewConclusion ViewKind = "conclusion"
)

// Finding is one answered question, resolved to its label for reporting.
type Finding struct {
	NodeID    string    `json:"node_id"`
	Label     string    `json:"label"`
	Selection Selection `json:"selection"`
}

// View is the side-effect-free projection of a Session.
//
// For ViewQuestion the question fields are set; for ViewConclusion Text and
// Findings are. CanGoBack and Direction are set for both.
type View struct {
	Kind ViewKind `json:"kind"`

	NodeID      string    `json:"node_id,omitempty"`
	Label       string    `json:"label,omitempty"`
	HasPositive bool      `json:"has_positive,omitempty"`
	HasNegative bool      `json:"has_negative,omitempty"`
	Selection   Selection `json:"selection,omitempty"`

	Text     string    `json:"text,omitempty"`
	Findings []Finding `json:"findings,omitempty"`

	CanGoBack bool      `json:"can_go_back"`
	Direction Direction `json:"direction"`
}

// IsConclusion reports whether the view shows a reached diagnosis.
func (v View) IsConclusion() bool {
	return v.Kind == ViewConclusion
}

// CanAdvance reports whether the "next" action should be enabled.
func (v View) CanAdvance() bool {
	return v.Kind == ViewQuestion && v.Selection.IsValid()
}
