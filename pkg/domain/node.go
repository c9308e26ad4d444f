package domain

import (
	"encoding/json"
	"fmt"
)

// OutcomeKind tags which variant an Outcome holds.
type OutcomeKind uint8

const (
	// OutcomeUndefined marks a branch that was never set. A validated graph has none.
	OutcomeUndefined OutcomeKind = iota
	// OutcomeContinue advances to another question node.
	OutcomeContinue
	// OutcomeConclude ends the walk with a diagnosis.
	OutcomeConclude
)

// Outcome is where a branch of a question leads.
// Build it with Continue or Conclude; exactly one of Next and Result is meaningful.
type Outcome struct {
	Kind   OutcomeKind
	Next   string
	Result string
}

// Continue returns an outcome that moves to the node nextID.
func Continue(nextID string) Outcome {
	return Outcome{Kind: OutcomeContinue, Next: nextID}
}

// Conclude returns a terminal outcome carrying the diagnosis text.
func Conclude(result string) Outcome {
	return Outcome{Kind: OutcomeConclude, Result: result}
}

// IsTerminal reports whether the outcome ends the walk.
func (o Outcome) IsTerminal() bool {
	return o.Kind == OutcomeConclude
}

// IsDefined reports whether the outcome holds a usable variant.
func (o Outcome) IsDefined() bool {
	switch o.Kind {
	case OutcomeContinue:
		return o.Next != ""
	case OutcomeConclude:
		return o.Result != ""
	default:
		return false
	}
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeContinue:
		return "continue(" + o.Next + ")"
	case OutcomeConclude:
		return fmt.Sprintf("conclude(%q)", o.Result)
	default:
		return "undefined"
	}
}

type outcomeJSON struct {
	Next   string `json:"next,omitempty"`
	Result string `json:"result,omitempty"`
}

// MarshalJSON encodes the outcome as {"next": id} or {"result": text}.
func (o Outcome) MarshalJSON() ([]byte, error) {
	switch o.Kind {
	case OutcomeContinue:
		return json.Marshal(outcomeJSON{Next: o.Next})
	case OutcomeConclude:
		return json.Marshal(outcomeJSON{Result: o.Result})
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes {"next": id} or {"result": text}. Setting both is an error.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Outcome{}
		return nil
	}
	var raw outcomeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Next != "" && raw.Result != "":
		return fmt.Errorf("outcome sets both next (%q) and result (%q)", raw.Next, raw.Result)
	case raw.Next != "":
		*o = Continue(raw.Next)
	case raw.Result != "":
		*o = Conclude(raw.Result)
	default:
		*o = Outcome{}
	}
	return nil
}

// QuestionNode is one diagnostic step: a label to ask and one outcome per answer.
type QuestionNode struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	OnPositive Outcome `json:"on_positive"`
	OnNegative Outcome `json:"on_negative"`
}

// Branch resolves the outcome for a selection.
// It returns false for NoSelection or any value outside the enum.
func (n QuestionNode) Branch(sel Selection) (Outcome, bool) {
	switch sel {
	case Positive:
		return n.OnPositive, true
	case Negative:
		return n.OnNegative, true
	default:
		return Outcome{}, false
	}
}

// Has reports whether the branch for sel is defined.
func (n QuestionNode) Has(sel Selection) bool {
	o, ok := n.Branch(sel)
	return ok && o.IsDefined()
}
