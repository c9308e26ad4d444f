package domain

import (
	"fmt"
	"strings"
)

// Selection is the answer given to a question node.
// The zero value means "nothing selected yet".
type Selection uint8

const (
	NoSelection Selection = iota
	Positive
	Negative
)

// Selections lists the answers every question node must branch on.
var Selections = [...]Selection{Positive, Negative}

func (s Selection) String() string {
	switch s {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return ""
	}
}

// IsValid reports whether s is one of the two branch selections.
func (s Selection) IsValid() bool {
	return s == Positive || s == Negative
}

// Opposite returns the other branch. NoSelection maps to itself.
func (s Selection) Opposite() Selection {
	switch s {
	case Positive:
		return Negative
	case Negative:
		return Positive
	default:
		return NoSelection
	}
}

// ParseSelection accepts the usual spellings of a binary answer, case-insensitively.
func ParseSelection(raw string) (Selection, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "positive", "pos", "p", "+", "yes", "y", "true":
		return Positive, nil
	case "negative", "neg", "n", "-", "no", "false":
		return Negative, nil
	}
	return NoSelection, fmt.Errorf("%w: %q (expected positive or negative)", ErrInvalidSelection, raw)
}

// MarshalText encodes the selection as "positive", "negative" or "".
func (s Selection) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a selection. An empty string decodes to NoSelection.
func (s *Selection) UnmarshalText(text []byte) error {
	if len(strings.TrimSpace(string(text))) == 0 {
		*s = NoSelection
		return nil
	}
	parsed, err := ParseSelection(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
