package runner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/serology/pkg/domain"
)

// Op names one runner command.
type Op string

const (
	OpSelect  Op = "select"
	OpAdvance Op = "advance"
	OpRetreat Op = "retreat"
	OpReset   Op = "reset"
	OpView    Op = "view"
	OpQuit    Op = "quit"
)

// ErrUnknownCommand is returned by ParseCommand for unrecognised input.
var ErrUnknownCommand = errors.New("unknown command")

// Command is one parsed user instruction.
// Selection is only set for OpSelect.
type Command struct {
	Op        Op               `json:"op"`
	Selection domain.Selection `json:"selection,omitempty"`
}

// ParseCommand maps a console line to a Command. An empty line means advance.
func ParseCommand(line string) (Command, error) {
	word := strings.ToLower(strings.TrimSpace(line))
	switch word {
	case "", "next", "enter", "advance", "ok":
		return Command{Op: OpAdvance}, nil
	case "back", "b", "retreat", "undo":
		return Command{Op: OpRetreat}, nil
	case "reset", "r", "restart":
		return Command{Op: OpReset}, nil
	case "view", "v", "show":
		return Command{Op: OpView}, nil
	case "quit", "exit", "q":
		return Command{Op: OpQuit}, nil
	}

	sel, err := domain.ParseSelection(word)
	if err == nil {
		return Command{Op: OpSelect, Selection: sel}, nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
}

// Validate checks that the command is complete.
func (c Command) Validate() error {
	switch c.Op {
	case OpSelect:
		if !c.Selection.IsValid() {
			return fmt.Errorf("%w: select needs positive or negative", domain.ErrInvalidSelection)
		}
	case OpAdvance, OpRetreat, OpReset, OpView, OpQuit:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, c.Op)
	}
	return nil
}
