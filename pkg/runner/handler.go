package runner

import (
	"context"

	"github.com/aretw0/serology/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (console) and JSON (structured) modes.
type IOHandler interface {
	// Output presents the current view.
	Output(ctx context.Context, view domain.View) error

	// Input blocks until the next command is available.
	// It returns io.EOF when the stream ends.
	Input(ctx context.Context) (Command, error)

	// SystemOutput presents a meta-message (status, rejected operation).
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer transforms markdown before it is written.
// This allows terminal rendering (markdown to ANSI) without coupling the runner to it.
type ContentRenderer func(string) (string, error)
