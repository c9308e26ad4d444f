package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/serology/pkg/domain"
	"github.com/aretw0/serology/pkg/session"
)

// Runner handles the interactive loop over a session.Manager using the provided IO.
// It uses an IOHandler strategy to abstract the interaction mode (Text vs JSON).
type Runner struct {
	// Handler is the strategy for IO. If nil, a TextHandler on Stdin/Stdout is used.
	Handler IOHandler

	// Logger is used for internal debug logging.
	Logger *slog.Logger

	// Headless stops the loop as soon as a conclusion is shown.
	Headless bool
}

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithHeadless sets the runner to headless mode.
func WithHeadless(headless bool) Option {
	return func(r *Runner) {
		r.Headless = headless
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(nil, nil)
	}
	return r
}

// Run renders the current view, reads a command and applies it, until the
// input ends, a quit command arrives or (headless) a conclusion is reached.
// End of input is a normal exit and returns nil.
func (r *Runner) Run(ctx context.Context, m *session.Manager) error {
	render := true
	for {
		view, err := m.View()
		if err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if render {
			if err := r.Handler.Output(ctx, view); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
		}
		if r.Headless && view.IsConclusion() {
			return nil
		}

		cmd, err := r.Handler.Input(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				r.Logger.Debug("runner input cancelled", "err", ctx.Err())
				return ctx.Err()
			}
			return fmt.Errorf("input error: %w", err)
		}
		if cmd.Op == OpQuit {
			return nil
		}

		render, err = r.apply(ctx, m, cmd)
		if err != nil {
			return err
		}
	}
}

// apply dispatches one command. It reports whether the view should be redrawn.
// Rejected operations (strict mode) are shown to the user and do not stop the loop.
func (r *Runner) apply(ctx context.Context, m *session.Manager, cmd Command) (bool, error) {
	var err error
	switch cmd.Op {
	case OpSelect:
		_, err = m.Select(ctx, cmd.Selection)
	case OpAdvance:
		_, err = m.Advance(ctx)
	case OpRetreat:
		_, err = m.Retreat(ctx)
	case OpReset:
		_, err = m.Reset(ctx)
	case OpView:
		return true, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Op)
	}

	r.Logger.Debug("command applied", "op", cmd.Op, "selection", cmd.Selection.String(), "err", err)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrInvalidOperation) || errors.Is(err, domain.ErrInvalidSelection) {
		return false, r.Handler.SystemOutput(ctx, err.Error())
	}
	return false, err
}
