package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/aretw0/serology"
	"github.com/aretw0/serology/internal/config"
	"github.com/aretw0/serology/internal/presentation/card"
	"github.com/aretw0/serology/internal/presentation/tui"
	"github.com/aretw0/serology/pkg/runner"
	"github.com/aretw0/serology/pkg/session"
)

// RunOptions selects the IO mode of the run command.
type RunOptions struct {
	JSON     bool
	Headless bool

	Stdin  io.Reader
	Stdout io.Writer
}

// RunSession walks one session over line-oriented IO: text for people,
// NDJSON for scripts.
func RunSession(ctx context.Context, cfg *config.Config, opts RunOptions) error {
	stdin, stdout := opts.Stdin, opts.Stdout
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}

	// Without a terminal on stdin there is nobody to prompt.
	interactive := !opts.JSON && !opts.Headless && stdin == os.Stdin && isTerminal(os.Stdin)
	headless := opts.Headless || (!opts.JSON && !interactive && stdin == os.Stdin)

	logger := createLogger(cfg, !opts.JSON && !headless)
	engine, err := createEngine(cfg, logger)
	if err != nil {
		return err
	}

	if interactive {
		tui.PrintBanner(stdout, engine.Name+" · v"+strings.TrimSpace(serology.Version))
	}

	sigCtx := NewSignalContext(ctx)
	defer sigCtx.Cancel()

	m := session.NewManager(sigCtx, engine, session.WithLogger(logger))

	r := runner.NewRunner(
		runner.WithLogger(logger),
		runner.WithHeadless(headless),
		runner.WithInputHandler(newHandler(cfg, opts.JSON, interactive, engine.Name, stdin, stdout)),
	)

	runErr := r.Run(sigCtx, m)
	if interactive && sigCtx.Signal() != nil {
		printSystemMessage(stdout, "Interrupted.")
	}
	return handleExecutionError(runErr)
}

func newHandler(cfg *config.Config, jsonMode, interactive bool, title string, stdin io.Reader, stdout io.Writer) runner.IOHandler {
	if jsonMode {
		return runner.NewJSONHandler(stdin, stdout, runner.WithJSONMaxInputSize(cfg.Input.MaxSize))
	}

	opts := []runner.TextHandlerOption{
		runner.WithTextHandlerTitle(title),
		runner.WithMaxInputSize(cfg.Input.MaxSize),
	}
	if interactive {
		opts = append(opts, runner.WithTextHandlerRenderer(tui.NewRenderer()))
	}
	return runner.NewTextHandler(stdin, stdout, opts...)
}

// RunTUI opens the full-screen card interface.
func RunTUI(ctx context.Context, cfg *config.Config) error {
	logger := createLogger(cfg, true)
	engine, err := createEngine(cfg, logger)
	if err != nil {
		return err
	}
	m := session.NewManager(ctx, engine, session.WithLogger(logger))
	return card.Run(m, engine.Name)
}
