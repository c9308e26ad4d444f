/*
Package runner implements the interactive loop that drives a session.Manager
from a line-oriented stream.

It reads commands through a pluggable IOHandler, applies them to the owned
session and renders the resulting view after every step.

# Key Components

  - Runner: the loop (render, read command, apply).
  - TextHandler: human console with colored markers and a markdown report.
  - JSONHandler: one JSON view per line for scripts and other processes.
  - ParseCommand: the shared command vocabulary (p, n, next, back, reset...).

# Usage

	m := session.NewManager(ctx, engine)
	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)
	if err := r.Run(ctx, m); err != nil {
		log.Fatal(err)
	}
*/
package runner
