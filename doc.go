/*
Package serology is a deterministic decision-graph engine that walks a binary
diagnostic algorithm (by default, hepatitis-B serology interpretation) one
answer at a time, with full undo.

It separates the immutable graph (questions whose positive and negative
branches either continue to another question or conclude with a diagnosis)
from the traversal Session (history, current question, pending answer,
reached conclusion). Every operation is a pure transition: it takes a session
and returns the next one.

# Key Features

  - Deterministic: the same session and operation always produce the same result.
  - Undo: Retreat walks back through history, including out of a conclusion.
  - Validated graphs: completeness, reachability and loop-freedom are checked at load time.
  - Hexagonal: the core knows nothing about terminals, HTTP or MCP.

# Usage

	eng, err := serology.New("") // built-in HBV algorithm
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	s := eng.Start(ctx, "")

	s, _ = eng.Select(ctx, s, domain.Negative) // HBsAg negative
	s, _ = eng.Advance(ctx, s)
	s, _ = eng.Select(ctx, s, domain.Negative) // IgM anti-HBc negative
	s, _ = eng.Advance(ctx, s)
	s, _ = eng.Select(ctx, s, domain.Negative) // IgG anti-HBc negative
	s, _ = eng.Advance(ctx, s)

	view, _ := eng.View(s)
	fmt.Println(view.Text) // Vaccinated for HBV

For a single owned session with atomic updates, wrap the engine in a
session.Manager.
*/
package serology
