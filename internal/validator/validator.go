package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/serology/pkg/domain"
)

// Problem is one defect found in a graph.
type Problem struct {
	NodeID  string
	Message string
}

func (p Problem) String() string {
	if p.NodeID == "" {
		return p.Message
	}
	return fmt.Sprintf("%s: %s", p.NodeID, p.Message)
}

// Error aggregates every problem found by ValidateGraph.
type Error struct {
	Problems []Problem
}

func (e *Error) Error() string {
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = p.String()
	}
	return fmt.Sprintf("found %d errors:\n- %s", len(e.Problems), strings.Join(lines, "\n- "))
}

// Report summarises a graph that passed validation.
type Report struct {
	// Reachable lists node ids in breadth-first order from the root.
	Reachable []string
	// Conclusions lists distinct diagnosis texts in discovery order.
	Conclusions []string
	// MaxDepth is the longest number of answers any walk can take.
	MaxDepth int
}

// ValidateGraph checks that the graph is a complete, finite DAG rooted at its root:
// the root exists, every node defines both branches, every referenced node exists,
// every node is reachable, and no walk can loop.
func ValidateGraph(g *domain.Graph) (*Report, error) {
	if g == nil {
		return nil, &Error{Problems: []Problem{{Message: "graph is nil"}}}
	}

	var problems []Problem
	add := func(id, format string, args ...any) {
		problems = append(problems, Problem{NodeID: id, Message: fmt.Sprintf(format, args...)})
	}

	if g.RootID() == "" {
		add("", "root node is not set")
	} else if _, err := g.NodeFor(g.RootID()); err != nil {
		add("", "root node '%s' not found", g.RootID())
	}

	// Structural checks on every declared node.
	for _, n := range g.Nodes() {
		if strings.TrimSpace(n.Label) == "" {
			add(n.ID, "missing label")
		}
		for _, sel := range domain.Selections {
			o, _ := n.Branch(sel)
			if !o.IsDefined() {
				add(n.ID, "missing %s branch", sel)
				continue
			}
			if o.Kind == domain.OutcomeContinue {
				if _, err := g.NodeFor(o.Next); err != nil {
					add(n.ID, "%s branch points to missing node '%s'", sel, o.Next)
				}
				if o.Next == n.ID {
					add(n.ID, "%s branch points to itself", sel)
				}
			}
		}
	}
	if len(problems) > 0 {
		return nil, &Error{Problems: problems}
	}

	// Crawler: breadth-first from the root.
	report := &Report{}
	visited := make(map[string]bool)
	seenConclusion := make(map[string]bool)
	queue := []string{g.RootID()}
	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]
		if visited[currentID] {
			continue
		}
		visited[currentID] = true
		report.Reachable = append(report.Reachable, currentID)

		node, _ := g.NodeFor(currentID)
		for _, sel := range domain.Selections {
			o, _ := node.Branch(sel)
			switch o.Kind {
			case domain.OutcomeContinue:
				if !visited[o.Next] {
					queue = append(queue, o.Next)
				}
			case domain.OutcomeConclude:
				if !seenConclusion[o.Result] {
					seenConclusion[o.Result] = true
					report.Conclusions = append(report.Conclusions, o.Result)
				}
			}
		}
	}

	for _, n := range g.Nodes() {
		if !visited[n.ID] {
			add(n.ID, "unreachable from root '%s'", g.RootID())
		}
	}

	depth, cycle := longestPath(g, g.RootID())
	if cycle != nil {
		add(cycle[0], "cycle detected: %s", strings.Join(cycle, " -> "))
	}

	if len(problems) > 0 {
		return nil, &Error{Problems: problems}
	}
	report.MaxDepth = depth
	return report, nil
}

const (
	unvisited = iota
	inProgress
	done
)

// longestPath returns the maximum number of answers from id to any conclusion.
// If a cycle is reachable it returns the offending path instead.
func longestPath(g *domain.Graph, rootID string) (int, []string) {
	state := make(map[string]int)
	memo := make(map[string]int)
	var stack []string
	var cycle []string

	var visit func(id string) int
	visit = func(id string) int {
		switch state[id] {
		case done:
			return memo[id]
		case inProgress:
			for i, s := range stack {
				if s == id {
					cycle = append(append([]string{}, stack[i:]...), id)
					break
				}
			}
			return 0
		}

		state[id] = inProgress
		stack = append(stack, id)

		node, _ := g.NodeFor(id)
		best := 0
		for _, sel := range domain.Selections {
			o, _ := node.Branch(sel)
			d := 1
			if o.Kind == domain.OutcomeContinue {
				d = 1 + visit(o.Next)
			}
			if cycle != nil {
				break
			}
			if d > best {
				best = d
			}
		}

		stack = stack[:len(stack)-1]
		state[id] = done
		memo[id] = best
		return best
	}

	depth := visit(rootID)
	if cycle != nil {
		return 0, cycle
	}
	return depth, nil
}
