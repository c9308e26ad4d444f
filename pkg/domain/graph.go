package domain

import (
	"encoding/json"
	"fmt"
)

// Graph is the immutable decision graph: question nodes keyed by id plus the root.
// Once built it is only read; the engine never mutates it.
type Graph struct {
	name   string
	rootID string
	nodes  map[string]QuestionNode
	order  []string
}

// NewGraph assembles a graph. It rejects empty or duplicate ids but does not check
// reachability or completeness; that is the validator's job.
func NewGraph(name, rootID string, nodes ...QuestionNode) (*Graph, error) {
	g := &Graph{
		name:   name,
		rootID: rootID,
		nodes:  make(map[string]QuestionNode, len(nodes)),
		order:  make([]string, 0, len(nodes)),
	}
	for _, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node missing ID")
		}
		if _, dup := g.nodes[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node ID: %s", n.ID)
		}
		g.nodes[n.ID] = n
		g.order = append(g.order, n.ID)
	}
	return g, nil
}

// Name is a descriptive label for the algorithm (used in logs and headers).
func (g *Graph) Name() string {
	return g.name
}

// RootID returns the id of the first question.
func (g *Graph) RootID() string {
	return g.rootID
}

// Len returns the number of question nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// NodeFor returns the node with the given id, or *UnknownNodeError.
func (g *Graph) NodeFor(id string) (QuestionNode, error) {
	n, ok := g.nodes[id]
	if !ok {
		return QuestionNode{}, &UnknownNodeError{NodeID: id}
	}
	return n, nil
}

// Nodes returns every node in declaration order.
func (g *Graph) Nodes() []QuestionNode {
	out := make([]QuestionNode, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

type graphJSON struct {
	Name  string         `json:"name,omitempty"`
	Root  string         `json:"root"`
	Nodes []QuestionNode `json:"nodes"`
}

// MarshalJSON exposes the graph for introspection (e.g. GET /graph).
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(graphJSON{Name: g.name, Root: g.rootID, Nodes: g.Nodes()})
}
