package dsl

import (
	"fmt"

	"github.com/aretw0/serology/internal/validator"
	"github.com/aretw0/serology/pkg/domain"
)

// Builder manages the graph construction.
type Builder struct {
	name   string
	rootID string
	nodes  map[string]*NodeBuilder
	order  []string
}

// New creates a new graph builder. The name is a descriptive label.
func New(name string) *Builder {
	return &Builder{
		name:  name,
		nodes: make(map[string]*NodeBuilder),
	}
}

// Root sets the id of the first question.
func (b *Builder) Root(id string) *Builder {
	b.rootID = id
	return b
}

// Add creates a new node in the graph.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node:    domain.QuestionNode{ID: id},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Build assembles and validates the graph.
func (b *Builder) Build() (*domain.Graph, error) {
	rootID := b.rootID
	if rootID == "" && len(b.order) > 0 {
		rootID = b.order[0]
	}

	nodes := make([]domain.QuestionNode, 0, len(b.order))
	for _, id := range b.order {
		nodes = append(nodes, b.nodes[id].node)
	}

	g, err := domain.NewGraph(b.name, rootID, nodes...)
	if err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}
	if _, err := validator.ValidateGraph(g); err != nil {
		return nil, fmt.Errorf("invalid graph %q: %w", b.name, err)
	}
	return g, nil
}

// MustBuild is like Build but panics on error. Intended for static definitions.
func (b *Builder) MustBuild() *domain.Graph {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}
