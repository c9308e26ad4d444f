package dsl

import "github.com/aretw0/serology/pkg/domain"

// NodeBuilder provides a fluent API for configuring a question node.
type NodeBuilder struct {
	node    domain.QuestionNode
	builder *Builder
}

// Next is the outcome that continues to another question.
func Next(id string) domain.Outcome {
	return domain.Continue(id)
}

// Result is the outcome that concludes with a diagnosis.
func Result(text string) domain.Outcome {
	return domain.Conclude(text)
}

// Question sets the label asked at this node.
func (n *NodeBuilder) Question(label string) *NodeBuilder {
	n.node.Label = label
	return n
}

// Positive sets the outcome of a positive answer.
func (n *NodeBuilder) Positive(o domain.Outcome) *NodeBuilder {
	n.node.OnPositive = o
	return n
}

// Negative sets the outcome of a negative answer.
func (n *NodeBuilder) Negative(o domain.Outcome) *NodeBuilder {
	n.node.OnNegative = o
	return n
}

// On sets the outcome for either selection.
func (n *NodeBuilder) On(sel domain.Selection, o domain.Outcome) *NodeBuilder {
	switch sel {
	case domain.Positive:
		n.node.OnPositive = o
	case domain.Negative:
		n.node.OnNegative = o
	}
	return n
}

// Add starts the next node, allowing a single chained definition.
func (n *NodeBuilder) Add(id string) *NodeBuilder {
	return n.builder.Add(id)
}

// Build finishes the chain. See Builder.Build.
func (n *NodeBuilder) Build() (*domain.Graph, error) {
	return n.builder.Build()
}

// MustBuild finishes the chain. See Builder.MustBuild.
func (n *NodeBuilder) MustBuild() *domain.Graph {
	return n.builder.MustBuild()
}
