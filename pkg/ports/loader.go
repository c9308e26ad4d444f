package ports

import "github.com/aretw0/serology/pkg/domain"

// GraphLoader defines how the engine obtains its decision graph.
// The graph is loaded once at construction; loaders are not consulted afterwards.
type GraphLoader interface {
	LoadGraph() (*domain.Graph, error)
}

// GraphLoaderFunc adapts a function to GraphLoader.
type GraphLoaderFunc func() (*domain.Graph, error)

// LoadGraph calls f.
func (f GraphLoaderFunc) LoadGraph() (*domain.Graph, error) {
	return f()
}
