// Package algorithms ships the built-in decision graphs.
package algorithms

import (
	_ "embed"

	"github.com/aretw0/serology/pkg/adapters/yaml"
	"github.com/aretw0/serology/pkg/domain"
	"github.com/aretw0/serology/pkg/ports"
)

//go:embed hbv.yaml
var hbvSource []byte

// HBVSource returns the raw YAML of the hepatitis-B serology algorithm.
func HBVSource() []byte {
	out := make([]byte, len(hbvSource))
	copy(out, hbvSource)
	return out
}

// HBV returns the six-step hepatitis-B serology algorithm.
func HBV() (*domain.Graph, error) {
	return yaml.Parse(hbvSource)
}

// HBVLoader is the default graph loader.
func HBVLoader() ports.GraphLoader {
	return yaml.FromBytes(hbvSource)
}
