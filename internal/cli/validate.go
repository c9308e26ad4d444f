package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/serology/internal/validator"
	"github.com/aretw0/serology/pkg/adapters/yaml"
	"github.com/aretw0/serology/pkg/algorithms"
	"github.com/aretw0/serology/pkg/domain"
)

// Validate checks the algorithm at path (or the built-in one when path is
// empty) and writes a short report. A defective graph is returned as error.
func Validate(w io.Writer, path string) error {
	var (
		g   *domain.Graph
		err error
	)
	if path == "" {
		g, err = algorithms.HBV()
	} else {
		g, err = yaml.New(path).LoadGraph()
	}
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}

	report, err := validator.ValidateGraph(g)
	if err != nil {
		return err
	}

	name := g.Name()
	if name == "" {
		name = path
	}
	fmt.Fprintf(w, "Graph %q is valid! ✅\n", name)
	fmt.Fprintf(w, "  questions:   %d\n", len(report.Reachable))
	fmt.Fprintf(w, "  conclusions: %d\n", len(report.Conclusions))
	fmt.Fprintf(w, "  max depth:   %d\n", report.MaxDepth)
	for _, c := range report.Conclusions {
		fmt.Fprintf(w, "  - %s\n", strings.TrimSpace(c))
	}
	return nil
}
