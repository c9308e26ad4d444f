package yaml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/serology/pkg/domain"
	"github.com/aretw0/serology/pkg/dsl"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.GraphLoader over a YAML document.
type Loader struct {
	path string
	data []byte
}

// New creates a loader that reads the file at path.
func New(path string) *Loader {
	return &Loader{path: path}
}

// FromBytes creates a loader over an in-memory document.
func FromBytes(data []byte) *Loader {
	return &Loader{data: data}
}

// LoadGraph reads, decodes and validates the document.
func (l *Loader) LoadGraph() (*domain.Graph, error) {
	data := l.data
	if data == nil {
		raw, err := os.ReadFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read graph file: %w", err)
		}
		data = raw
	}

	g, err := Parse(data)
	if err != nil && l.path != "" {
		return nil, fmt.Errorf("%s: %w", filepath.Base(l.path), err)
	}
	return g, err
}

// Parse decodes a YAML algorithm document into a validated graph.
func Parse(data []byte) (*domain.Graph, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if len(doc.Nodes) == 0 {
		return nil, errors.New("document declares no nodes")
	}

	b := dsl.New(doc.Name)
	if doc.Root != "" {
		b.Root(doc.Root)
	}

	for i, raw := range doc.Nodes {
		meta, err := decodeNode(raw)
		if err != nil {
			return nil, fmt.Errorf("node #%d: %w", i+1, err)
		}
		if meta.ID == "" {
			return nil, fmt.Errorf("node #%d: missing id", i+1)
		}

		nb := b.Add(meta.ID).Question(meta.Label)
		branches := [...]*OutcomeMetadata{meta.Positive, meta.Negative}
		for i, sel := range domain.Selections {
			o, err := toOutcome(branches[i])
			if err != nil {
				return nil, fmt.Errorf("node %s %s branch: %w", meta.ID, sel, err)
			}
			nb.On(sel, o)
		}
	}

	return b.Build()
}

func decodeNode(raw map[string]any) (NodeMetadata, error) {
	var meta NodeMetadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &meta,
	})
	if err != nil {
		return meta, err
	}
	if err := dec.Decode(raw); err != nil {
		return meta, fmt.Errorf("failed to decode node: %w", err)
	}
	return meta, nil
}

// toOutcome converts branch metadata. A nil entry stays undefined so the
// validator reports it alongside any other problem.
func toOutcome(om *OutcomeMetadata) (domain.Outcome, error) {
	if om == nil {
		return domain.Outcome{}, nil
	}
	next := strings.TrimSpace(om.Next)
	result := strings.TrimSpace(om.Result)
	switch {
	case next != "" && result != "":
		return domain.Outcome{}, fmt.Errorf("sets both next (%q) and result (%q)", next, result)
	case next != "":
		return domain.Continue(next), nil
	case result != "":
		return domain.Conclude(result), nil
	}
	return domain.Outcome{}, nil
}
