package serology_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/serology"
	"github.com/aretw0/serology/pkg/domain"
	"github.com/aretw0/serology/pkg/dsl"
	"github.com/aretw0/serology/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsToHBV(t *testing.T) {
	eng, err := serology.New("")
	require.NoError(t, err)
	assert.Equal(t, "Hepatitis B Serology Interpretator", eng.Name)
	assert.Equal(t, "step1", eng.Graph().RootID())
	assert.Equal(t, 4, eng.Report().MaxDepth)
}

func TestNew_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
root: q
nodes:
  - id: q
    label: Question
    positive: {result: Confirmed}
    negative: {result: Excluded}
`), 0644))

	eng, err := serology.New(path)
	require.NoError(t, err)
	assert.Equal(t, "algo.yaml", eng.Name)

	_, err = serology.New(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to load graph")
}

func TestNew_WithGraphAndLoader(t *testing.T) {
	g := dsl.New("inline").
		Add("q").Question("Q").Positive(dsl.Result("yes")).Negative(dsl.Result("no")).
		MustBuild()

	eng, err := serology.New("", serology.WithGraph(g))
	require.NoError(t, err)
	assert.Same(t, g, eng.Graph())

	called := false
	eng, err = serology.New("", serology.WithLoader(ports.GraphLoaderFunc(func() (*domain.Graph, error) {
		called = true
		return g, nil
	})))
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "inline", eng.Name)
}

func TestNew_RejectsInvalidGraph(t *testing.T) {
	g, err := domain.NewGraph("loop", "a", domain.QuestionNode{
		ID: "a", Label: "A", OnPositive: domain.Continue("a"), OnNegative: domain.Conclude("x"),
	})
	require.NoError(t, err)

	_, err = serology.New("", serology.WithGraph(g))
	assert.ErrorContains(t, err, "invalid graph")
}

func TestEngine_Start_GeneratesID(t *testing.T) {
	eng, err := serology.New("")
	require.NoError(t, err)

	a := eng.Start(context.Background(), "")
	b := eng.Start(context.Background(), "")
	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "fixed", eng.Start(context.Background(), "fixed").ID)
}

func TestEngine_Strict(t *testing.T) {
	eng, err := serology.New("", serology.WithStrict(true))
	require.NoError(t, err)

	_, err = eng.Advance(context.Background(), eng.Start(context.Background(), "s"))
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(serology.Version))
}
