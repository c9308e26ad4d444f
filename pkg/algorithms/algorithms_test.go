package algorithms_test

import (
	"testing"

	"github.com/aretw0/serology/pkg/algorithms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHBV(t *testing.T) {
	g, err := algorithms.HBV()
	require.NoError(t, err)
	assert.Equal(t, "Hepatitis B Serology Interpretator", g.Name())
	assert.Equal(t, "step1", g.RootID())
	assert.Equal(t, 6, g.Len())

	fromLoader, err := algorithms.HBVLoader().LoadGraph()
	require.NoError(t, err)
	assert.Equal(t, g.Nodes(), fromLoader.Nodes())
}

func TestHBVSource_ReturnsCopy(t *testing.T) {
	src := algorithms.HBVSource()
	require.NotEmpty(t, src)
	src[0] = '#'
	assert.NotEqual(t, src[0], algorithms.HBVSource()[0])
}
