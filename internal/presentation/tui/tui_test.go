package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "Hepatitis B")
	assert.Contains(t, buf.String(), "|___/")
	assert.Contains(t, buf.String(), "Hepatitis B")
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer()
	out, err := render("## Vaccinated for HBV\n\n| Marker | Result |\n|---|---|\n| HBsAg | negative |\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Vaccinated for HBV")
	assert.Contains(t, out, "HBsAg")
}
