package runner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/serology"
	"github.com/aretw0/serology/pkg/domain"
	"github.com/aretw0/serology/pkg/runner"
	"github.com/aretw0/serology/pkg/session"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, opts ...serology.Option) *session.Manager {
	t.Helper()
	eng, err := serology.New("", opts...)
	require.NoError(t, err)
	return session.NewManager(context.Background(), eng)
}

func TestRunner_TextWalkToConclusion(t *testing.T) {
	m := newManager(t)
	out := &bytes.Buffer{}
	input := "n\n\nn\nnext\n-\n\nq\n"

	r := runner.NewRunner(runner.WithInputHandler(
		runner.NewTextHandler(strings.NewReader(input), out, runner.WithProfile(termenv.Ascii)),
	))
	require.NoError(t, r.Run(context.Background(), m))

	view, err := m.View()
	require.NoError(t, err)
	assert.Equal(t, "Vaccinated for HBV", view.Text)
	assert.Contains(t, out.String(), "## Vaccinated for HBV")
	assert.Contains(t, out.String(), "[x] negative")
}

func TestRunner_EOFIsGraceful(t *testing.T) {
	m := newManager(t)
	r := runner.NewRunner(runner.WithInputHandler(
		runner.NewTextHandler(strings.NewReader("p\n"), &bytes.Buffer{}),
	))
	require.NoError(t, r.Run(context.Background(), m))

	view, _ := m.View()
	assert.Equal(t, domain.Positive, view.Selection)
}

func TestRunner_BackAndReset(t *testing.T) {
	m := newManager(t)
	input := "p\n\np\n\nb\nb\nr\n"
	r := runner.NewRunner(runner.WithInputHandler(
		runner.NewTextHandler(strings.NewReader(input), &bytes.Buffer{}),
	))
	require.NoError(t, r.Run(context.Background(), m))

	s := m.Snapshot()
	assert.Equal(t, "step1", s.CurrentNodeID)
	assert.Empty(t, s.History)
	assert.Equal(t, domain.Forward, s.Direction)
}

func TestRunner_HeadlessJSON(t *testing.T) {
	m := newManager(t)
	out := &bytes.Buffer{}
	input := strings.Join([]string{
		`{"op":"select","selection":"positive"}`,
		`{"op":"advance"}`,
		`"n"`,
		`""`,
		`{"op":"reset"}`,
	}, "\n")

	r := runner.NewRunner(
		runner.WithHeadless(true),
		runner.WithInputHandler(runner.NewJSONHandler(strings.NewReader(input), out)),
	)
	require.NoError(t, r.Run(context.Background(), m))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)

	var last domain.View
	require.NoError(t, json.Unmarshal([]byte(lines[4]), &last))
	assert.Equal(t, domain.ViewConclusion, last.Kind)
	assert.Equal(t, "Chronic HBV carrier", last.Text)
	assert.Len(t, last.Findings, 2)

	// Headless stops at the conclusion; the reset line is never read.
	assert.True(t, m.Snapshot().Concluded)
}

func TestRunner_StrictRejectionIsReported(t *testing.T) {
	m := newManager(t, serology.WithStrict(true))
	out := &bytes.Buffer{}
	r := runner.NewRunner(runner.WithInputHandler(
		runner.NewTextHandler(strings.NewReader("next\nback\n"), out, runner.WithProfile(termenv.Ascii)),
	))
	require.NoError(t, r.Run(context.Background(), m))

	assert.Contains(t, out.String(), "[System] advance: invalid operation advance: no selection pending")
	assert.Contains(t, out.String(), "[System] retreat: invalid operation retreat: already at root")
}

func TestRunner_ContextCancelled(t *testing.T) {
	m := newManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := runner.NewRunner(runner.WithInputHandler(
		runner.NewTextHandler(strings.NewReader(""), &bytes.Buffer{}),
	))
	assert.ErrorIs(t, r.Run(ctx, m), context.Canceled)
}
