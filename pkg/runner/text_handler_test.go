package runner

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/serology/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextHandler_OutputQuestion(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), out, WithProfile(termenv.Ascii))

	err := handler.Output(context.Background(), domain.View{
		Kind:        domain.ViewQuestion,
		NodeID:      "step1",
		Label:       "HBsAg",
		HasPositive: true,
		HasNegative: true,
		Selection:   domain.Negative,
		Direction:   domain.Backward,
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "← [step1] HBsAg?")
	assert.Contains(t, text, "[ ] positive")
	assert.Contains(t, text, "[x] negative")
	assert.Contains(t, text, "enter next")
	assert.NotContains(t, text, "b back")
}

func TestTextHandler_OutputConclusion(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), out,
		WithProfile(termenv.Ascii),
		WithTextHandlerTitle("HBV"),
		WithTextHandlerRenderer(func(s string) (string, error) {
			return "Rendered:\n" + s, nil
		}),
	)

	err := handler.Output(context.Background(), domain.View{
		Kind:      domain.ViewConclusion,
		Text:      "Vaccinated for HBV",
		CanGoBack: true,
		Findings: []domain.Finding{
			{NodeID: "step1", Label: "HBsAg", Selection: domain.Negative},
		},
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Rendered:")
	assert.Contains(t, text, "# HBV")
	assert.Contains(t, text, "## Vaccinated for HBV")
	assert.Contains(t, text, "| 1 | HBsAg | negative |")
}

func TestTextHandler_Input(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader("maybe\n\x1b+\n\nback"), out, WithProfile(termenv.Ascii))
	ctx := context.Background()

	cmd, err := handler.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, Command{Op: OpSelect, Selection: domain.Positive}, cmd)
	assert.Contains(t, out.String(), "unknown command")

	cmd, err = handler.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, OpAdvance, cmd.Op)

	cmd, err = handler.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, OpRetreat, cmd.Op)

	_, err = handler.Input(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestTextHandler_InputTooLarge(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader("positive\np\n"), out, WithMaxInputSize(3))

	cmd, err := handler.Input(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Positive, cmd.Selection)
	assert.Contains(t, out.String(), "exceeds maximum")
}

func TestTextHandler_InputCancelled(t *testing.T) {
	handler := NewTextHandler(strings.NewReader(""), io.Discard)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := handler.Input(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
