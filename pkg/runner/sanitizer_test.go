package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/serology/pkg/domain"
)

func TestSanitizeInput_SizeLimit(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"Under limit", DefaultMaxInputSize - 1, false},
		{"Exact limit", DefaultMaxInputSize, false},
		{"Over limit", DefaultMaxInputSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeInput(strings.Repeat("p", tt.size))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInputTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// Answers pasted from lab reports or terminals often carry escape sequences;
// once stripped they must still parse as the intended answer.
func TestSanitizeInput_SelectionWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		clean string
		want  domain.Selection
	}{
		{"Plain", "positive", "positive", domain.Positive},
		{"Trailing ESC", "pos\x1b", "pos", domain.Positive},
		{"Colored answer", "\x1b[1mneg", "[1mneg", domain.NoSelection},
		{"Embedded NUL", "nega\x00tive", "negative", domain.Negative},
		{"Bell after sign", "+\x07", "+", domain.Positive},
		{"CRLF line ending", "n\r\n", "n\r\n", domain.Negative},
		{"Tab padded", "\tyes\t", "\tyes\t", domain.Positive},
		{"Delete char", "no\x7f", "no", domain.Negative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.clean, got)

			sel, err := domain.ParseSelection(got)
			if tt.want == domain.NoSelection {
				assert.ErrorIs(t, err, domain.ErrInvalidSelection)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, sel)
		})
	}
}

func TestSanitizeInput_CommandsSurviveStripping(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"back\x1b", Command{Op: OpRetreat}},
		{"\x00reset", Command{Op: OpReset}},
		{"\x07", Command{Op: OpAdvance}},
		{"p\x1b\n", Command{Op: OpSelect, Selection: domain.Positive}},
	}

	for _, tt := range tests {
		clean, err := SanitizeInput(tt.input)
		require.NoError(t, err, "%q", tt.input)
		cmd, err := ParseCommand(clean)
		require.NoError(t, err, "%q", tt.input)
		assert.Equal(t, tt.want, cmd, "%q", tt.input)
	}
}

func TestSanitizeInput_InvalidUTF8(t *testing.T) {
	for _, input := range []string{"\xff", "pos\xfeitive", "n\xc3"} {
		_, err := SanitizeInput(input)
		assert.ErrorIs(t, err, ErrInvalidUTF8, "%q", input)
	}
}

func TestSanitizeInput_UnicodeKept(t *testing.T) {
	got, err := SanitizeInput("anti-HBs ≥ 10 mIU/mL")
	require.NoError(t, err)
	assert.Equal(t, "anti-HBs ≥ 10 mIU/mL", got)
}

func TestSanitizeInput_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "8")

	_, err := SanitizeInput("negative!")
	assert.ErrorIs(t, err, ErrInputTooLarge)

	got, err := SanitizeInput("negative")
	require.NoError(t, err)
	assert.Equal(t, "negative", got)

	t.Setenv(EnvMaxInputSize, "not-a-number")
	_, err = SanitizeInput(strings.Repeat("n", DefaultMaxInputSize))
	assert.NoError(t, err)
}

func TestSanitizeInputLimit_ExplicitWinsOverEnv(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "100")

	_, err := SanitizeInputLimit("positive", 5)
	assert.ErrorIs(t, err, ErrInputTooLarge)
	_, err = SanitizeInputLimit("\xff", 5)
	assert.ErrorIs(t, err, ErrInvalidUTF8)

	got, err := SanitizeInputLimit("neg", 0)
	require.NoError(t, err)
	assert.Equal(t, "neg", got)
}
