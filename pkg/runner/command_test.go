package runner

import (
	"testing"

	"github.com/aretw0/serology/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := map[string]Command{
		"":         {Op: OpAdvance},
		"next":     {Op: OpAdvance},
		"ENTER":    {Op: OpAdvance},
		"p":        {Op: OpSelect, Selection: domain.Positive},
		"+":        {Op: OpSelect, Selection: domain.Positive},
		"positive": {Op: OpSelect, Selection: domain.Positive},
		"n":        {Op: OpSelect, Selection: domain.Negative},
		"-":        {Op: OpSelect, Selection: domain.Negative},
		"negative": {Op: OpSelect, Selection: domain.Negative},
		"b":        {Op: OpRetreat},
		"back":     {Op: OpRetreat},
		"r":        {Op: OpReset},
		"reset":    {Op: OpReset},
		"view":     {Op: OpView},
		"quit":     {Op: OpQuit},
		" exit ":   {Op: OpQuit},
	}
	for line, want := range tests {
		got, err := ParseCommand(line)
		require.NoError(t, err, line)
		assert.Equal(t, want, got, line)
	}

	_, err := ParseCommand("maybe")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestCommand_Validate(t *testing.T) {
	assert.NoError(t, Command{Op: OpRetreat}.Validate())
	assert.ErrorIs(t, Command{Op: OpSelect}.Validate(), domain.ErrInvalidSelection)
	assert.ErrorIs(t, Command{Op: "dance"}.Validate(), ErrUnknownCommand)
}
