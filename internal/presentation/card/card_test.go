package card

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/serology"
	"github.com/aretw0/serology/pkg/domain"
	"github.com/aretw0/serology/pkg/session"
)

func newModel(t *testing.T) Model {
	t.Helper()
	eng, err := serology.New("")
	require.NoError(t, err)
	return New(session.NewManager(context.Background(), eng), "Hepatitis B")
}

func press(m Model, r rune) Model {
	next, _ := m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	return next.(Model)
}

func enter(m Model) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return next.(Model), cmd
}

func settle(m Model) Model {
	for m.Offset() != 0 {
		next, _ := m.Update(tickMsg{})
		m = next.(Model)
	}
	return m
}

func TestModel_Initial(t *testing.T) {
	m := newModel(t)
	require.NoError(t, m.Err())
	assert.Equal(t, "HBsAg", m.Current().Label)
	assert.Nil(t, m.Init())
	assert.Contains(t, m.render(), "HBsAg?")
}

func TestModel_EnterWithoutSelection(t *testing.T) {
	m := newModel(t)
	m, cmd := enter(m)
	assert.Nil(t, cmd)
	assert.Equal(t, "HBsAg", m.Current().Label)
	assert.Contains(t, m.render(), "select positive or negative first")
}

func TestModel_WalkToConclusion(t *testing.T) {
	m := newModel(t)

	for _, r := range []rune{'n', 'n', 'p', 'n'} {
		m = press(m, r)
		var cmd tea.Cmd
		m, cmd = enter(m)
		assert.NotNil(t, cmd, "a transition starts the slide")
		assert.Positive(t, m.Offset())
		m = settle(m)
	}

	require.True(t, m.Current().IsConclusion())
	assert.Equal(t, "Immune due to natural HBV infection", m.Current().Text)
	assert.Len(t, m.Current().Findings, 4)
	assert.Contains(t, m.render(), "Immune due to natural HBV infection")

	// Selecting on a conclusion does nothing.
	m = press(m, 'p')
	assert.True(t, m.Current().IsConclusion())

	m = press(m, 'b')
	assert.Equal(t, "Anti-HBe", m.Current().Label)
	assert.Equal(t, domain.Backward, m.Current().Direction)
	assert.Negative(t, m.Offset())
	m = settle(m)

	m = press(m, 'r')
	assert.Equal(t, "HBsAg", m.Current().Label)
	assert.False(t, m.Current().CanGoBack)
}

func TestModel_ArrowKeysSelect(t *testing.T) {
	m := newModel(t)

	next, _ := m.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	m = next.(Model)
	assert.Equal(t, domain.Positive, m.Current().Selection)
	assert.Zero(t, m.Offset(), "selection does not move the card")

	next, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	m = next.(Model)
	assert.Equal(t, domain.Negative, m.Current().Selection)
}

func TestModel_BackAtRootIgnored(t *testing.T) {
	m := newModel(t)
	m = press(m, 'b')
	assert.Equal(t, "HBsAg", m.Current().Label)
	assert.Zero(t, m.Offset())
}

func TestModel_Quit(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_WindowSize(t *testing.T) {
	m := newModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	assert.Equal(t, 120, m.width)
	assert.True(t, m.View().AltScreen)
}
