package runtime_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/serology/internal/runtime"
	"github.com/aretw0/serology/pkg/algorithms"
	"github.com/aretw0/serology/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHBVEngine(t testing.TB, opts ...runtime.EngineOption) *runtime.Engine {
	t.Helper()
	g, err := algorithms.HBV()
	require.NoError(t, err)
	return runtime.NewEngine(g, opts...)
}

// walk answers each selection in order and returns the final session.
func walk(t testing.TB, eng *runtime.Engine, answers ...domain.Selection) *domain.Session {
	t.Helper()
	ctx := context.Background()
	s := eng.Start(ctx, "test")
	for _, sel := range answers {
		var err error
		s, err = eng.Select(ctx, s, sel)
		require.NoError(t, err)
		s, err = eng.Advance(ctx, s)
		require.NoError(t, err)
	}
	return s
}

const (
	P = domain.Positive
	N = domain.Negative
)

func TestEngine_Start(t *testing.T) {
	eng := newHBVEngine(t)
	s := eng.Start(context.Background(), "abc")

	assert.Equal(t, "abc", s.ID)
	assert.Equal(t, "step1", s.CurrentNodeID)
	assert.Empty(t, s.History)
	assert.Equal(t, domain.NoSelection, s.Pending)
	assert.False(t, s.Concluded)
	assert.Equal(t, domain.Forward, s.Direction)

	view, err := eng.View(s)
	require.NoError(t, err)
	assert.Equal(t, domain.ViewQuestion, view.Kind)
	assert.Equal(t, "HBsAg", view.Label)
	assert.True(t, view.HasPositive)
	assert.True(t, view.HasNegative)
	assert.False(t, view.CanGoBack)
	assert.False(t, view.CanAdvance())
}

func TestEngine_HBVPaths(t *testing.T) {
	tests := []struct {
		name       string
		answers    []domain.Selection
		wantNode   string
		wantResult string
	}{
		{"step1+ -> step2", []domain.Selection{P}, "step2", ""},
		{"step2+ -> step3", []domain.Selection{P, P}, "step3", ""},
		{"step3+", []domain.Selection{P, P, P}, "step3", "Acute flare of chronic HBV"},
		{"step3-", []domain.Selection{P, P, N}, "step3", "Acute HBV: early phase"},
		{"step2-", []domain.Selection{P, N}, "step2", "Chronic HBV carrier"},
		{"step1- -> step4", []domain.Selection{N}, "step4", ""},
		{"step4+", []domain.Selection{N, P}, "step4", "Acute HBV: window phase"},
		{"step4- -> step5", []domain.Selection{N, N}, "step5", ""},
		{"step5-", []domain.Selection{N, N, N}, "step5", "Vaccinated for HBV"},
		{"step5+ -> step6", []domain.Selection{N, N, P}, "step6", ""},
		{"step6+", []domain.Selection{N, N, P, P}, "step6", "Acute HBV: recovery phase"},
		{"step6-", []domain.Selection{N, N, P, N}, "step6", "Immune due to natural HBV infection"},
	}

	eng := newHBVEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := walk(t, eng, tt.answers...)

			assert.Equal(t, tt.wantNode, s.CurrentNodeID)
			assert.Len(t, s.History, len(tt.answers))
			assert.Equal(t, tt.wantResult != "", s.Concluded)
			assert.Equal(t, tt.wantResult, s.ConclusionText)

			view, err := eng.View(s)
			require.NoError(t, err)
			if tt.wantResult != "" {
				assert.Equal(t, domain.ViewConclusion, view.Kind)
				assert.Equal(t, tt.wantResult, view.Text)
				assert.Len(t, view.Findings, len(tt.answers))
				assert.True(t, view.CanGoBack)
			} else {
				assert.Equal(t, domain.ViewQuestion, view.Kind)
				assert.Equal(t, domain.NoSelection, view.Selection)
			}
		})
	}
}

func TestEngine_Findings(t *testing.T) {
	eng := newHBVEngine(t)
	s := walk(t, eng, N, N, N)

	findings, err := eng.Findings(s)
	require.NoError(t, err)
	assert.Equal(t, []domain.Finding{
		{NodeID: "step1", Label: "HBsAg", Selection: N},
		{NodeID: "step4", Label: "IgM anti-HBc", Selection: N},
		{NodeID: "step5", Label: "IgG anti-HBc", Selection: N},
	}, findings)
}

func TestEngine_Hooks(t *testing.T) {
	var events []string
	var conclusion *domain.ConclusionEvent
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	hooks := domain.LifecycleHooks{
		OnAdvance: func(_ context.Context, e *domain.TransitionEvent) {
			events = append(events, "advance:"+e.FromNodeID+">"+e.ToNodeID)
			assert.Equal(t, fixed, e.Timestamp)
		},
		OnRetreat: func(_ context.Context, e *domain.TransitionEvent) {
			events = append(events, "retreat:"+e.FromNodeID+">"+e.ToNodeID)
		},
		OnReset: func(_ context.Context, e *domain.TransitionEvent) {
			events = append(events, "reset:"+e.FromNodeID+">"+e.ToNodeID)
		},
		OnConclude: func(_ context.Context, e *domain.ConclusionEvent) {
			conclusion = e
		},
	}
	eng := newHBVEngine(t,
		runtime.WithLifecycleHooks(hooks),
		runtime.WithClock(func() time.Time { return fixed }),
	)

	ctx := context.Background()
	s := walk(t, eng, P, N)
	s, _ = eng.Retreat(ctx, s)
	s, _ = eng.Retreat(ctx, s)
	_, _ = eng.Reset(ctx, s)

	assert.Equal(t, []string{
		"advance:step1>step2",
		"advance:step2>",
		"retreat:step2>step2",
		"retreat:step2>step2",
		"reset:step2>step1",
	}, events)

	require.NotNil(t, conclusion)
	assert.Equal(t, "Chronic HBV carrier", conclusion.Text)
	assert.Equal(t, "step2", conclusion.NodeID)
	assert.Equal(t, 2, conclusion.Depth)
	assert.Equal(t, "test", conclusion.SessionID)
}
