package observability_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/aretw0/serology"
	"github.com/aretw0/serology/internal/logging"
	"github.com/aretw0/serology/pkg/domain"
	"github.com/aretw0/serology/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordsWalk(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	eng, err := serology.New("", serology.WithLifecycleHooks(metrics.Hooks()))
	require.NoError(t, err)

	ctx := context.Background()
	s := eng.Start(ctx, "metrics")
	for i := 0; i < 3; i++ {
		s, err = eng.Select(ctx, s, domain.Negative)
		require.NoError(t, err)
		s, err = eng.Advance(ctx, s)
		require.NoError(t, err)
	}
	require.True(t, s.Concluded)

	s, err = eng.Retreat(ctx, s)
	require.NoError(t, err)
	_, err = eng.Reset(ctx, s)
	require.NoError(t, err)

	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.Transitions.WithLabelValues("advance")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Transitions.WithLabelValues("retreat")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Transitions.WithLabelValues("reset")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Conclusions.WithLabelValues("Vaccinated for HBV")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.Depth))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, -4)

	eng, err := serology.New("", serology.WithLifecycleHooks(observability.LoggingHooks(logger)))
	require.NoError(t, err)

	ctx := context.Background()
	s := eng.Start(ctx, "logs")
	for _, sel := range []domain.Selection{domain.Negative, domain.Positive} {
		s, err = eng.Select(ctx, s, sel)
		require.NoError(t, err)
		s, err = eng.Advance(ctx, s)
		require.NoError(t, err)
	}
	require.True(t, s.Concluded)
	s, err = eng.Retreat(ctx, s)
	require.NoError(t, err)
	_, err = eng.Reset(ctx, s)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=advance session_id=logs from=step1 to=step4 selection=negative depth=1")
	assert.Contains(t, out, "msg=\"conclusion reached\" session_id=logs node_id=step4")
	assert.Contains(t, out, `conclusion="Acute HBV: window phase" depth=2`)
	assert.Contains(t, out, "msg=retreat session_id=logs from=step4 to=step4")
	assert.Contains(t, out, "msg=reset session_id=logs from=step4 to=step1")
}
