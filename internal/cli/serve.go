package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/aretw0/serology"
	"github.com/aretw0/serology/internal/config"
	"github.com/aretw0/serology/internal/telemetry"
	httpAdapter "github.com/aretw0/serology/pkg/adapters/http"
	"github.com/aretw0/serology/pkg/domain"
	"github.com/aretw0/serology/pkg/observability"
	"github.com/aretw0/serology/pkg/session"
)

const shutdownTimeout = 5 * time.Second

// NewServeHandler builds the HTTP handler for one process-wide session,
// with metrics when enabled and OpenTelemetry spans around every request.
// Spans go to the global tracer provider; the returned func releases the
// session subscription.
func NewServeHandler(ctx context.Context, cfg *config.Config) (http.Handler, func(), error) {
	logger := createLogger(cfg, false)

	var (
		hooks      []domain.LifecycleHooks
		serverOpts = []httpAdapter.Option{
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMaxInputSize(cfg.Input.MaxSize),
		}
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			return nil, nil, err
		}
		hooks = append(hooks, metrics.Hooks())
		serverOpts = append(serverOpts, httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	engine, err := createEngine(cfg, logger, hooks...)
	if err != nil {
		return nil, nil, err
	}
	m := session.NewManager(ctx, engine, session.WithLogger(logger))

	server, err := httpAdapter.NewServer(m, serverOpts...)
	if err != nil {
		return nil, nil, err
	}
	return otelhttp.NewHandler(server, "serology.http"), server.Close, nil
}

// Serve runs the HTTP API until ctx is cancelled or a signal arrives.
func Serve(ctx context.Context, cfg *config.Config) error {
	sigCtx := NewSignalContext(ctx)
	defer sigCtx.Cancel()

	logger := createLogger(cfg, false)

	shutdownTelemetry, err := telemetry.SetupProvider(sigCtx, telemetry.Config{
		ServiceName:    "serology",
		ServiceVersion: strings.TrimSpace(serology.Version),
		Endpoint:       cfg.Telemetry.OTLPEndpoint,
		Insecure:       cfg.Telemetry.Insecure,
	})
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(ctx); err != nil {
			logger.Warn("telemetry shutdown failed", "err", err)
		}
	}()

	handler, closeHandler, err := NewServeHandler(sigCtx, cfg)
	if err != nil {
		return err
	}
	defer closeHandler()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("serology server listening", "addr", srv.Addr, "graph", cfg.Graph, "otlp_endpoint", cfg.Telemetry.OTLPEndpoint)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-sigCtx.Done():
		logger.Info("shutting down", "signal", sigCtx.Signal())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
		}
		return nil
	}
}
