package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/serology"
	"github.com/aretw0/serology/internal/presentation/graph"
	"github.com/aretw0/serology/pkg/domain"
	"github.com/aretw0/serology/pkg/runner"
	"github.com/aretw0/serology/pkg/session"
)

// Server exposes one session.Manager over HTTP. Every client drives the
// same session.
type Server struct {
	Manager *session.Manager
	Streams *StreamManager

	logger       *slog.Logger
	metrics      http.Handler
	maxInputSize int

	router      http.Handler
	unsubscribe func()
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithMaxInputSize overrides the selection size limit.
func WithMaxInputSize(n int) Option {
	return func(s *Server) {
		s.maxInputSize = n
	}
}

// NewServer builds the router for m and subscribes the event stream to its
// transitions. Close releases the subscription.
func NewServer(m *session.Manager, opts ...Option) (*Server, error) {
	server := &Server{
		Manager: m,
		Streams: NewStreamManager(),
		logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(server)
	}

	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	validate, err := requestValidator(doc, server.logger)
	if err != nil {
		return nil, err
	}

	server.unsubscribe = m.Subscribe(func(v domain.View) {
		if b, err := json.Marshal(v); err == nil {
			server.Streams.Broadcast(string(b))
		}
	})

	r := chi.NewRouter()
	r.Use(enableCORS)
	r.Use(validate)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	if server.metrics != nil {
		r.Handle("/metrics", server.metrics)
	}

	r.Get("/view", server.GetView)
	r.Post("/select", server.Select)
	r.Post("/advance", server.transition("advance", m.Advance))
	r.Post("/retreat", server.transition("retreat", m.Retreat))
	r.Post("/reset", server.transition("reset", m.Reset))
	r.Get("/graph", server.GetGraph)
	r.Get("/graph/mermaid", server.GetGraphMermaid)
	r.Get("/events", server.SubscribeEvents)
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)

	server.router = r
	return server, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close stops broadcasting session transitions to /events.
func (s *Server) Close() {
	s.unsubscribe()
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Serology API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetView handles GET /view.
func (s *Server) GetView(w http.ResponseWriter, r *http.Request) {
	view, err := s.Manager.View()
	if err != nil {
		s.fail(w, "view", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SelectRequest is the body of POST /select.
type SelectRequest struct {
	Selection string `json:"selection"`
}

// Select handles POST /select.
func (s *Server) Select(w http.ResponseWriter, r *http.Request) {
	var body SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	raw, err := s.sanitize(body.Selection)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid input: %w", err))
		s.logger.Warn("select: input rejected", "err", err, "size", len(body.Selection))
		return
	}
	sel, err := domain.ParseSelection(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	view, err := s.Manager.Select(r.Context(), sel)
	if err != nil {
		s.fail(w, "select", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) transition(op string, fn func(context.Context) (domain.View, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := fn(r.Context())
		if err != nil {
			s.fail(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// GetGraph handles GET /graph.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Manager.Engine().Graph())
}

// GetGraphMermaid handles GET /graph/mermaid. With ?overlay=true the
// session's answered path is highlighted.
func (s *Server) GetGraphMermaid(w http.ResponseWriter, r *http.Request) {
	var overlay *graph.GraphOverlay
	if raw := r.URL.Query().Get("overlay"); raw != "" {
		on, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if on {
			overlay = graph.OverlayFor(s.Manager.Snapshot())
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, graph.GenerateMermaid(s.Manager.Engine().Graph(), overlay))
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := GetSwagger(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "serology-http",
		"version":     strings.TrimSpace(serology.Version),
		"api_version": apiVersion,
		"graph":       s.Manager.Engine().Graph().Name(),
	})
}

func (s *Server) sanitize(input string) (string, error) {
	if s.maxInputSize > 0 {
		return runner.SanitizeInputLimit(input, s.maxInputSize)
	}
	return runner.SanitizeInput(input)
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidSelection):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, domain.ErrInvalidOperation):
		writeError(w, http.StatusConflict, err)
	default:
		s.logger.Error("operation failed", "op", op, "err", err)
		writeError(w, http.StatusInternalServerError, err)
	}
}
