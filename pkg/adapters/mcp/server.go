package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/serology"
	"github.com/aretw0/serology/internal/presentation/graph"
	"github.com/aretw0/serology/pkg/domain"
	"github.com/aretw0/serology/pkg/runner"
	"github.com/aretw0/serology/pkg/session"
)

const (
	graphURI   = "serology://graph"
	mermaidURI = "serology://graph/mermaid"
)

// Server exposes a session.Manager as MCP tools. An agent drives the same
// single session a human would, one tool call per operation.
type Server struct {
	manager   *session.Manager
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger used for rejected input.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates the MCP server and registers its tools and resources.
func NewServer(m *session.Manager, opts ...Option) *Server {
	s := &Server{
		manager:   m,
		mcpServer: server.NewMCPServer("serology-mcp", strings.TrimSpace(serology.Version)),
		logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("view",
		mcp.WithDescription("Show the current question or conclusion of the hepatitis B serology walk."),
	), s.handleView)

	s.mcpServer.AddTool(mcp.NewTool("select",
		mcp.WithDescription("Record the result of the marker asked by the current question. Does not advance."),
		mcp.WithString("selection", mcp.Required(),
			mcp.Description("Marker result: positive or negative (also accepts +, -, p, n, yes, no)")),
	), s.handleSelect)

	s.mcpServer.AddTool(mcp.NewTool("advance",
		mcp.WithDescription("Commit the selected result and move to the next question or a conclusion."),
	), s.transition("advance", s.manager.Advance))

	s.mcpServer.AddTool(mcp.NewTool("retreat",
		mcp.WithDescription("Undo the most recent step."),
	), s.transition("retreat", s.manager.Retreat))

	s.mcpServer.AddTool(mcp.NewTool("reset",
		mcp.WithDescription("Start over from the first question."),
	), s.transition("reset", s.manager.Reset))

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the full decision graph for introspection."),
		mcp.WithString("format", mcp.Description("json (default) or mermaid")),
	), s.handleGetGraph)
}

func (s *Server) handleView(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view, err := s.manager.View()
	return viewResult(view, err)
}

func (s *Server) handleSelect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("selection")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	clean, err := runner.SanitizeInput(raw)
	if err != nil {
		s.logger.Warn("mcp select: input rejected", "err", err, "size", len(raw))
		return mcp.NewToolResultError(fmt.Sprintf("input rejected: %v", err)), nil
	}
	sel, err := domain.ParseSelection(clean)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return viewResult(s.manager.Select(ctx, sel))
}

func (s *Server) transition(op string, fn func(context.Context) (domain.View, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		view, err := fn(ctx)
		if err != nil && !errors.Is(err, domain.ErrInvalidOperation) {
			s.logger.Error("mcp operation failed", "op", op, "err", err)
		}
		return viewResult(view, err)
	}
}

func (s *Server) handleGetGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	switch format := request.GetString("format", "json"); format {
	case "json", "":
		b, err := json.Marshal(s.manager.Engine().Graph())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode graph: %v", err)), nil
		}
		return mcp.NewToolResultText(string(b)), nil
	case "mermaid":
		overlay := graph.OverlayFor(s.manager.Snapshot())
		return mcp.NewToolResultText(graph.GenerateMermaid(s.manager.Engine().Graph(), overlay)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q", format)), nil
	}
}

// viewResult reports rejected operations as tool errors so the agent can
// correct itself; only transport failures are returned as Go errors.
func viewResult(view domain.View, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := json.Marshal(view)
	if err != nil {
		return nil, fmt.Errorf("encode view: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(graphURI, "Decision graph",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		b, err := json.Marshal(s.manager.Engine().Graph())
		if err != nil {
			return nil, fmt.Errorf("encode graph: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: graphURI, MIMEType: "application/json", Text: string(b)},
		}, nil
	})

	s.mcpServer.AddResource(mcp.NewResource(mermaidURI, "Decision graph (Mermaid)",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text := graph.GenerateMermaid(s.manager.Engine().Graph(), nil)
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: mermaidURI, MIMEType: "text/plain", Text: text},
		}, nil
	})
}
