package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/vkozyrev/mcp-gerrit/internal/gerrit"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Gerrit is the upstream surface the tool handlers need. *gerrit.Client
// implements it; tests substitute a fake.
type Gerrit interface {
	QueryChanges(ctx context.Context, query string, limit, skip int, options []string) (json.RawMessage, error)
	GetChangeDetail(ctx context.Context, changeID string, options []string) (json.RawMessage, error)
	FetchChange(ctx context.Context, changeID, patchset, fileFilter string, progress gerrit.ProgressFunc) (*gerrit.ChangeBundle, error)
	PatchsetDiff(ctx context.Context, changeID, basePatchset, targetPatchset, filePath string) (*gerrit.PatchsetDiff, error)
	ListComments(ctx context.Context, changeID string) (json.RawMessage, error)
	ListReviewers(ctx context.Context, changeID string) (json.RawMessage, error)
	SetReview(ctx context.Context, changeID, revision string, input gerrit.ReviewInput) (*gerrit.ReviewResult, error)
	AddReviewer(ctx context.Context, changeID string, input gerrit.ReviewerInput) (*gerrit.AddReviewerResult, error)
	CloneURL(ctx context.Context, changeURL, cloneType string) (*gerrit.CloneInfo, error)
}

// Options configures the MCP server wrapper.
type Options struct {
	// ReadOnly hides the mutating tools entirely.
	ReadOnly bool
	// EnabledTools, when non-nil, restricts registration to the named tools.
	EnabledTools map[string]bool
	Logger       *zap.Logger
}

// Server wraps an MCP server exposing Gerrit review tools.
type Server struct {
	gerrit     Gerrit
	log        *zap.Logger
	mcp        *server.MCPServer
	registered []string
}

// toolSpec binds a tool definition to its handler. Mutating specs are cut
// in read-only mode.
type toolSpec struct {
	tool     mcp.Tool
	handler  server.ToolHandlerFunc
	mutating bool
}

// NewServer creates an MCP server exposing the Gerrit tool surface.
func NewServer(g Gerrit, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		gerrit: g,
		log:    log,
	}

	s.mcp = server.NewMCPServer(
		"mcp-gerrit",
		Version,
		server.WithToolCapabilities(false),
	)

	for _, spec := range selectSpecs(s.specs(), opts.ReadOnly, opts.EnabledTools, log) {
		s.mcp.AddTool(spec.tool, s.instrument(spec.tool.Name, spec.handler))
		s.registered = append(s.registered, spec.tool.Name)
	}

	return s
}

// specs is the closed enumeration of every tool this server can expose.
func (s *Server) specs() []toolSpec {
	return []toolSpec{
		{listChangesTool, s.handleListChanges, false},
		{getChangeTool, s.handleGetChange, false},
		{fetchChangeTool, s.handleFetchChange, false},
		{fetchPatchsetDiffTool, s.handleFetchPatchsetDiff, false},
		{listCommentsTool, s.handleListComments, false},
		{listReviewersTool, s.handleListReviewers, false},
		{repositoryPathTool, s.handleRepositoryPath, false},
		{postReviewTool, s.handlePostReview, true},
		{addCommentTool, s.handleAddComment, true},
		{addReviewerTool, s.handleAddReviewer, true},
	}
}

// selectSpecs applies the read-only cut and the ENABLED_TOOLS restriction.
// Unknown names in enabled are reported once and otherwise ignored.
func selectSpecs(specs []toolSpec, readOnly bool, enabled map[string]bool, log *zap.Logger) []toolSpec {
	known := make(map[string]bool, len(specs))
	var out []toolSpec
	for _, spec := range specs {
		known[spec.tool.Name] = true
		if readOnly && spec.mutating {
			continue
		}
		if enabled != nil && !enabled[spec.tool.Name] {
			continue
		}
		out = append(out, spec)
	}
	for name := range enabled {
		if !known[name] {
			log.Warn("unknown tool in ENABLED_TOOLS", zap.String("tool", name))
		}
	}
	return out
}

// RegisteredTools returns the names of the tools exposed by this server.
func (s *Server) RegisteredTools() []string { return s.registered }

// instrument wraps a handler with per-call logging: a call id, the tool
// name, duration, and outcome.
func (s *Server) instrument(name string, h server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		log := s.log.With(
			zap.String("tool", name),
			zap.String("call_id", uuid.NewString()),
		)
		log.Debug("tool call started")

		result, err := h(ctx, request)

		outcome := "ok"
		if err != nil || (result != nil && result.IsError) {
			outcome = "error"
		}
		log.Info("tool call finished",
			zap.String("outcome", outcome),
			zap.Duration("duration", time.Since(start)),
		)
		return result, err
	}
}

// Serve starts the MCP server on stdio. Stdout carries MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

// StreamableHandler returns an http.Handler speaking the MCP streamable
// HTTP transport, for mounting into an HTTP host.
func (s *Server) StreamableHandler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcp, server.WithEndpointPath("/mcp"))
}
