package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vkozyrev/mcp-gerrit/internal/gerrit"
)

// Per-call failures never propagate as Go errors (that would end the MCP
// session); every handler converts them into an IsError result whose text is
// a structured {"kind","message"} payload.

// errorPayload is the machine-readable error shape handed to the host.
type errorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// argumentErrorKind marks failures in the tool arguments themselves, before
// any upstream call.
const argumentErrorKind = "invalid_argument"

// errorResult renders an error as a structured tool failure.
func errorResult(err error) *mcp.CallToolResult {
	payload := errorPayload{Kind: "upstream", Message: err.Error()}
	var gerritErr *gerrit.Error
	if errors.As(err, &gerritErr) {
		payload.Kind = string(gerritErr.Kind)
		payload.Message = gerritErr.Message
	}
	data, merr := json.Marshal(payload)
	if merr != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(string(data))
}

// argumentError renders a bad-argument failure without touching the network.
func argumentError(format string, args ...any) *mcp.CallToolResult {
	data, err := json.Marshal(errorPayload{
		Kind:    argumentErrorKind,
		Message: fmt.Sprintf(format, args...),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf(format, args...))
	}
	return mcp.NewToolResultError(string(data))
}

// jsonResult marshals a payload as indented JSON text content.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encoding result: %w", err))
	}
	return mcp.NewToolResultText(string(data))
}

const (
	defaultQuery      = "status:open"
	defaultQueryLimit = 25
	maxQueryLimit     = 100
)

// handleListChanges runs a Gerrit change query.
func (s *Server) handleListChanges(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", defaultQuery)
	limit := request.GetInt("limit", defaultQueryLimit)
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	if limit > maxQueryLimit {
		limit = maxQueryLimit
	}
	skip := request.GetInt("skip", 0)
	options := request.GetStringSlice("options", nil)

	raw, err := s.gerrit.QueryChanges(ctx, query, limit, skip, options)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(raw), nil
}

// handleGetChange fetches the detail view of one change.
func (s *Server) handleGetChange(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	changeID, err := request.RequireString("change_id")
	if err != nil || changeID == "" {
		return argumentError("missing required parameter: change_id"), nil
	}
	options := request.GetStringSlice("options", nil)

	raw, err := s.gerrit.GetChangeDetail(ctx, changeID, options)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(raw), nil
}

// handleFetchChange fetches a change bundle with per-file diffs.
func (s *Server) handleFetchChange(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	changeID, err := request.RequireString("change_id")
	if err != nil || changeID == "" {
		return argumentError("missing required parameter: change_id"), nil
	}
	patchset := request.GetString("patchset_number", "")
	fileFilter := request.GetString("file_filter", "")

	bundle, err := s.gerrit.FetchChange(ctx, changeID, patchset, fileFilter, nil)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(bundle), nil
}

// handleFetchPatchsetDiff compares two patchsets of a change.
func (s *Server) handleFetchPatchsetDiff(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	changeID, err := request.RequireString("change_id")
	if err != nil || changeID == "" {
		return argumentError("missing required parameter: change_id"), nil
	}
	base, err := request.RequireString("base_patchset")
	if err != nil || base == "" {
		return argumentError("missing required parameter: base_patchset"), nil
	}
	target, err := request.RequireString("target_patchset")
	if err != nil || target == "" {
		return argumentError("missing required parameter: target_patchset"), nil
	}
	filePath := request.GetString("file_path", "")

	diff, err := s.gerrit.PatchsetDiff(ctx, changeID, base, target, filePath)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(diff), nil
}

// handleListComments lists the published comments of a change.
func (s *Server) handleListComments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	changeID, err := request.RequireString("change_id")
	if err != nil || changeID == "" {
		return argumentError("missing required parameter: change_id"), nil
	}

	raw, err := s.gerrit.ListComments(ctx, changeID)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(raw), nil
}

// handleListReviewers lists the reviewers of a change.
func (s *Server) handleListReviewers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	changeID, err := request.RequireString("change_id")
	if err != nil || changeID == "" {
		return argumentError("missing required parameter: change_id"), nil
	}

	raw, err := s.gerrit.ListReviewers(ctx, changeID)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(raw), nil
}

// handleRepositoryPath derives a clone URL from a change URL.
func (s *Server) handleRepositoryPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	changeURL, err := request.RequireString("change_url")
	if err != nil || changeURL == "" {
		return argumentError("missing required parameter: change_url"), nil
	}
	cloneType := request.GetString("clone_url_type", "http")
	if cloneType != "http" && cloneType != "ssh" {
		return argumentError("clone_url_type must be \"http\" or \"ssh\", got %q", cloneType), nil
	}

	info, err := s.gerrit.CloneURL(ctx, changeURL, cloneType)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(info), nil
}

// handlePostReview posts a review message and/or label votes.
func (s *Server) handlePostReview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	changeID, err := request.RequireString("change_id")
	if err != nil || changeID == "" {
		return argumentError("missing required parameter: change_id"), nil
	}
	message := request.GetString("message", "")

	labels, badLabel := parseLabels(request.GetArguments()["labels"])
	if badLabel != "" {
		return argumentError("label %s must carry an integer score", badLabel), nil
	}
	if message == "" && len(labels) == 0 {
		return argumentError("post_review needs a message, labels, or both"), nil
	}

	patchset := request.GetString("patchset", "current")

	result, err := s.gerrit.SetReview(ctx, changeID, patchset, gerrit.ReviewInput{
		Message: message,
		Labels:  labels,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(result), nil
}

// handleAddComment posts a change message or an inline file comment.
func (s *Server) handleAddComment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	changeID, err := request.RequireString("change_id")
	if err != nil || changeID == "" {
		return argumentError("missing required parameter: change_id"), nil
	}
	message, err := request.RequireString("message")
	if err != nil || message == "" {
		return argumentError("missing required parameter: message"), nil
	}
	file := request.GetString("file", "")
	line := request.GetInt("line", 0)
	side := request.GetString("side", "")
	patchset := request.GetString("patchset", "current")

	if file == "" && (line > 0 || side != "") {
		return argumentError("line and side require a file"), nil
	}

	input := gerrit.ReviewInput{}
	if file == "" {
		input.Message = message
	} else {
		input.Comments = map[string][]gerrit.CommentInput{
			file: {{Message: message, Line: line, Side: side}},
		}
	}

	result, err := s.gerrit.SetReview(ctx, changeID, patchset, input)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(result), nil
}

// handleAddReviewer adds a reviewer or CC to a change.
func (s *Server) handleAddReviewer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	changeID, err := request.RequireString("change_id")
	if err != nil || changeID == "" {
		return argumentError("missing required parameter: change_id"), nil
	}
	reviewer, err := request.RequireString("reviewer")
	if err != nil || reviewer == "" {
		return argumentError("missing required parameter: reviewer"), nil
	}
	state := request.GetString("state", "REVIEWER")
	if state != "REVIEWER" && state != "CC" {
		return argumentError("state must be REVIEWER or CC, got %q", state), nil
	}

	result, err := s.gerrit.AddReviewer(ctx, changeID, gerrit.ReviewerInput{
		Reviewer: reviewer,
		State:    state,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(result), nil
}

// parseLabels converts the free-form labels argument into label scores.
// JSON numbers arrive as float64; string scores like "+1" are accepted too.
// On failure the offending label name is returned.
func parseLabels(arg any) (map[string]int, string) {
	raw, ok := arg.(map[string]any)
	if !ok || len(raw) == 0 {
		return nil, ""
	}
	labels := make(map[string]int, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case float64:
			labels[name] = int(v)
		case string:
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, name
			}
			labels[name] = n
		default:
			return nil, name
		}
	}
	return labels, ""
}
