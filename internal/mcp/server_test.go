package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/vkozyrev/mcp-gerrit/internal/gerrit"
)

// fakeGerrit implements the Gerrit interface for handler tests. Each method
// returns the canned value or error, and records the call.
type fakeGerrit struct {
	detail     json.RawMessage
	changes    json.RawMessage
	comments   json.RawMessage
	reviewers  json.RawMessage
	bundle     *gerrit.ChangeBundle
	diff       *gerrit.PatchsetDiff
	review     *gerrit.ReviewResult
	added      *gerrit.AddReviewerResult
	clone      *gerrit.CloneInfo
	err        error
	lastQuery  string
	lastLimit  int
	lastChange string
	lastRev    string
	lastInput  gerrit.ReviewInput
	lastAdd    gerrit.ReviewerInput
	calls      int
}

func (f *fakeGerrit) QueryChanges(_ context.Context, query string, limit, skip int, options []string) (json.RawMessage, error) {
	f.calls++
	f.lastQuery = query
	f.lastLimit = limit
	return f.changes, f.err
}

func (f *fakeGerrit) GetChangeDetail(_ context.Context, changeID string, options []string) (json.RawMessage, error) {
	f.calls++
	f.lastChange = changeID
	return f.detail, f.err
}

func (f *fakeGerrit) FetchChange(_ context.Context, changeID, patchset, fileFilter string, _ gerrit.ProgressFunc) (*gerrit.ChangeBundle, error) {
	f.calls++
	f.lastChange = changeID
	return f.bundle, f.err
}

func (f *fakeGerrit) PatchsetDiff(_ context.Context, changeID, base, target, filePath string) (*gerrit.PatchsetDiff, error) {
	f.calls++
	f.lastChange = changeID
	return f.diff, f.err
}

func (f *fakeGerrit) ListComments(_ context.Context, changeID string) (json.RawMessage, error) {
	f.calls++
	f.lastChange = changeID
	return f.comments, f.err
}

func (f *fakeGerrit) ListReviewers(_ context.Context, changeID string) (json.RawMessage, error) {
	f.calls++
	f.lastChange = changeID
	return f.reviewers, f.err
}

func (f *fakeGerrit) SetReview(_ context.Context, changeID, revision string, input gerrit.ReviewInput) (*gerrit.ReviewResult, error) {
	f.calls++
	f.lastChange = changeID
	f.lastRev = revision
	f.lastInput = input
	return f.review, f.err
}

func (f *fakeGerrit) AddReviewer(_ context.Context, changeID string, input gerrit.ReviewerInput) (*gerrit.AddReviewerResult, error) {
	f.calls++
	f.lastChange = changeID
	f.lastAdd = input
	return f.added, f.err
}

func (f *fakeGerrit) CloneURL(_ context.Context, changeURL, cloneType string) (*gerrit.CloneInfo, error) {
	f.calls++
	return f.clone, f.err
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"list_changes", listChangesTool, "list_changes"},
		{"get_change", getChangeTool, "get_change"},
		{"fetch_gerrit_change", fetchChangeTool, "fetch_gerrit_change"},
		{"fetch_patchset_diff", fetchPatchsetDiffTool, "fetch_patchset_diff"},
		{"list_comments", listCommentsTool, "list_comments"},
		{"list_reviewers", listReviewersTool, "list_reviewers"},
		{"get_repository_path_from_change", repositoryPathTool, "get_repository_path_from_change"},
		{"post_review", postReviewTool, "post_review"},
		{"add_comment", addCommentTool, "add_comment"},
		{"add_reviewer", addReviewerTool, "add_reviewer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := NewServer(&fakeGerrit{}, Options{})
	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if got := len(srv.RegisteredTools()); got != 10 {
		t.Errorf("registered tools = %d, want 10", got)
	}
}

func TestReadOnlyModeHidesMutatingTools(t *testing.T) {
	srv := NewServer(&fakeGerrit{}, Options{ReadOnly: true})

	registered := make(map[string]bool)
	for _, name := range srv.RegisteredTools() {
		registered[name] = true
	}
	for _, name := range []string{"post_review", "add_comment", "add_reviewer"} {
		if registered[name] {
			t.Errorf("mutating tool %q registered in read-only mode", name)
		}
	}
	for _, name := range []string{"list_changes", "get_change", "fetch_gerrit_change", "list_comments"} {
		if !registered[name] {
			t.Errorf("read tool %q missing in read-only mode", name)
		}
	}
}

func TestEnabledToolsRestriction(t *testing.T) {
	srv := NewServer(&fakeGerrit{}, Options{
		EnabledTools: map[string]bool{
			"get_change":   true,
			"post_review":  true,
			"no_such_tool": true,
		},
	})

	got := srv.RegisteredTools()
	if len(got) != 2 {
		t.Fatalf("registered = %v, want exactly get_change and post_review", got)
	}
	registered := map[string]bool{got[0]: true, got[1]: true}
	if !registered["get_change"] || !registered["post_review"] {
		t.Errorf("registered = %v", got)
	}
}

func TestEnabledToolsAfterReadOnlyCut(t *testing.T) {
	srv := NewServer(&fakeGerrit{}, Options{
		ReadOnly: true,
		EnabledTools: map[string]bool{
			"get_change":  true,
			"post_review": true,
		},
	})

	got := srv.RegisteredTools()
	if len(got) != 1 || got[0] != "get_change" {
		t.Errorf("registered = %v, want only get_change", got)
	}
}

func TestSelectSpecsKeepsOrder(t *testing.T) {
	srv := &Server{gerrit: &fakeGerrit{}, log: zap.NewNop()}
	specs := selectSpecs(srv.specs(), false, nil, zap.NewNop())
	if len(specs) == 0 || specs[0].tool.Name != "list_changes" {
		t.Errorf("spec order changed: first = %v", specs)
	}
}
