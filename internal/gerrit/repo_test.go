package gerrit

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestCloneURLFromProjectURL(t *testing.T) {
	// Project embedded in the URL: no network call needed.
	client := New(Options{BaseURL: "https://unreachable.invalid", User: "reviewbot", Timeout: time.Second})

	tests := []struct {
		name      string
		changeURL string
		cloneType string
		want      string
	}{
		{
			"http",
			"https://gerrit.example.com/c/tools/demo/+/12345",
			"http",
			"https://reviewbot@gerrit.example.com/a/tools/demo.git",
		},
		{
			"http default",
			"https://gerrit.example.com/c/tools/demo/+/12345",
			"",
			"https://reviewbot@gerrit.example.com/a/tools/demo.git",
		},
		{
			"ssh",
			"https://gerrit.example.com/c/tools/demo/+/12345",
			"ssh",
			"ssh://reviewbot@gerrit.example.com:29418/tools/demo.git",
		},
		{
			"nested project",
			"http://gerrit01.internal/c/platform/build/soong/+/40261",
			"http",
			"http://reviewbot@gerrit01.internal/a/platform/build/soong.git",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := client.CloneURL(context.Background(), tt.changeURL, tt.cloneType)
			if err != nil {
				t.Fatalf("CloneURL failed: %v", err)
			}
			if info.FullCloneURL != tt.want {
				t.Errorf("clone URL = %q, want %q", info.FullCloneURL, tt.want)
			}
		})
	}
}

func TestCloneURLWithoutUser(t *testing.T) {
	client := New(Options{BaseURL: "https://unreachable.invalid", Timeout: time.Second})
	info, err := client.CloneURL(context.Background(), "https://gerrit.example.com/c/tools/demo/+/12345", "ssh")
	if err != nil {
		t.Fatalf("CloneURL failed: %v", err)
	}
	if info.FullCloneURL != "ssh://gerrit.example.com:29418/tools/demo.git" {
		t.Errorf("clone URL = %q", info.FullCloneURL)
	}
}

func TestCloneURLFallsBackToChangeDetail(t *testing.T) {
	var detailFetched bool
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/a/changes/12345/detail" {
			t.Errorf("unexpected request path %q", r.URL.Path)
		}
		detailFetched = true
		writeJSON(w, `{"project":"tools/demo"}`)
	}, "s3cret")

	// A bare change-number URL carries no project segment.
	info, err := client.CloneURL(context.Background(), "https://gerrit.example.com/12345", "http")
	if err != nil {
		t.Fatalf("CloneURL failed: %v", err)
	}
	if !detailFetched {
		t.Error("expected a change detail fetch to discover the project")
	}
	if info.FullCloneURL != "https://reviewbot@gerrit.example.com/a/tools/demo.git" {
		t.Errorf("clone URL = %q", info.FullCloneURL)
	}
}

func TestCloneURLInvalid(t *testing.T) {
	client := New(Options{BaseURL: "https://unreachable.invalid", Timeout: time.Second})
	if _, err := client.CloneURL(context.Background(), "::not a url::", "http"); err == nil {
		t.Error("expected an error for an invalid change URL")
	}
}

func TestSplitChangePath(t *testing.T) {
	tests := []struct {
		path        string
		wantProject string
		wantChange  string
	}{
		{"/c/tools/demo/+/12345", "tools/demo", "12345"},
		{"/c/platform/build/soong/+/40261", "platform/build/soong", "40261"},
		{"/12345", "", "12345"},
		{"/c/tools/demo/+/12345/2", "tools/demo", "12345"},
	}
	for _, tt := range tests {
		project, changeID := splitChangePath(tt.path)
		if project != tt.wantProject || changeID != tt.wantChange {
			t.Errorf("splitChangePath(%q) = (%q, %q), want (%q, %q)",
				tt.path, project, changeID, tt.wantProject, tt.wantChange)
		}
	}
}
