package gerrit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// sshClonePort is Gerrit's standard SSH daemon port.
const sshClonePort = 29418

// CloneURL derives a full clone URL from a change URL of the form
// <scheme>://<host>/c/<project>/+/<number>. When the URL does not embed the
// project (bare change-number links), the change detail is fetched once to
// discover it. cloneType is "http" (default) or "ssh".
func (c *Client) CloneURL(ctx context.Context, changeURL, cloneType string) (*CloneInfo, error) {
	parsed, err := url.Parse(changeURL)
	if err != nil || parsed.Host == "" {
		return nil, upstreamError("invalid change URL %q", changeURL)
	}

	project, changeID := splitChangePath(parsed.Path)
	if project == "" {
		if changeID == "" {
			return nil, upstreamError("change URL %q carries no change number", changeURL)
		}
		project, err = c.changeProject(ctx, changeID)
		if err != nil {
			return nil, err
		}
	}

	userPrefix := ""
	if c.user != "" {
		userPrefix = c.user + "@"
	}

	var cloneURL string
	if cloneType == "ssh" {
		cloneURL = fmt.Sprintf("ssh://%s%s:%d/%s.git", userPrefix, parsed.Hostname(), sshClonePort, project)
	} else {
		scheme := parsed.Scheme
		if scheme == "" {
			scheme = "https"
		}
		cloneURL = fmt.Sprintf("%s://%s%s/a/%s.git", scheme, userPrefix, parsed.Host, project)
	}

	return &CloneInfo{FullCloneURL: cloneURL}, nil
}

// splitChangePath extracts the project and change number from a change URL
// path like /c/<project>/+/<number>. Either result may be empty.
func splitChangePath(path string) (project, changeID string) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 {
		return "", ""
	}

	plus := -1
	for i, p := range parts {
		if p == "+" {
			plus = i
			break
		}
	}
	if plus > 1 && parts[0] == "c" {
		project = strings.Join(parts[1:plus], "/")
		if plus+1 < len(parts) {
			changeID = parts[plus+1]
		}
		return project, changeID
	}
	return "", parts[len(parts)-1]
}

// changeProject fetches a change's detail just to learn its project.
func (c *Client) changeProject(ctx context.Context, changeID string) (string, error) {
	raw, err := c.GetChangeDetail(ctx, changeID, nil)
	if err != nil {
		return "", err
	}
	var detail struct {
		Project string `json:"project"`
	}
	if err := json.Unmarshal(raw, &detail); err != nil {
		return "", upstreamError("decoding change %s detail: %v", changeID, err)
	}
	if detail.Project == "" {
		return "", upstreamError("change %s detail carries no project", changeID)
	}
	return detail.Project, nil
}
