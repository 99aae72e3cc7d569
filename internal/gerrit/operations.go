package gerrit

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// QueryChanges runs a Gerrit change query and returns the raw result list.
// Single-call semantics: the caller drives paging through limit and skip.
func (c *Client) QueryChanges(ctx context.Context, query string, limit, skip int, options []string) (json.RawMessage, error) {
	vals := url.Values{}
	vals.Set("q", query)
	if limit > 0 {
		vals.Set("n", strconv.Itoa(limit))
	}
	if skip > 0 {
		vals.Set("S", strconv.Itoa(skip))
	}
	for _, o := range options {
		vals.Add("o", o)
	}

	var raw json.RawMessage
	if err := c.get(ctx, "changes/?"+vals.Encode(), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// GetChangeDetail fetches the detail view of a change with the given output
// options, passing the upstream JSON through unmodified.
func (c *Client) GetChangeDetail(ctx context.Context, changeID string, options []string) (json.RawMessage, error) {
	endpoint := "changes/" + url.PathEscape(changeID) + "/detail"
	if len(options) > 0 {
		vals := url.Values{}
		for _, o := range options {
			vals.Add("o", o)
		}
		endpoint += "?" + vals.Encode()
	}

	var raw json.RawMessage
	if err := c.get(ctx, endpoint, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// ListComments returns the published comments of a change, keyed by file.
func (c *Client) ListComments(ctx context.Context, changeID string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "changes/"+url.PathEscape(changeID)+"/comments", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// ListReviewers returns the reviewers of a change.
func (c *Client) ListReviewers(ctx context.Context, changeID string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "changes/"+url.PathEscape(changeID)+"/reviewers", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// SetReview posts a review (message, votes, inline comments) on a revision.
// revision accepts everything Gerrit's revision-id accepts: "current", a
// commit SHA, or a patchset number.
func (c *Client) SetReview(ctx context.Context, changeID, revision string, input ReviewInput) (*ReviewResult, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	endpoint := "changes/" + url.PathEscape(changeID) + "/revisions/" + url.PathEscape(revision) + "/review"
	var result ReviewResult
	if err := c.post(ctx, endpoint, input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AddReviewer adds a reviewer or CC to a change.
func (c *Client) AddReviewer(ctx context.Context, changeID string, input ReviewerInput) (*AddReviewerResult, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	var result AddReviewerResult
	if err := c.post(ctx, "changes/"+url.PathEscape(changeID)+"/reviewers", input, &result); err != nil {
		return nil, err
	}
	if result.Error != "" {
		return nil, upstreamError("adding reviewer %q: %s", input.Reviewer, result.Error)
	}
	return &result, nil
}

// ServerVersion returns the Gerrit server version string. Works anonymously,
// which makes it the connectivity probe for `mcp-gerrit check`.
func (c *Client) ServerVersion(ctx context.Context) (string, error) {
	var version string
	if err := c.get(ctx, "config/server/version", &version); err != nil {
		return "", err
	}
	return version, nil
}

// Self returns the account the configured credentials authenticate as.
func (c *Client) Self(ctx context.Context) (*AccountInfo, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	var account AccountInfo
	if err := c.get(ctx, "accounts/self", &account); err != nil {
		return nil, err
	}
	return &account, nil
}
