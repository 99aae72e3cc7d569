package gerrit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// commitMsgPath is the pseudo-file Gerrit lists for the commit message; it
// is skipped when assembling diffs.
const commitMsgPath = "/COMMIT_MSG"

// fetchDetailOptions is the output option set for the rich change fetch.
var fetchDetailOptions = []string{
	"CURRENT_REVISION", "CURRENT_COMMIT", "MESSAGES", "DETAILED_LABELS",
	"DETAILED_ACCOUNTS", "ALL_REVISIONS", "ALL_COMMITS", "ALL_FILES",
	"COMMIT_FOOTERS",
}

// diffDetailOptions is the output option set for patchset comparison.
var diffDetailOptions = []string{"ALL_REVISIONS", "ALL_FILES"}

// ProgressFunc receives per-file progress while diffs are downloaded.
type ProgressFunc func(done, total int, path string)

// FetchChange fetches a change's detail and the diff of every file in the
// requested patchset (the current one when patchset is empty), assembled
// into a single bundle. fileFilter, when non-empty, keeps only files whose
// path equals the filter or matches it as a doublestar glob. progress may
// be nil.
func (c *Client) FetchChange(ctx context.Context, changeID, patchset, fileFilter string, progress ProgressFunc) (*ChangeBundle, error) {
	raw, err := c.GetChangeDetail(ctx, changeID, fetchDetailOptions)
	if err != nil {
		return nil, err
	}

	var detail changeDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, upstreamError("decoding change %s detail: %v", changeID, err)
	}
	if detail.Project == "" {
		return nil, upstreamError("change %s detail carries no project", changeID)
	}

	revisionSHA, revision, revisionRaw, err := resolveRevision(&detail, patchset)
	if err != nil {
		return nil, err
	}

	paths := sortedFilePaths(revision.Files, fileFilter)
	c.log.Debug("fetching file diffs",
		zap.String("change", changeID),
		zap.String("revision", revisionSHA),
		zap.Int("files", len(paths)),
	)

	files := make([]FileDiff, 0, len(paths))
	for i, path := range paths {
		diff, err := c.fileDiff(ctx, changeID, revisionSHA, path, "")
		if err != nil {
			return nil, err
		}
		info := revision.Files[path]
		files = append(files, FileDiff{
			Path:          path,
			Status:        fileStatus(info),
			LinesInserted: info.LinesInserted,
			LinesDeleted:  info.LinesDeleted,
			SizeDelta:     info.SizeDelta,
			Diff:          diff,
		})
		if progress != nil {
			progress(i+1, len(paths), path)
		}
	}

	return &ChangeBundle{
		ChangeInfo: raw,
		Project:    detail.Project,
		Revision:   revisionSHA,
		Patchset:   revisionRaw,
		Files:      files,
	}, nil
}

// PatchsetDiff compares two patchsets of a change and returns the diff of
// every file that actually changed between them. filePath, when non-empty,
// restricts the result to the exact path or a doublestar glob match.
func (c *Client) PatchsetDiff(ctx context.Context, changeID, basePatchset, targetPatchset, filePath string) (*PatchsetDiff, error) {
	raw, err := c.GetChangeDetail(ctx, changeID, diffDetailOptions)
	if err != nil {
		return nil, err
	}

	var detail changeDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, upstreamError("decoding change %s detail: %v", changeID, err)
	}

	baseSHA, _, _, err := resolveRevision(&detail, basePatchset)
	if err != nil {
		return nil, err
	}
	targetSHA, _, _, err := resolveRevision(&detail, targetPatchset)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("changes/%s/revisions/%s/files?base=%s",
		url.PathEscape(changeID), url.PathEscape(targetSHA), url.QueryEscape(baseSHA))
	var changed map[string]FileInfo
	if err := c.get(ctx, endpoint, &changed); err != nil {
		return nil, err
	}

	files := make(map[string]FileDiff)
	for _, path := range sortedFilePaths(changed, filePath) {
		info := changed[path]
		// Files Gerrit reports as unchanged between the revisions are noise.
		if info.Status == "SAME" {
			continue
		}
		diff, err := c.fileDiff(ctx, changeID, targetSHA, path, baseSHA)
		if err != nil {
			return nil, err
		}
		files[path] = FileDiff{
			Status:        fileStatus(info),
			LinesInserted: info.LinesInserted,
			LinesDeleted:  info.LinesDeleted,
			SizeDelta:     info.SizeDelta,
			Diff:          diff,
		}
	}

	return &PatchsetDiff{
		BaseRevision:   baseSHA,
		TargetRevision: targetSHA,
		BasePatchset:   basePatchset,
		TargetPatchset: targetPatchset,
		Files:          files,
	}, nil
}

// fileDiff fetches the diff of a single file within a revision, optionally
// against a base revision. The diff content is passed through opaquely.
func (c *Client) fileDiff(ctx context.Context, changeID, revision, path, base string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("changes/%s/revisions/%s/files/%s/diff",
		url.PathEscape(changeID), url.PathEscape(revision), url.PathEscape(path))
	if base != "" {
		endpoint += "?base=" + url.QueryEscape(base)
	}
	var diff json.RawMessage
	if err := c.get(ctx, endpoint, &diff); err != nil {
		return nil, err
	}
	return diff, nil
}

// resolveRevision maps a patchset number onto its revision SHA. An empty
// patchset selects the current revision. The error for a missing patchset
// lists the available patchset numbers.
func resolveRevision(detail *changeDetail, patchset string) (string, *RevisionInfo, json.RawMessage, error) {
	pick := func(sha string) (string, *RevisionInfo, json.RawMessage, error) {
		raw, ok := detail.Revisions[sha]
		if !ok {
			return "", nil, nil, notFoundError("revision %s not present in change detail", sha)
		}
		var rev RevisionInfo
		if err := json.Unmarshal(raw, &rev); err != nil {
			return "", nil, nil, upstreamError("decoding revision %s: %v", sha, err)
		}
		return sha, &rev, raw, nil
	}

	if patchset == "" {
		if detail.CurrentRevision == "" {
			return "", nil, nil, upstreamError("change detail carries no current revision")
		}
		return pick(detail.CurrentRevision)
	}

	var available []int
	for sha, raw := range detail.Revisions {
		var rev RevisionInfo
		if err := json.Unmarshal(raw, &rev); err != nil {
			continue
		}
		if fmt.Sprint(rev.Number) == patchset {
			return pick(sha)
		}
		available = append(available, rev.Number)
	}

	sort.Ints(available)
	nums := make([]string, len(available))
	for i, n := range available {
		nums[i] = fmt.Sprint(n)
	}
	return "", nil, nil, notFoundError("patchset %s not found; available patchsets: %s",
		patchset, strings.Join(nums, ", "))
}

// sortedFilePaths returns the file paths of a revision in stable order,
// dropping the commit message pseudo-file and applying the optional filter.
func sortedFilePaths(files map[string]FileInfo, filter string) []string {
	paths := make([]string, 0, len(files))
	for path := range files {
		if path == commitMsgPath {
			continue
		}
		if !matchPath(filter, path) {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// matchPath reports whether path passes the filter: empty matches all,
// otherwise an exact path or a doublestar glob.
func matchPath(filter, path string) bool {
	if filter == "" || filter == path {
		return true
	}
	ok, err := doublestar.Match(filter, path)
	return err == nil && ok
}

// fileStatus normalizes Gerrit's file status, which is omitted for plain
// modifications.
func fileStatus(info FileInfo) string {
	if info.Status == "" {
		return "MODIFIED"
	}
	return info.Status
}
