package gerrit

import "encoding/json"

// The types below cover only the REST fields the adapter itself inspects.
// Payloads handed back to the caller keep the upstream JSON untouched via
// json.RawMessage, so unmapped Gerrit fields are never dropped.

// AccountInfo identifies a Gerrit account.
type AccountInfo struct {
	AccountID int    `json:"_account_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
}

// FileInfo describes one file of a revision as Gerrit reports it.
type FileInfo struct {
	Status        string `json:"status,omitempty"`
	OldPath       string `json:"old_path,omitempty"`
	LinesInserted int    `json:"lines_inserted,omitempty"`
	LinesDeleted  int    `json:"lines_deleted,omitempty"`
	SizeDelta     int    `json:"size_delta,omitempty"`
}

// RevisionInfo describes one patchset of a change.
type RevisionInfo struct {
	Number  int                 `json:"_number"`
	Ref     string              `json:"ref,omitempty"`
	Kind    string              `json:"kind,omitempty"`
	Created string              `json:"created,omitempty"`
	Files   map[string]FileInfo `json:"files,omitempty"`
}

// changeDetail is the navigational view of a change detail response used to
// resolve patchsets. Revisions stay raw so the full revision JSON can be
// returned verbatim in bundles.
type changeDetail struct {
	Project         string                     `json:"project"`
	CurrentRevision string                     `json:"current_revision"`
	Revisions       map[string]json.RawMessage `json:"revisions"`
}

// CommentInput is a draft comment carried inside a ReviewInput.
type CommentInput struct {
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Side    string `json:"side,omitempty"`
}

// ReviewInput is the body of a set-review call.
type ReviewInput struct {
	Message  string                    `json:"message,omitempty"`
	Labels   map[string]int            `json:"labels,omitempty"`
	Comments map[string][]CommentInput `json:"comments,omitempty"`
}

// ReviewResult is Gerrit's confirmation of a set-review call.
type ReviewResult struct {
	Labels map[string]int `json:"labels,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// ReviewerInput is the body of an add-reviewer call.
type ReviewerInput struct {
	Reviewer string `json:"reviewer"`
	State    string `json:"state,omitempty"`
}

// AddReviewerResult is Gerrit's confirmation of an add-reviewer call.
type AddReviewerResult struct {
	Input     string          `json:"input,omitempty"`
	Reviewers json.RawMessage `json:"reviewers,omitempty"`
	CCs       json.RawMessage `json:"ccs,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// FileDiff is the adapter-assembled view of one changed file: the revision's
// file stats plus the raw diff content. Path is set in bundle lists and left
// empty when the diff is keyed by path in a map.
type FileDiff struct {
	Path          string          `json:"path,omitempty"`
	Status        string          `json:"status"`
	LinesInserted int             `json:"lines_inserted"`
	LinesDeleted  int             `json:"lines_deleted"`
	SizeDelta     int             `json:"size_delta"`
	Diff          json.RawMessage `json:"diff"`
}

// ChangeBundle is the result of fetching a change with its diffs: the raw
// change detail plus per-file diffs of one patchset.
type ChangeBundle struct {
	ChangeInfo json.RawMessage `json:"change_info"`
	Project    string          `json:"project"`
	Revision   string          `json:"revision"`
	Patchset   json.RawMessage `json:"patchset"`
	Files      []FileDiff      `json:"files"`
}

// PatchsetDiff is the result of comparing two patchsets of a change.
type PatchsetDiff struct {
	BaseRevision   string              `json:"base_revision"`
	TargetRevision string              `json:"target_revision"`
	BasePatchset   string              `json:"base_patchset"`
	TargetPatchset string              `json:"target_patchset"`
	Files          map[string]FileDiff `json:"files"`
}

// CloneInfo carries the clone URL derived from a change URL.
type CloneInfo struct {
	FullCloneURL string `json:"full_clone_url"`
}
