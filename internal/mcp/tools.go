package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listChangesTool defines the list_changes MCP tool.
var listChangesTool = mcp.NewTool("list_changes",
	mcp.WithDescription("Query Gerrit changes. Returns the change list JSON for a Gerrit search query."),
	mcp.WithString("query",
		mcp.Description("Gerrit change query (default \"status:open\"), e.g. \"status:open project:tools/demo\""),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of changes to return (default 25, max 100)"),
	),
	mcp.WithNumber("skip",
		mcp.Description("Number of changes to skip, for explicit paging"),
	),
	mcp.WithArray("options",
		mcp.Description("Gerrit output options (o= parameters), e.g. [\"LABELS\", \"DETAILED_ACCOUNTS\"]"),
		mcp.WithStringItems(),
	),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithOpenWorldHintAnnotation(true),
)

// getChangeTool defines the get_change MCP tool.
var getChangeTool = mcp.NewTool("get_change",
	mcp.WithDescription("Get the detail view of a single Gerrit change."),
	mcp.WithString("change_id",
		mcp.Required(),
		mcp.Description("The change number or full change ID"),
	),
	mcp.WithArray("options",
		mcp.Description("Gerrit output options (o= parameters)"),
		mcp.WithStringItems(),
	),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithOpenWorldHintAnnotation(true),
)

// fetchChangeTool defines the fetch_gerrit_change MCP tool.
var fetchChangeTool = mcp.NewTool("fetch_gerrit_change",
	mcp.WithDescription("Fetch a Gerrit change with the full diff of every file in a patchset. Returns change info, the resolved revision, and per-file diffs."),
	mcp.WithString("change_id",
		mcp.Required(),
		mcp.Description("The change number or full change ID"),
	),
	mcp.WithString("patchset_number",
		mcp.Description("Patchset number to fetch (defaults to the current patchset)"),
	),
	mcp.WithString("file_filter",
		mcp.Description("Restrict diffs to an exact file path or a glob like src/**"),
	),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithOpenWorldHintAnnotation(true),
)

// fetchPatchsetDiffTool defines the fetch_patchset_diff MCP tool.
var fetchPatchsetDiffTool = mcp.NewTool("fetch_patchset_diff",
	mcp.WithDescription("Fetch the differences between two patchsets of a Gerrit change. Only files that actually changed between the patchsets are included."),
	mcp.WithString("change_id",
		mcp.Required(),
		mcp.Description("The change number or full change ID"),
	),
	mcp.WithString("base_patchset",
		mcp.Required(),
		mcp.Description("The base patchset number to compare from"),
	),
	mcp.WithString("target_patchset",
		mcp.Required(),
		mcp.Description("The target patchset number to compare to"),
	),
	mcp.WithString("file_path",
		mcp.Description("Restrict the diff to an exact file path or a glob"),
	),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithOpenWorldHintAnnotation(true),
)

// listCommentsTool defines the list_comments MCP tool.
var listCommentsTool = mcp.NewTool("list_comments",
	mcp.WithDescription("List the published review comments of a Gerrit change, keyed by file."),
	mcp.WithString("change_id",
		mcp.Required(),
		mcp.Description("The change number or full change ID"),
	),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithOpenWorldHintAnnotation(true),
)

// listReviewersTool defines the list_reviewers MCP tool.
var listReviewersTool = mcp.NewTool("list_reviewers",
	mcp.WithDescription("List the reviewers of a Gerrit change."),
	mcp.WithString("change_id",
		mcp.Required(),
		mcp.Description("The change number or full change ID"),
	),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithOpenWorldHintAnnotation(true),
)

// repositoryPathTool defines the get_repository_path_from_change MCP tool.
var repositoryPathTool = mcp.NewTool("get_repository_path_from_change",
	mcp.WithDescription("Extract the full clone URL of the repository behind a Gerrit change URL."),
	mcp.WithString("change_url",
		mcp.Required(),
		mcp.Description("The change URL, e.g. https://gerrit.example.com/c/tools/demo/+/12345"),
	),
	mcp.WithString("clone_url_type",
		mcp.Description("Clone URL flavor to build"),
		mcp.Enum("http", "ssh"),
	),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithOpenWorldHintAnnotation(true),
)

// postReviewTool defines the post_review MCP tool.
var postReviewTool = mcp.NewTool("post_review",
	mcp.WithDescription("Post a review on a Gerrit change: a message, label votes, or both."),
	mcp.WithString("change_id",
		mcp.Required(),
		mcp.Description("The change number or full change ID"),
	),
	mcp.WithString("message",
		mcp.Description("Review message to post"),
	),
	mcp.WithObject("labels",
		mcp.Description("Label votes as an object of label name to integer score, e.g. {\"Code-Review\": 1}"),
	),
	mcp.WithString("patchset",
		mcp.Description("Patchset number to review (defaults to the current patchset)"),
	),
	mcp.WithOpenWorldHintAnnotation(true),
)

// addCommentTool defines the add_comment MCP tool.
var addCommentTool = mcp.NewTool("add_comment",
	mcp.WithDescription("Add a comment to a Gerrit change: a change message, or an inline comment when a file is given."),
	mcp.WithString("change_id",
		mcp.Required(),
		mcp.Description("The change number or full change ID"),
	),
	mcp.WithString("message",
		mcp.Required(),
		mcp.Description("The comment text"),
	),
	mcp.WithString("file",
		mcp.Description("File path for an inline comment"),
	),
	mcp.WithNumber("line",
		mcp.Description("Line number for an inline comment (requires file)"),
	),
	mcp.WithString("side",
		mcp.Description("Which side of the diff the inline comment refers to"),
		mcp.Enum("REVISION", "PARENT"),
	),
	mcp.WithString("patchset",
		mcp.Description("Patchset number to comment on (defaults to the current patchset)"),
	),
	mcp.WithOpenWorldHintAnnotation(true),
)

// addReviewerTool defines the add_reviewer MCP tool.
var addReviewerTool = mcp.NewTool("add_reviewer",
	mcp.WithDescription("Add a reviewer or CC to a Gerrit change."),
	mcp.WithString("change_id",
		mcp.Required(),
		mcp.Description("The change number or full change ID"),
	),
	mcp.WithString("reviewer",
		mcp.Required(),
		mcp.Description("Account identifier: username, email, or account id"),
	),
	mcp.WithString("state",
		mcp.Description("Whether to add as reviewer or CC (default REVIEWER)"),
		mcp.Enum("REVIEWER", "CC"),
	),
	mcp.WithOpenWorldHintAnnotation(true),
)
