package mcp

import "github.com/mark3labs/mcp-go/mcp"

// generateLayoutTool defines the generate_layout MCP tool.
var generateLayoutTool = mcp.NewTool("generate_layout",
	mcp.WithDescription("Generate a self-contained HTML poster or card for a theme. Returns the job; with wait=true, blocks until the job completes or fails."),
	mcp.WithString("theme",
		mcp.Required(),
		mcp.Description("What the layout is about, e.g. \"Launch poster for a new phone\""),
	),
	mcp.WithString("content_type",
		mcp.Required(),
		mcp.Description("Kind of layout"),
		mcp.Enum("poster", "card"),
	),
	mcp.WithString("style",
		mcp.Description("Whether the layout includes an image upload module (default with-image-upload)"),
		mcp.Enum("with-image-upload", "without-image-upload"),
	),
	mcp.WithBoolean("web_search",
		mcp.Description("Let the model ground the content with web search"),
	),
	mcp.WithString("language",
		mcp.Description("Caption language (default: the saved preference)"),
		mcp.Enum("zh", "en"),
	),
	mcp.WithBoolean("wait",
		mcp.Description("Wait for the job to finish and return the document"),
	),
)

// listJobsTool defines the list_jobs MCP tool.
var listJobsTool = mcp.NewTool("list_jobs",
	mcp.WithDescription("List generation jobs, newest first."),
	mcp.WithString("status",
		mcp.Description("Only return jobs with this status"),
		mcp.Enum("pending", "completed", "failed"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of jobs to return (default 20)"),
	),
)

// getJobTool defines the get_job MCP tool.
var getJobTool = mcp.NewTool("get_job",
	mcp.WithDescription("Get one generation job by id."),
	mcp.WithNumber("id",
		mcp.Required(),
		mcp.Description("Job id as returned by generate_layout or list_jobs"),
	),
	mcp.WithBoolean("include_html",
		mcp.Description("Include the generated HTML document (default true)"),
	),
)
