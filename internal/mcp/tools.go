package mcp

import "github.com/mark3labs/mcp-go/mcp"

// generateSiteTool defines the generate_site MCP tool.
var generateSiteTool = mcp.NewTool("generate_site",
	mcp.WithDescription("Generate a complete multi-page static website from a natural language description. Returns the project ID and the generated file list."),
	mcp.WithString("prompt",
		mcp.Required(),
		mcp.Description("Description of the website to build"),
	),
	mcp.WithString("name",
		mcp.Description("Project name (defaults to 'untitled')"),
	),
)

// modifySiteTool defines the modify_site MCP tool.
var modifySiteTool = mcp.NewTool("modify_site",
	mcp.WithDescription("Modify an existing generated website according to a natural language instruction. Returns the updated file list."),
	mcp.WithString("project_id",
		mcp.Required(),
		mcp.Description("ID of the project to modify"),
	),
	mcp.WithString("prompt",
		mcp.Required(),
		mcp.Description("Description of the change to make"),
	),
)

// listProjectsTool defines the list_projects MCP tool.
var listProjectsTool = mcp.NewTool("list_projects",
	mcp.WithDescription("List all stored website projects with their IDs, names and prompts."),
)

// previewPageTool defines the preview_page MCP tool.
var previewPageTool = mcp.NewTool("preview_page",
	mcp.WithDescription("Compose a project's page into a single self-contained HTML document, as the live preview would render it."),
	mcp.WithString("project_id",
		mcp.Required(),
		mcp.Description("ID of the project to preview"),
	),
	mcp.WithString("target",
		mcp.Description("Page path to compose (defaults to the entry page)"),
	),
)
