package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sitewright/sitewright/internal/project"
	"github.com/sitewright/sitewright/internal/store"
)

// handleGenerateSite creates a new project from a prompt.
func (s *Server) handleGenerateSite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.generator == nil {
		return mcp.NewToolResultError("no LLM provider configured; set an API key and restart the MCP server"), nil
	}

	prompt, err := request.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: prompt"), nil
	}
	name := request.GetString("name", "untitled")

	p, fs, err := s.generator.Generate(ctx, name, prompt)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Created project %s (%q) with %d file(s):\n", p.ID, p.Name, fs.Len())
	writeFileList(&sb, fs)
	return mcp.NewToolResultText(sb.String()), nil
}

// handleModifySite updates an existing project's site.
func (s *Server) handleModifySite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.generator == nil {
		return mcp.NewToolResultError("no LLM provider configured; set an API key and restart the MCP server"), nil
	}

	projectID, err := request.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: project_id"), nil
	}
	prompt, err := request.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: prompt"), nil
	}

	fs, err := s.generator.Modify(ctx, projectID, prompt)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("modification failed: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Updated project %s; site now has %d file(s):\n", projectID, fs.Len())
	writeFileList(&sb, fs)
	return mcp.NewToolResultText(sb.String()), nil
}

// handleListProjects lists all stored projects.
func (s *Server) handleListProjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := s.store.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing projects failed: %v", err)), nil
	}
	if len(projects) == 0 {
		return mcp.NewToolResultText("No projects yet. Use generate_site to create one."), nil
	}

	return mcp.NewToolResultText(formatProjects(projects)), nil
}

// handlePreviewPage composes one page of a project into a full document.
func (s *Server) handlePreviewPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := request.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: project_id"), nil
	}
	target := request.GetString("target", "")

	fs, err := s.store.FileSet(ctx, projectID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading project failed: %v", err)), nil
	}

	res := s.composer.Compose(fs, target)
	if res.Empty() {
		return mcp.NewToolResultError("project has no previewable content"), nil
	}

	return mcp.NewToolResultText(res.Document), nil
}

func writeFileList(sb *strings.Builder, fs *project.FileSet) {
	for _, f := range fs.Files {
		fmt.Fprintf(sb, "- %s (%s, %d bytes)\n", f.Path, f.Kind, f.Size)
	}
}

func formatProjects(projects []store.Project) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d project(s):\n", len(projects))
	for _, p := range projects {
		prompt := p.Prompt
		if len(prompt) > 80 {
			prompt = prompt[:80] + "..."
		}
		fmt.Fprintf(&sb, "\n- %s\n  id: %s\n  prompt: %s\n  updated: %s\n",
			p.Name, p.ID, prompt, p.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return sb.String()
}
