package agent

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jkrogh/fokus/pkg/goal"
)

// ReadGoalTool handles the read_goal_file MCP tool: fetching one document by
// its vault-relative path.
type ReadGoalTool struct {
	goals *goal.Service
}

// NewReadGoalTool creates a ReadGoalTool.
func NewReadGoalTool(goals *goal.Service) *ReadGoalTool {
	return &ReadGoalTool{goals: goals}
}

// Definition returns the MCP tool definition for registration.
func (t *ReadGoalTool) Definition() mcp.Tool {
	return mcp.NewTool("read_goal_file",
		mcp.WithDescription(
			"Read one vault document by its relative path, e.g. "+
				"'goals/2025/q1/january/week-03.md' or 'vision/2027.md'. "+
				"Returns the raw markdown including the frontmatter block.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Vault-relative path of the document"),
		),
	)
}

// Handle processes the read_goal_file tool call.
func (t *ReadGoalTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	relPath := req.GetString("path", "")
	if strings.TrimSpace(relPath) == "" {
		return mcp.NewToolResultError("'path' is required"), nil
	}
	cleaned := path.Clean(relPath)
	if strings.HasPrefix(cleaned, "..") || path.IsAbs(cleaned) {
		return mcp.NewToolResultError(fmt.Sprintf("path %q escapes the vault", relPath)), nil
	}

	doc, err := t.goals.Store().Read(cleaned)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", cleaned, err)
	}
	if doc == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no document at %q", cleaned)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Path: %s\n\n", doc.Path)
	for k, v := range doc.Frontmatter {
		fmt.Fprintf(&b, "%s: %v\n", k, v)
	}
	b.WriteString("\n" + doc.Body)
	return mcp.NewToolResultText(b.String()), nil
}
