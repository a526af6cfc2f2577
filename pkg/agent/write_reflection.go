package agent

import (
	"context"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jkrogh/fokus/pkg/db"
	"github.com/jkrogh/fokus/pkg/period"
	"github.com/jkrogh/fokus/pkg/reflection"
	"github.com/jkrogh/fokus/pkg/vault"
)

// WriteReflectionTool handles the write_reflection MCP tool.
type WriteReflectionTool struct {
	reflections *reflection.Service
	repo        *db.Repository
}

// NewWriteReflectionTool creates a WriteReflectionTool.
func NewWriteReflectionTool(reflections *reflection.Service, repo *db.Repository) *WriteReflectionTool {
	return &WriteReflectionTool{reflections: reflections, repo: repo}
}

// Definition returns the MCP tool definition for registration.
func (t *WriteReflectionTool) Definition() mcp.Tool {
	return mcp.NewTool("write_reflection",
		mcp.WithDescription(
			"Write the full body of a reflection document for an explicit "+
				"period. On first write the frontmatter snapshots the linked "+
				"goal's completion stats; later writes replace only the body.",
		),
		mcp.WithString("period",
			mcp.Required(),
			mcp.Description("Period type of the reflection"),
			mcp.Enum("yearly", "quarterly", "monthly", "weekly"),
		),
		mcp.WithNumber("year", mcp.Required(), mcp.Description("Calendar year")),
		mcp.WithNumber("quarter", mcp.Description("Quarter 1-4, required for quarterly")),
		mcp.WithNumber("month", mcp.Description("Month 1-12, required for monthly and weekly")),
		mcp.WithNumber("week", mcp.Description("ISO week number, required for weekly")),
		mcp.WithString("body", mcp.Required(), mcp.Description("Full markdown body: '## question' headers followed by answers")),
	)
}

// Handle processes the write_reflection tool call.
func (t *WriteReflectionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pt := period.Type(req.GetString("period", ""))
	if pt == period.Vision {
		return mcp.NewToolResultError("vision periods have no reflections"), nil
	}
	body := req.GetString("body", "")

	p, err := period.FromFields(pt,
		int(req.GetFloat("year", 0)),
		int(req.GetFloat("quarter", 0)),
		int(req.GetFloat("month", 0)),
		int(req.GetFloat("week", 0)),
	)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := t.reflections.WriteBody(p, body); err != nil {
		return nil, fmt.Errorf("writing reflection: %w", err)
	}
	if t.repo != nil {
		if err := t.repo.LogWrite(period.ReflectionPath(p), vault.KindReflection, "agent"); err != nil {
			log.Printf("Failed to log agent write: %v", err)
		}
	}

	return mcp.NewToolResultText(fmt.Sprintf("Wrote %s (%s)", period.ReflectionPath(p), p.Label)), nil
}
