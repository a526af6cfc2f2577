package agent

import (
	"context"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jkrogh/fokus/pkg/db"
	"github.com/jkrogh/fokus/pkg/goal"
	"github.com/jkrogh/fokus/pkg/period"
	"github.com/jkrogh/fokus/pkg/vault"
)

// WriteGoalTool handles the write_goal MCP tool. It is destructive: the full
// body of the period's goal document is replaced.
type WriteGoalTool struct {
	goals *goal.Service
	repo  *db.Repository
}

// NewWriteGoalTool creates a WriteGoalTool.
func NewWriteGoalTool(goals *goal.Service, repo *db.Repository) *WriteGoalTool {
	return &WriteGoalTool{goals: goals, repo: repo}
}

// Definition returns the MCP tool definition for registration.
func (t *WriteGoalTool) Definition() mcp.Tool {
	return mcp.NewTool("write_goal",
		mcp.WithDescription(
			"Write the full body of a goal document for an explicit period. "+
				"Creates the document on first write; replaces the body on later "+
				"writes. Monthly and weekly bodies are checkbox task lists; "+
				"vision, yearly and quarterly bodies are focus-area documents.",
		),
		mcp.WithString("period",
			mcp.Required(),
			mcp.Description("Period type of the document"),
			mcp.Enum("vision", "yearly", "quarterly", "monthly", "weekly"),
		),
		mcp.WithNumber("year", mcp.Required(), mcp.Description("Calendar year")),
		mcp.WithNumber("quarter", mcp.Description("Quarter 1-4, required for quarterly")),
		mcp.WithNumber("month", mcp.Description("Month 1-12, required for monthly and weekly")),
		mcp.WithNumber("week", mcp.Description("ISO week number, required for weekly")),
		mcp.WithString("body", mcp.Required(), mcp.Description("Full markdown body of the document")),
	)
}

// Handle processes the write_goal tool call.
func (t *WriteGoalTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pt := period.Type(req.GetString("period", ""))
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

	if err := t.goals.Write(p, body); err != nil {
		return nil, fmt.Errorf("writing goal: %w", err)
	}
	if t.repo != nil {
		if err := t.repo.LogWrite(period.Path(p), vault.KindGoal, "agent"); err != nil {
			log.Printf("Failed to log agent write: %v", err)
		}
	}

	return mcp.NewToolResultText(fmt.Sprintf("Wrote %s (%s)", period.Path(p), p.Label)), nil
}
