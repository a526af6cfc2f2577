package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jkrogh/fokus/pkg/goal"
	"github.com/jkrogh/fokus/pkg/period"
)

// CurrentGoalsTool handles the get_current_goals MCP tool: the goal document
// of every period type containing today.
type CurrentGoalsTool struct {
	goals *goal.Service
}

// NewCurrentGoalsTool creates a CurrentGoalsTool.
func NewCurrentGoalsTool(goals *goal.Service) *CurrentGoalsTool {
	return &CurrentGoalsTool{goals: goals}
}

// Definition returns the MCP tool definition for registration.
func (t *CurrentGoalsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_current_goals",
		mcp.WithDescription(
			"Read the user's current goal documents across all period types "+
				"(vision, yearly, quarterly, monthly, weekly). Levels without a "+
				"document are reported as missing.",
		),
	)
}

// Handle processes the get_current_goals tool call.
func (t *CurrentGoalsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := time.Now()

	type entry struct {
		Period      period.Period          `json:"period"`
		Found       bool                   `json:"found"`
		Frontmatter map[string]interface{} `json:"frontmatter,omitempty"`
		Body        string                 `json:"body,omitempty"`
	}

	out := make(map[string]entry, 5)
	for _, pt := range []period.Type{period.Vision, period.Yearly, period.Quarterly, period.Monthly, period.Weekly} {
		p := period.Current(pt, now)
		doc, err := t.goals.Read(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s goal: %w", pt, err)
		}
		e := entry{Period: p, Found: doc != nil}
		if doc != nil {
			e.Frontmatter = doc.Frontmatter
			e.Body = doc.Body
		}
		out[string(pt)] = e
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding goals: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
