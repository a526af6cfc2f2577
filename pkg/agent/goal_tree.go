package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jkrogh/fokus/pkg/goal"
)

// GoalTreeTool handles the get_goal_tree MCP tool.
type GoalTreeTool struct {
	tree *goal.TreeBuilder
}

// NewGoalTreeTool creates a GoalTreeTool.
func NewGoalTreeTool(tree *goal.TreeBuilder) *GoalTreeTool {
	return &GoalTreeTool{tree: tree}
}

// Definition returns the MCP tool definition for registration.
func (t *GoalTreeTool) Definition() mcp.Tool {
	return mcp.NewTool("get_goal_tree",
		mcp.WithDescription(
			"Build the full goal tree for a year: vision (when present) down "+
				"through yearly, quarterly and monthly goals to weekly leaves, "+
				"with task progress aggregated per node.",
		),
		mcp.WithNumber("year",
			mcp.Required(),
			mcp.Description("The calendar year to build the tree for, e.g. 2025"),
		),
	)
}

// Handle processes the get_goal_tree tool call.
func (t *GoalTreeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	year := int(req.GetFloat("year", 0))
	if year < 1970 || year > 9999 {
		return mcp.NewToolResultError(fmt.Sprintf("'year' %d is out of range", year)), nil
	}

	tree, err := t.tree.Build(year)
	if err != nil {
		return nil, fmt.Errorf("building goal tree: %w", err)
	}

	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding tree: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
