package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jkrogh/fokus/pkg/period"
	"github.com/jkrogh/fokus/pkg/reflection"
)

// ReflectionsTool handles the get_reflections MCP tool.
type ReflectionsTool struct {
	reflections *reflection.Service
}

// NewReflectionsTool creates a ReflectionsTool.
func NewReflectionsTool(reflections *reflection.Service) *ReflectionsTool {
	return &ReflectionsTool{reflections: reflections}
}

// Definition returns the MCP tool definition for registration.
func (t *ReflectionsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_reflections",
		mcp.WithDescription(
			"List stored reflections, optionally filtered by year and period "+
				"type, newest-path-first within the vault layout. Each entry "+
				"contains the question/answer sections and the completion "+
				"snapshot taken when the reflection was created.",
		),
		mcp.WithNumber("year",
			mcp.Description("Only reflections for this year"),
		),
		mcp.WithString("type",
			mcp.Description("Only reflections of this period type"),
			mcp.Enum("yearly", "quarterly", "monthly", "weekly"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of reflections to return"),
		),
	)
}

// Handle processes the get_reflections tool call.
func (t *ReflectionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	year := int(req.GetFloat("year", 0))
	limit := int(req.GetFloat("limit", 0))
	pt := period.Type(req.GetString("type", ""))
	if pt != "" && !pt.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown period type %q", pt)), nil
	}

	docs, err := t.reflections.List(year, pt, limit)
	if err != nil {
		return nil, fmt.Errorf("listing reflections: %w", err)
	}

	type entry struct {
		Path        string                 `json:"path"`
		Frontmatter map[string]interface{} `json:"frontmatter"`
		Sections    []reflection.Section   `json:"sections"`
	}
	out := make([]entry, 0, len(docs))
	for _, doc := range docs {
		out = append(out, entry{
			Path:        doc.Path,
			Frontmatter: doc.Frontmatter,
			Sections:    reflection.ParseSections(doc.Body),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding reflections: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
