// Package agent exposes the goal vault to conversational agents as MCP
// tools. Every tool is a thin wrapper over the core services; the core has
// no awareness of the agent.
package agent

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/jkrogh/fokus/pkg/db"
	"github.com/jkrogh/fokus/pkg/goal"
	"github.com/jkrogh/fokus/pkg/reflection"
)

// NewServer creates the MCP server with all vault tools registered.
func NewServer(version string, goals *goal.Service, reflections *reflection.Service, repo *db.Repository) *server.MCPServer {
	s := server.NewMCPServer(
		"fokus",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	currentTool := NewCurrentGoalsTool(goals)
	s.AddTool(currentTool.Definition(), currentTool.Handle)

	treeTool := NewGoalTreeTool(goal.NewTreeBuilder(goals.Store()))
	s.AddTool(treeTool.Definition(), treeTool.Handle)

	reflectionsTool := NewReflectionsTool(reflections)
	s.AddTool(reflectionsTool.Definition(), reflectionsTool.Handle)

	readTool := NewReadGoalTool(goals)
	s.AddTool(readTool.Definition(), readTool.Handle)

	writeGoalTool := NewWriteGoalTool(goals, repo)
	s.AddTool(writeGoalTool.Definition(), writeGoalTool.Handle)

	writeReflectionTool := NewWriteReflectionTool(reflections, repo)
	s.AddTool(writeReflectionTool.Definition(), writeReflectionTool.Handle)

	return s
}

// Serve runs the MCP server over stdio until the client disconnects.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
