// Package mcp exposes course search over the Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"coursegraph/application/queries"
	querybus "coursegraph/application/queries/bus"
	pkgerrors "coursegraph/pkg/errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Defaults fills in omitted tool arguments
type Defaults struct {
	Campus   string
	Depth    int
	MaxDepth int
}

// Server adapts the query bus to MCP tools.
type Server struct {
	mcpServer *server.MCPServer
	queryBus  *querybus.QueryBus
	defaults  Defaults
	logger    *zap.Logger
}

// NewServer creates a new MCP server instance.
func NewServer(version string, queryBus *querybus.QueryBus, defaults Defaults, logger *zap.Logger) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer("coursegraph", version),
		queryBus:  queryBus,
		defaults:  defaults,
		logger:    logger,
	}
	s.registerTools()
	return s
}

// Serve starts the MCP server on stdio.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool(
		"search_course",
		mcp.WithDescription("Prerequisite graph, canonical record and cross-campus equivalents for a course."),
		mcp.WithString("course_id", mcp.Required(), mcp.Description("Course code, e.g. 'ECS 36B'")),
		mcp.WithString("campus", mcp.Description(fmt.Sprintf("Campus code (default %s)", s.defaults.Campus))),
		mcp.WithNumber("depth", mcp.Description("Prerequisite depth to expand")),
		mcp.WithBoolean("full", mcp.Description("Ignore depth and expand the whole ancestry")),
	), s.handleSearchCourse)

	s.mcpServer.AddTool(mcp.NewTool(
		"campus_graph_stats",
		mcp.WithDescription("Node and edge counts of a campus prerequisite graph."),
		mcp.WithString("campus", mcp.Required(), mcp.Description("Campus code")),
	), s.handleGraphStats)
}

func (s *Server) handleSearchCourse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	campus := mcp.ParseString(request, "campus", s.defaults.Campus)
	if campus == "" {
		campus = s.defaults.Campus
	}
	courseID := mcp.ParseString(request, "course_id", "")
	depth := mcp.ParseInt(request, "depth", s.defaults.Depth)
	full := mcp.ParseBoolean(request, "full", false)

	query := queries.NewSearchCourseQuery(campus, courseID, depth, full, s.defaults.MaxDepth)
	return s.ask(ctx, query)
}

func (s *Server) handleGraphStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := queries.NewGetCampusGraphStatsQuery(mcp.ParseString(request, "campus", ""))
	return s.ask(ctx, query)
}

// ask reports query failures as tool errors so the client can show them
func (s *Server) ask(ctx context.Context, query querybus.Query) (*mcp.CallToolResult, error) {
	result, err := s.queryBus.Ask(ctx, query)
	if err != nil {
		if appErr := pkgerrors.GetAppError(err); appErr != nil {
			if appErr.Type == pkgerrors.ErrorTypeInternal {
				s.logger.Error("MCP tool failed", zap.Error(err))
			}
			return mcp.NewToolResultError(appErr.Message), nil
		}
		s.logger.Error("MCP tool failed", zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
