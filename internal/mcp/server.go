// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the onboarding pipeline as MCP tools for AI coding assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/valter-silva-au/onboard/internal/core"
	"github.com/valter-silva-au/onboard/internal/integration"
	"github.com/valter-silva-au/onboard/pkg/models"
)

// Server wraps the onboarding pipeline and exposes it as MCP tools.
type Server struct {
	server  *gomcp.Server
	session integration.ChatSession
	store   core.GuideStore
	timeout time.Duration
}

// NewServer creates a new MCP server running the pipeline over the given
// session and guide store.
func NewServer(session integration.ChatSession, store core.GuideStore, timeout time.Duration, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		session: session,
		store:   store,
		timeout: timeout,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "onboard", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio transport, blocking until the client
// disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type scanInput struct {
	Owner string `json:"owner" jsonschema:"required,the repository owner (e.g. microsoft)"`
	Repo  string `json:"repo" jsonschema:"required,the repository name (e.g. vscode)"`
}

type generateInput struct {
	Owner string `json:"owner" jsonschema:"required,the repository owner (e.g. microsoft)"`
	Repo  string `json:"repo" jsonschema:"required,the repository name (e.g. vscode)"`
	Team  string `json:"team,omitempty" jsonschema:"the team the new member is joining"`
	Name  string `json:"name,omitempty" jsonschema:"the name of the new team member"`
}

type generateOutput struct {
	Steps       []models.StepOutcome `json:"steps"`
	Errors      []models.StepError   `json:"errors"`
	GuidePath   string               `json:"guide_path,omitempty"`
	GuideLength int                  `json:"guide_length"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "scan_repository",
		Description: "Analyze a GitHub repository: structure, tech stack, documentation summaries, PRs, issues, and discussions. Returns the full analysis record.",
	}, s.handleScan)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "generate_guide",
		Description: "Run the full onboarding pipeline and write a Markdown onboarding guide. Returns the per-stage outcomes and the guide path.",
	}, s.handleGenerate)
}

// --- Tool handlers ---

func (s *Server) handleScan(ctx context.Context, _ *gomcp.CallToolRequest, input scanInput) (*gomcp.CallToolResult, models.RepositoryAnalysis, error) {
	if input.Owner == "" || input.Repo == "" {
		return errorResult("owner and repo are required"), models.RepositoryAnalysis{}, nil
	}

	collector := core.NewRepoCollector(s.session, s.timeout)
	analysis, err := collector.Collect(ctx, input.Owner, input.Repo)
	if err != nil {
		return errorResult(fmt.Sprintf("scanning %s/%s: %s", input.Owner, input.Repo, err)), models.RepositoryAnalysis{}, nil
	}

	return nil, analysis, nil
}

func (s *Server) handleGenerate(ctx context.Context, _ *gomcp.CallToolRequest, input generateInput) (*gomcp.CallToolResult, generateOutput, error) {
	if input.Owner == "" || input.Repo == "" {
		return errorResult("owner and repo are required"), generateOutput{}, nil
	}

	params := core.Params{
		Owner:     input.Owner,
		Repo:      input.Repo,
		Team:      input.Team,
		Recipient: input.Name,
	}
	if params.Team == "" {
		params.Team = "engineering"
	}
	if params.Recipient == "" {
		params.Recipient = "New Team Member"
	}

	pipeline := core.NewPipeline(s.session, s.store, s.timeout, nil)
	result := pipeline.Run(ctx, params)

	out := generateOutput{
		Steps:  result.Steps,
		Errors: result.Errors,
	}
	if result.Guide != nil {
		out.GuidePath = result.Guide.OutputPath
		out.GuideLength = len(result.Guide.Content)
	}

	return nil, out, nil
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
