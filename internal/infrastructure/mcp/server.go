package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/hashdraft/pkg/domain/ai"
	"github.com/felixgeelhaar/hashdraft/pkg/domain/draft"
)

// Drafter is the draft workflow as seen by MCP tools.
type Drafter interface {
	Draft(ctx context.Context, prompt string) draft.Result
	ProviderID() string
}

type Server struct {
	mcpServer *mcp.Server
	drafter   Drafter
}

var (
	Version     = "dev"
	BuildCommit = "unknown"
	BuildDate   = "unknown"
)

// mcpErr returns a user-friendly error for MCP clients.
// Provider details stay in the server log.
func mcpErr(friendly string) error {
	return fmt.Errorf("%s", friendly)
}

func NewServer(drafter Drafter) *Server {
	info := mcp.ServerInfo{
		Name:    "hashdraft",
		Version: Version,
	}

	s := &Server{
		mcpServer: mcp.NewServer(info,
			mcp.WithTitle("hashdraft MCP Server"),
			mcp.WithDescription("hashdraft drafts tweets from hashtags with a text-completion model."),
			mcp.WithBuildInfo(BuildCommit, BuildDate),
			mcp.WithInstructions("Call hashdraft_draft with one or more hashtags to get a drafted tweet."),
		),
		drafter: drafter,
	}

	s.registerTools()
	return s
}

type DraftArgs struct {
	Prompt string `json:"prompt" jsonschema:"description=Hashtags to draft a tweet from, e.g. '#golang #gophers'"`
}

type DraftResult struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func (s *Server) registerTools() {
	// Tool: hashdraft_draft
	s.mcpServer.Tool("hashdraft_draft").
		Description("Draft a tweet that includes the given hashtags").
		Handler(s.handleDraft)
}

func (s *Server) handleDraft(ctx context.Context, args DraftArgs) (any, error) {
	prompt := draft.Compose([]string{args.Prompt})
	if prompt == "" {
		return nil, mcpErr("Provide at least one hashtag in 'prompt'.")
	}

	res := s.drafter.Draft(ctx, prompt)
	if !res.OK() {
		return nil, mcpErr(friendlyFailure(res.Kind()))
	}
	return DraftResult{ID: res.ID, Text: strings.TrimSpace(res.Text)}, nil
}

func friendlyFailure(kind ai.Kind) string {
	switch kind {
	case ai.KindMissingCredential:
		return "Drafting is disabled: no API credential is configured. Set OPENAI_API_KEY for the server."
	case ai.KindTransportFailure:
		return "Could not reach the completion service. Try again shortly."
	case ai.KindProviderRejected:
		return "The completion service rejected the request. Check the server's API key and quota."
	default:
		return "The completion service returned an unusable response."
	}
}

func (s *Server) StartStdio() error {
	return s.ServeStdio(context.Background())
}

func (s *Server) StartHTTP(addr string) error {
	return s.ServeHTTP(context.Background(), addr)
}

func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr, mcp.WithDefaultCORS())
}
