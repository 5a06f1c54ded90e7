package mcp

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bull/docsearch-mcp/internal/search"
)

// Server wraps the MCP server with dependencies.
type Server struct {
	server  *mcp.Server
	manager *search.Manager
	logger  *slog.Logger
}

// Config holds server dependencies.
type Config struct {
	Manager *search.Manager
	Logger  *slog.Logger
	// Version is reported to clients; defaults to "dev".
	Version string
}

// NewServer creates a configured MCP server with tools registered.
func NewServer(cfg *Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "docsearch",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_docs",
		Description: "Search the indexed documents by keyword. Returns ranked documents with a snippet, the most relevant sections and the matched keywords. Use fetch_doc to get full content.",
	}, makeSearchHandler(cfg.Manager))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "fetch_doc",
		Description: "Retrieve a document by id. Returns its full content, title, summary and keywords.",
	}, makeFetchHandler(cfg.Manager))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_docs",
		Description: "List all indexed documents with their id, title and type.",
	}, makeListHandler(cfg.Manager))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "similar_docs",
		Description: "Find documents related to a given document by shared keywords and title similarity.",
	}, makeSimilarHandler(cfg.Manager))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_index_status",
		Description: "Get the current status of the document index: document and keyword counts, document types and last index time.",
	}, makeStatusHandler(cfg.Manager))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reindex",
		Description: "Rebuild the index from the documents directory. The previous index stays in service if the rebuild fails.",
	}, makeReindexHandler(cfg.Manager))

	return &Server{
		server:  server,
		manager: cfg.Manager,
		logger:  logger,
	}
}

// Run starts the server with stdio transport (blocks until client disconnects).
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("Starting MCP server", "transport", "stdio", "dir", s.manager.Dir())
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server instance.
// Used by transport handlers that need to wrap the server.
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}
