package mcp

import (
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// HTTPHandlerOptions configures the HTTP transport behavior.
type HTTPHandlerOptions struct {
	// Stateless disables session management. The search tools never call
	// back into the client, so stateless serving is safe.
	Stateless bool
}

// NewHTTPHandler creates an HTTP handler for the MCP server using Streamable
// HTTP transport. Mount it at /mcp; see NewMux.
func NewHTTPHandler(server *Server, opts *HTTPHandlerOptions) http.Handler {
	if opts == nil {
		opts = &HTTPHandlerOptions{}
	}
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server.MCPServer()
	}, &mcp.StreamableHTTPOptions{Stateless: opts.Stateless})
}

// NewMux routes the MCP endpoint, the health check and the landing page.
func NewMux(server *Server, opts *HTTPHandlerOptions) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/mcp", NewHTTPHandler(server, opts))
	mux.HandleFunc("/health", NewHealthHandler(server.manager))
	mux.HandleFunc("/", NewLandingHandler())
	return mux
}
