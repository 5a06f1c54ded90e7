package mcp

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bull/docsearch-mcp/internal/search"
)

// HealthResponse represents the JSON response from the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Index     string `json:"index"`
	Documents int    `json:"documents"`
	Timestamp string `json:"timestamp"`
}

// ReadinessChecker reports whether a search engine is being served.
// search.Manager implements it.
type ReadinessChecker interface {
	Current() (*search.Engine, bool)
}

// NewHealthHandler creates an HTTP handler for the /health endpoint.
// It reports 503 until the first index build has succeeded.
func NewHealthHandler(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		w.Header().Set("Content-Type", "application/json")

		engine, ok := checker.Current()
		if !ok || !engine.IsReady() {
			response.Status = "unhealthy"
			response.Index = "not_indexed"
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(response)
			return
		}

		response.Status = "healthy"
		response.Index = "ready"
		response.Documents = engine.Stats().TotalDocuments
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}
