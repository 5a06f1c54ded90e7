// Package mcp exposes the document search engine as Model Context Protocol
// tools.
package mcp

import "time"

// SearchDocsInput defines the input parameters for the search_docs tool.
type SearchDocsInput struct {
	// Query is the free-text search query.
	Query string `json:"query" jsonschema:"the search query, in any mix of Japanese and English"`
	// MaxResults is the maximum number of documents to return.
	MaxResults int `json:"max_results,omitempty" jsonschema:"maximum number of documents to return (default 5)"`
}

// SearchDocsOutput contains the search results.
type SearchDocsOutput struct {
	// Results is the list of matching documents, best first.
	Results []SearchResult `json:"results"`
	// Message provides informational context (e.g., "No matching documents found").
	Message string `json:"message,omitempty"`
}

// SearchResult represents a single ranked document.
type SearchResult struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Type             string   `json:"type"`
	Score            float64  `json:"score"`
	Snippet          string   `json:"snippet"`
	RelevantSections []string `json:"relevant_sections"`
	MatchedKeywords  []string `json:"matched_keywords"`
}

// FetchDocInput defines the input parameters for the fetch_doc tool.
type FetchDocInput struct {
	// ID is the document file name.
	ID string `json:"id" jsonschema:"the document id (its file name) as returned by search_docs or list_docs"`
}

// FetchDocOutput contains the retrieved document.
type FetchDocOutput struct {
	ID       string   `json:"id"`
	Title    string   `json:"title,omitempty"`
	Type     string   `json:"type,omitempty"`
	Content  string   `json:"content,omitempty"`
	Summary  string   `json:"summary,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	// Found indicates whether the document exists.
	Found bool `json:"found"`
}

// ListDocsInput defines the input parameters for the list_docs tool.
// This tool takes no parameters and lists all indexed documents.
type ListDocsInput struct{}

// ListDocsOutput contains every indexed document.
type ListDocsOutput struct {
	Documents []DocumentInfo `json:"documents"`
	Count     int            `json:"count"`
}

// DocumentInfo identifies an indexed document.
type DocumentInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// SimilarDocsInput defines the input parameters for the similar_docs tool.
type SimilarDocsInput struct {
	ID         string `json:"id" jsonschema:"the document id to find related documents for"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum number of related documents (default 3)"`
}

// SimilarDocsOutput lists documents related to the requested one.
type SimilarDocsOutput struct {
	Documents []DocumentInfo `json:"documents"`
	Message   string         `json:"message,omitempty"`
}

// StatusInput defines the input parameters for the get_index_status tool.
type StatusInput struct{}

// StatusOutput reports the state of the in-memory index.
type StatusOutput struct {
	IsIndexed      bool           `json:"is_indexed"`
	TotalDocuments int            `json:"total_documents"`
	TotalKeywords  int            `json:"total_keywords"`
	DocumentTypes  map[string]int `json:"document_types"`
	Generation     string         `json:"generation,omitempty"`
	DocumentsDir   string         `json:"documents_dir"`
	// LastIndexTime is when the index was last rebuilt, empty before the first build.
	LastIndexTime string `json:"last_index_time,omitempty"`
}

// ReindexInput defines the input parameters for the reindex tool.
type ReindexInput struct{}

// ReindexOutput reports the freshly built index.
type ReindexOutput struct {
	TotalDocuments int       `json:"total_documents"`
	Generation     string    `json:"generation"`
	IndexedAt      time.Time `json:"indexed_at"`
}
