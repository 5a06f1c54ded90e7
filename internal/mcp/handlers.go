package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bull/docsearch-mcp/internal/document"
	"github.com/bull/docsearch-mcp/internal/search"
)

// makeSearchHandler creates the search_docs tool handler.
// An empty result list is a normal answer; a missing index is an error.
func makeSearchHandler(m *search.Manager) func(
	context.Context, *mcp.CallToolRequest, SearchDocsInput,
) (*mcp.CallToolResult, SearchDocsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchDocsInput) (
		*mcp.CallToolResult, SearchDocsOutput, error,
	) {
		engine, err := m.Engine(ctx)
		if err != nil {
			return nil, SearchDocsOutput{}, fmt.Errorf("index not available: %w", err)
		}

		results, err := engine.Search(input.Query, input.MaxResults)
		if err != nil {
			return nil, SearchDocsOutput{}, fmt.Errorf("search failed: %w", err)
		}

		out := make([]SearchResult, 0, len(results))
		for _, r := range results {
			out = append(out, SearchResult{
				ID:               r.Document.ID,
				Title:            r.Document.Title,
				Type:             string(r.Document.Type),
				Score:            r.Score,
				Snippet:          r.Snippet,
				RelevantSections: nonNil(r.RelevantSections),
				MatchedKeywords:  nonNil(r.MatchedKeywords),
			})
		}

		if len(out) == 0 {
			return nil, SearchDocsOutput{
				Results: out,
				Message: "No matching documents found. Try broader search terms.",
			}, nil
		}
		return nil, SearchDocsOutput{Results: out}, nil
	}
}

// makeFetchHandler creates the fetch_doc tool handler.
func makeFetchHandler(m *search.Manager) func(
	context.Context, *mcp.CallToolRequest, FetchDocInput,
) (*mcp.CallToolResult, FetchDocOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input FetchDocInput) (
		*mcp.CallToolResult, FetchDocOutput, error,
	) {
		engine, err := m.Engine(ctx)
		if err != nil {
			return nil, FetchDocOutput{}, fmt.Errorf("index not available: %w", err)
		}

		doc, ok := engine.Document(input.ID)
		if !ok {
			return nil, FetchDocOutput{ID: input.ID, Found: false}, nil
		}
		return nil, FetchDocOutput{
			ID:       doc.ID,
			Title:    doc.Title,
			Type:     string(doc.Type),
			Content:  doc.Content,
			Summary:  doc.Summary,
			Keywords: doc.Keywords,
			Found:    true,
		}, nil
	}
}

// makeListHandler creates the list_docs tool handler.
func makeListHandler(m *search.Manager) func(
	context.Context, *mcp.CallToolRequest, ListDocsInput,
) (*mcp.CallToolResult, ListDocsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListDocsInput) (
		*mcp.CallToolResult, ListDocsOutput, error,
	) {
		engine, err := m.Engine(ctx)
		if err != nil {
			return nil, ListDocsOutput{}, fmt.Errorf("index not available: %w", err)
		}

		docs := infos(engine.Documents())
		return nil, ListDocsOutput{Documents: docs, Count: len(docs)}, nil
	}
}

// makeSimilarHandler creates the similar_docs tool handler.
func makeSimilarHandler(m *search.Manager) func(
	context.Context, *mcp.CallToolRequest, SimilarDocsInput,
) (*mcp.CallToolResult, SimilarDocsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SimilarDocsInput) (
		*mcp.CallToolResult, SimilarDocsOutput, error,
	) {
		engine, err := m.Engine(ctx)
		if err != nil {
			return nil, SimilarDocsOutput{}, fmt.Errorf("index not available: %w", err)
		}
		if _, ok := engine.Document(input.ID); !ok {
			return nil, SimilarDocsOutput{}, fmt.Errorf("%w: %s", search.ErrDocumentNotFound, input.ID)
		}

		docs := infos(engine.SimilarDocuments(input.ID, input.MaxResults))
		if len(docs) == 0 {
			return nil, SimilarDocsOutput{
				Documents: docs,
				Message:   "No related documents found.",
			}, nil
		}
		return nil, SimilarDocsOutput{Documents: docs}, nil
	}
}

// makeStatusHandler creates the get_index_status tool handler. It reports the
// current state without triggering a build.
func makeStatusHandler(m *search.Manager) func(
	context.Context, *mcp.CallToolRequest, StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input StatusInput) (
		*mcp.CallToolResult, StatusOutput, error,
	) {
		out := StatusOutput{
			DocumentsDir:  m.Dir(),
			DocumentTypes: map[string]int{},
		}
		engine, ok := m.Current()
		if !ok {
			return nil, out, nil
		}

		stats := engine.Stats()
		out.IsIndexed = stats.IsIndexed
		out.TotalDocuments = stats.TotalDocuments
		out.TotalKeywords = stats.TotalKeywords
		out.Generation = stats.Generation
		for t, n := range stats.DocumentTypes {
			out.DocumentTypes[string(t)] = n
		}
		if last := m.LastIndexTime(); !last.IsZero() {
			out.LastIndexTime = last.UTC().Format(time.RFC3339)
		}
		return nil, out, nil
	}
}

// makeReindexHandler creates the reindex tool handler.
func makeReindexHandler(m *search.Manager) func(
	context.Context, *mcp.CallToolRequest, ReindexInput,
) (*mcp.CallToolResult, ReindexOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ReindexInput) (
		*mcp.CallToolResult, ReindexOutput, error,
	) {
		engine, err := m.ForceReindex(ctx)
		if err != nil {
			return nil, ReindexOutput{}, fmt.Errorf("reindex failed: %w", err)
		}
		stats := engine.Stats()
		return nil, ReindexOutput{
			TotalDocuments: stats.TotalDocuments,
			Generation:     stats.Generation,
			IndexedAt:      stats.IndexedAt,
		}, nil
	}
}

func infos(docs []*document.Document) []DocumentInfo {
	out := make([]DocumentInfo, 0, len(docs))
	for _, d := range docs {
		out = append(out, DocumentInfo{ID: d.ID, Title: d.Title, Type: string(d.Type)})
	}
	return out
}

// nonNil keeps JSON output as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
