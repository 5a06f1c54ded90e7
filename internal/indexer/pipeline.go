package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bull/docsearch-mcp/internal/document"
	"github.com/bull/docsearch-mcp/internal/loader"
)

// IndexResult contains statistics about an indexing operation.
type IndexResult struct {
	Generation  string
	TotalFiles  int
	IndexedDocs int
	Skipped     []string
	FailedDocs  []FailedDoc
	Duration    time.Duration
}

// FailedDoc represents a file that failed to load.
type FailedDoc struct {
	Path   string
	Reason string
}

// Pipeline turns a directory into an Index: load, process, index.
type Pipeline struct {
	loader    *loader.Loader
	processor *document.Processor
	logger    *slog.Logger
}

// NewPipeline creates a new indexing pipeline with the given components.
func NewPipeline(l *loader.Loader, p *document.Processor, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		loader:    l,
		processor: p,
		logger:    logger,
	}
}

// Build loads every supported file in dir and returns a fresh Index. It
// returns an error only when dir itself cannot be listed or ctx is done;
// unreadable files are reported in the result.
func (p *Pipeline) Build(ctx context.Context, dir string) (*Index, *IndexResult, error) {
	start := time.Now()

	loaded, err := p.loader.Load(ctx, dir)
	if err != nil {
		return nil, nil, fmt.Errorf("load documents: %w", err)
	}
	p.logger.Info("Starting indexing", "dir", dir, "files", loaded.Total)

	docs := make([]*document.Document, 0, len(loaded.Files))
	for _, f := range loaded.Files {
		doc := p.processor.Process(f.Name, f.Path, f.Content)
		p.logger.Debug("Processed document",
			"id", doc.ID,
			"chars", len([]rune(doc.Content)),
			"sections", len(doc.Sections),
			"keywords", len(doc.Keywords),
		)
		docs = append(docs, doc)
	}

	result := &IndexResult{
		Generation:  uuid.New().String(),
		TotalFiles:  loaded.Total,
		IndexedDocs: len(docs),
		Skipped:     loaded.Skipped,
	}
	for _, f := range loaded.Failed {
		result.FailedDocs = append(result.FailedDocs, FailedDoc{Path: f.Path, Reason: f.Reason})
	}

	idx := NewIndex(result.Generation, time.Now(), docs)
	result.Duration = time.Since(start)

	p.logger.Info("Indexing complete",
		"generation", result.Generation,
		"documents", result.IndexedDocs,
		"keywords", idx.KeywordCount(),
		"skipped", len(result.Skipped),
		"failed", len(result.FailedDocs),
		"duration", result.Duration,
	)
	return idx, result, nil
}
