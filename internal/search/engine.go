// Package search serves ranked, snippeted results over an in-memory document
// index. Rebuilds produce a fresh index that replaces the current one
// atomically, so searches always see a complete generation.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bull/docsearch-mcp/internal/document"
	"github.com/bull/docsearch-mcp/internal/indexer"
	"github.com/bull/docsearch-mcp/internal/loader"
)

const (
	DefaultLimit     = 5
	DefaultCacheSize = 256
)

// Options configures an Engine. Zero values select defaults.
type Options struct {
	DefaultLimit  int
	SnippetLength int
	CacheSize     int // Negative disables the result cache
	Concurrency   int // Parallel file reads during a build
	Processor     document.ProcessorOptions
	Aliases       *AliasTable // nil selects DefaultAliasTable
	Logger        *slog.Logger
}

// Stats summarizes the current index.
type Stats struct {
	TotalDocuments int                   `json:"totalDocuments"`
	TotalKeywords  int                   `json:"totalKeywords"`
	IsIndexed      bool                  `json:"isIndexed"`
	DocumentTypes  map[document.Type]int `json:"documentTypes"`
	Generation     string                `json:"generation,omitempty"`
	IndexedAt      time.Time             `json:"indexedAt,omitzero"`
}

type cacheKey struct {
	generation string
	query      string
	limit      int
}

// Engine indexes a document directory and answers queries against it.
type Engine struct {
	pipeline     *indexer.Pipeline
	scorer       *scorer
	defaultLimit int
	cache        *lru.Cache[cacheKey, []Result]
	logger       *slog.Logger

	buildMu sync.Mutex // serializes IndexDocuments
	current atomic.Pointer[indexer.Index]
}

// NewEngine creates an engine with no index. Search fails with ErrNotIndexed
// until IndexDocuments succeeds.
func NewEngine(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	aliases := DefaultAliasTable()
	if opts.Aliases != nil {
		aliases = *opts.Aliases
	}
	limit := opts.DefaultLimit
	if limit <= 0 {
		limit = DefaultLimit
	}
	snippetLength := opts.SnippetLength
	if snippetLength <= 0 {
		snippetLength = DefaultSnippetLength
	}

	e := &Engine{
		pipeline: indexer.NewPipeline(
			loader.New(opts.Concurrency, logger),
			document.NewProcessor(opts.Processor),
			logger,
		),
		scorer: &scorer{
			aliases:       aliases.normalized(),
			snippetLength: snippetLength,
			logger:        logger,
		},
		defaultLimit: limit,
		logger:       logger,
	}

	size := opts.CacheSize
	if size == 0 {
		size = DefaultCacheSize
	}
	if size > 0 {
		cache, err := lru.New[cacheKey, []Result](size)
		if err != nil {
			// Only returned for non-positive sizes.
			panic(fmt.Sprintf("failed to create LRU cache: %v", err))
		}
		e.cache = cache
	}
	return e
}

// IndexDocuments rebuilds the index from dir. The new index replaces the
// current one only when the build succeeds; on error the engine keeps serving
// the previous generation, or stays not-indexed if there was none.
func (e *Engine) IndexDocuments(ctx context.Context, dir string) error {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	idx, result, err := e.pipeline.Build(ctx, dir)
	if err != nil {
		e.logger.Error("Error indexing documents", "dir", dir, "error", err)
		return fmt.Errorf("index documents: %w", err)
	}
	for _, f := range result.FailedDocs {
		e.logger.Warn("Document skipped", "path", f.Path, "reason", f.Reason)
	}

	e.current.Store(idx)
	if e.cache != nil {
		e.cache.Purge()
	}
	return nil
}

// Search ranks indexed documents against q and returns at most limit results
// in descending score order. limit <= 0 selects the default limit.
func (e *Engine) Search(q string, limit int) ([]Result, error) {
	idx := e.current.Load()
	if idx == nil {
		return nil, ErrNotIndexed
	}
	if strings.TrimSpace(q) == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = e.defaultLimit
	}

	key := cacheKey{generation: idx.Generation, query: q, limit: limit}
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			return copyResults(cached), nil
		}
	}

	parsed := newQuery(q)
	results := make([]Result, 0)
	for _, doc := range idx.Documents {
		if r, ok := e.scorer.score(doc, parsed); ok {
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}

	e.logger.Debug("Search complete", "query", q, "results", len(results))
	if e.cache != nil {
		e.cache.Add(key, results)
	}
	return copyResults(results), nil
}

// copyResults returns results with their slices cloned, so callers cannot
// reach the arrays held by the cache.
func copyResults(results []Result) []Result {
	out := make([]Result, len(results))
	for i, r := range results {
		r.RelevantSections = slices.Clone(r.RelevantSections)
		r.MatchedKeywords = slices.Clone(r.MatchedKeywords)
		out[i] = r
	}
	return out
}

// Documents returns the documents of the current index. The slice must not
// be modified.
func (e *Engine) Documents() []*document.Document {
	idx := e.current.Load()
	if idx == nil {
		return nil
	}
	return idx.Documents
}

// Document looks up a document by ID.
func (e *Engine) Document(id string) (*document.Document, bool) {
	idx := e.current.Load()
	if idx == nil {
		return nil, false
	}
	return idx.Lookup(id)
}

// IsReady reports whether an index has been built.
func (e *Engine) IsReady() bool {
	return e.current.Load() != nil
}

// Stats summarizes the current index.
func (e *Engine) Stats() Stats {
	idx := e.current.Load()
	if idx == nil {
		return Stats{DocumentTypes: map[document.Type]int{}}
	}
	return Stats{
		TotalDocuments: len(idx.Documents),
		TotalKeywords:  idx.KeywordCount(),
		IsIndexed:      true,
		DocumentTypes:  idx.TypeCounts(),
		Generation:     idx.Generation,
		IndexedAt:      idx.BuiltAt,
	}
}
