// Package main provides the docsearch CLI for indexing and querying a
// document directory.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bull/docsearch-mcp/internal/config"
	"github.com/bull/docsearch-mcp/internal/document"
	"github.com/bull/docsearch-mcp/internal/indexer"
	"github.com/bull/docsearch-mcp/internal/loader"
	"github.com/bull/docsearch-mcp/internal/logging"
	"github.com/bull/docsearch-mcp/internal/search"
)

var (
	configPath string
	docsDir    string
	limit      int
)

var rootCmd = &cobra.Command{
	Use:   "docsearch",
	Short: "Keyword search over a directory of text and markdown documents",
	Long: `docsearch indexes the .txt and .md files of a directory in memory and
ranks them against free-text queries.

Environment variables:
  DOCS_DIR    documents directory (default: ./documents)
  LOG_LEVEL   debug, info, warn or error (default: info)
  LOG_FORMAT  text or json (default: text)`,
	SilenceUsage: true,
}

var indexCmd = &cobra.Command{
	Use:   "index [dir]",
	Short: "Index a directory and print statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runIndex,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the documents directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var similarCmd = &cobra.Command{
	Use:   "similar <id>",
	Short: "List documents related to a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilar,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "config file")
	rootCmd.PersistentFlags().StringVar(&docsDir, "dir", "", "documents directory (overrides config and DOCS_DIR)")
	searchCmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results")
	similarCmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of related documents")

	rootCmd.AddCommand(indexCmd, searchCmd, similarCmd)
}

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves configuration, letting --dir win over file and env.
func loadConfig() (*config.AppConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if docsDir != "" {
		cfg.DocumentsDir = docsDir
	}
	return cfg, nil
}

func newEngine(ctx context.Context, cfg *config.AppConfig) (*search.Engine, error) {
	opts := cfg.SearchOptions()
	opts.Logger = logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}, os.Stderr)

	engine := search.NewEngine(opts)
	if err := engine.IndexDocuments(ctx, cfg.DocumentsDir); err != nil {
		return nil, err
	}
	return engine, nil
}

func runIndex(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		docsDir = args[0]
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}, os.Stderr)

	pipeline := indexer.NewPipeline(
		loader.New(cfg.Search.Concurrency, logger),
		document.NewProcessor(cfg.Processor),
		logger,
	)

	fmt.Printf("Indexing %s...\n", cfg.DocumentsDir)
	idx, result, err := pipeline.Build(cmd.Context(), cfg.DocumentsDir)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Println()
	fmt.Println("Index complete!")
	fmt.Printf("  Documents: %d/%d\n", result.IndexedDocs, result.TotalFiles)
	fmt.Printf("  Keywords: %d\n", idx.KeywordCount())
	fmt.Printf("  Generation: %s\n", result.Generation)
	fmt.Printf("  Duration: %s\n", result.Duration.Round(time.Millisecond))

	counts := idx.TypeCounts()
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, string(t))
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Printf("  %s: %d\n", t, counts[document.Type(t)])
	}

	if len(result.Skipped) > 0 {
		fmt.Println()
		fmt.Println("Skipped files:")
		for _, path := range result.Skipped {
			fmt.Printf("  - %s\n", path)
		}
	}
	if len(result.FailedDocs) > 0 {
		fmt.Println()
		fmt.Println("Failed documents:")
		for _, failed := range result.FailedDocs {
			fmt.Printf("  - %s: %s\n", failed.Path, failed.Reason)
		}
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := newEngine(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	results, err := engine.Search(args[0], limit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No matching documents found.")
		return nil
	}

	for i, r := range results {
		fmt.Printf("%d. %s (%s) score=%.2f\n", i+1, r.Document.Title, r.Document.ID, r.Score)
		if len(r.MatchedKeywords) > 0 {
			fmt.Printf("   matched: %v\n", r.MatchedKeywords)
		}
		fmt.Printf("   %s\n", r.Snippet)
	}
	return nil
}

func runSimilar(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := newEngine(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if _, ok := engine.Document(args[0]); !ok {
		return fmt.Errorf("%w: %s", search.ErrDocumentNotFound, args[0])
	}
	docs := engine.SimilarDocuments(args[0], limit)
	if len(docs) == 0 {
		fmt.Println("No related documents found.")
		return nil
	}
	for i, d := range docs {
		fmt.Printf("%d. %s (%s)\n", i+1, d.Title, d.ID)
	}
	return nil
}
