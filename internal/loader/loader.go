// Package loader reads the supported files of a flat document directory.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many files are read at once.
const DefaultConcurrency = 8

// File is the raw content of one loaded file.
type File struct {
	Name    string // Base name, used as the document ID
	Path    string
	Content string
}

// FailedFile records a file that could not be read.
type FailedFile struct {
	Path   string
	Reason string
}

// Result lists what a directory scan produced.
type Result struct {
	Files   []File       // Loaded files in directory order
	Skipped []string     // Unsupported, content-less or empty files
	Failed  []FailedFile // Files whose read failed
	Total   int          // Regular files seen
}

// Loader scans a directory for .txt and .md files. PDFs are recognized but
// yield no content.
type Loader struct {
	concurrency int
	logger      *slog.Logger
}

// New creates a loader. A concurrency <= 0 selects DefaultConcurrency.
func New(concurrency int, logger *slog.Logger) *Loader {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{concurrency: concurrency, logger: logger}
}

// Load enumerates dir (non-recursively) and reads every supported file.
// Failing to list dir is returned as an error; failing to read a single file
// is logged and recorded in Result.Failed.
func (l *Loader) Load(ctx context.Context, dir string) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	type slot struct {
		file    *File
		skipped bool
		failed  *FailedFile
		regular bool
	}
	slots := make([]slot, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			info, err := os.Stat(path)
			if err != nil {
				l.logger.Warn("Failed to stat file", "path", path, "error", err)
				slots[i].failed = &FailedFile{Path: path, Reason: err.Error()}
				return nil
			}
			if !info.Mode().IsRegular() {
				return nil
			}
			slots[i].regular = true

			content, ok, err := l.readFile(path)
			switch {
			case err != nil:
				l.logger.Warn("Failed to read file", "path", path, "error", err)
				slots[i].failed = &FailedFile{Path: path, Reason: err.Error()}
			case !ok || content == "":
				l.logger.Debug("Skipping file", "path", path)
				slots[i].skipped = true
			default:
				slots[i].file = &File{Name: entry.Name(), Path: path, Content: content}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load %s: %w", dir, err)
	}

	result := &Result{}
	for i, s := range slots {
		if s.regular {
			result.Total++
		}
		switch {
		case s.file != nil:
			result.Files = append(result.Files, *s.file)
		case s.failed != nil:
			result.Failed = append(result.Failed, *s.failed)
		case s.skipped:
			result.Skipped = append(result.Skipped, entries[i].Name())
		}
	}
	return result, nil
}

// readFile returns the text of path. ok is false for files that carry no
// indexable text: PDFs and unsupported extensions.
func (l *Loader) readFile(path string) (string, bool, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", false, err
		}
		return string(data), true, nil
	default:
		// PDF extraction is not supported.
		return "", false, nil
	}
}
