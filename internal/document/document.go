// Package document defines the indexed Document model and the Processor
// that derives titles, sections, keywords and summaries from raw text.
package document

import (
	"path/filepath"
	"strings"
)

// Type classifies a document by its file extension.
type Type string

const (
	TypeText     Type = "text"
	TypeMarkdown Type = "markdown"
	TypePDF      Type = "pdf"
)

// TypeFromPath infers the document type from the extension alone.
func TypeFromPath(path string) Type {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md":
		return TypeMarkdown
	case ".pdf":
		return TypePDF
	default:
		return TypeText
	}
}

// Document is one indexed source file. Documents are never mutated after
// processing; a rebuild produces new values.
type Document struct {
	ID       string   `json:"id"`   // Source file name, unique within an index
	Title    string   `json:"title"`
	Path     string   `json:"path"` // Full path the content was read from
	Content  string   `json:"content"`
	Type     Type     `json:"type"`
	Sections []string `json:"sections,omitempty"`
	Keywords []string `json:"keywords,omitempty"` // Descending by frequency
	Summary  string   `json:"summary"`
}
