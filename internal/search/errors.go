package search

import "errors"

var (
	ErrNotIndexed        = errors.New("documents not indexed yet")
	ErrEmptyQuery        = errors.New("search query is empty")
	ErrDocumentNotFound  = errors.New("document not found")
	ErrNoDirectoryConfig = errors.New("documents directory not configured")
)
