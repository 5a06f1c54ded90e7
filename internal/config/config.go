// Package config loads docsearch configuration from an optional YAML file
// and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/bull/docsearch-mcp/internal/document"
	"github.com/bull/docsearch-mcp/internal/search"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "docsearch.yaml"

// SearchConfig tunes the search engine.
type SearchConfig struct {
	DefaultLimit  int `yaml:"default_limit"`
	SnippetLength int `yaml:"snippet_length"`
	CacheSize     int `yaml:"cache_size"`
	Concurrency   int `yaml:"concurrency"`
}

// LoggingConfig selects the log level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// ServerConfig configures the MCP server.
type ServerConfig struct {
	Port string `yaml:"port"`
	// HTTP serves MCP over streamable HTTP instead of stdio.
	HTTP bool `yaml:"http"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	DocumentsDir string                    `yaml:"documents_dir"`
	Search       SearchConfig              `yaml:"search"`
	Processor    document.ProcessorOptions `yaml:"processor"`
	Aliases      *search.AliasTable        `yaml:"aliases,omitempty"`
	Logging      LoggingConfig             `yaml:"logging"`
	Server       ServerConfig              `yaml:"server"`
}

// Load reads the config at path, applies defaults and then environment
// overrides. A missing file yields the defaults.
func Load(path string) (*AppConfig, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyConfigDefaults(cfg)
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchOptions converts the config into engine options.
func (c *AppConfig) SearchOptions() search.Options {
	return search.Options{
		DefaultLimit:  c.Search.DefaultLimit,
		SnippetLength: c.Search.SnippetLength,
		CacheSize:     c.Search.CacheSize,
		Concurrency:   c.Search.Concurrency,
		Processor:     c.Processor,
		Aliases:       c.Aliases,
	}
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		DocumentsDir: "./documents",
		Search: SearchConfig{
			DefaultLimit:  search.DefaultLimit,
			SnippetLength: search.DefaultSnippetLength,
			CacheSize:     search.DefaultCacheSize,
		},
		Processor: document.ProcessorOptions{
			MaxKeywords:        document.DefaultMaxKeywords,
			MinParagraphLength: document.DefaultMinParagraphLength,
			SummaryLength:      document.DefaultSummaryLength,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Server:  ServerConfig{Port: "8080"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Search.DefaultLimit <= 0 {
		cfg.Search.DefaultLimit = search.DefaultLimit
	}
	if cfg.Search.SnippetLength <= 0 {
		cfg.Search.SnippetLength = search.DefaultSnippetLength
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
}

func applyEnv(cfg *AppConfig) error {
	cfg.DocumentsDir = getEnv("DOCS_DIR", cfg.DocumentsDir)
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("LOG_FORMAT", cfg.Logging.Format)

	if v := os.Getenv("SERVER_MODE"); v != "" {
		mode, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SERVER_MODE: %w", err)
		}
		cfg.Server.HTTP = mode
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
