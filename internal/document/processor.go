package document

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bull/docsearch-mcp/internal/lexical"
	"github.com/bull/docsearch-mcp/internal/markdown"
)

const (
	DefaultMaxKeywords        = 30
	DefaultMinParagraphLength = 30
	DefaultSummaryLength      = 200

	// maxTitleLength bounds how long a first line may be to serve as a title.
	maxTitleLength = 100

	// maxSectionHeadingLevel is the deepest heading that starts a section.
	maxSectionHeadingLevel = 3
)

var (
	keywordPatterns = []*regexp.Regexp{
		regexp.MustCompile(`[ぁ-んァ-ン一-龯]{2,}`),
		regexp.MustCompile(`[a-zA-Z]{2,}`),
		regexp.MustCompile(`[0-9]+[年月日]`),
		regexp.MustCompile(`[0-9]+[億万千]`),
	}
	keywordSeparator = regexp.MustCompile(`[\s\x{3000}、。，．,.]+`)
	paragraphBreak   = regexp.MustCompile(`\n\s*\n`)
	headingMarker    = regexp.MustCompile(`#+\s+`)
)

// ProcessorOptions tunes the derivations. Zero values select defaults.
type ProcessorOptions struct {
	MaxKeywords        int `yaml:"max_keywords"`
	MinParagraphLength int `yaml:"min_paragraph_length"`
	SummaryLength      int `yaml:"summary_length"`
}

func (o ProcessorOptions) withDefaults() ProcessorOptions {
	if o.MaxKeywords <= 0 {
		o.MaxKeywords = DefaultMaxKeywords
	}
	if o.MinParagraphLength <= 0 {
		o.MinParagraphLength = DefaultMinParagraphLength
	}
	if o.SummaryLength <= 0 {
		o.SummaryLength = DefaultSummaryLength
	}
	return o
}

// Processor turns raw file content into a Document. It holds no per-document
// state and is safe for concurrent use.
type Processor struct {
	opts   ProcessorOptions
	parser *markdown.Parser
}

// NewProcessor creates a processor with the given options.
func NewProcessor(opts ProcessorOptions) *Processor {
	return &Processor{
		opts:   opts.withDefaults(),
		parser: markdown.NewParser(),
	}
}

// Process derives a Document from a file's name, path and content.
func (p *Processor) Process(name, path, content string) *Document {
	return &Document{
		ID:       name,
		Title:    p.Title(name, content),
		Path:     path,
		Content:  content,
		Type:     TypeFromPath(name),
		Sections: p.Sections(content),
		Keywords: p.Keywords(content),
		Summary:  p.Summary(content),
	}
}

// Title returns the first level-1 heading, else the first line when it is
// short enough and not a code fence, else the file name without its
// extension.
func (p *Processor) Title(name, content string) string {
	if title, ok := p.parser.Title([]byte(content)); ok {
		return title
	}

	firstLine, _, _ := strings.Cut(content, "\n")
	firstLine = strings.TrimSpace(firstLine)
	if firstLine != "" && lexical.Len(firstLine) < maxTitleLength && !isFence(firstLine) {
		return firstLine
	}

	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// isFence reports whether line opens or closes a fenced code block.
func isFence(line string) bool {
	return strings.HasPrefix(line, "```") || strings.HasPrefix(line, "~~~")
}

// Sections splits content into heading sections (when it has any markdown
// heading markers) followed by blank-line paragraphs longer than the minimum
// paragraph length. Duplicates are removed, keeping the first occurrence.
func (p *Processor) Sections(content string) []string {
	var sections []string
	if strings.Contains(content, "#") {
		for _, s := range p.parser.Sections([]byte(content), maxSectionHeadingLevel) {
			sections = append(sections, s.Content)
		}
	}

	for _, para := range paragraphBreak.Split(content, -1) {
		para = strings.TrimSpace(para)
		if lexical.Len(para) > p.opts.MinParagraphLength {
			sections = append(sections, para)
		}
	}

	seen := make(map[string]struct{}, len(sections))
	unique := sections[:0]
	for _, s := range sections {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		unique = append(unique, s)
	}
	return unique
}

// Keywords returns the most frequent normalized tokens of text. Ties keep the
// order in which tokens were first extracted.
func (p *Processor) Keywords(text string) []string {
	return ExtractKeywords(text, p.opts.MaxKeywords)
}

// ExtractKeywords collects pattern tokens and a punctuation split of the
// folded text, counts them, and returns the top limit by frequency.
func ExtractKeywords(text string, limit int) []string {
	lower := lexical.Fold(text)

	var candidates []string
	for _, re := range keywordPatterns {
		candidates = append(candidates, re.FindAllString(lower, -1)...)
	}
	for _, w := range keywordSeparator.Split(lower, -1) {
		if lexical.Len(w) >= 2 {
			candidates = append(candidates, w)
		}
	}

	counts := make(map[string]int)
	var order []string
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if lexical.Len(c) < 2 {
			continue
		}
		if _, ok := counts[c]; !ok {
			order = append(order, c)
		}
		counts[c]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}
	return order
}

// Summary strips heading markers and returns the leading characters of the
// remaining text, with an ellipsis when it was cut.
func (p *Processor) Summary(content string) string {
	cleaned := strings.TrimSpace(headingMarker.ReplaceAllString(content, ""))
	if lexical.Len(cleaned) > p.opts.SummaryLength {
		return lexical.Truncate(cleaned, p.opts.SummaryLength) + "..."
	}
	return cleaned
}
