package search

import (
	"log/slog"
	"strings"

	"github.com/bull/docsearch-mcp/internal/document"
	"github.com/bull/docsearch-mcp/internal/lexical"
)

// Signal weights. They are fixed; only the alias vocabulary is configurable.
const (
	weightContentExact   = 2.0
	weightTitleExact     = 1.5
	weightWordInContent  = 0.8
	weightRepeat         = 0.1
	maxRepeatBonus       = 0.5
	weightWordInTitle    = 0.5
	weightSectionExact   = 0.6
	weightSectionWord    = 0.2
	minSectionPartial    = 0.4
	weightOverlap        = 0.3
	inclusionThreshold   = 0.01
	maxRelevantSections  = 3
	maxSectionLength     = 400
	DefaultSnippetLength = 400
)

// Result is one ranked document for a query.
type Result struct {
	Document         *document.Document `json:"document"`
	Score            float64            `json:"score"`
	Snippet          string             `json:"snippet"`
	RelevantSections []string           `json:"relevant_sections"`
	MatchedKeywords  []string           `json:"matched_keywords"`
}

// query holds the folded forms of a search string.
type query struct {
	raw   string
	lower string
	words []string // Words longer than one rune
}

func newQuery(raw string) query {
	q := query{raw: raw, lower: fold(raw)}
	for _, w := range lexical.SplitWords(q.lower) {
		if lexical.Len(w) > 1 {
			q.words = append(q.words, w)
		}
	}
	return q
}

// scorer computes the additive relevance score of a document.
type scorer struct {
	aliases       AliasTable
	snippetLength int
	logger        *slog.Logger
}

// score returns the document's result and whether it clears the inclusion
// threshold.
func (s *scorer) score(doc *document.Document, q query) (Result, bool) {
	content := fold(doc.Content)
	title := fold(doc.Title)

	var (
		total    float64
		matched  []string
		sections []string
	)

	if strings.Contains(content, q.lower) {
		total += weightContentExact
	}
	if strings.Contains(title, q.lower) {
		total += weightTitleExact
	}

	for _, w := range q.words {
		if strings.Contains(content, w) {
			total += weightWordInContent
			matched = append(matched, w)
			if n := strings.Count(content, w); n > 1 {
				total += min(float64(n)*weightRepeat, maxRepeatBonus)
			}
		}
		if strings.Contains(title, w) {
			total += weightWordInTitle
		}
	}

	for _, rule := range s.aliases.Rules {
		if !strings.Contains(q.lower, rule.Trigger) {
			continue
		}
		for _, alias := range rule.Aliases {
			if !strings.Contains(content, alias) {
				continue
			}
			total += rule.Weight
			matched = append(matched, alias)
			if alias == rule.Trigger {
				total += rule.ExactBonus
			}
		}
	}

	if s.asksWho(q.lower) {
		for _, name := range s.aliases.Names {
			if strings.Contains(content, name) {
				total += s.aliases.NameWeight
				matched = append(matched, name)
			}
		}
	}

	for _, section := range doc.Sections {
		lower := fold(section)
		if strings.Contains(lower, q.lower) {
			total += weightSectionExact
			sections = append(sections, lexical.Truncate(section, maxSectionLength))
			continue
		}
		partial := 0.0
		for _, w := range q.words {
			if strings.Contains(lower, w) {
				partial += weightSectionWord
			}
		}
		if partial > minSectionPartial {
			total += partial
			sections = append(sections, lexical.Truncate(section, maxSectionLength))
		}
	}

	total += lexical.Overlap(q.lower, content) * weightOverlap

	s.logger.Debug("Scored document", "id", doc.ID, "score", total)
	if total <= inclusionThreshold {
		return Result{}, false
	}

	if len(sections) > maxRelevantSections {
		sections = sections[:maxRelevantSections]
	}
	return Result{
		Document:         doc,
		Score:            total,
		Snippet:          ExtractSnippet(doc.Content, q.raw, s.snippetLength),
		RelevantSections: sections,
		MatchedKeywords:  dedupe(matched),
	}, true
}

func (s *scorer) asksWho(lowerQuery string) bool {
	for _, t := range s.aliases.WhoTriggers {
		if strings.Contains(lowerQuery, t) {
			return true
		}
	}
	return false
}

func fold(s string) string { return lexical.Fold(s) }

func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
