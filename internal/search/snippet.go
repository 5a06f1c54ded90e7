package search

import (
	"strings"

	"github.com/bull/docsearch-mcp/internal/lexical"
)

const ellipsis = "..."

// ExtractSnippet returns an excerpt of content of at most maxLength runes
// (plus ellipsis markers) centred on the query term occurrence with the most
// other query terms nearby. Without any occurrence it returns the head of the
// content. Whitespace is collapsed; long excerpts are cut at a sentence end or
// space past 70% of maxLength.
func ExtractSnippet(content, query string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultSnippetLength
	}

	runes := []rune(content)
	lower := []rune(fold(content))

	var terms [][]rune
	for _, w := range lexical.SplitWords(fold(query)) {
		if lexical.Len(w) > 1 {
			terms = append(terms, []rune(w))
		}
	}

	half := maxLength / 2
	bestScore := 0
	bestStart, bestEnd := 0, min(len(runes), maxLength)

	for i, term := range terms {
		for pos := indexRunes(lower, term, 0); pos >= 0; pos = indexRunes(lower, term, pos+1) {
			start := max(0, pos-half)
			end := min(len(lower), pos+half)
			window := string(lower[start:end])

			score := 1
			for j, other := range terms {
				if j == i || string(other) == string(term) {
					continue
				}
				if strings.Contains(window, string(other)) {
					score += 2
				}
			}
			if score > bestScore {
				bestScore = score
				bestStart, bestEnd = start, end
			}
		}
	}

	snippet := strings.Join(strings.Fields(string(runes[bestStart:bestEnd])), " ")

	truncated := false
	if lexical.Len(snippet) > maxLength {
		cut := []rune(snippet)[:maxLength]
		boundary := max(lastIndexRune(cut, '。'), lastIndexRune(cut, ' '))
		if float64(boundary) > float64(maxLength)*0.7 {
			cut = cut[:boundary]
		}
		snippet = string(cut)
		truncated = true
	}

	if bestStart > 0 {
		snippet = ellipsis + snippet
	}
	if truncated || bestEnd < len(runes) {
		snippet += ellipsis
	}
	return strings.TrimSpace(snippet)
}

// indexRunes returns the first index >= from at which needle occurs in
// haystack, or -1.
func indexRunes(haystack, needle []rune, from int) int {
	if len(needle) == 0 {
		return -1
	}
outer:
	for i := from; i+len(needle) <= len(haystack); i++ {
		for j, r := range needle {
			if haystack[i+j] != r {
				continue outer
			}
		}
		return i
	}
	return -1
}

func lastIndexRune(rs []rune, r rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == r {
			return i
		}
	}
	return -1
}
