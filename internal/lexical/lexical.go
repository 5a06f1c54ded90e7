// Package lexical provides the tokenizer and overlap measures shared by the
// document processor and the search scorer. It is tuned for mixed Japanese
// and Latin text where words are not reliably separated by spaces.
package lexical

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// wordSeparator splits free text into query words.
	wordSeparator = regexp.MustCompile(`[\s\x{3000}、。，．,.|]+`)

	// segmentPattern matches runs of kana, kanji, latin letters and digits.
	segmentPattern = regexp.MustCompile(`[ぁ-んァ-ン一-龯a-zA-Z0-9]+`)
)

// Fold lower-cases s rune by rune, so rune offsets in the result line up
// with rune offsets in the input.
func Fold(s string) string {
	return strings.Map(unicode.ToLower, s)
}

// Len returns the length of s in runes.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// SplitWords splits s on whitespace and common Japanese and Latin
// punctuation, dropping empty pieces.
func SplitWords(s string) []string {
	parts := wordSeparator.Split(s, -1)
	words := parts[:0]
	for _, p := range parts {
		if p != "" {
			words = append(words, p)
		}
	}
	return words
}

// Tokenize segments s into runs of word characters. Runs of two or more
// runes are emitted as tokens; runs longer than four runes additionally emit
// every two-rune window, approximating bigram overlap for text without
// explicit word boundaries.
func Tokenize(s string) []string {
	var tokens []string
	seen := make(map[string]struct{})
	for _, seg := range segmentPattern.FindAllString(s, -1) {
		runes := []rune(seg)
		if len(runes) >= 2 {
			tokens = append(tokens, seg)
			seen[seg] = struct{}{}
		}
		if len(runes) > 4 {
			for i := 0; i+2 <= len(runes); i++ {
				bigram := string(runes[i : i+2])
				if _, ok := seen[bigram]; ok {
					continue
				}
				seen[bigram] = struct{}{}
				tokens = append(tokens, bigram)
			}
		}
	}
	return tokens
}

// Overlap scores how well text covers query. Each query token found in text
// earns 2 plus 0.5 per occurrence; the total is averaged over all query
// tokens and capped at 1. Both arguments are expected to be folded.
func Overlap(query, text string) float64 {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return 0
	}

	common := 0
	total := 0.0
	for _, tok := range tokens {
		n := strings.Count(text, tok)
		if n == 0 {
			continue
		}
		common++
		total += 2 + float64(n)*0.5
	}
	if common == 0 {
		return 0
	}
	return min(total/float64(len(tokens)), 1.0)
}

// Jaccard returns |A∩B| / |A∪B| over the token sets of a and b.
func Jaccard(a, b string) float64 {
	setA := tokenSet(Fold(a))
	setB := tokenSet(Fold(b))

	union := len(setA)
	inter := 0
	for tok := range setB {
		if _, ok := setA[tok]; ok {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	tokens := Tokenize(s)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
