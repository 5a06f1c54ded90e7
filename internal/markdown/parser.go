package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/toc"
)

// Section is a heading-delimited part of a markdown document.
type Section struct {
	Level   int    // Heading level, 0 for text before the first heading
	Heading string // Heading text without the leading #s
	Content string // Heading text, a newline, then the rest from the heading line's end
}

// Parser extracts outline information from markdown using goldmark.
type Parser struct {
	md goldmark.Markdown
}

// NewParser creates a parser configured with auto heading IDs, which the
// toc inspector relies on.
func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &Parser{md: md}
}

// Title returns the source text of the first level-1 ATX heading. Inline
// markup is kept as written; setext headings and "#" lines inside code
// blocks do not count.
func (p *Parser) Title(source []byte) (string, bool) {
	doc := p.md.Parser().Parse(text.NewReader(source))

	tree, err := toc.Inspect(doc, source,
		toc.MinDepth(1),
		toc.MaxDepth(1),
		toc.Compact(true),
	)
	if err != nil || tree == nil {
		return "", false
	}
	for _, item := range tree.Items {
		if len(item.ID) == 0 {
			continue
		}
		if title := atxHeadingText(doc, source, item.ID); title != "" {
			return title, true
		}
	}
	return "", false
}

// atxHeadingText finds the heading with the given auto-generated id and
// returns its raw text, or "" when it is not an ATX heading.
func atxHeadingText(doc ast.Node, source, id []byte) string {
	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindHeading {
			return ast.WalkContinue, nil
		}
		attr, ok := n.AttributeString("id")
		if !ok {
			return ast.WalkSkipChildren, nil
		}
		if got, ok := attr.([]byte); !ok || !bytes.Equal(got, id) {
			return ast.WalkSkipChildren, nil
		}
		if n.Lines().Len() > 0 {
			seg := n.Lines().At(0)
			if start := lineStart(source, seg.Start); start < len(source) && source[start] == '#' {
				title = strings.TrimSpace(string(seg.Value(source)))
			}
		}
		return ast.WalkStop, nil
	})
	return title
}

// heading is an ATX heading located in the source buffer.
type heading struct {
	level     int
	text      string
	lineStart int // offset of the '#' that opens the heading line
	bodyStart int // offset of the newline that ends the heading line
}

// Sections splits source at ATX headings of level <= maxLevel. Headings inside
// code blocks are not boundaries. Text before the first heading forms its own
// section; sections that are empty after trimming are dropped.
func (p *Parser) Sections(source []byte, maxLevel int) []Section {
	headings := p.headings(source, maxLevel)
	if len(headings) == 0 {
		body := strings.TrimSpace(string(source))
		if body == "" {
			return nil
		}
		return []Section{{Content: body}}
	}

	var sections []Section
	if pre := strings.TrimSpace(string(source[:headings[0].lineStart])); pre != "" {
		sections = append(sections, Section{Content: pre})
	}

	for i, h := range headings {
		end := len(source)
		if i+1 < len(headings) {
			end = headings[i+1].lineStart
		}
		body := ""
		if h.bodyStart < end {
			body = string(source[h.bodyStart:end])
		}
		// The body keeps the heading line's own newline, so a heading
		// followed by a blank line reads "heading\n\n\nbody".
		content := strings.TrimSpace(h.text + "\n" + body)
		if content == "" {
			continue
		}
		sections = append(sections, Section{
			Level:   h.level,
			Heading: h.text,
			Content: content,
		})
	}
	return sections
}

// headings walks the AST and collects ATX headings in document order.
func (p *Parser) headings(source []byte, maxLevel int) []heading {
	doc := p.md.Parser().Parse(text.NewReader(source))

	var found []heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindHeading {
			return ast.WalkContinue, nil
		}
		h := n.(*ast.Heading)
		if h.Level > maxLevel || h.Lines().Len() == 0 {
			return ast.WalkSkipChildren, nil
		}

		seg := h.Lines().At(0)
		start := lineStart(source, seg.Start)
		// Setext headings are underlined rather than prefixed.
		if start >= len(source) || source[start] != '#' {
			return ast.WalkSkipChildren, nil
		}
		found = append(found, heading{
			level:     h.Level,
			text:      strings.TrimSpace(string(seg.Value(source))),
			lineStart: start,
			bodyStart: lineBreak(source, seg.Stop),
		})
		return ast.WalkSkipChildren, nil
	})
	return found
}

// lineStart returns the offset of the first byte of the line containing pos.
func lineStart(source []byte, pos int) int {
	if pos > len(source) {
		pos = len(source)
	}
	return bytes.LastIndexByte(source[:pos], '\n') + 1
}

// lineBreak returns the offset of the newline ending the line that contains
// pos, or len(source) for the last line.
func lineBreak(source []byte, pos int) int {
	if pos >= len(source) {
		return len(source)
	}
	i := bytes.IndexByte(source[pos:], '\n')
	if i < 0 {
		return len(source)
	}
	return pos + i
}
