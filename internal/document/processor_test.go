package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeFromPath(t *testing.T) {
	assert.Equal(t, TypeMarkdown, TypeFromPath("notes.md"))
	assert.Equal(t, TypeMarkdown, TypeFromPath("NOTES.MD"))
	assert.Equal(t, TypePDF, TypeFromPath("report.pdf"))
	assert.Equal(t, TypeText, TypeFromPath("plain.txt"))
	assert.Equal(t, TypeText, TypeFromPath("README"))
}

func TestTitle(t *testing.T) {
	p := NewProcessor(ProcessorOptions{})

	assert.Equal(t, "Company Overview", p.Title("a.md", "# Company Overview\n\nOur CEO is Jane Doe."))
	assert.Equal(t, "Weekly report", p.Title("r.txt", "  Weekly report  \nbody"))

	long := strings.Repeat("x", 120) + "\nmore"
	assert.Equal(t, "notes", p.Title("notes.txt", long))
	assert.Equal(t, "empty", p.Title("empty.txt", "\nsecond line"))
}

func TestTitle_MarkdownEdgeCases(t *testing.T) {
	p := NewProcessor(ProcessorOptions{})

	assert.Equal(t, "**Bold** Title", p.Title("b.md", "# **Bold** Title\n\ntext"))
	assert.Equal(t, "script", p.Title("script.md", "```sh\n# not a title\n```\n"))
	assert.Equal(t, "tilde", p.Title("tilde.md", "~~~\ncode\n~~~\n"))
}

func TestSections(t *testing.T) {
	p := NewProcessor(ProcessorOptions{})
	content := "# Overview\n\nThis paragraph is long enough to count as its own section.\n\nshort one\n"

	sections := p.Sections(content)
	require.Len(t, sections, 2)
	assert.Equal(t, "Overview\n\n\nThis paragraph is long enough to count as its own section.\n\nshort one", sections[0])
	assert.Equal(t, "This paragraph is long enough to count as its own section.", sections[1])
}

func TestSections_Dedup(t *testing.T) {
	p := NewProcessor(ProcessorOptions{})
	para := "A paragraph that repeats itself and is definitely long enough."
	content := para + "\n\n" + para + "\n"

	sections := p.Sections(content)
	assert.Equal(t, []string{para}, sections)
}

func TestSections_NoHashSkipsHeadingSplit(t *testing.T) {
	p := NewProcessor(ProcessorOptions{MinParagraphLength: 50})
	content := "Only a fairly short paragraph here.\n\nAnother paragraph that easily clears the fifty character minimum."

	sections := p.Sections(content)
	assert.Equal(t, []string{"Another paragraph that easily clears the fifty character minimum."}, sections)
}

func TestExtractKeywords_FrequencyOrder(t *testing.T) {
	keywords := ExtractKeywords("beta alpha beta gamma beta alpha", 30)
	require.NotEmpty(t, keywords)
	assert.Equal(t, "beta", keywords[0])
	assert.Equal(t, "alpha", keywords[1])
	assert.Equal(t, "gamma", keywords[2])
}

func TestExtractKeywords_Japanese(t *testing.T) {
	keywords := ExtractKeywords("代表取締役は田野です。2024年に創業、売上10億。", 30)
	assert.Contains(t, keywords, "2024年")
	assert.Contains(t, keywords, "10億")
	assert.Contains(t, keywords, "代表取締役は田野です")
}

func TestExtractKeywords_Limit(t *testing.T) {
	var words []string
	for i := 0; i < 50; i++ {
		words = append(words, strings.Repeat(string(rune('a'+i%26)), 2+i/26))
	}
	keywords := ExtractKeywords(strings.Join(words, " "), 30)
	assert.Len(t, keywords, 30)
}

func TestExtractKeywords_CaseFolded(t *testing.T) {
	keywords := ExtractKeywords("CEO ceo Ceo", 30)
	assert.Equal(t, []string{"ceo"}, keywords)
}

func TestSummary(t *testing.T) {
	p := NewProcessor(ProcessorOptions{SummaryLength: 10})

	assert.Equal(t, "Title body", p.Summary("# Title body"))
	assert.Equal(t, "0123456789...", p.Summary("## 0123456789abc"))
}

func TestProcess(t *testing.T) {
	p := NewProcessor(ProcessorOptions{})
	doc := p.Process("a.md", "/docs/a.md", "# Company Overview\n\nOur CEO is Jane Doe.")

	assert.Equal(t, "a.md", doc.ID)
	assert.Equal(t, "/docs/a.md", doc.Path)
	assert.Equal(t, TypeMarkdown, doc.Type)
	assert.Equal(t, "Company Overview", doc.Title)
	assert.Contains(t, doc.Keywords, "ceo")
	assert.Equal(t, "Company Overview\n\nOur CEO is Jane Doe.", doc.Summary)
	assert.NotEmpty(t, doc.Sections)
}
