package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSections_BasicHeaders tests splitting at H1 and H2 boundaries.
func TestSections_BasicHeaders(t *testing.T) {
	input := `# Getting Started

Introduction text here.

## Installation

Install steps here.

## Configuration

Config details here.
`

	sections := NewParser().Sections([]byte(input), 3)
	require.Len(t, sections, 3)

	assert.Equal(t, 1, sections[0].Level)
	assert.Equal(t, "Getting Started", sections[0].Heading)
	assert.Equal(t, "Getting Started\n\n\nIntroduction text here.", sections[0].Content)

	assert.Equal(t, 2, sections[1].Level)
	assert.Equal(t, "Installation\n\n\nInstall steps here.", sections[1].Content)
	assert.NotContains(t, sections[1].Content, "##", "next heading marker must not leak into the body")

	assert.Equal(t, "Configuration\n\n\nConfig details here.", sections[2].Content)
}

// TestSections_Preamble tests that text before the first heading is kept.
func TestSections_Preamble(t *testing.T) {
	input := "Some intro line.\n\n# Title\n\nBody.\n"

	sections := NewParser().Sections([]byte(input), 3)
	require.Len(t, sections, 2)
	assert.Equal(t, 0, sections[0].Level)
	assert.Equal(t, "Some intro line.", sections[0].Content)
	assert.Equal(t, "Title\n\n\nBody.", sections[1].Content)
}

// TestSections_BodyKeepsHeadingLineBreak tests that the heading text is
// followed by the heading line's own newline and then the body.
func TestSections_BodyKeepsHeadingLineBreak(t *testing.T) {
	sections := NewParser().Sections([]byte("# A\nbody\n# B\n"), 3)
	require.Len(t, sections, 2)
	assert.Equal(t, "A\n\nbody", sections[0].Content)
	assert.Equal(t, "B", sections[1].Content)
}

// TestSections_DeepHeadingsStayInBody tests that H4 is not a boundary at maxLevel 3.
func TestSections_DeepHeadingsStayInBody(t *testing.T) {
	input := "## Methods\n\nText.\n\n#### Details\n\nMore.\n"

	sections := NewParser().Sections([]byte(input), 3)
	require.Len(t, sections, 1)
	assert.Contains(t, sections[0].Content, "#### Details")
	assert.Contains(t, sections[0].Content, "More.")
}

// TestSections_CodeFence tests that # lines inside fenced code are not headings.
func TestSections_CodeFence(t *testing.T) {
	input := "# Script\n\n```sh\n# not a heading\necho hi\n```\n"

	sections := NewParser().Sections([]byte(input), 3)
	require.Len(t, sections, 1)
	assert.True(t, strings.Contains(sections[0].Content, "# not a heading"))
}

// TestSections_NoHeadings tests plain text input.
func TestSections_NoHeadings(t *testing.T) {
	sections := NewParser().Sections([]byte("just text\n"), 3)
	require.Len(t, sections, 1)
	assert.Equal(t, "just text", sections[0].Content)

	assert.Empty(t, NewParser().Sections([]byte("   \n"), 3))
}

func TestTitle(t *testing.T) {
	p := NewParser()

	title, ok := p.Title([]byte("intro\n\n## Sub\n\n# Company Overview\n\ntext"))
	require.True(t, ok)
	assert.Equal(t, "Company Overview", title)

	_, ok = p.Title([]byte("## Only a subheading\n"))
	assert.False(t, ok)

	_, ok = p.Title([]byte("plain text"))
	assert.False(t, ok)
}

// TestTitle_KeepsInlineMarkup tests that the title is the heading's source
// text, not its rendered text.
func TestTitle_KeepsInlineMarkup(t *testing.T) {
	title, ok := NewParser().Title([]byte("# **Bold** Title\n\nbody"))
	require.True(t, ok)
	assert.Equal(t, "**Bold** Title", title)
}

// TestTitle_SkipsSetextAndFencedHeadings tests that only ATX headings outside
// code blocks count.
func TestTitle_SkipsSetextAndFencedHeadings(t *testing.T) {
	p := NewParser()

	title, ok := p.Title([]byte("Underlined\n==========\n\n# Real Title\n"))
	require.True(t, ok)
	assert.Equal(t, "Real Title", title)

	_, ok = p.Title([]byte("```sh\n# comment\n```\n"))
	assert.False(t, ok)
}
