package llmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIRClassification(t *testing.T) {
	t.Parallel()

	t.Run("blank and thematic break", func(t *testing.T) {
		t.Parallel()

		nodes := parseIR([]string{"", "---", "***"})
		assert.Equal(t, []Node{Blank{}}, nodes)
	})

	t.Run("block reference", func(t *testing.T) {
		t.Parallel()

		nodes := parseIR([]string{"⟦BLOCK:3⟧"})
		assert.Equal(t, []Node{BlockRef{Index: 3}}, nodes)
	})

	t.Run("heading levels", func(t *testing.T) {
		t.Parallel()

		nodes := parseIR([]string{"### Getting Started"})
		assert.Equal(t, []Node{Heading{Level: 3, Text: "Getting Started"}}, nodes)
	})

	t.Run("unordered and ordered list items with depth", func(t *testing.T) {
		t.Parallel()

		nodes := parseIR([]string{"- top", "  - nested", "1. first"})
		assert.Equal(t, []Node{
			ListItem{Depth: 0, Text: "top", Ordered: false},
			ListItem{Depth: 1, Text: "nested", Ordered: false},
			ListItem{Depth: 0, Text: "first", Ordered: true},
		}, nodes)
	})

	t.Run("kv line rejects url values", func(t *testing.T) {
		t.Parallel()

		nodes := parseIR([]string{"Homepage: https://example.com"})
		assert.Equal(t, []Node{Paragraph{Text: "Homepage: https://example.com"}}, nodes)
	})

	t.Run("kv line accepted", func(t *testing.T) {
		t.Parallel()

		nodes := parseIR([]string{"Rate limit: 1000 requests per minute."})
		assert.Equal(t, []Node{KVLine{Key: "Rate limit", Value: "1000 requests per minute."}}, nodes)
	})

	t.Run("paragraph merges until blank", func(t *testing.T) {
		t.Parallel()

		nodes := parseIR([]string{"line one", "line two", "", "line three"})
		assert.Equal(t, []Node{
			Paragraph{Text: "line one line two"},
			Blank{},
			Paragraph{Text: "line three"},
		}, nodes)
	})

	t.Run("paragraph stops at a line containing a pipe", func(t *testing.T) {
		t.Parallel()

		nodes := parseIR([]string{"intro text", "a | b"})
		assert.Equal(t, []Node{
			Paragraph{Text: "intro text"},
			Paragraph{Text: "a | b"},
		}, nodes)
	})

	t.Run("table parses header and data rows", func(t *testing.T) {
		t.Parallel()

		nodes := parseIR([]string{
			"| Class | Effect |",
			"|-------|--------|",
			"| alpha | one |",
			"| beta | two |",
		})

		want := Table{Rows: [][]string{
			{"Class", "Effect"},
			{"alpha", "one"},
			{"beta", "two"},
		}}

		assert.Equal(t, []Node{want}, nodes)
	})

	t.Run("table parse aborts to paragraph on column mismatch", func(t *testing.T) {
		t.Parallel()

		nodes := parseIR([]string{
			"| A | B |",
			"|---|---|",
			"| one | two | three |",
		})

		// Each line still contains a pipe, so even after the aborted table
		// parse falls through to paragraph classification, the pipe-break
		// rule in paragraph merging keeps every line on its own.
		assert.Equal(t, []Node{
			Paragraph{Text: "| A | B |"},
			Paragraph{Text: "|---|---|"},
			Paragraph{Text: "| one | two | three |"},
		}, nodes)
	})
}

func TestIsDelimiterRow(t *testing.T) {
	t.Parallel()

	assert.True(t, isDelimiterRow("|---|---|"))
	assert.True(t, isDelimiterRow(" :--- | ---: "))
	assert.False(t, isDelimiterRow(""))
	assert.False(t, isDelimiterRow("| a | b |"))
}
