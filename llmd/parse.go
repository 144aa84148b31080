package llmd

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	thematicBreakRe = regexp.MustCompile(`^[-*_]{3,}$`)
	blockRefRe      = regexp.MustCompile(`^⟦BLOCK:(\d+)⟧$`)
	headingRe       = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	unorderedRe     = regexp.MustCompile(`^(\s*)([-*+])\s+(.+)$`)
	orderedRe       = regexp.MustCompile(`^(\s*)(\d+)\.\s+(.+)$`)
	kvRe            = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9 _-]{0,63})\s*:\s+(.+)$`)
	delimRowRe      = regexp.MustCompile(`^[-|:\s]+$`)
)

// parseIR implements Stage 2: a single left-to-right pass over the
// post-Protect lines, classifying each source line (or run of lines, for
// paragraphs and tables) into one flat, ordered [Node] sequence. Line
// classification follows a strict precedence; see the package-level doc
// comment on [Node] for the variant set.
func parseIR(lines []string) []Node {
	var nodes []Node

	for i := 0; i < len(lines); {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			nodes = append(nodes, Blank{})
			i++

			continue

		case thematicBreakRe.MatchString(trimmed):
			i++

			continue

		case blockRefRe.MatchString(trimmed):
			m := blockRefRe.FindStringSubmatch(trimmed)
			idx, _ := strconv.Atoi(m[1])
			nodes = append(nodes, BlockRef{Index: idx})
			i++

			continue

		case headingRe.MatchString(trimmed):
			m := headingRe.FindStringSubmatch(trimmed)
			nodes = append(nodes, Heading{Level: len(m[1]), Text: strings.TrimSpace(m[2])})
			i++

			continue
		}

		if strings.Contains(line, "|") && i+1 < len(lines) && isDelimiterRow(lines[i+1]) {
			if tbl, consumed, ok := tryParseTable(lines, i); ok {
				nodes = append(nodes, tbl)
				i += consumed

				continue
			}

			// Column counts diverged: abort table parsing and fall through
			// to a paragraph, per spec, not to list/kv reclassification.
			text, consumed := mergeParagraph(lines, i)
			nodes = append(nodes, Paragraph{Text: text})
			i += consumed

			continue
		}

		if m := unorderedRe.FindStringSubmatch(line); m != nil {
			nodes = append(nodes, ListItem{
				Depth:   len(m[1]) / 2,
				Ordered: false,
				Text:    strings.TrimSpace(m[3]),
			})
			i++

			continue
		}

		if m := orderedRe.FindStringSubmatch(line); m != nil {
			nodes = append(nodes, ListItem{
				Depth:   len(m[1]) / 2,
				Ordered: true,
				Text:    strings.TrimSpace(m[3]),
			})
			i++

			continue
		}

		if m := kvRe.FindStringSubmatch(trimmed); m != nil && !isURL(m[2]) {
			nodes = append(nodes, KVLine{
				Key:   strings.TrimSpace(m[1]),
				Value: strings.TrimSpace(m[2]),
			})
			i++

			continue
		}

		text, consumed := mergeParagraph(lines, i)
		nodes = append(nodes, Paragraph{Text: text})
		i += consumed
	}

	return nodes
}

// isURL reports whether s begins with a scheme this core treats as a URL,
// disqualifying an otherwise KV-shaped line.
func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// isDelimiterRow reports whether line is a table delimiter row: trimmed, it
// contains only dashes, colons, pipes, and whitespace, and at least one dash.
func isDelimiterRow(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" {
		return false
	}

	return delimRowRe.MatchString(t) && strings.Contains(t, "-")
}

// splitRow splits a table row on `|`, trims each cell, and discards an empty
// leading or trailing cell produced by leading/trailing pipes.
func splitRow(line string) []string {
	cells := strings.Split(line, "|")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}

	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}

	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}

	return cells
}

// tryParseTable attempts to parse a table starting at lines[i], where
// lines[i] contains `|` and lines[i+1] is already known to be a delimiter
// row. It consumes the header row, skips the delimiter row, and consumes
// consecutive non-blank rows containing `|`. If any row's column count
// (after trimming) disagrees with the header's, parsing aborts and ok is
// false.
func tryParseTable(lines []string, i int) (Table, int, bool) {
	header := splitRow(lines[i])
	width := len(header)

	rows := [][]string{header}
	j := i + 2 // skip header (i) and delimiter (i+1)

	for j < len(lines) {
		line := lines[j]
		if strings.TrimSpace(line) == "" || !strings.Contains(line, "|") {
			break
		}

		row := splitRow(line)
		if len(row) != width {
			return Table{}, 0, false
		}

		rows = append(rows, row)
		j++
	}

	return Table{Rows: rows}, j - i, true
}

// isParagraphBreak reports whether line would begin a new IR node per the
// classification precedence (rules 2-8), and so should terminate an
// in-progress paragraph merge without being consumed by it.
func isParagraphBreak(line, trimmed string) bool {
	switch {
	case trimmed == "":
		return true
	case thematicBreakRe.MatchString(trimmed):
		return true
	case blockRefRe.MatchString(trimmed):
		return true
	case headingRe.MatchString(trimmed):
		return true
	case strings.Contains(trimmed, "|"):
		return true
	case unorderedRe.MatchString(line):
		return true
	case orderedRe.MatchString(line):
		return true
	}

	if m := kvRe.FindStringSubmatch(trimmed); m != nil && !isURL(m[2]) {
		return true
	}

	return false
}

// mergeParagraph merges lines starting at start until a line would begin a
// new node (blank, thematic break, block ref, heading, table-like, list, or
// KV) or input ends. Returns the merged text and the count of lines consumed
// (always at least 1).
func mergeParagraph(lines []string, start int) (string, int) {
	parts := []string{strings.TrimSpace(lines[start])}

	i := start + 1
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if isParagraphBreak(line, trimmed) {
			break
		}

		parts = append(parts, trimmed)
		i++
	}

	return strings.Join(parts, " "), i - start
}
