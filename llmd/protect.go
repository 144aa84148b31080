package llmd

import (
	"regexp"
	"strconv"
	"strings"
)

// blockOpen matches a fenced code block opener: three-or-more backticks
// followed by an optional language tag.
var blockOpen = regexp.MustCompile("^(`{3,})(\\w*)\\s*$")

// Block is a fenced code region pulled out of the source by [protectBlocks].
// Its Index is stable and dense (0..N-1, assigned in source order) and the
// placeholder line left in its place has the exact form
// "⟦BLOCK:<Index>⟧".
type Block struct {
	Lang    string
	Payload string
	Index   int
}

// blockOpenBracket and blockCloseBracket are the fixed placeholder
// delimiters (U+27E6, U+27E7); they are not configurable.
const (
	blockOpenBracket  = "⟦BLOCK:"
	blockCloseBracket = "⟧"
)

// placeholder renders the placeholder line for a protected block index.
func placeholder(index int) string {
	return blockOpenBracket + strconv.Itoa(index) + blockCloseBracket
}

// protectBlocks scans lines for fenced code regions, replacing each with a
// placeholder line and returning the non-fenced lines alongside the table of
// protected payloads, in source order. An unterminated fence at end of input
// is closed implicitly using the lines collected so far; this is tolerant
// behavior, not an error.
func protectBlocks(lines []string) ([]string, []Block) {
	var (
		out    []string
		blocks []Block

		inFence bool
		marker  string
		lang    string
		payload []string
	)

	closeFence := func() {
		idx := len(blocks)
		blocks = append(blocks, Block{
			Index:   idx,
			Lang:    lang,
			Payload: strings.Join(payload, "\n"),
		})
		out = append(out, placeholder(idx))

		inFence = false
		marker = ""
		lang = ""
		payload = nil
	}

	for _, line := range lines {
		if !inFence {
			if m := blockOpen.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
				inFence = true
				marker = m[1]
				lang = m[2]
				payload = nil

				continue
			}

			out = append(out, line)

			continue
		}

		if strings.TrimSpace(line) == marker {
			closeFence()

			continue
		}

		payload = append(payload, line)
	}

	if inFence {
		// normalize() always yields one trailing empty logical line when the
		// source ends in a newline (the common case for real files). Inside
		// a properly closed fence that artifact never surfaces, since the
		// closing marker line isn't part of the payload; here, closing
		// implicitly at EOF, it would otherwise be baked into Payload as a
		// spurious blank line. Drop it before closing.
		if n := len(payload); n > 0 && payload[n-1] == "" {
			payload = payload[:n-1]
		}

		closeFence()
	}

	return out, blocks
}
