package llmd

import (
	"fmt"
	"strings"
)

// insertAnchors implements §4.6's anchor insertion: after every N emitted
// non-scope, non-payload lines, re-emit the currently active `@<scope>`
// line. The counter resets on every scope emission and on every anchor
// insertion. N <= 0 disables anchoring.
func insertAnchors(lines []string, every int) []string {
	if every <= 0 {
		return lines
	}

	out := make([]string, 0, len(lines))

	var (
		inPayload    bool
		currentScope string
		counter      int
	)

	for _, line := range lines {
		out = append(out, line)

		switch {
		case inPayload:
			if line == ">>>" {
				inPayload = false
				counter++
			}
		case line == "<<<":
			inPayload = true
			counter++
		case strings.HasPrefix(line, "@"):
			currentScope = line
			counter = 0
		default:
			counter++
		}

		if !inPayload && currentScope != "" && counter >= every {
			out = append(out, currentScope)
			counter = 0
		}
	}

	return out
}

// validatePreScope implements §4.6/§7's advisory pre-scope-content check:
// while scanning final lines (respecting `<<<`/`>>>` toggling), any
// non-metadata, non-scope line encountered before the first `@` line is
// flagged to diagnose. It never alters lines.
func validatePreScope(lines []string, diagnose func(string)) {
	var (
		seenScope bool
		inPayload bool
	)

	for _, line := range lines {
		if inPayload {
			if line == ">>>" {
				inPayload = false
			}

			continue
		}

		switch {
		case strings.HasPrefix(line, "@"):
			seenScope = true
		case strings.HasPrefix(line, "~"):
			// Metadata lines are exempt.
		case line == "<<<":
			if !seenScope {
				diagnose("content before first scope: " + line)
			}

			inPayload = true
		default:
			if !seenScope {
				diagnose("content before first scope: " + line)
			}
		}
	}
}

// Validate checks an LLMD text (as produced by [Compile]) against the
// structural invariants described in §7/§8: balanced, alternating, and
// correctly preceded block delimiters, and scope coverage for content
// lines. It returns one message per violation found; a nil/empty result
// means the text is structurally well-formed. Validate does not check
// round-trip fidelity to any Markdown source: the format is lossy by
// design.
func Validate(output string) []string {
	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}

	var issues []string

	diagnose := func(msg string) { issues = append(issues, msg) }
	validatePreScope(lines, diagnose)

	inPayload := false
	pendingHeader := false

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "::"):
			pendingHeader = true
		case line == "<<<":
			if inPayload {
				diagnose(fmt.Sprintf("line %d: nested block open", i+1))
			}

			if !pendingHeader {
				diagnose(fmt.Sprintf("line %d: block open without preceding :: header", i+1))
			}

			inPayload = true
			pendingHeader = false
		case line == ">>>":
			if !inPayload {
				diagnose(fmt.Sprintf("line %d: block close without matching open", i+1))
			}

			inPayload = false
		default:
			if !inPayload {
				pendingHeader = false
			}
		}
	}

	if inPayload {
		issues = append(issues, "unterminated block: missing >>>")
	}

	return issues
}
