package llmd

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// lineCategory is the §4.5 line categorization used by the compression
// passes and by post-process validation.
type lineCategory int

const (
	catScope lineCategory = iota
	catBlockMarker
	catAttribute
	catList
	catRelation
	catMetadata
	catText
)

// categorize classifies a single emitted line per §4.5. Block-payload lines
// are not a category of their own here; callers track the `<<<`/`>>>`
// toggle separately and must not categorize lines inside a block.
func categorize(line string) lineCategory {
	switch {
	case strings.HasPrefix(line, "@"):
		return catScope
	case strings.HasPrefix(line, "::"), line == "<<<", line == ">>>":
		return catBlockMarker
	case strings.HasPrefix(line, ":"):
		return catAttribute
	case strings.HasPrefix(line, "-"):
		return catList
	case strings.HasPrefix(line, "→"), strings.HasPrefix(line, "←"), strings.HasPrefix(line, "="):
		return catRelation
	case strings.HasPrefix(line, "~"):
		return catMetadata
	default:
		return catText
	}
}

// listPrefixRe splits a list line into its marker (`-`, `-. `, `-.. `, ...)
// and body.
var listPrefixRe = regexp.MustCompile(`^(-\.*\s?)(.*)$`)

// splitPrefix extracts a line's distinguished prefix and body per §4.5
// step 1.
func splitPrefix(line string, cat lineCategory) (prefix, body string) {
	switch cat {
	case catList:
		if m := listPrefixRe.FindStringSubmatch(line); m != nil {
			return m[1], m[2]
		}

		return "", line
	case catAttribute:
		return ":", strings.TrimPrefix(line, ":")
	default:
		return "", line
	}
}

// whitespaceRunC0 collapses any run of whitespace to a single space during
// the c0 pass.
var whitespaceRunC0 = regexp.MustCompile(`\s+`)

// compress implements Stage 5: cumulative passes 0..Compression, applied in
// order. Block-payload lines (strictly between `<<<` and `>>>`) are
// passthrough in every pass.
func compress(lines []string, cfg *Config) []string {
	for level := 0; level <= cfg.Compression; level++ {
		switch level {
		case 0, 1:
			lines = applyC0(lines)
		case 2:
			lines = applyC2(lines, cfg)
		}
	}

	return lines
}

// applyC0 implements §4.5's c0 pass: collapse internal whitespace, trim,
// drop empty lines, and drop thematic-break-shaped lines. c1 reapplies this
// pass verbatim, per §4.5.
func applyC0(lines []string) []string {
	out := make([]string, 0, len(lines))
	inPayload := false

	for _, line := range lines {
		switch line {
		case "<<<":
			inPayload = true
			out = append(out, line)

			continue
		case ">>>":
			inPayload = false
			out = append(out, line)

			continue
		}

		if inPayload {
			out = append(out, line)

			continue
		}

		collapsed := strings.TrimSpace(whitespaceRunC0.ReplaceAllString(line, " "))
		if collapsed == "" || thematicBreakRe.MatchString(collapsed) {
			continue
		}

		out = append(out, collapsed)
	}

	return out
}

// phraseRule is a compiled, case-insensitive substring rule built from a
// c2 phrase-map or units entry.
type phraseRule struct {
	re   *regexp.Regexp
	repl string
}

// compilePhraseRules compiles m's keys, longest first (ties broken
// alphabetically for determinism regardless of map iteration order), into
// case-insensitive substring rules.
func compilePhraseRules(m map[string]string) []phraseRule {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}

		return keys[i] < keys[j]
	})

	rules := make([]phraseRule, len(keys))
	for i, k := range keys {
		rules[i] = phraseRule{re: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(k)), repl: m[k]}
	}

	return rules
}

// applyPhraseMap implements §4.5 c2 step 2.
func applyPhraseMap(body string, rules []phraseRule) string {
	for _, r := range rules {
		body = r.re.ReplaceAllLiteralString(body, r.repl)
	}

	return body
}

// applyUnits implements §4.5 c2 step 3: first collapse `<digits><ws><unit>`
// to `<digits><replacement>`, then replace any remaining standalone
// occurrence of the unit phrase.
func applyUnits(body string, units map[string]string, unitKeys []string) string {
	for _, k := range unitKeys {
		repl := units[k]

		digitRe := regexp.MustCompile(`(?i)(\d+)\s*` + regexp.QuoteMeta(k))
		body = digitRe.ReplaceAllStringFunc(body, func(m string) string {
			sub := digitRe.FindStringSubmatch(m)

			return sub[1] + repl
		})

		standaloneRe := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(k) + `\b`)
		body = standaloneRe.ReplaceAllLiteralString(body, repl)
	}

	return body
}

// sortedKeysByLenDesc returns m's keys ordered longest-first, ties broken
// alphabetically.
func sortedKeysByLenDesc(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}

		return keys[i] < keys[j]
	})

	return keys
}

// toLowerSet builds a case-insensitive, trimmed membership set.
func toLowerSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(strings.TrimSpace(w))] = true
	}

	return set
}

// letterOnlyLower returns tok's letters only, lowercased, for stopword
// matching.
func letterOnlyLower(tok string) string {
	var b strings.Builder

	for _, r := range tok {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}

	return b.String()
}

// removeStopwords implements §4.5 c2 step 5.
func removeStopwords(body string, stop, protect map[string]bool) string {
	tokens := strings.Fields(body)
	kept := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		core := letterOnlyLower(tok)
		if core != "" && !protect[core] && stop[core] {
			continue
		}

		kept = append(kept, tok)
	}

	return strings.Join(kept, " ")
}

// periodExceptions are suffixes that exempt a line from trailing-period
// stripping.
var periodExceptions = []string{"...", "e.g.", "i.e.", "etc."}

// stripTrailingPeriod implements §4.5 c2 step 6.
func stripTrailingPeriod(line string) string {
	if !strings.HasSuffix(line, ".") {
		return line
	}

	lower := strings.ToLower(line)
	for _, ex := range periodExceptions {
		if strings.HasSuffix(lower, ex) {
			return line
		}
	}

	return line[:len(line)-1]
}

// applyC2 implements §4.5's c2 pass, operating on text, list, and attribute
// lines only; all other categories, and block-payload lines, pass through
// unchanged. Trailing-period stripping (step 6) also runs on attribute
// lines: a KV value captured from a "key: value." sentence carries the
// sentence's terminal period into the value, and leaving it there would
// defeat the rest of step 6's intent for any attribute derived that way.
func applyC2(lines []string, cfg *Config) []string {
	phraseRules := compilePhraseRules(cfg.PhraseMap)
	unitKeys := sortedKeysByLenDesc(cfg.Units)
	stop := toLowerSet(cfg.Stopwords)
	protect := toLowerSet(cfg.ProtectWords)

	out := make([]string, 0, len(lines))
	inPayload := false

	for _, line := range lines {
		switch line {
		case "<<<":
			inPayload = true
			out = append(out, line)

			continue
		case ">>>":
			inPayload = false
			out = append(out, line)

			continue
		}

		if inPayload {
			out = append(out, line)

			continue
		}

		cat := categorize(line)
		if cat != catText && cat != catList && cat != catAttribute {
			out = append(out, line)

			continue
		}

		prefix, body := splitPrefix(line, cat)
		body = applyPhraseMap(body, phraseRules)
		body = applyUnits(body, cfg.Units, unitKeys)

		if cat == catText || cat == catList {
			body = removeStopwords(body, stop, protect)
		}

		result := prefix + body
		// Attribute values are frequently captured whole from a "key: value."
		// sentence (see kvRe in parse.go), carrying the sentence's terminal
		// period into the value; strip it the same as text/list lines.
		result = stripTrailingPeriod(result)

		out = append(out, result)
	}

	return out
}
