package llmd

import (
	"regexp"
	"strings"
)

// scopeNameDisallowed matches any character outside [A-Za-z0-9_-], which
// normalizeScopeName strips after collapsing whitespace to `_`.
var scopeNameDisallowed = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// whitespaceRun collapses one or more whitespace characters to a single `_`
// during scope-name and key normalization.
var whitespaceRun = regexp.MustCompile(`\s+`)

// keyDisallowed matches any character outside [a-z0-9_-] during key
// normalization.
var keyDisallowed = regexp.MustCompile(`[^a-z0-9_-]`)

// headingEntry is one level of the heading stack.
type headingEntry struct {
	name  string
	level int
}

// headingStack tracks nested heading scopes during emission. The rule: on
// each heading, pop while the top's level is >= the incoming level, then
// push the new entry.
type headingStack struct {
	entries []headingEntry
}

// push pops entries whose level is >= level, then pushes (level, name).
func (s *headingStack) push(level int, name string) {
	for len(s.entries) > 0 && s.entries[len(s.entries)-1].level >= level {
		s.entries = s.entries[:len(s.entries)-1]
	}

	s.entries = append(s.entries, headingEntry{level: level, name: name})
}

// resolve renders the scope name per mode: flat uses only the top entry's
// name; concat and stacked both join every entry bottom-to-top with `_`
// (§9 notes this as an unresolved open question; see SPEC_FULL.md).
func (s *headingStack) resolve(mode ScopeMode) string {
	if len(s.entries) == 0 {
		return ""
	}

	if mode == ScopeFlat {
		return s.entries[len(s.entries)-1].name
	}

	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.name
	}

	return strings.Join(names, "_")
}

// normalizeScopeName implements the §4.4 heading-name normalization: trim,
// collapse whitespace to `_`, drop characters outside [A-Za-z0-9_-], and
// lowercase when compression >= 2.
func normalizeScopeName(text string, compression int) string {
	name := strings.TrimSpace(text)
	name = whitespaceRun.ReplaceAllString(name, "_")
	name = scopeNameDisallowed.ReplaceAllString(name, "")

	if compression >= 2 {
		name = strings.ToLower(name)
	}

	return name
}

// normalizeKey implements the §4.4 key-value key normalization: trim,
// lowercase, spaces to `_`, drop characters outside [a-z0-9_-], then trim
// leading and trailing hyphens.
func normalizeKey(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	k = whitespaceRun.ReplaceAllString(k, "_")
	k = keyDisallowed.ReplaceAllString(k, "")
	k = strings.Trim(k, "-")

	return k
}
