package llmd

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// normalize implements Stage 0: decode as UTF-8 (substituting U+FFFD for
// invalid sequences), apply NFKC compatibility normalization, unify line
// endings to LF, and right-trim each resulting logical line.
func normalize(source string) []string {
	source = toValidUTF8(source)
	source = norm.NFKC.String(source)
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")

	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return lines
}

// toValidUTF8 replaces every invalid UTF-8 byte sequence with U+FFFD,
// matching the tolerant decoding behavior of [strings.ToValidUTF8] but
// without collapsing consecutive invalid runs to a single replacement
// character, since [utf8.DecodeRuneInString] already yields one
// [utf8.RuneError] per invalid byte.
func toValidUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			b.WriteRune(utf8.RuneError)
			i++

			continue
		}

		b.WriteRune(r)
		i += size
	}

	return b.String()
}
