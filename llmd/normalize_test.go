package llmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  []string
	}{
		"unifies crlf": {
			input: "a\r\nb\r\nc",
			want:  []string{"a", "b", "c"},
		},
		"unifies lone cr": {
			input: "a\rb\rc",
			want:  []string{"a", "b", "c"},
		},
		"right-trims trailing whitespace": {
			input: "a   \nb\t\t\n",
			want:  []string{"a", "b", ""},
		},
		"applies nfkc compatibility normalization": {
			// U+FB01 LATIN SMALL LIGATURE FI decomposes to "fi" under NFKC.
			input: "ﬁle",
			want:  []string{"file"},
		},
		"empty input yields one empty line": {
			input: "",
			want:  []string{""},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, normalize(tc.input))
		})
	}
}

func TestToValidUTF8(t *testing.T) {
	t.Parallel()

	in := "a" + string([]byte{0xff}) + "b"
	out := toValidUTF8(in)

	assert.Equal(t, "a�b", out)
}
