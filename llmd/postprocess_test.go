package llmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertAnchors(t *testing.T) {
	t.Parallel()

	t.Run("disabled at zero", func(t *testing.T) {
		t.Parallel()

		lines := []string{"@a", "one", "two", "three"}
		assert.Equal(t, lines, insertAnchors(lines, 0))
	})

	t.Run("repeats active scope every n lines", func(t *testing.T) {
		t.Parallel()

		lines := []string{"@a", "one", "two", "three", "four"}
		out := insertAnchors(lines, 2)

		assert.Equal(t, []string{"@a", "one", "two", "@a", "three", "four", "@a"}, out)
	})

	t.Run("does not insert inside a block payload", func(t *testing.T) {
		t.Parallel()

		lines := []string{"@a", "::json", "<<<", "line1", "line2", "line3", ">>>"}
		out := insertAnchors(lines, 2)

		// ::json, <<<, and >>> count toward the period; payload lines do
		// not, and no anchor lands between <<< and >>>.
		assert.Equal(t, []string{
			"@a", "::json", "<<<", "line1", "line2", "line3", ">>>", "@a",
		}, out)
	})

	t.Run("counter resets on scope change", func(t *testing.T) {
		t.Parallel()

		// "one" alone after @a isn't enough to trigger an anchor (period
		// is 2); the scope change to @b resets the counter, and "two",
		// "three" then complete a fresh period under @b.
		lines := []string{"@a", "one", "@b", "two", "three"}
		out := insertAnchors(lines, 2)

		assert.Equal(t, []string{"@a", "one", "@b", "two", "three", "@b"}, out)
	})
}

func TestValidatePreScope(t *testing.T) {
	t.Parallel()

	var got []string

	diagnose := func(msg string) { got = append(got, msg) }

	validatePreScope([]string{"text before scope", "@root", "after"}, diagnose)
	assert.Len(t, got, 1)

	got = nil
	validatePreScope([]string{"~meta", "@root", "after"}, diagnose)
	assert.Empty(t, got)

	got = nil
	validatePreScope([]string{"@root", "text", "more"}, diagnose)
	assert.Empty(t, got)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("well-formed output has no issues", func(t *testing.T) {
		t.Parallel()

		out := "@root\n::json\n<<<\n{}\n>>>\n"
		assert.Empty(t, Validate(out))
	})

	t.Run("empty output has no issues", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, Validate(""))
		assert.Empty(t, Validate("\n"))
	})

	t.Run("unterminated block is flagged", func(t *testing.T) {
		t.Parallel()

		out := "@root\n::json\n<<<\n{}\n"
		assert.NotEmpty(t, Validate(out))
	})

	t.Run("close without open is flagged", func(t *testing.T) {
		t.Parallel()

		out := "@root\n>>>\n"
		assert.NotEmpty(t, Validate(out))
	})
}
