package llmd_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.llmdc.dev/compiler/llmd"
	"go.llmdc.dev/compiler/stringtest"
)

func TestCompileBoundaryCases(t *testing.T) {
	t.Parallel()

	t.Run("empty input yields empty output", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", llmd.Compile("", nil))
	})

	t.Run("heading only yields a single scope line", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "@getting_started\n", llmd.Compile("## Getting Started", nil))
	})

	t.Run("heading normalizing to empty emits a bare @", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "@\n", llmd.Compile("## ???", nil))
	})

	t.Run("nil config behaves like NewConfig defaults", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, llmd.Compile("## A", llmd.NewConfig()), llmd.Compile("## A", nil))
	})
}

func TestCompileAuthenticationExample(t *testing.T) {
	t.Parallel()

	input := stringtest.JoinLF(
		"## Authentication",
		"The API supports authentication via OAuth2 and API keys.",
		"- Use OAuth2 for user-facing apps.",
		"- Use API keys for server-to-server.",
		"Rate limit: 1000 requests per minute.",
	)

	want := stringtest.JoinLF(
		"@authentication",
		"API supports authentication via OAuth2 and API keys",
		"-Use OAuth2 user-facing apps",
		"-Use API keys server-to-server",
		":rate_limit=1000/m",
	) + "\n"

	assert.Equal(t, want, llmd.Compile(input, nil))
}

func TestCompilePrefixExtractionExample(t *testing.T) {
	t.Parallel()

	input := stringtest.JoinLF(
		"## Text Styles",
		"| Class | Effect |",
		"|-------|--------|",
		"| flm-text--secondary | Color: --bodySubtext |",
		"| flm-text--disabled | Color: --disabledText |",
		"| flm-text--error | Color: --errorText |",
	)

	out := llmd.Compile(input, nil)

	assert.Contains(t, out, "@text_styles\n")
	assert.Contains(t, out, ":_col=effect\n")
	assert.Contains(t, out, ":_pfx=flm-text--\n")
	assert.Contains(t, out, "secondary=Color: --bodySubtext")
	assert.Contains(t, out, "disabled=Color: --disabledText")
	assert.Contains(t, out, "error=Color: --errorText")
}

func TestCompileKeyedMultiTable(t *testing.T) {
	t.Parallel()

	input := stringtest.JoinLF(
		"## Config",
		"| Name | Type | Default |",
		"|------|------|---------|",
		"| timeout | int | 30 |",
		"| retries | int | 3 |",
	)

	want := stringtest.JoinLF(
		"@config",
		":_cols=name¦type¦default",
		":timeout=int¦30 retries=int¦3",
	) + "\n"

	assert.Equal(t, want, llmd.Compile(input, nil))
}

func TestCompileProtectedCodeBlock(t *testing.T) {
	t.Parallel()

	input := "```json\n{\"retry\":3}\n```\n"

	want := stringtest.JoinLF(
		"@root",
		"::json",
		"<<<",
		`{"retry":3}`,
		">>>",
	) + "\n"

	assert.Equal(t, want, llmd.Compile(input, nil))
}

func TestCompileUnterminatedFence(t *testing.T) {
	t.Parallel()

	input := "## Notes\n```go\nfunc f() {}\n"

	out := llmd.Compile(input, nil)

	assert.True(t, strings.HasPrefix(out, "@notes\n::go\n<<<\nfunc f() {}\n>>>\n"))
}

func TestCompileHeadingDescentAndScopeSwitching(t *testing.T) {
	t.Parallel()

	input := stringtest.JoinLF(
		"## A",
		"first",
		"### B",
		"second",
		"## C",
		"third",
	)

	cfg := llmd.NewConfig()
	cfg.ScopeMode = llmd.ScopeConcat

	out := llmd.Compile(input, cfg)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	var scopes []string

	for _, l := range lines {
		if strings.HasPrefix(l, "@") {
			scopes = append(scopes, l)
		}
	}

	assert.Equal(t, []string{"@a", "@a_b", "@c"}, scopes)
}

func TestCompileIsDeterministic(t *testing.T) {
	t.Parallel()

	input := stringtest.JoinLF(
		"## Determinism",
		"Some paragraph text with a [link](https://example.com).",
		"- an item",
	)

	cfg := llmd.NewConfig()

	assert.Equal(t, llmd.Compile(input, cfg), llmd.Compile(input, cfg))
}

func TestCompileFilesConcatenatesInLexicographicOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFile(t, dir+"/b.md", "## B\ntext")
	writeFile(t, dir+"/a.md", "## A\ntext")

	out, err := llmd.CompileFiles([]string{dir + "/b.md", dir + "/a.md"}, nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	var scopes []string

	for _, l := range lines {
		if strings.HasPrefix(l, "@") {
			scopes = append(scopes, l)
		}
	}

	assert.Equal(t, []string{"@a", "@b"}, scopes)
}

func TestWriteCompiled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := dir + "/nested/out.llmd"

	err := llmd.WriteCompiled(path, "## Title\ntext", nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "@title\ntext\n", string(data))
}

func TestCompileFileReadError(t *testing.T) {
	t.Parallel()

	_, err := llmd.CompileFile("/nonexistent/path.md", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, llmd.ErrReadInput)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err)
}
