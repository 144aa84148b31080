package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.llmdc.dev/compiler/llmd"
)

func TestCompileArgsStdin(t *testing.T) {
	t.Parallel()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	_, err = w.WriteString("## Title\ntext")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	old := os.Stdin
	os.Stdin = r

	defer func() { os.Stdin = old }()

	out, err := compileArgs([]string{"-"}, llmd.NewConfig())
	require.NoError(t, err)
	assert.Equal(t, "@title\ntext\n", out)
}

func TestCompileArgsRejectsStdinMixedWithFiles(t *testing.T) {
	t.Parallel()

	_, err := compileArgs([]string{"-", "a.md"}, llmd.NewConfig())
	require.Error(t, err)
}

func TestCompileArgsFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("## Title\ntext"), 0o644))

	out, err := compileArgs([]string{path}, llmd.NewConfig())
	require.NoError(t, err)
	assert.Equal(t, "@title\ntext\n", out)
}

func TestLoadDictionary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "dict.yaml")

	content := "stopwords:\n  - foo\n  - bar\nphrase_map:\n  hello world: hi\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	dict, err := loadDictionary(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "bar"}, dict.Stopwords)
	assert.Equal(t, map[string]string{"hello world": "hi"}, dict.PhraseMap)
}

func TestLoadDictionaryMissingFile(t *testing.T) {
	t.Parallel()

	_, err := loadDictionary("/nonexistent/dict.yaml")
	require.Error(t, err)
}

func TestApplyDictionary(t *testing.T) {
	t.Parallel()

	cfg := llmd.NewConfig()
	original := cfg.Units

	applyDictionary(cfg, &dictionaryFile{
		Stopwords: []string{"only", "these"},
	})

	assert.Equal(t, []string{"only", "these"}, cfg.Stopwords)
	assert.Equal(t, original, cfg.Units)
}

func TestVersionStringFallsBackToDev(t *testing.T) {
	t.Parallel()

	assert.Contains(t, versionString(), "dev")
}

func TestWriteOutputToFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.llmd")

	require.NoError(t, writeOutput(nil, path, "@root\ntext\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "@root\ntext\n", string(data))
}
