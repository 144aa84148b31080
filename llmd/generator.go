package llmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Compile runs the full six-stage pipeline (Normalize, Protect, Parse,
// Resolve+Emit, Compress, Post-process) over source and returns the LLMD
// text, terminated by exactly one trailing LF; when no line is emitted the
// result is the empty string. Compile never errors:
// the core is tolerant of any input string by design (§7). Advisory
// validation diagnostics, if cfg has a non-nil Diagnostics sink, are written
// there rather than returned.
//
// A nil cfg is equivalent to [NewConfig]'s defaults.
func Compile(source string, cfg *Config) string {
	cfg = cfg.resolved()

	lines := normalize(source)
	protectedLines, blocks := protectBlocks(lines)
	nodes := parseIR(protectedLines)
	emitted := emit(nodes, blocks, cfg)
	compressed := compress(emitted, cfg)
	final := insertAnchors(compressed, cfg.AnchorEvery)

	validatePreScope(final, cfg.diagnose)

	if len(final) == 0 {
		return ""
	}

	return strings.Join(final, "\n") + "\n"
}

// CompileFile reads path and compiles it with cfg, wrapping any read error
// in [ErrReadInput]. It does not itself apply the multi-file concatenation
// or ordering policy described in spec §1; see [CompileFiles] for that.
func CompileFile(path string, cfg *Config) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrReadInput, path, err)
	}

	return Compile(string(data), cfg), nil
}

// CompileFiles implements the caller-side contract described in spec §1 for
// multi-file runs: paths are sorted lexicographically, their contents are
// concatenated with a single blank line between each, and the result is
// compiled as one document. Relative order of equal paths is preserved;
// paths is not mutated.
func CompileFiles(paths []string, cfg *Config) (string, error) {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	contents := make([]string, 0, len(sorted))

	for _, p := range sorted {
		data, err := os.ReadFile(p)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrReadInput, p, err)
		}

		contents = append(contents, string(data))
	}

	return Compile(strings.Join(contents, "\n\n"), cfg), nil
}

// WriteCompiled compiles source and writes it to path, wrapping any write
// error in [ErrWriteOutput]. It is a convenience for callers that already
// hold Markdown source in memory and want a single call to produce a file on
// disk. Missing parent directories of path are created.
func WriteCompiled(path, source string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}

	if err := os.WriteFile(path, []byte(Compile(source, cfg)), 0o644); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}

	return nil
}
