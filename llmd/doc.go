// Package llmd compiles Markdown into LLMD, a line-oriented, implicit-scope
// text format designed to carry the semantic content of a Markdown document
// to a language model using substantially fewer tokens than the source.
//
// LLMD is lossy by design. It drops emphasis, preserves fenced code blocks
// verbatim, and rewrites headings, paragraphs, lists, key-value lines, and
// tables into a compact line grammar: `@scope` lines declare the active
// scope, `:key=value` lines (optionally batched and prefix-factored) carry
// attributes, `-` lines carry list items, and `::lang` / `<<<` / `>>>` frame
// opaque block payloads.
//
// [Compile] is the single entry point. It runs a fixed, six-stage pipeline:
//
//  1. Normalize: UTF-8 decode, NFKC, line-ending and trailing-whitespace
//     cleanup.
//  2. Protect: fenced code blocks are pulled out into a side table and
//     replaced by placeholder lines, so no later stage can rewrite their
//     payload.
//  3. Parse: a single left-to-right pass classifies every line into a flat,
//     ordered intermediate representation (see [Node]).
//  4. Resolve + emit: the IR is walked while maintaining a heading stack and
//     a pending key-value batching buffer, producing scope transitions,
//     paragraphs, list items, attribute lines, and table encodings.
//  5. Compress: three cumulative passes (whitespace cleanup, structural
//     compaction, token-level rewrites) are applied according to
//     [Config.Compression].
//  6. Post-process: structural invariants are checked (advisory only) and
//     scope anchors are inserted if configured.
//
// Every stage is a pure function of its input and the resolved [Config]; the
// package holds no package-level mutable state, and independent calls to
// [Compile] never interact.
//
//	cfg := llmd.NewConfig()
//	out := llmd.Compile(source, cfg)
//
// Advisory diagnostics produced while compiling are written to
// [Config.Diagnostics] as single lines, never folded into the returned
// string. A nil sink discards them.
package llmd
