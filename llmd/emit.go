package llmd

import (
	"regexp"
	"strings"
)

// emitter owns the mutable state of a single Stages 3+4 walk: the heading
// stack, the pending KV buffer, and the currently emitted scope. A new
// emitter is created per [Compile] call; there is no state shared across
// calls.
type emitter struct {
	cfg *Config

	stack        headingStack
	currentScope string
	hasScope     bool

	kv  []kvPair
	out []string
}

// kvPair is one (normalized-key, rendered-value) entry in the pending KV
// buffer.
type kvPair struct {
	key   string
	value string
}

// keepURLs reports whether link/image rewriting should retain "text<url>".
// Below compression 2, URLs are always kept; at 2+, it follows the
// configured KeepURLs flag.
func (e *emitter) keepURLs() bool {
	return e.cfg.Compression < 2 || e.cfg.KeepURLs
}

// emitScope appends an `@<name>` line and updates the current scope cursor.
func (e *emitter) emitScope(name string) {
	e.out = append(e.out, "@"+name)
	e.currentScope = name
	e.hasScope = true
}

// ensureScope synthesizes `@root` if no scope has been emitted yet.
func (e *emitter) ensureScope() {
	if !e.hasScope {
		e.emitScope("root")
	}
}

// emit walks nodes in order, producing the Stage 3+4 output lines.
func emit(nodes []Node, blocks []Block, cfg *Config) []string {
	e := &emitter{cfg: cfg}

	for _, n := range nodes {
		switch v := n.(type) {
		case Heading:
			e.renderHeading(v)
		case Paragraph:
			e.renderParagraph(v)
		case ListItem:
			e.renderListItem(v)
		case Table:
			e.renderTable(v)
		case KVLine:
			e.renderKVLine(v)
		case BlockRef:
			e.renderBlockRef(v, blocks)
		case Blank:
			// Ignored during emission.
		}
	}

	e.flushKV()

	return e.out
}

// renderHeading implements the §4.4 scope-resolution rule.
func (e *emitter) renderHeading(h Heading) {
	e.flushKV()

	name := normalizeScopeName(h.Text, e.cfg.Compression)
	e.stack.push(h.Level, name)

	resolved := e.stack.resolve(e.cfg.ScopeMode)
	if resolved != e.currentScope || !e.hasScope {
		e.emitScope(resolved)
	}
}

// renderParagraph implements §4.4's paragraph emission, including optional
// sentence splitting.
func (e *emitter) renderParagraph(p Paragraph) {
	e.ensureScope()
	e.flushKV()

	text := renderInline(p.Text, e.keepURLs())

	if e.cfg.SentenceSplit && e.cfg.Compression >= 2 {
		for _, s := range splitSentences(text) {
			if s != "" {
				e.out = append(e.out, s)
			}
		}

		return
	}

	if text != "" {
		e.out = append(e.out, text)
	}
}

// renderListItem implements §4.4's list-item emission, including the
// dot-depth nesting indicator.
func (e *emitter) renderListItem(li ListItem) {
	e.ensureScope()
	e.flushKV()

	text := renderInline(li.Text, e.keepURLs())

	line := "-" + strings.Repeat(".", li.Depth)
	if li.Depth > 0 {
		line += " "
	}

	e.out = append(e.out, line+text)
}

// renderKVLine implements §4.4's key-value handling: a key that normalizes
// to empty is downgraded to a raw paragraph-style line; otherwise the pair
// joins the pending KV buffer.
func (e *emitter) renderKVLine(kv KVLine) {
	e.ensureScope()

	key := normalizeKey(kv.Key)
	if key == "" {
		e.flushKV()
		e.out = append(e.out, kv.Key+": "+kv.Value)

		return
	}

	e.kv = append(e.kv, kvPair{key: key, value: renderInline(kv.Value, e.keepURLs())})
}

// renderBlockRef implements §4.4's block-reference emission: a `::<lang>`
// header, `<<<`, the verbatim payload, and `>>>`.
func (e *emitter) renderBlockRef(br BlockRef, blocks []Block) {
	e.ensureScope()
	e.flushKV()

	if br.Index < 0 || br.Index >= len(blocks) {
		return
	}

	block := blocks[br.Index]

	lang := block.Lang
	if lang == "" {
		lang = "code"
	}

	e.out = append(e.out, "::"+lang, "<<<")

	if block.Payload != "" {
		e.out = append(e.out, strings.Split(block.Payload, "\n")...)
	}

	e.out = append(e.out, ">>>")
}

// sentenceBoundaryRe locates a sentence boundary: a run of terminal
// punctuation, whitespace, then an uppercase letter. The uppercase letter is
// captured so it can be preserved as the start of the next sentence.
var sentenceBoundaryRe = regexp.MustCompile(`([.!?]+)(\s+)([A-Z])`)

// splitSentences implements §4.4's sentence splitting.
func splitSentences(text string) []string {
	var out []string

	rest := text

	for {
		loc := sentenceBoundaryRe.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}

		out = append(out, strings.TrimSpace(rest[:loc[3]]))
		rest = rest[loc[6]:]
	}

	if strings.TrimSpace(rest) != "" {
		out = append(out, strings.TrimSpace(rest))
	}

	return out
}
