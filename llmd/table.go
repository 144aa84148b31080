package llmd

import (
	"regexp"
	"strings"
)

// tableKind is the §4.4.2 table classification.
type tableKind int

const (
	tableProperty tableKind = iota
	tableKeyedMulti
	tableRaw
)

// genericHeaders is the §4.4.3 generic header set: a second header in this
// set suppresses the `:_col=` declaration for a property table.
var genericHeaders = map[string]bool{
	"value": true, "description": true, "details": true, "info": true,
	"notes": true, "default": true, "type": true,
}

func isGenericHeader(h string) bool {
	return genericHeaders[strings.ToLower(strings.TrimSpace(h))]
}

// identifierStartRe matches the first character of an identifier-like cell.
var identifierStartRe = regexp.MustCompile(`^[A-Za-z.\-]`)

// isIdentifierLike implements §4.4.2's identifier-like test: starts with a
// letter, `.`, or `-`; whitespace-splits into at most 4 words.
func isIdentifierLike(cell string) bool {
	t := strings.TrimSpace(cell)
	if t == "" || !identifierStartRe.MatchString(t) {
		return false
	}

	return len(strings.Fields(t)) <= 4
}

// classifyTable implements §4.4.2: property (2 columns), keyed_multi (3+),
// or raw, demoted from either when the first-column uniqueness/
// identifier-like constraint fails for any data row.
func classifyTable(tbl Table) tableKind {
	width := len(tbl.Rows[0])
	data := tbl.Rows[1:]

	if width < 2 {
		return tableRaw
	}

	seen := make(map[string]bool, len(data))

	for _, row := range data {
		cell := strings.TrimSpace(row[0])
		if !isIdentifierLike(cell) || seen[cell] {
			return tableRaw
		}

		seen[cell] = true
	}

	if width == 2 {
		return tableProperty
	}

	return tableKeyedMulti
}

// boolCompressMap is the §4.4.3 boolean column compression table.
var boolCompressMap = map[string]string{
	"yes": "Y", "no": "N", "true": "T", "false": "F",
	"enabled": "Y", "disabled": "N",
}

func isBoolCompressible(v string) bool {
	_, ok := boolCompressMap[strings.ToLower(strings.TrimSpace(v))]

	return ok
}

func allBoolCompressible(vals []string) bool {
	if len(vals) == 0 {
		return false
	}

	for _, v := range vals {
		if !isBoolCompressible(v) {
			return false
		}
	}

	return true
}

// renderTable implements §4.4's table handling: inline-render every cell,
// apply boolean column compression where it qualifies, classify, then
// dispatch to the matching §4.4.3 emission.
func (e *emitter) renderTable(tbl Table) {
	e.ensureScope()
	e.flushKV()

	header := tbl.Rows[0]
	data := tbl.Rows[1:]
	width := len(header)

	rendered := make([][]string, len(data))
	for i, row := range data {
		rendered[i] = make([]string, width)
		for j, cell := range row {
			rendered[i][j] = renderInline(cell, e.keepURLs())
		}
	}

	if e.cfg.Compression >= 2 && e.cfg.BoolCompress {
		for j := 1; j < width; j++ {
			col := make([]string, len(rendered))
			for i := range rendered {
				col[i] = rendered[i][j]
			}

			if allBoolCompressible(col) {
				for i := range rendered {
					rendered[i][j] = boolCompressMap[strings.ToLower(strings.TrimSpace(rendered[i][j]))]
				}
			}
		}
	}

	switch classifyTable(tbl) {
	case tableProperty:
		e.emitPropertyTable(header, rendered)
	case tableKeyedMulti:
		e.emitKeyedMultiTable(header, rendered)
	default:
		e.emitRawTable(header, rendered)
	}
}

// emitPropertyTable implements §4.4.3's property-table emission.
func (e *emitter) emitPropertyTable(header []string, rendered [][]string) {
	if !isGenericHeader(header[1]) {
		e.out = append(e.out, ":_col="+normalizeKey(header[1]))
	}

	for _, row := range rendered {
		key := normalizeKey(row[0])
		if key == "" {
			e.out = append(e.out, row[0]+"¦"+row[1])

			continue
		}

		e.kv = append(e.kv, kvPair{key: key, value: row[1]})
	}
}

// emitKeyedMultiTable implements §4.4.3's keyed_multi-table emission.
func (e *emitter) emitKeyedMultiTable(header []string, rendered [][]string) {
	cols := make([]string, len(header))
	for j, h := range header {
		cols[j] = normalizeKey(h)
	}

	e.out = append(e.out, ":_cols="+strings.Join(cols, "¦"))

	for _, row := range rendered {
		key := normalizeKey(row[0])
		if key == "" {
			e.out = append(e.out, strings.Join(row, "¦"))

			continue
		}

		e.kv = append(e.kv, kvPair{key: key, value: strings.Join(row[1:], "¦")})
	}
}

// emitRawTable implements §4.4.3's raw-table emission.
func (e *emitter) emitRawTable(header []string, rendered [][]string) {
	if len(header) >= 2 {
		cols := make([]string, len(header))
		for j, h := range header {
			cols[j] = normalizeKey(h)
		}

		e.out = append(e.out, ":_cols="+strings.Join(cols, "¦"))
	}

	for _, row := range rendered {
		e.out = append(e.out, strings.Join(row, "¦"))
	}
}
