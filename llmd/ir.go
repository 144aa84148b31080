package llmd

// Kind identifies which of the fixed set of IR node variants a [Node] is.
type Kind int

// The closed set of IR node variants produced by [parseIR].
const (
	KindHeading Kind = iota
	KindParagraph
	KindListItem
	KindTable
	KindKVLine
	KindBlockRef
	KindBlank
)

// Node is an IR node produced by Stage 2 ([parseIR]) and consumed by Stage 3+4
// ([emit]). The set of concrete implementations is closed: [Heading],
// [Paragraph], [ListItem], [Table], [KVLine], [BlockRef], and [Blank]. A
// single type switch in [emit] is the only dispatch this package needs.
type Node interface {
	Kind() Kind
}

// Heading is a `#`..`######` line.
type Heading struct {
	Text  string
	Level int
}

// Kind implements [Node].
func (Heading) Kind() Kind { return KindHeading }

// Paragraph is one or more source lines merged by a single space.
type Paragraph struct {
	Text string
}

// Kind implements [Node].
func (Paragraph) Kind() Kind { return KindParagraph }

// ListItem is a `-`/`*`/`+` or `N.` line.
//
// Ordered is carried through the IR and is inspectable by callers, but per
// the format's design the emitted line never encodes ordinal position: both
// ordered and unordered items render with the same `-` (optionally
// dot-depth-suffixed) prefix.
type ListItem struct {
	Text    string
	Depth   int
	Ordered bool
}

// Kind implements [Node].
func (ListItem) Kind() Kind { return KindListItem }

// Table is a parsed Markdown table. Rows[0] is the header row; Rows[1:] are
// data rows. Every row has the same length, which is at least 1.
type Table struct {
	Rows [][]string
}

// Kind implements [Node].
func (Table) Kind() Kind { return KindTable }

// KVLine is a `key: value` line.
type KVLine struct {
	Key   string
	Value string
}

// Kind implements [Node].
func (KVLine) Kind() Kind { return KindKVLine }

// BlockRef references a protected block by its placeholder index.
type BlockRef struct {
	Index int
}

// Kind implements [Node].
func (BlockRef) Kind() Kind { return KindBlockRef }

// Blank is a blank source line. It carries no content and is ignored during
// emission; it exists in the IR only so that paragraph-merging (Stage 2) has
// a terminator to look for.
type Blank struct{}

// Kind implements [Node].
func (Blank) Kind() Kind { return KindBlank }
