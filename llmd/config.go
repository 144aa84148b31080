package llmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ScopeMode selects how a heading's emitted scope name is derived from the
// heading stack. See [Config.ScopeMode].
type ScopeMode string

// The recognized scope modes.
const (
	ScopeFlat    ScopeMode = "flat"
	ScopeConcat  ScopeMode = "concat"
	ScopeStacked ScopeMode = "stacked"
)

// Flags holds CLI flag names for [Config], letting a caller rename flags
// without forking [Config.RegisterFlags].
type Flags struct {
	Compression      string
	ScopeMode        string
	KeepURLs         string
	SentenceSplit    string
	AnchorEvery      string
	MaxKVPerLine     string
	PrefixExtraction string
	MinPrefixLen     string
	MinPrefixPct     string
	BoolCompress     string
}

// Config is the resolved configuration record [Compile] acts on. Zero-value
// fields are not valid defaults; construct one with [NewConfig] and override
// only the fields a caller needs to change.
//
// Config's scalar options double as CLI flags: [Config.RegisterFlags] binds
// them onto a [*pflag.FlagSet] directly, in the style of this repository's
// other Config types. The map-valued options (Stopwords, ProtectWords,
// PhraseMap, Units) are not flag-bound; a caller loads those from a
// dictionary file and assigns them directly.
type Config struct {
	// Flags holds the CLI flag names used by RegisterFlags.
	Flags Flags
	// Compression is the cumulative rewrite intensity, 0..2.
	Compression int
	// ScopeMode selects flat/concat/stacked heading-stack name resolution.
	ScopeMode ScopeMode
	// KeepURLs retains "text<url>" instead of bare "text" for links/images
	// at Compression >= 2. Below 2, URLs are always kept regardless of this
	// field.
	KeepURLs bool
	// SentenceSplit splits paragraph text at sentence boundaries when
	// Compression >= 2.
	SentenceSplit bool
	// AnchorEvery re-emits the active scope line after every N emitted
	// non-scope, non-payload lines. 0 disables anchoring.
	AnchorEvery int
	// MaxKVPerLine is the maximum number of key=value pairs per emitted
	// attribute line.
	MaxKVPerLine int
	// PrefixExtraction enables common-prefix factoring of batched KV keys.
	PrefixExtraction bool
	// MinPrefixLen is the minimum extracted-prefix length (before trimming
	// back to a separator) for prefix extraction to apply.
	MinPrefixLen int
	// MinPrefixPct is the minimum fraction of a KV batch's keys that must
	// share the candidate prefix for it to be emitted.
	MinPrefixPct float64
	// BoolCompress enables boolean-valued table column compression at
	// Compression >= 2.
	BoolCompress bool
	// Stopwords is the c2 function-word removal set (case-insensitive).
	Stopwords []string
	// ProtectWords is the c2 removal-exempt set (case-insensitive),
	// evaluated before Stopwords.
	ProtectWords []string
	// PhraseMap is the c2 phrase-substitution table. Longer source phrases
	// are tried first regardless of map iteration order.
	PhraseMap map[string]string
	// Units is the c2 unit-normalization table, same ordering rule as
	// PhraseMap.
	Units map[string]string
	// Diagnostics receives advisory, non-fatal validation messages (one per
	// line, newline-terminated). A nil Diagnostics discards them.
	Diagnostics io.Writer
}

// defaultStopwords is the default §4.5 c2 removal set.
var defaultStopwords = []string{
	"the", "a", "an", "really", "just", "that", "is", "are", "was", "were",
	"of", "in", "on", "at", "for", "with", "by", "from", "to",
}

// defaultProtectWords is the default §4.5 c2 removal-exempt set.
var defaultProtectWords = []string{
	"no", "not", "never", "must", "should", "may",
}

// defaultPhraseMap is the default §4.5 c2 phrase-substitution table. An
// empty-string value (e.g. "is used to") erases the matched phrase.
var defaultPhraseMap = map[string]string{
	"in order to":        "to",
	"as well as":         "¦",
	"due to":             "because",
	"is able to":         "can",
	"is used to":         "",
	"is responsible for": "handles",
	"refers to":          "=",
}

// defaultUnits is the default §4.5 c2 unit-normalization table.
var defaultUnits = map[string]string{
	"requests per minute": "/m",
	"milliseconds":        "ms",
	"seconds":             "s",
}

// NewConfig returns a [Config] populated with the defaults from §6.2.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			Compression:      "compression",
			ScopeMode:        "scope-mode",
			KeepURLs:         "keep-urls",
			SentenceSplit:    "sentence-split",
			AnchorEvery:      "anchor-every",
			MaxKVPerLine:     "max-kv-per-line",
			PrefixExtraction: "prefix-extraction",
			MinPrefixLen:     "min-prefix-len",
			MinPrefixPct:     "min-prefix-pct",
			BoolCompress:     "bool-compress",
		},
		Compression:      2,
		ScopeMode:        ScopeFlat,
		KeepURLs:         false,
		SentenceSplit:    false,
		AnchorEvery:      0,
		MaxKVPerLine:     4,
		PrefixExtraction: true,
		MinPrefixLen:     6,
		MinPrefixPct:     0.6,
		BoolCompress:     true,
		Stopwords:        append([]string(nil), defaultStopwords...),
		ProtectWords:     append([]string(nil), defaultProtectWords...),
		PhraseMap:        cloneMap(defaultPhraseMap),
		Units:            cloneMap(defaultUnits),
	}
}

func cloneMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}

// resolved returns c, or [NewConfig]'s defaults if c is nil.
func (c *Config) resolved() *Config {
	if c != nil {
		return c
	}

	return NewConfig()
}

// diagnose writes an advisory message to c's diagnostic sink, if any.
func (c *Config) diagnose(msg string) {
	if c == nil || c.Diagnostics == nil {
		return
	}

	_, _ = io.WriteString(c.Diagnostics, msg+"\n")
}

// scopeModeFlag adapts a *ScopeMode field to the [pflag.Value] interface so
// it can be bound directly with [pflag.FlagSet.Var].
type scopeModeFlag struct{ v *ScopeMode }

func (f scopeModeFlag) String() string { return string(*f.v) }
func (f scopeModeFlag) Set(s string) error {
	*f.v = ScopeMode(s)

	return nil
}
func (f scopeModeFlag) Type() string { return "string" }

// RegisterFlags adds compilation flags to the given [*pflag.FlagSet], using
// the names in c.Flags and c's current field values as defaults.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.IntVar(&c.Compression, c.Flags.Compression, c.Compression,
		"cumulative rewrite intensity, 0..2")
	flags.Var(scopeModeFlag{&c.ScopeMode}, c.Flags.ScopeMode,
		"heading-stack scope naming: flat, concat, or stacked")
	flags.BoolVar(&c.KeepURLs, c.Flags.KeepURLs, c.KeepURLs,
		"keep link/image URLs at compression >= 2")
	flags.BoolVar(&c.SentenceSplit, c.Flags.SentenceSplit, c.SentenceSplit,
		"split paragraphs at sentence boundaries at compression >= 2")
	flags.IntVar(&c.AnchorEvery, c.Flags.AnchorEvery, c.AnchorEvery,
		"re-emit the active scope every N lines (0 disables)")
	flags.IntVar(&c.MaxKVPerLine, c.Flags.MaxKVPerLine, c.MaxKVPerLine,
		"maximum key=value pairs per emitted attribute line")
	flags.BoolVar(&c.PrefixExtraction, c.Flags.PrefixExtraction, c.PrefixExtraction,
		"factor a common prefix out of a batch of key=value keys")
	flags.IntVar(&c.MinPrefixLen, c.Flags.MinPrefixLen, c.MinPrefixLen,
		"minimum extracted key prefix length")
	flags.Float64Var(&c.MinPrefixPct, c.Flags.MinPrefixPct, c.MinPrefixPct,
		"minimum fraction of keys that must share the extracted prefix")
	flags.BoolVar(&c.BoolCompress, c.Flags.BoolCompress, c.BoolCompress,
		"compress yes/no/true/false table columns at compression >= 2")
}

// RegisterCompletions registers shell completions for compilation flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Compression,
		cobra.FixedCompletions([]string{"0", "1", "2"}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Compression, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.ScopeMode,
		cobra.FixedCompletions(
			[]string{string(ScopeFlat), string(ScopeConcat), string(ScopeStacked)},
			cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.ScopeMode, err)
	}

	return nil
}

// ValidateConfig checks cfg's numeric and enum fields against the ranges
// listed for each option. [Compile] itself tolerates any *Config without
// calling this; it exists for callers assembling a Config from untrusted
// input (CLI flags, a dictionary file) who want to reject bad values before
// compiling rather than have them silently clamped.
func ValidateConfig(cfg *Config) error {
	cfg = cfg.resolved()

	switch {
	case cfg.Compression < 0 || cfg.Compression > 2:
		return fmt.Errorf("%w: compression must be 0..2, got %d", ErrInvalidOption, cfg.Compression)
	case cfg.ScopeMode != ScopeFlat && cfg.ScopeMode != ScopeConcat && cfg.ScopeMode != ScopeStacked:
		return fmt.Errorf("%w: unknown scope_mode %q", ErrInvalidOption, cfg.ScopeMode)
	case cfg.AnchorEvery < 0:
		return fmt.Errorf("%w: anchor_every must be >= 0, got %d", ErrInvalidOption, cfg.AnchorEvery)
	case cfg.MaxKVPerLine < 1:
		return fmt.Errorf("%w: max_kv_per_line must be >= 1, got %d", ErrInvalidOption, cfg.MaxKVPerLine)
	case cfg.MinPrefixLen < 1:
		return fmt.Errorf("%w: min_prefix_len must be >= 1, got %d", ErrInvalidOption, cfg.MinPrefixLen)
	case cfg.MinPrefixPct < 0 || cfg.MinPrefixPct > 1:
		return fmt.Errorf("%w: min_prefix_pct must be 0..1, got %v", ErrInvalidOption, cfg.MinPrefixPct)
	}

	return nil
}
