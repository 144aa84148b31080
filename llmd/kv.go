package llmd

import "strings"

// flushKV implements §4.4.4: it ends the current KV batch, optionally
// factoring a common key prefix, then emits the (possibly rewritten) pairs
// in chunks of at most MaxKVPerLine.
func (e *emitter) flushKV() {
	if len(e.kv) == 0 {
		return
	}

	pairs := e.kv
	e.kv = nil

	if e.cfg.Compression == 0 {
		for _, p := range pairs {
			e.out = append(e.out, ":"+p.key+"="+p.value)
		}

		return
	}

	pairs = e.applyPrefixExtraction(pairs)

	chunkSize := e.cfg.MaxKVPerLine
	if chunkSize < 1 {
		chunkSize = 1
	}

	for i := 0; i < len(pairs); i += chunkSize {
		end := min(i+chunkSize, len(pairs))

		parts := make([]string, 0, end-i)
		for _, p := range pairs[i:end] {
			parts = append(parts, p.key+"="+p.value)
		}

		e.out = append(e.out, ":"+strings.Join(parts, " "))
	}
}

// applyPrefixExtraction implements the prefix-factoring half of §4.4.4. It
// returns pairs unchanged if extraction is disabled, the batch is too small,
// no candidate prefix clears MinPrefixLen after trimming to a separator, or
// too few keys share the final prefix.
func (e *emitter) applyPrefixExtraction(pairs []kvPair) []kvPair {
	if !e.cfg.PrefixExtraction || len(pairs) < 3 {
		return pairs
	}

	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = p.key
	}

	candidate := longestCommonPrefix(keys)
	if len(candidate) < e.cfg.MinPrefixLen {
		return pairs
	}

	prefix := trimToSeparator(candidate)
	if prefix == "" {
		return pairs
	}

	matches := 0

	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			matches++
		}
	}

	if float64(matches)/float64(len(keys)) < e.cfg.MinPrefixPct {
		return pairs
	}

	e.out = append(e.out, ":_pfx="+prefix)

	out := make([]kvPair, len(pairs))

	for i, p := range pairs {
		if rest, ok := strings.CutPrefix(p.key, prefix); ok {
			out[i] = kvPair{key: rest, value: p.value}
		} else {
			out[i] = p
		}
	}

	return out
}

// longestCommonPrefix returns the longest string prefix shared by every key.
func longestCommonPrefix(keys []string) string {
	if len(keys) == 0 {
		return ""
	}

	prefix := keys[0]

	for _, k := range keys[1:] {
		i := 0
		for i < len(prefix) && i < len(k) && prefix[i] == k[i] {
			i++
		}

		prefix = prefix[:i]
		if prefix == "" {
			return ""
		}
	}

	return prefix
}

// trimToSeparator trims a candidate prefix back to and including its last
// `-`, `_`, or `.`, or returns "" if it contains none (extraction rejected).
func trimToSeparator(prefix string) string {
	idx := strings.LastIndexAny(prefix, "-_.")
	if idx < 0 {
		return ""
	}

	return prefix[:idx+1]
}
