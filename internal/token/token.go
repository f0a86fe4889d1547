// Package token builds and serves the front-of-name token dictionary used
// to compress symbol names. A Dictionary is constructed once by the builder
// from the full set of collected names and is then reused, byte for byte,
// as the reader's zero-copy view over the same segment: there is no
// separate read-side type.
package token

import (
	"bytes"
	"sort"
)

// DefaultLengths is the candidate prefix-length ladder used when the caller
// does not override it. It matches the shape real kernel symbol names take:
// short namespace prefixes (10, 24) through full-name-length outliers
// (2000) for unusually long C++ mangled names.
var DefaultLengths = []int{10, 24, 31, 48, 72, 110, 160, 200, 320, 500, 800, 1250, 2000}

// MaxTokens is the hard cap on dictionary size; Build clamps any larger
// caller override down to it.
const MaxTokens = 512

// Dictionary is the selected set of front-of-name tokens. Table is the
// concatenation of every token's bytes in id order; Index holds each
// token's start offset into Table, so token j spans
// Table[Index[j]:Index[j+1]] (or Table[Index[j]:] for the last token).
type Dictionary struct {
	Table []byte
	Index []uint32
}

// Count returns the number of tokens in the dictionary.
func (d *Dictionary) Count() int {
	return len(d.Index)
}

// IDWidth returns the number of bytes used to encode a token id in a name
// record: 1 when the dictionary holds 255 tokens or fewer, 2 otherwise.
// Both builder and reader derive this independently from the dictionary
// they each hold, so the width is never stored explicitly.
func (d *Dictionary) IDWidth() int {
	if d.Count() <= 255 {
		return 1
	}

	return 2
}

// Bytes returns token id's bytes as a slice into Table; it never copies.
func (d *Dictionary) Bytes(id int) []byte {
	start := d.Index[id]
	var end uint32
	if id+1 < len(d.Index) {
		end = d.Index[id+1]
	} else {
		end = uint32(len(d.Table))
	}

	return d.Table[start:end]
}

// MatchPrefix finds the longest dictionary token that is a byte-prefix of
// name, scanning every token and keeping the longest match. It reports the
// token id and its length on success.
func (d *Dictionary) MatchPrefix(name []byte) (id int, length int, ok bool) {
	best := -1
	bestLen := 0

	for i := range d.Index {
		tok := d.Bytes(i)
		if len(tok) > bestLen && len(tok) <= len(name) && bytes.Equal(tok, name[:len(tok)]) {
			best = i
			bestLen = len(tok)
		}
	}

	if best < 0 {
		return 0, 0, false
	}

	return best, bestLen, true
}

// candidate is a scored prefix during dictionary construction.
type candidate struct {
	bytes []byte
	count int
}

// Build scans names and selects up to maxTokens prefix-unique tokens using
// the frequency × length scoring rule. lengths is the ascending candidate
// length ladder; a zero-length or nil slice falls back to DefaultLengths.
// maxTokens <= 0 falls back to MaxTokens; values above MaxTokens are
// clamped to it.
func Build(names []string, lengths []int, maxTokens int) Dictionary {
	if len(lengths) == 0 {
		lengths = DefaultLengths
	}
	if maxTokens <= 0 || maxTokens > MaxTokens {
		maxTokens = MaxTokens
	}

	minLen := lengths[0]
	for _, l := range lengths {
		if l < minLen {
			minLen = l
		}
	}

	counts := make(map[string]int)
	for _, name := range names {
		nb := []byte(name)
		if len(nb) < minLen {
			counts[name]++
			continue
		}

		for _, l := range lengths {
			if l == 0 || l > len(nb) {
				continue
			}
			counts[string(nb[:l])]++
		}
	}

	candidates := make([]candidate, 0, len(counts))
	for s, c := range counts {
		candidates = append(candidates, candidate{bytes: []byte(s), count: c})
	}

	sort.Slice(candidates, func(i, j int) bool {
		si, sj := candidates[i], candidates[j]
		scoreI := si.count * len(si.bytes)
		scoreJ := sj.count * len(sj.bytes)
		if scoreI != scoreJ {
			return scoreI > scoreJ
		}
		if len(si.bytes) != len(sj.bytes) {
			return len(si.bytes) > len(sj.bytes)
		}

		return bytes.Compare(si.bytes, sj.bytes) < 0
	})

	var kept [][]byte
	for _, c := range candidates {
		if len(kept) >= maxTokens {
			break
		}
		if len(c.bytes) == 0 {
			continue
		}
		if prefixConflict(kept, c.bytes) {
			continue
		}
		kept = append(kept, c.bytes)
	}

	var dict Dictionary
	dict.Index = make([]uint32, 0, len(kept))
	for _, tok := range kept {
		dict.Index = append(dict.Index, uint32(len(dict.Table)))
		dict.Table = append(dict.Table, tok...)
	}

	return dict
}

// prefixConflict reports whether candidate is a byte-prefix of any
// already-kept token. A shorter candidate strictly dominated by a longer
// kept token earns no dictionary slot of its own; the reverse (keeping a
// longer token that extends an already-kept shorter one) is allowed, since
// MatchPrefix always resolves to the longest match regardless.
func prefixConflict(kept [][]byte, candidate []byte) bool {
	for _, k := range kept {
		if len(candidate) <= len(k) && bytes.Equal(k[:len(candidate)], candidate) {
			return true
		}
	}

	return false
}
