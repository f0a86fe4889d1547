// Package builder constructs a kernel symbol-table blob from an ordered
// collection of symbols: it selects a front-of-name token dictionary,
// encodes every name against it, sorts into address order, computes the
// name-order permutation, and serializes the result with the padding the
// zero-copy reader requires.
package builder

import (
	"io"
	"sort"

	"github.com/ksymtab/ksymtab/endian"
	"github.com/ksymtab/ksymtab/errs"
	"github.com/ksymtab/ksymtab/format"
	"github.com/ksymtab/ksymtab/internal/namerec"
	"github.com/ksymtab/ksymtab/internal/options"
	"github.com/ksymtab/ksymtab/internal/pool"
	"github.com/ksymtab/ksymtab/internal/token"
	"github.com/ksymtab/ksymtab/segment"
)

// Builder accumulates symbols and produces the serialized blob on Build.
// A Builder is not safe for concurrent use; it is meant to be filled by a
// single goroutine reading one input stream.
type Builder struct {
	cfg     Config
	symbols []Symbol
}

// New creates a Builder with the given options applied.
func New(opts ...Option) *Builder {
	cfg := Config{
		TokenLengths: token.DefaultLengths,
		MaxTokens:    token.MaxTokens,
	}
	_ = options.Apply(&cfg, opts...)

	return &Builder{cfg: cfg}
}

// Add appends one symbol to the builder's pending set.
func (b *Builder) Add(sym Symbol) {
	b.symbols = append(b.symbols, sym)
}

// AddFromReader parses r with Stream and adds every retained symbol,
// returning the count added.
func (b *Builder) AddFromReader(r io.Reader) int {
	n := 0
	for sym := range Stream(r) {
		b.Add(sym)
		n++
	}

	return n
}

// Len reports how many symbols are currently pending.
func (b *Builder) Len() int {
	return len(b.symbols)
}

// Build serializes the accumulated symbols into a blob. Symbols are
// consumed in the order they were added for tie-breaking among aliases
// (equal addresses); the builder itself performs the address-order sort.
func (b *Builder) Build() ([]byte, error) {
	n := len(b.symbols)

	addrOrder, putAddrOrder := pool.GetIntSlice(n)
	defer putAddrOrder()
	for i := range addrOrder {
		addrOrder[i] = i
	}
	sort.SliceStable(addrOrder, func(i, j int) bool {
		return b.symbols[addrOrder[i]].Addr < b.symbols[addrOrder[j]].Addr
	})

	names := make([]string, n)
	for i, idx := range addrOrder {
		names[i] = b.symbols[idx].Name
	}
	dict := token.Build(names, b.cfg.TokenLengths, b.cfg.MaxTokens)

	namesBuf := pool.GetNamesBuffer()
	defer pool.PutNamesBuffer(namesBuf)

	addresses, putAddresses := pool.GetUint64Slice(n)
	defer putAddresses()
	offsets, putOffsets := pool.GetUint32Slice(n)
	defer putOffsets()

	for i, idx := range addrOrder {
		sym := b.symbols[idx]
		addresses[i] = sym.Addr
		offsets[i] = uint32(namesBuf.Len())

		encoded, err := namerec.AppendRecord(namesBuf.B, sym.Type, []byte(sym.Name), &dict)
		if err != nil {
			return nil, &errs.BuildError{Err: err, Name: sym.Name, Address: sym.Addr}
		}
		namesBuf.B = encoded
	}

	if namesBuf.Len() > format.MaxNamesSize {
		return nil, &errs.BuildError{Err: errs.ErrNamesBufferTooLarge}
	}

	seqOrder, putSeqOrder := pool.GetIntSlice(n)
	defer putSeqOrder()
	for i := range seqOrder {
		seqOrder[i] = i
	}
	sort.SliceStable(seqOrder, func(i, j int) bool {
		return names[seqOrder[i]] < names[seqOrder[j]]
	})
	seqs, putSeqs := pool.GetUint32Slice(n)
	defer putSeqs()
	for k, i := range seqOrder {
		seqs[k] = uint32(i)
	}

	return serialize(uint64(n), addresses, offsets, seqs, namesBuf.Bytes(), &dict), nil
}

func serialize(numSyms uint64, addresses []uint64, offsets, seqs []uint32, namesBytes []byte, dict *token.Dictionary) []byte {
	eng := endian.LittleEndianEngine()

	var out []byte
	out = eng.AppendUint64(out, numSyms)

	out = pad(out, segment.AlignU64)
	for _, a := range addresses {
		out = eng.AppendUint64(out, a)
	}

	out = pad(out, segment.AlignU32)
	for _, o := range offsets {
		out = eng.AppendUint32(out, o)
	}

	out = pad(out, segment.AlignU32)
	for _, s := range seqs {
		out = eng.AppendUint32(out, s)
	}

	out = pad(out, segment.AlignU64)
	out = eng.AppendUint64(out, uint64(len(namesBytes)))
	out = append(out, namesBytes...)

	out = pad(out, segment.AlignU64)
	out = eng.AppendUint64(out, uint64(len(dict.Table)))
	out = append(out, dict.Table...)

	out = pad(out, segment.AlignU64)
	out = eng.AppendUint64(out, uint64(len(dict.Index)))
	out = pad(out, segment.AlignU32)
	for _, idx := range dict.Index {
		out = eng.AppendUint32(out, idx)
	}

	return out
}

func pad(buf []byte, align int) []byte {
	n := segment.PadLen(len(buf), align)
	for range n {
		buf = append(buf, 0)
	}

	return buf
}
