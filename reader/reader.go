// Package reader binds a byte-mapped kernel symbol-table blob and answers
// address→symbol and name→address queries directly over that memory, with
// no allocation and no copying of the addresses, offsets, seqs, or token
// segments on a little-endian host.
package reader

import (
	"sort"
	"unsafe"

	"github.com/ksymtab/ksymtab/endian"
	"github.com/ksymtab/ksymtab/errs"
	"github.com/ksymtab/ksymtab/internal/hash"
	"github.com/ksymtab/ksymtab/internal/namerec"
	"github.com/ksymtab/ksymtab/internal/token"
	"github.com/ksymtab/ksymtab/segment"
)

// Reader is a zero-copy view over a bound blob. It is safe for concurrent
// use by multiple goroutines once FromBlob returns: every query is a pure
// function over immutable borrowed memory.
type Reader struct {
	stext, etext uint64

	addresses []uint64
	offsets   []uint32
	seqs      []uint32

	namesBytes []byte
	dict       token.Dictionary

	// poisoned is set once a structurally broken record is discovered at
	// query time; every subsequent query then reports no match rather
	// than risk reading past a corrupted record.
	poisoned bool

	nameIndex map[uint64][]int
}

// FromBlob binds blob, a byte region the caller guarantees is mapped at a
// 4 KiB-aligned address, for a kernel whose text section is [stext, etext). It
// validates every segment's bounds and alignment before returning; no
// Reader is constructed on failure.
func FromBlob(blob []byte, stext, etext uint64) (*Reader, error) {
	if len(blob) < segment.NumSymsSize {
		return nil, &errs.BindError{Cause: errs.CauseTruncated, Detail: "blob shorter than num_syms field"}
	}

	eng := endian.LittleEndianEngine()
	little := endian.HostLittleEndian()

	off := 0
	numSyms := eng.Uint64(blob[off : off+segment.NumSymsSize])
	off += segment.NumSymsSize

	off = segment.AlignedUp(off, segment.AlignU64)
	addresses, off, err := bindUint64(blob, off, numSyms, little, eng)
	if err != nil {
		return nil, err
	}

	off = segment.AlignedUp(off, segment.AlignU32)
	offsets, off, err := bindUint32(blob, off, numSyms, little, eng)
	if err != nil {
		return nil, err
	}

	off = segment.AlignedUp(off, segment.AlignU32)
	seqs, off, err := bindUint32(blob, off, numSyms, little, eng)
	if err != nil {
		return nil, err
	}

	off = segment.AlignedUp(off, segment.AlignU64)
	namesLen, off, err := readLengthPrefix(blob, off, eng)
	if err != nil {
		return nil, err
	}
	if off+int(namesLen) > len(blob) {
		return nil, &errs.BindError{Cause: errs.CauseTruncated, Detail: "names segment"}
	}
	namesBytes := blob[off : off+int(namesLen)]
	off += int(namesLen)

	off = segment.AlignedUp(off, segment.AlignU64)
	tokenTableLen, off, err := readLengthPrefix(blob, off, eng)
	if err != nil {
		return nil, err
	}
	if off+int(tokenTableLen) > len(blob) {
		return nil, &errs.BindError{Cause: errs.CauseTruncated, Detail: "token table segment"}
	}
	tokenTable := blob[off : off+int(tokenTableLen)]
	off += int(tokenTableLen)

	off = segment.AlignedUp(off, segment.AlignU64)
	tokenIndexLen, off, err := readLengthPrefix(blob, off, eng)
	if err != nil {
		return nil, err
	}

	off = segment.AlignedUp(off, segment.AlignU32)
	tokenIndex, off, err := bindUint32(blob, off, tokenIndexLen, little, eng)
	if err != nil {
		return nil, err
	}
	_ = off

	if numSyms > 0 {
		last := offsets[len(offsets)-1]
		if uint64(last) > namesLen {
			return nil, &errs.BindError{Cause: errs.CauseInconsistentLengths, Detail: "last offset exceeds names_len"}
		}
	}
	for i, idx := range tokenIndex {
		if uint64(idx) > tokenTableLen {
			return nil, &errs.BindError{Cause: errs.CauseInconsistentLengths, Detail: "token_index entry exceeds token_table_len"}
		}
		if i > 0 && tokenIndex[i-1] > idx {
			return nil, &errs.BindError{Cause: errs.CauseInconsistentLengths, Detail: "token_index not monotonic"}
		}
	}

	return &Reader{
		stext:      stext,
		etext:      etext,
		addresses:  addresses,
		offsets:    offsets,
		seqs:       seqs,
		namesBytes: namesBytes,
		dict:       token.Dictionary{Table: tokenTable, Index: tokenIndex},
	}, nil
}

func readLengthPrefix(blob []byte, off int, eng endian.EndianEngine) (uint64, int, error) {
	if off+segment.LengthPrefixSize > len(blob) {
		return 0, off, &errs.BindError{Cause: errs.CauseTruncated, Detail: "length prefix"}
	}

	return eng.Uint64(blob[off : off+segment.LengthPrefixSize]), off + segment.LengthPrefixSize, nil
}

func bindUint64(blob []byte, off int, n uint64, little bool, eng endian.EndianEngine) ([]uint64, int, error) {
	byteLen := int(n) * segment.AddressSize
	if off+byteLen > len(blob) {
		return nil, off, &errs.BindError{Cause: errs.CauseTruncated, Detail: "u64 array"}
	}
	if n == 0 {
		return nil, off, nil
	}

	if little {
		if uintptr(unsafe.Pointer(&blob[off]))%8 != 0 {
			return nil, off, &errs.BindError{Cause: errs.CauseMisaligned, Detail: "u64 array"}
		}

		ptr := (*uint64)(unsafe.Pointer(&blob[off]))
		return unsafe.Slice(ptr, n), off + byteLen, nil
	}

	out := make([]uint64, n)
	for i := range out {
		out[i] = eng.Uint64(blob[off+i*8 : off+i*8+8])
	}

	return out, off + byteLen, nil
}

func bindUint32(blob []byte, off int, n uint64, little bool, eng endian.EndianEngine) ([]uint32, int, error) {
	byteLen := int(n) * segment.OffsetSize
	if off+byteLen > len(blob) {
		return nil, off, &errs.BindError{Cause: errs.CauseTruncated, Detail: "u32 array"}
	}
	if n == 0 {
		return nil, off, nil
	}

	if little {
		if uintptr(unsafe.Pointer(&blob[off]))%4 != 0 {
			return nil, off, &errs.BindError{Cause: errs.CauseMisaligned, Detail: "u32 array"}
		}

		ptr := (*uint32)(unsafe.Pointer(&blob[off]))
		return unsafe.Slice(ptr, n), off + byteLen, nil
	}

	out := make([]uint32, n)
	for i := range out {
		out[i] = eng.Uint32(blob[off+i*4 : off+i*4+4])
	}

	return out, off + byteLen, nil
}

// NumSymbols returns the number of symbols bound in the blob.
func (r *Reader) NumSymbols() int {
	return len(r.addresses)
}

func (r *Reader) decodeAt(i int) (namerec.Record, error) {
	return namerec.Decode(r.namesBytes, int(r.offsets[i]), &r.dict)
}

// LookupAddress returns the symbol enclosing address q: the symbol whose
// address is the greatest one not exceeding q, with its end bounded by the
// next distinct address or by etext.
func (r *Reader) LookupAddress(q uint64) (SymbolView, bool) {
	if r.poisoned || len(r.addresses) == 0 {
		return SymbolView{}, false
	}
	if q < r.addresses[0] || q >= r.etext {
		return SymbolView{}, false
	}

	i := sort.Search(len(r.addresses), func(i int) bool { return r.addresses[i] > q }) - 1
	if i < 0 {
		return SymbolView{}, false
	}

	a := r.addresses[i]
	for i > 0 && r.addresses[i-1] == a {
		i--
	}

	j := i
	for j+1 < len(r.addresses) && r.addresses[j+1] == a {
		j++
	}

	var end uint64
	if j+1 < len(r.addresses) {
		end = r.addresses[j+1]
	} else {
		end = r.etext
	}

	if end <= a {
		return SymbolView{}, false
	}

	rec, err := r.decodeAt(i)
	if err != nil {
		r.poisoned = true
		return SymbolView{}, false
	}

	return SymbolView{Addr: a, Size: end - a, Type: rec.Type, Name: NameView{rec: rec}}, true
}

// LookupName binary-searches the name-order permutation for q, returning
// its address on a match.
func (r *Reader) LookupName(q []byte) (uint64, bool) {
	if r.poisoned {
		return 0, false
	}

	lo, hi := 0, len(r.seqs)
	for lo < hi {
		mid := (lo + hi) / 2
		ai := r.seqs[mid]
		rec, err := r.decodeAt(int(ai))
		if err != nil {
			r.poisoned = true
			return 0, false
		}

		switch c := rec.CompareName(q); {
		case c == 0:
			return r.addresses[ai], true
		case c < 0:
			lo = mid + 1
		default:
			hi = mid
		}
	}

	return 0, false
}

// IterSymbols yields every bound symbol in address order.
func (r *Reader) IterSymbols() func(yield func(SymbolView) bool) {
	return func(yield func(SymbolView) bool) {
		if r.poisoned {
			return
		}

		for i := range r.addresses {
			rec, err := r.decodeAt(i)
			if err != nil {
				r.poisoned = true
				return
			}

			a := r.addresses[i]
			j := i
			for j+1 < len(r.addresses) && r.addresses[j+1] == a {
				j++
			}
			var end uint64
			if j+1 < len(r.addresses) {
				end = r.addresses[j+1]
			} else {
				end = r.etext
			}

			view := SymbolView{Addr: a, Size: end - a, Type: rec.Type, Name: NameView{rec: rec}}
			if !yield(view) {
				return
			}
		}
	}
}

// BuildNameIndex constructs the opt-in hash accelerator used by
// LookupNameFast. It allocates a map sized to the bound symbol count;
// FromBlob never calls this implicitly.
func (r *Reader) BuildNameIndex() {
	idx := make(map[uint64][]int, len(r.addresses))

	for i := range r.addresses {
		rec, err := r.decodeAt(i)
		if err != nil {
			r.poisoned = true
			return
		}

		var buf [256]byte
		name := rec.AppendName(buf[:0])
		h := hash.NameBytes(name)
		idx[h] = append(idx[h], i)
	}

	r.nameIndex = idx
}

// LookupNameFast answers LookupName using the hash index built by
// BuildNameIndex, falling back to building none: if the index was never
// built, it returns false rather than silently doing the O(log n) search.
func (r *Reader) LookupNameFast(q []byte) (uint64, bool) {
	if r.poisoned || r.nameIndex == nil {
		return 0, false
	}

	h := hash.NameBytes(q)
	for _, i := range r.nameIndex[h] {
		rec, err := r.decodeAt(i)
		if err != nil {
			r.poisoned = true
			return 0, false
		}
		if rec.CompareName(q) == 0 {
			return r.addresses[i], true
		}
	}

	return 0, false
}
