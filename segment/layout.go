// Package segment provides the alignment arithmetic that both the builder
// and the reader use to agree on where each part of a serialized blob
// starts. The blob has no fixed header: it is a sequence of segments, each
// preceded by zero padding so its first byte lands at the alignment its
// element type requires, measured from byte 0 of the blob (which the caller
// maps at a 4 KiB-aligned address, so in-blob alignment implies absolute
// alignment).
package segment

// Alignment requirements, in bytes, for the three element widths the blob
// format uses.
const (
	AlignU64 = 8
	AlignU32 = 4
	AlignU8  = 1
)

// Fixed-size fields within the segment stream.
const (
	NumSymsSize      = 8 // num_syms: u64
	AddressSize      = 8 // one entry of addresses: u64
	OffsetSize       = 4 // one entry of offsets: u32
	SeqSize          = 4 // one entry of seqs: u32
	LengthPrefixSize = 8 // names_len / token_table_len / token_index_len: u64
	TokenIndexEntry  = 4 // one entry of token_index: u32
)

// PadLen returns the number of zero bytes that must be appended to a buffer
// of the given current length before writing a segment that requires the
// given alignment. Panics are never raised here; align must be a power of
// two (8, 4, or 1 in this format), enforced by the callers using the named
// constants above.
func PadLen(curLen int, align int) int {
	if align <= 1 {
		return 0
	}

	rem := curLen % align
	if rem == 0 {
		return 0
	}

	return align - rem
}

// AlignedUp returns the smallest offset >= curLen that satisfies align.
func AlignedUp(curLen int, align int) int {
	return curLen + PadLen(curLen, align)
}

// IsAligned reports whether offset already satisfies align.
func IsAligned(offset int, align int) bool {
	if align <= 1 {
		return true
	}

	return offset%align == 0
}
