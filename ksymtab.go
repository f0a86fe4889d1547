// Package ksymtab provides a compact, zero-copy binary format for kernel
// symbol tables: build a blob once from an `nm -n -C`-style symbol stream,
// then map it and query it directly from page cache without a parse step.
//
// # Core Features
//
//   - Front-of-name token dictionary compression for repetitive kernel
//     symbol names (driver prefixes, subsystem prefixes)
//   - Dual ordering: address order for range lookups, a name-order
//     permutation for exact-name lookups, without duplicating the names
//     buffer
//   - Zero-copy binding of the address, offset, and permutation arrays on
//     little-endian hosts
//   - Optional archival compression (Zstd, S2, LZ4) of the finished blob
//
// # Basic Usage
//
// Building a blob from a symbol stream:
//
//	import "github.com/ksymtab/ksymtab"
//
//	b := ksymtab.NewBuilder()
//	b.AddFromReader(symbolStream)
//	blob, err := b.Build()
//
// Binding and querying a blob:
//
//	r, err := ksymtab.FromBlob(blob, stext, etext)
//	sym, ok := r.LookupAddress(0xffffffff81012345)
//	addr, ok := r.LookupName([]byte("do_fork"))
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the builder
// and reader packages. For dictionary tuning, archival compression, or the
// hash-accelerated name index, use those packages directly.
package ksymtab

import (
	"github.com/ksymtab/ksymtab/builder"
	"github.com/ksymtab/ksymtab/reader"
)

// NewBuilder creates a Builder with the given options applied.
func NewBuilder(opts ...builder.Option) *builder.Builder {
	return builder.New(opts...)
}

// FromBlob binds blob, the symbol table of a kernel whose text section is
// [stext, etext), and returns a Reader ready for queries.
func FromBlob(blob []byte, stext, etext uint64) (*reader.Reader, error) {
	return reader.FromBlob(blob, stext, etext)
}
