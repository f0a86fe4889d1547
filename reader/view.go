package reader

import (
	"github.com/ksymtab/ksymtab/format"
	"github.com/ksymtab/ksymtab/internal/namerec"
)

// NameView is a decoded symbol name that has not been materialized into a
// contiguous buffer. It borrows both the token dictionary bytes and the
// names segment bytes; neither is copied until the caller asks for it.
type NameView struct {
	rec namerec.Record
}

// Len returns the name's decoded byte length.
func (v NameView) Len() int {
	return v.rec.Len()
}

// AppendTo appends the materialized name to dst and returns the extended
// slice, copying the token part and the raw tail into the caller's buffer.
func (v NameView) AppendTo(dst []byte) []byte {
	return v.rec.AppendName(dst)
}

// String materializes the name into a new string. Provided for
// convenience and debugging; hot paths should prefer AppendTo with a
// reused buffer.
func (v NameView) String() string {
	return string(v.AppendTo(nil))
}

// SymbolView describes one symbol returned by a lookup or by IterSymbols.
type SymbolView struct {
	Addr uint64
	Size uint64
	Type format.SymbolType
	Name NameView
}
