// Package hash provides the hash function backing the optional, opt-in
// name-index accelerator in the reader package. It is not used by the core
// bind/lookup path, which never allocates.
package hash

import "github.com/cespare/xxhash/v2"

// Name computes the xxHash64 of a symbol's displayed name, used as the
// bucket key for reader.NameIndex.
func Name(name string) uint64 {
	return xxhash.Sum64String(name)
}

// NameBytes is the []byte variant of Name, used when the caller already
// holds the name as bytes (e.g. a decoded, not-yet-materialized record) and
// wants to avoid a string allocation just to hash it.
func NameBytes(name []byte) uint64 {
	return xxhash.Sum64(name)
}
