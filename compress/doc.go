// Package compress provides compression and decompression codecs for the
// finished, assembled symbol-table blob.
//
// The wire format produced by package builder never compresses anything
// itself: the kernel (or any other reader) maps it directly and reads
// fixed-width fields in place. Compression, when wanted, applies on top as
// a separate archive layer for storage or transport, before the bytes are
// ever mapped; see package archive. This package implements the codecs that
// layer uses.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
// **NoOp** returns the input unchanged; it is the default Algorithm and a
// useful baseline for measuring what the other codecs buy.
//
// **Zstandard (Zstd)** gives the best compression ratio at the cost of
// speed and memory. On cgo builds it uses valyala/gozstd bound to the
// system libzstd; on pure-Go builds it falls back to
// klauspost/compress/zstd.
//
// **S2** (klauspost/compress/s2) is a Snappy-compatible codec tuned for
// speed with a better ratio than plain Snappy.
//
// **LZ4** (pierrec/lz4) gives very fast decompression with a moderate
// ratio, useful when read latency matters more than storage footprint.
//
// # Thread Safety
//
// All codec implementations are safe for concurrent use; a single Codec
// value may be shared across goroutines.
package compress
