// Package archive wraps a finished kernel symbol-table blob for storage or
// transport: a one-byte algorithm tag followed by the compressed blob,
// using the codecs from package compress.
package archive

import (
	"fmt"

	"github.com/ksymtab/ksymtab/compress"
)

// tagSize is the width of the algorithm tag prefixing every archived blob.
const tagSize = 1

// Pack compresses blob with algo and prepends a one-byte tag identifying
// the algorithm, so Unpack can recover it without the caller tracking it
// out of band.
func Pack(blob []byte, algo compress.Algorithm) ([]byte, error) {
	codec, err := compress.GetCodec(algo)
	if err != nil {
		return nil, err
	}

	compressed, err := codec.Compress(blob)
	if err != nil {
		return nil, fmt.Errorf("archive: compress with %s: %w", algo, err)
	}

	out := make([]byte, 0, tagSize+len(compressed))
	out = append(out, byte(algo))
	out = append(out, compressed...)

	return out, nil
}

// Unpack reads the algorithm tag from data and decompresses the remainder,
// returning the original blob.
func Unpack(data []byte) ([]byte, error) {
	if len(data) < tagSize {
		return nil, fmt.Errorf("archive: data too short for algorithm tag")
	}

	algo := compress.Algorithm(data[0])
	codec, err := compress.GetCodec(algo)
	if err != nil {
		return nil, err
	}

	blob, err := codec.Decompress(data[tagSize:])
	if err != nil {
		return nil, fmt.Errorf("archive: decompress with %s: %w", algo, err)
	}

	return blob, nil
}
