// Package endian provides byte order utilities for binary encoding and
// decoding.
//
// The blob format this module reads and writes is little-endian only, but
// the host the reader runs on is not guaranteed to be: s390x and some ppc64
// kernel configurations are big-endian. EndianEngine exists so the builder
// and reader can talk about "the wire byte order" (always little-endian
// here) independently of "the host byte order" (queried via
// HostLittleEndian), which the reader needs to decide whether a segment can
// be reinterpreted in place or must be decoded field by field.
//
// # Basic Usage
//
//	engine := endian.LittleEndianEngine() // the wire format's byte order
//	buf = engine.AppendUint64(buf, value)
//
// All functions in this package are safe for concurrent use; the returned
// EndianEngine is immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface, satisfied by binary.LittleEndian and
// binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckHostEndianness inspects a known value's in-memory byte layout to
// determine the host's native byte order.
func CheckHostEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// HostLittleEndian reports whether the running host is little-endian. The
// zero-copy reader path is only safe when this is true, since the wire
// format's multi-byte integers are always little-endian.
func HostLittleEndian() bool {
	return CheckHostEndianness() == binary.LittleEndian
}

// LittleEndianEngine returns the wire format's byte order engine. Every
// multi-byte integer in a ksymtab blob uses this engine; there is no
// big-endian variant of the format itself.
func LittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
