package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCheckHostEndianness(t *testing.T) {
	require := require.New(t)

	result := CheckHostEndianness()

	var testValue uint16 = 0x0102
	testBytes := (*[2]byte)(unsafe.Pointer(&testValue))

	switch testBytes[0] {
	case 0x01:
		require.Equal(binary.BigEndian, result, "CheckHostEndianness() should return BigEndian")
	case 0x02:
		require.Equal(binary.LittleEndian, result, "CheckHostEndianness() should return LittleEndian")
	default:
		require.Failf("Unexpected byte value", "got: %v", testBytes[0])
	}
}

func TestCheckHostEndiannessConsistency(t *testing.T) {
	first := CheckHostEndianness()
	for i := range 100 {
		result := CheckHostEndianness()
		if result != first {
			t.Errorf("CheckHostEndianness() returned inconsistent results: first=%v, iteration %d=%v", first, i, result)
		}
	}
}

func TestHostLittleEndian(t *testing.T) {
	result := HostLittleEndian()
	expected := CheckHostEndianness() == binary.LittleEndian
	require.Equal(t, expected, result)

	for range 10 {
		require.Equal(t, result, HostLittleEndian())
	}
}

func TestLittleEndianEngine(t *testing.T) {
	engine := LittleEndianEngine()

	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.LittleEndian, engine)

	var testValue uint16 = 0x0102
	bytes := make([]byte, 2)
	engine.PutUint16(bytes, testValue)
	require.Equal(t, byte(0x02), bytes[0], "little endian should put LSB first")
	require.Equal(t, byte(0x01), bytes[1], "little endian should put MSB second")

	readValue := engine.Uint16(bytes)
	require.Equal(t, testValue, readValue)
}

func TestLittleEndianEngineWiderTypes(t *testing.T) {
	engine := LittleEndianEngine()

	var testUint32 uint32 = 0x01020304
	buf32 := make([]byte, 4)
	engine.PutUint32(buf32, testUint32)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf32)
	require.Equal(t, testUint32, engine.Uint32(buf32))

	var testUint64 uint64 = 0x0102030405060708
	buf64 := make([]byte, 8)
	engine.PutUint64(buf64, testUint64)
	require.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, buf64)
	require.Equal(t, testUint64, engine.Uint64(buf64))

	appended := engine.AppendUint64(nil, testUint64)
	require.Equal(t, buf64, appended)
}
