// Package endian provides the byte order used for raw IEEE-754 real values.
//
// Tokens store real values as 8 raw bytes. Big-endian is the portable default;
// little-endian (or the host's native order) reproduces tokens issued by deployments
// that packed machine floats directly.
//
//	engine := endian.GetBigEndianEngine()
//	buf = endian.AppendFloat64(engine, buf, 3.25)
//	v, err := endian.Float64(engine, buf)
//
// All functions in this package are safe for concurrent use. The returned
// EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100: the first byte in memory is 0x01 only on big-endian hosts.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// GetNativeEngine returns the engine matching the host byte order.
func GetNativeEngine() EndianEngine {
	if CheckEndianness() == binary.BigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// AppendFloat64 appends the 8-byte IEEE-754 representation of v to buf.
func AppendFloat64(engine EndianEngine, buf []byte, v float64) []byte {
	return engine.AppendUint64(buf, math.Float64bits(v))
}

// Float64 reads an IEEE-754 double from exactly 8 bytes.
func Float64(engine EndianEngine, b []byte) (float64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("real value needs 8 bytes, got %d", len(b))
	}

	return math.Float64frombits(engine.Uint64(b)), nil
}
