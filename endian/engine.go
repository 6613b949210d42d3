// Package endian provides byte order utilities for binary encoding and decoding.
//
// It combines the standard encoding/binary ByteOrder and AppendByteOrder
// interfaces into a single EndianEngine interface so codec code can read
// fixed-width integers and append them to growing buffers through one value.
//
// The canonical gff wire format is little-endian throughout, so most callers
// only ever need GetLittleEndianEngine:
//
//	engine := endian.GetLittleEndianEngine()
//	typeID := engine.Uint32(data[0:4])
//	buf = engine.AppendUint32(buf, typeID)
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// The interface is satisfied by binary.LittleEndian and binary.BigEndian,
// so engines returned by this package are immutable, stateless and safe for
// concurrent use.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the canonical byte
// order of the gff wire format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 256 stored in memory: a little-endian host puts the 0x00 byte first,
	// a big-endian host puts the 0x01 byte first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// CompareNativeEndian reports whether engine matches the host's byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}
