// Package endian selects the byte order of snapshot payloads.
//
// Snapshots are little-endian by default. The byte order is recorded in the
// snapshot header flags so a reader always decodes with the writer's order.
package endian

import "encoding/binary"

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder. It is
// satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// FlagBigEndian is the header flag bit set for big-endian payloads.
const FlagBigEndian uint8 = 0x1

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	return engine == EndianEngine(binary.BigEndian)
}

// Flags returns the header flag bits describing engine.
func Flags(engine EndianEngine) uint8 {
	if IsBigEndian(engine) {
		return FlagBigEndian
	}

	return 0
}

// FromFlags returns the engine described by header flag bits.
func FromFlags(flags uint8) EndianEngine {
	if flags&FlagBigEndian != 0 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}
