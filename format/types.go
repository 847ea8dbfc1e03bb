package format

import (
	"fmt"
	"strings"
)

type (
	ColumnType      uint8
	CompressionType uint8
	TableKind       uint8
)

const (
	TypeFloat64         ColumnType = 0x1 // TypeFloat64 represents a column of raw float64 values.
	TypeNullableFloat64 ColumnType = 0x2 // TypeNullableFloat64 represents float64 values with a validity mask.
	TypeUint8           ColumnType = 0x3 // TypeUint8 represents a column of uint8 values.
	TypeString          ColumnType = 0x4 // TypeString represents a column of UTF-8 strings.
	TypeFloat64List     ColumnType = 0x5 // TypeFloat64List represents a column of float64 lists.
	TypeUint8List       ColumnType = 0x6 // TypeUint8List represents a column of uint8 lists.
	TypeInt8List        ColumnType = 0x7 // TypeInt8List represents a column of int8 lists.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	KindMeasurement TableKind = 0x1 // KindMeasurement is the raw measurement table.
	KindSource      TableKind = 0x2 // KindSource is the Source stage output.
	KindDistance    TableKind = 0x3 // KindDistance is the Distance stage output.
)

func (c ColumnType) String() string {
	switch c {
	case TypeFloat64:
		return "Float64"
	case TypeNullableFloat64:
		return "NullableFloat64"
	case TypeUint8:
		return "Uint8"
	case TypeString:
		return "String"
	case TypeFloat64List:
		return "Float64List"
	case TypeUint8List:
		return "Uint8List"
	case TypeInt8List:
		return "Int8List"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c CompressionType) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(c.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Names are case-insensitive.
func (c *CompressionType) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "none", "":
		*c = CompressionNone
	case "zstd":
		*c = CompressionZstd
	case "s2":
		*c = CompressionS2
	case "lz4":
		*c = CompressionLZ4
	default:
		return fmt.Errorf("unknown compression %q", text)
	}

	return nil
}

func (k TableKind) String() string {
	switch k {
	case KindMeasurement:
		return "Measurement"
	case KindSource:
		return "Source"
	case KindDistance:
		return "Distance"
	default:
		return "Unknown"
	}
}

// Extension returns the file name infix used for snapshots of this kind.
// Measurement snapshots carry no infix.
func (k TableKind) Extension() string {
	switch k {
	case KindSource:
		return "source"
	case KindDistance:
		return "distance"
	default:
		return ""
	}
}
