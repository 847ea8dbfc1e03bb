package section

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/arloliu/fame/endian"
	"github.com/arloliu/fame/errs"
	"github.com/arloliu/fame/format"
)

// Header is the fixed-size snapshot header.
//
//	0-3    magic "FAME"
//	4      version
//	5      flags (bit 0: big-endian payload)
//	6      table kind
//	7      compression
//	8-11   row count
//	12-13  column count
//	14-15  reserved
//	16-19  metadata size
//	20-23  raw payload size
//	24-27  stored payload size
//	28-31  CRC-32 (IEEE) of everything after the header
//
// Multi-byte fields are little-endian regardless of the payload byte order.
type Header struct {
	Version      uint8
	Flags        uint8
	Kind         format.TableKind
	Compression  format.CompressionType
	Rows         uint32
	Columns      uint16
	MetadataSize uint32
	RawSize      uint32
	PayloadSize  uint32
	Checksum     uint32
}

// NewHeader returns a header for a table of the given kind.
func NewHeader(kind format.TableKind, compression format.CompressionType, engine endian.EndianEngine) Header {
	return Header{
		Version:     Version,
		Flags:       endian.Flags(engine),
		Kind:        kind,
		Compression: compression,
	}
}

// Engine returns the byte order of the payload.
func (h Header) Engine() endian.EndianEngine {
	return endian.FromFlags(h.Flags)
}

// Bytes serialises the header.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	copy(b[0:4], Magic[:])
	b[4] = h.Version
	b[5] = h.Flags
	b[6] = uint8(h.Kind)
	b[7] = uint8(h.Compression)
	binary.LittleEndian.PutUint32(b[8:12], h.Rows)
	binary.LittleEndian.PutUint16(b[12:14], h.Columns)
	binary.LittleEndian.PutUint32(b[16:20], h.MetadataSize)
	binary.LittleEndian.PutUint32(b[20:24], h.RawSize)
	binary.LittleEndian.PutUint32(b[24:28], h.PayloadSize)
	binary.LittleEndian.PutUint32(b[28:32], h.Checksum)

	return b
}

// Parse reads a header from the first HeaderSize bytes of data.
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}
	if !bytes.Equal(data[0:4], Magic[:]) {
		return fmt.Errorf("%w: %x", errs.ErrInvalidMagicNumber, data[0:4])
	}

	h.Version = data[4]
	h.Flags = data[5]
	h.Kind = format.TableKind(data[6])
	h.Compression = format.CompressionType(data[7])
	h.Rows = binary.LittleEndian.Uint32(data[8:12])
	h.Columns = binary.LittleEndian.Uint16(data[12:14])
	h.MetadataSize = binary.LittleEndian.Uint32(data[16:20])
	h.RawSize = binary.LittleEndian.Uint32(data[20:24])
	h.PayloadSize = binary.LittleEndian.Uint32(data[24:28])
	h.Checksum = binary.LittleEndian.Uint32(data[28:32])

	return h.Validate()
}

// Validate checks the version, kind and compression fields.
func (h Header) Validate() error {
	if h.Version != Version {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, h.Version)
	}
	switch h.Kind {
	case format.KindMeasurement, format.KindSource, format.KindDistance:
	default:
		return fmt.Errorf("%w: %d", errs.ErrUnexpectedTableKind, h.Kind)
	}
	switch h.Compression {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
	default:
		return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, h.Compression)
	}
	if h.Columns > MaxColumns {
		return fmt.Errorf("%w: %d columns", errs.ErrCorruptedColumn, h.Columns)
	}

	return nil
}

// ParseHeader parses and returns the header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}
