package encoding

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/fame/endian"
	"github.com/arloliu/fame/errs"
)

// ColumnDecoder reads cells written by a ColumnEncoder.
//
// Errors are sticky: after the first malformed cell every read returns a zero
// value and Err reports the failure.
type ColumnDecoder struct {
	data   []byte
	engine endian.EndianEngine
	offset int
	err    error
}

// NewColumnDecoder returns a decoder over data in engine's byte order.
func NewColumnDecoder(data []byte, engine endian.EndianEngine) *ColumnDecoder {
	return &ColumnDecoder{data: data, engine: engine}
}

// Err returns the first decoding error.
func (d *ColumnDecoder) Err() error {
	return d.err
}

// Remaining returns the number of unread bytes.
func (d *ColumnDecoder) Remaining() int {
	return len(d.data) - d.offset
}

// Float64 reads a float64 cell.
func (d *ColumnDecoder) Float64() float64 {
	b := d.take(8)
	if b == nil {
		return 0
	}

	return math.Float64frombits(d.engine.Uint64(b))
}

// NullableFloat64 reads a validity byte and a value.
func (d *ColumnDecoder) NullableFloat64() (float64, bool) {
	flag := d.Uint8()
	v := d.Float64()
	if d.err != nil {
		return 0, false
	}
	switch flag {
	case 0:
		return 0, false
	case 1:
		return v, true
	default:
		d.fail("validity byte %d", flag)
		return 0, false
	}
}

// Uint8 reads a uint8 cell.
func (d *ColumnDecoder) Uint8() uint8 {
	b := d.take(1)
	if b == nil {
		return 0
	}

	return b[0]
}

// Uvarint reads an unsigned varint written by WriteUvarint.
func (d *ColumnDecoder) Uvarint() uint64 {
	if d.err != nil {
		return 0
	}
	v, n := binary.Uvarint(d.data[d.offset:])
	if n <= 0 {
		d.fail("bad varint at offset %d", d.offset)
		return 0
	}
	d.offset += n

	return v
}

// String reads a length prefixed string cell.
func (d *ColumnDecoder) String() string {
	n := d.length(1)

	return string(d.take(n))
}

// Float64List reads a count prefixed float64 list. Empty lists decode as nil.
func (d *ColumnDecoder) Float64List() []float64 {
	n := d.length(8)
	if n == 0 {
		return nil
	}
	out := make([]float64, 0, n)
	for range n {
		out = append(out, d.Float64())
	}

	return out
}

// Uint8List reads a count prefixed uint8 list. Empty lists decode as nil.
func (d *ColumnDecoder) Uint8List() []uint8 {
	n := d.length(1)
	b := d.take(n)
	if len(b) == 0 {
		return nil
	}
	out := make([]uint8, len(b))
	copy(out, b)

	return out
}

// Int8List reads a count prefixed int8 list. Empty lists decode as nil.
func (d *ColumnDecoder) Int8List() []int8 {
	n := d.length(1)
	b := d.take(n)
	if len(b) == 0 {
		return nil
	}
	out := make([]int8, len(b))
	for i, v := range b {
		out[i] = int8(v) //nolint:gosec
	}

	return out
}

// length reads a uvarint prefix and checks that n items of width bytes fit in
// the remaining payload.
func (d *ColumnDecoder) length(width int) int {
	if d.err != nil {
		return 0
	}
	v, n := binary.Uvarint(d.data[d.offset:])
	if n <= 0 {
		d.fail("bad length prefix at offset %d", d.offset)
		return 0
	}
	d.offset += n
	if v > uint64(d.Remaining()/width) {
		d.fail("length %d exceeds remaining %d bytes", v, d.Remaining())
		return 0
	}

	return int(v) //nolint:gosec
}

func (d *ColumnDecoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n > d.Remaining() {
		d.fail("need %d bytes at offset %d, have %d", n, d.offset, d.Remaining())
		return nil
	}
	b := d.data[d.offset : d.offset+n]
	d.offset += n

	return b
}

func (d *ColumnDecoder) fail(format string, args ...any) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: %s", errs.ErrCorruptedColumn, fmt.Sprintf(format, args...))
	}
}
