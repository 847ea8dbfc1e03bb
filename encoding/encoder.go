// Package encoding writes and reads the column payloads of a snapshot.
//
// A column is a sequence of cells of one format.ColumnType. Fixed-size cells
// are written in the engine's byte order; strings and lists carry a uvarint
// length prefix:
//
//	Float64          8 bytes
//	NullableFloat64  1 validity byte + 8 bytes
//	Uint8            1 byte
//	String           uvarint length + UTF-8 bytes
//	Float64List      uvarint count + count * 8 bytes
//	Uint8List        uvarint count + count bytes
//	Int8List         uvarint count + count bytes
package encoding

import (
	"encoding/binary"
	"math"

	"github.com/arloliu/fame/endian"
	"github.com/arloliu/fame/internal/pool"
)

// ColumnEncoder appends cells to a pooled buffer.
//
// Call Finish when done to return the buffer to the pool. Bytes is only valid
// until Finish.
type ColumnEncoder struct {
	buf     *pool.ByteBuffer
	engine  endian.EndianEngine
	count   int
	scratch [binary.MaxVarintLen64]byte
}

// NewColumnEncoder returns an encoder writing in engine's byte order.
func NewColumnEncoder(engine endian.EndianEngine) *ColumnEncoder {
	return &ColumnEncoder{
		buf:    pool.GetColumnBuffer(),
		engine: engine,
	}
}

// WriteFloat64 appends a float64 cell.
func (e *ColumnEncoder) WriteFloat64(v float64) {
	e.putFloat64(v)
	e.count++
}

// WriteNullableFloat64 appends a validity byte and the value. Null cells store
// a zero value.
func (e *ColumnEncoder) WriteNullableFloat64(v float64, valid bool) {
	if valid {
		_ = e.buf.WriteByte(1)
	} else {
		_ = e.buf.WriteByte(0)
		v = 0
	}
	e.putFloat64(v)
	e.count++
}

// WriteUint8 appends a uint8 cell.
func (e *ColumnEncoder) WriteUint8(v uint8) {
	_ = e.buf.WriteByte(v)
	e.count++
}

// WriteUvarint appends an unsigned varint. It is used for counts and sizes
// outside typed columns and does not count as a cell.
func (e *ColumnEncoder) WriteUvarint(v uint64) {
	e.putUvarint(v)
}

// WriteString appends a length prefixed string cell.
func (e *ColumnEncoder) WriteString(s string) {
	e.putUvarint(uint64(len(s)))
	e.buf.Grow(len(s))
	_, _ = e.buf.Write([]byte(s))
	e.count++
}

// WriteFloat64List appends a count prefixed list of float64 values.
func (e *ColumnEncoder) WriteFloat64List(values []float64) {
	e.putUvarint(uint64(len(values)))
	e.buf.Grow(8 * len(values))
	for _, v := range values {
		e.putFloat64(v)
	}
	e.count++
}

// WriteUint8List appends a count prefixed list of uint8 values.
func (e *ColumnEncoder) WriteUint8List(values []uint8) {
	e.putUvarint(uint64(len(values)))
	_, _ = e.buf.Write(values)
	e.count++
}

// WriteInt8List appends a count prefixed list of int8 values.
func (e *ColumnEncoder) WriteInt8List(values []int8) {
	e.putUvarint(uint64(len(values)))
	e.buf.Grow(len(values))
	for _, v := range values {
		_ = e.buf.WriteByte(byte(v))
	}
	e.count++
}

// Bytes returns the encoded payload. The slice is owned by the encoder.
func (e *ColumnEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of cells written.
func (e *ColumnEncoder) Len() int {
	return e.count
}

// Size returns the payload size in bytes.
func (e *ColumnEncoder) Size() int {
	return e.buf.Len()
}

// Finish returns the buffer to the pool. The encoder must not be used after.
func (e *ColumnEncoder) Finish() {
	if e.buf != nil {
		pool.PutColumnBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

func (e *ColumnEncoder) putFloat64(v float64) {
	e.buf.Grow(8)
	_, _ = e.buf.Write(e.engine.AppendUint64(e.scratch[:0], math.Float64bits(v)))
}

func (e *ColumnEncoder) putUvarint(v uint64) {
	n := binary.PutUvarint(e.scratch[:], v)
	_, _ = e.buf.Write(e.scratch[:n])
}
