package snapshot

import (
	"fmt"

	"github.com/arloliu/fame/column"
	"github.com/arloliu/fame/encoding"
	"github.com/arloliu/fame/endian"
	"github.com/arloliu/fame/errs"
	"github.com/arloliu/fame/fattyacid"
	"github.com/arloliu/fame/format"
	"github.com/arloliu/fame/internal/pool"
	"github.com/arloliu/fame/section"
	"github.com/arloliu/fame/table"
)

// columnWriter encodes a table one column at a time. The first error is
// sticky and later columns are skipped.
type columnWriter struct {
	engine endian.EndianEngine
	rows   int
	dir    *section.Directory
	data   *pool.ByteBuffer
	err    error
}

func newColumnWriter(engine endian.EndianEngine, rows int) *columnWriter {
	return &columnWriter{
		engine: engine,
		rows:   rows,
		dir:    section.NewDirectory(),
		data:   pool.GetSnapshotBuffer(),
	}
}

func (w *columnWriter) add(name string, typ format.ColumnType, write func(enc *encoding.ColumnEncoder, i int)) {
	if w.err != nil {
		return
	}

	enc := encoding.NewColumnEncoder(w.engine)
	defer enc.Finish()
	for i := range w.rows {
		write(enc, i)
	}

	if err := w.dir.Add(section.ColumnEntry{Name: name, Type: typ, Size: uint64(enc.Size())}); err != nil {
		w.err = err
		return
	}
	_, _ = w.data.Write(enc.Bytes())
}

func (w *columnWriter) float64(name string, get func(i int) float64) {
	w.add(name, format.TypeFloat64, func(enc *encoding.ColumnEncoder, i int) {
		enc.WriteFloat64(get(i))
	})
}

func (w *columnWriter) nullable(name string, get func(i int) column.Float) {
	w.add(name, format.TypeNullableFloat64, func(enc *encoding.ColumnEncoder, i int) {
		v := get(i)
		enc.WriteNullableFloat64(v.Value, v.Valid)
	})
}

func (w *columnWriter) float64List(name string, get func(i int) []float64) {
	w.add(name, format.TypeFloat64List, func(enc *encoding.ColumnEncoder, i int) {
		enc.WriteFloat64List(get(i))
	})
}

func (w *columnWriter) mode(prefix string, get func(i int) table.Mode) {
	w.float64(prefix+".OnsetTemperature", func(i int) float64 { return get(i).OnsetTemperature })
	w.float64(prefix+".TemperatureStep", func(i int) float64 { return get(i).TemperatureStep })
}

func (w *columnWriter) fattyAcid(prefix string, get func(i int) fattyacid.FattyAcid) {
	w.add(prefix+".Carbons", format.TypeUint8, func(enc *encoding.ColumnEncoder, i int) {
		enc.WriteUint8(get(i).Carbons)
	})
	w.add(prefix+".DoubleBondIndices", format.TypeUint8List, func(enc *encoding.ColumnEncoder, i int) {
		enc.WriteUint8List(get(i).DoubleBondIndices)
	})
	w.add(prefix+".DoubleBondKinds", format.TypeInt8List, func(enc *encoding.ColumnEncoder, i int) {
		enc.WriteInt8List(get(i).DoubleBondKinds)
	})
	w.add(prefix+".Label", format.TypeString, func(enc *encoding.ColumnEncoder, i int) {
		enc.WriteString(get(i).Label)
	})
}

// payload returns the directory followed by the column data. The returned
// buffer belongs to the caller.
func (w *columnWriter) payload() []byte {
	enc := encoding.NewColumnEncoder(w.engine)
	defer enc.Finish()
	w.dir.Encode(enc)

	out := make([]byte, 0, enc.Size()+w.data.Len())
	out = append(out, enc.Bytes()...)

	return append(out, w.data.Bytes()...)
}

func (w *columnWriter) release() {
	if w.data != nil {
		pool.PutSnapshotBuffer(w.data)
		w.data = nil
	}
}

// columnReader decodes the columns of a payload by name. The first error is
// sticky.
type columnReader struct {
	engine  endian.EndianEngine
	rows    int
	dir     *section.Directory
	data    []byte
	offsets []uint64
	err     error
}

func newColumnReader(engine endian.EndianEngine, rows int, dir *section.Directory, data []byte) (*columnReader, error) {
	offsets := make([]uint64, len(dir.Entries))
	var offset uint64
	for i, e := range dir.Entries {
		offsets[i] = offset
		offset += e.Size
	}
	if offset != uint64(len(data)) {
		return nil, fmt.Errorf("%w: directory declares %d bytes of column data, payload has %d",
			errs.ErrCorruptedColumn, offset, len(data))
	}

	return &columnReader{engine: engine, rows: rows, dir: dir, data: data, offsets: offsets}, nil
}

func (r *columnReader) read(name string, typ format.ColumnType, decode func(dec *encoding.ColumnDecoder, i int)) {
	if r.err != nil {
		return
	}

	entry, pos, ok := r.dir.Lookup(name)
	if !ok {
		r.err = errs.NewSchemaError(name, errs.ErrMissingColumn)
		return
	}
	if entry.Type != typ {
		r.err = errs.NewSchemaError(name, fmt.Errorf("%w: %s, want %s", errs.ErrColumnType, entry.Type, typ))
		return
	}

	start := r.offsets[pos]
	dec := encoding.NewColumnDecoder(r.data[start:start+entry.Size], r.engine)
	for i := range r.rows {
		decode(dec, i)
	}
	if err := dec.Err(); err != nil {
		r.err = errs.NewSchemaError(name, err)
		return
	}
	if dec.Remaining() != 0 {
		r.err = errs.NewSchemaError(name, fmt.Errorf("%w: %d trailing bytes", errs.ErrColumnLength, dec.Remaining()))
	}
}

func (r *columnReader) float64(name string, set func(i int, v float64)) {
	r.read(name, format.TypeFloat64, func(dec *encoding.ColumnDecoder, i int) {
		set(i, dec.Float64())
	})
}

func (r *columnReader) nullable(name string, set func(i int, v column.Float)) {
	r.read(name, format.TypeNullableFloat64, func(dec *encoding.ColumnDecoder, i int) {
		v, ok := dec.NullableFloat64()
		set(i, column.Float{Value: v, Valid: ok})
	})
}

func (r *columnReader) float64List(name string, set func(i int, v []float64)) {
	r.read(name, format.TypeFloat64List, func(dec *encoding.ColumnDecoder, i int) {
		set(i, dec.Float64List())
	})
}

func (r *columnReader) mode(prefix string, get func(i int) *table.Mode) {
	r.float64(prefix+".OnsetTemperature", func(i int, v float64) { get(i).OnsetTemperature = v })
	r.float64(prefix+".TemperatureStep", func(i int, v float64) { get(i).TemperatureStep = v })
}

func (r *columnReader) fattyAcid(prefix string, get func(i int) *fattyacid.FattyAcid) {
	r.read(prefix+".Carbons", format.TypeUint8, func(dec *encoding.ColumnDecoder, i int) {
		get(i).Carbons = dec.Uint8()
	})
	r.read(prefix+".DoubleBondIndices", format.TypeUint8List, func(dec *encoding.ColumnDecoder, i int) {
		get(i).DoubleBondIndices = dec.Uint8List()
	})
	r.read(prefix+".DoubleBondKinds", format.TypeInt8List, func(dec *encoding.ColumnDecoder, i int) {
		get(i).DoubleBondKinds = dec.Int8List()
	})
	r.read(prefix+".Label", format.TypeString, func(dec *encoding.ColumnDecoder, i int) {
		get(i).Label = dec.String()
	})
}

// validateFattyAcids rejects fatty acids whose bond lists disagree.
func validateFattyAcids(field string, n int, get func(i int) fattyacid.FattyAcid) error {
	for i := range n {
		if err := get(i).Validate(); err != nil {
			return errs.NewDataError(i, field, err)
		}
	}

	return nil
}
