// Package snapshot reads and writes typed columnar snapshots of measurement,
// Source and Distance tables together with user metadata.
//
// A snapshot is a section.Header followed by the encoded Metadata and the
// compressed column payload. Nested row fields are flattened into dotted
// column names such as "Mode.OnsetTemperature" or "FattyAcid.From.Carbons".
// Readers look columns up by name, so a missing or mistyped column is
// reported as an *errs.SchemaError naming it.
package snapshot

import (
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/arloliu/fame/compress"
	"github.com/arloliu/fame/distance"
	"github.com/arloliu/fame/errs"
	"github.com/arloliu/fame/format"
	"github.com/arloliu/fame/internal/pool"
	"github.com/arloliu/fame/section"
	"github.com/arloliu/fame/source"
	"github.com/arloliu/fame/table"
)

// Extension is the file extension of snapshot files.
const Extension = "fame"

// FileName returns the conventional file name for a snapshot of kind:
// "<title>.source.fame", "<title>.distance.fame" or "<title>.fame".
func FileName(title string, kind format.TableKind) string {
	if infix := kind.Extension(); infix != "" {
		return title + "." + infix + "." + Extension
	}

	return title + "." + Extension
}

// WriteMeasurements writes a measurement table.
func WriteMeasurements(w io.Writer, meta Metadata, frame table.Frame[table.Measurement], opts ...Option) error {
	return write(w, format.KindMeasurement, meta, frame.Len(), func(cw *columnWriter) {
		writeMeasurements(cw, frame.Rows)
	}, opts)
}

// ReadMeasurements reads a measurement table written by WriteMeasurements.
func ReadMeasurements(r io.Reader, opts ...Option) (table.Frame[table.Measurement], Metadata, error) {
	return read(r, format.KindMeasurement, readMeasurements, opts)
}

// WriteSource writes a Source table.
func WriteSource(w io.Writer, meta Metadata, frame table.Frame[source.Row], opts ...Option) error {
	return write(w, format.KindSource, meta, frame.Len(), func(cw *columnWriter) {
		writeSource(cw, frame.Rows)
	}, opts)
}

// ReadSource reads a Source table written by WriteSource.
func ReadSource(r io.Reader, opts ...Option) (table.Frame[source.Row], Metadata, error) {
	return read(r, format.KindSource, readSource, opts)
}

// WriteDistance writes a Distance table.
func WriteDistance(w io.Writer, meta Metadata, frame table.Frame[distance.Row], opts ...Option) error {
	return write(w, format.KindDistance, meta, frame.Len(), func(cw *columnWriter) {
		writeDistance(cw, frame.Rows)
	}, opts)
}

// ReadDistance reads a Distance table written by WriteDistance.
func ReadDistance(r io.Reader, opts ...Option) (table.Frame[distance.Row], Metadata, error) {
	return read(r, format.KindDistance, readDistance, opts)
}

// Inspect parses the header of a snapshot without decoding its payload.
func Inspect(data []byte) (section.Header, Metadata, error) {
	h, err := section.ParseHeader(data)
	if err != nil {
		return section.Header{}, Metadata{}, err
	}
	rest, err := body(h, data)
	if err != nil {
		return section.Header{}, Metadata{}, err
	}
	meta, err := decodeMetadata(rest[:h.MetadataSize], h.Engine())
	if err != nil {
		return section.Header{}, Metadata{}, err
	}

	return h, meta, nil
}

func write(w io.Writer, kind format.TableKind, meta Metadata, rows int, build func(*columnWriter), opts []Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}
	if err := meta.Validate(); err != nil {
		return err
	}
	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return err
	}

	cw := newColumnWriter(cfg.engine, rows)
	defer cw.release()
	build(cw)
	if cw.err != nil {
		return cw.err
	}

	raw := cw.payload()
	stored, err := codec.Compress(raw)
	if err != nil {
		return fmt.Errorf("compress %s payload: %w", cfg.compression, err)
	}
	metadata := meta.encode(cfg.engine)
	for _, size := range []int{rows, len(metadata), len(raw), len(stored)} {
		if uint64(size) > math.MaxUint32 {
			return fmt.Errorf("%w: section of %d bytes exceeds the format limit", errs.ErrInvalidHeaderSize, size)
		}
	}

	h := section.NewHeader(kind, cfg.compression, cfg.engine)
	h.Rows = uint32(rows)
	h.Columns = uint16(len(cw.dir.Entries))
	h.MetadataSize = uint32(len(metadata))
	h.RawSize = uint32(len(raw))
	h.PayloadSize = uint32(len(stored))
	crc := crc32.NewIEEE()
	_, _ = crc.Write(metadata)
	_, _ = crc.Write(stored)
	h.Checksum = crc.Sum32()

	buf := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(buf)
	_, _ = buf.Write(h.Bytes())
	_, _ = buf.Write(metadata)
	_, _ = buf.Write(stored)
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write %s snapshot: %w", kind, err)
	}

	cfg.logger.Debug("snapshot written",
		"kind", kind.String(),
		"rows", rows,
		"columns", len(cw.dir.Entries),
		"compression", cfg.compression.String(),
		"raw_bytes", len(raw),
		"stored_bytes", len(stored),
	)

	return nil
}

func read[R table.Hashable](
	r io.Reader,
	kind format.TableKind,
	decode func(*columnReader) ([]R, error),
	opts []Option,
) (table.Frame[R], Metadata, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return table.Frame[R]{}, Metadata{}, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return table.Frame[R]{}, Metadata{}, fmt.Errorf("read %s snapshot: %w", kind, err)
	}
	h, meta, err := Inspect(data)
	if err != nil {
		return table.Frame[R]{}, Metadata{}, err
	}
	if h.Kind != kind {
		return table.Frame[R]{}, Metadata{}, fmt.Errorf("%w: %s, want %s", errs.ErrUnexpectedTableKind, h.Kind, kind)
	}

	cr, err := payload(h, data[section.HeaderSize+int(h.MetadataSize):])
	if err != nil {
		return table.Frame[R]{}, Metadata{}, err
	}
	rows, err := decode(cr)
	if err != nil {
		return table.Frame[R]{}, Metadata{}, err
	}

	cfg.logger.Debug("snapshot read",
		"kind", kind.String(),
		"rows", len(rows),
		"columns", h.Columns,
		"compression", h.Compression.String(),
	)

	return table.NewFrame(rows), meta, nil
}

// body checks the declared section sizes and the checksum, and returns the
// bytes after the header.
func body(h section.Header, data []byte) ([]byte, error) {
	rest := data[section.HeaderSize:]
	if want := uint64(h.MetadataSize) + uint64(h.PayloadSize); uint64(len(rest)) != want {
		return nil, fmt.Errorf("%w: %d bytes after header, header declares %d",
			errs.ErrInvalidHeaderSize, len(rest), want)
	}
	if sum := crc32.ChecksumIEEE(rest); sum != h.Checksum {
		return nil, fmt.Errorf("%w: got %08x, header has %08x", errs.ErrChecksumMismatch, sum, h.Checksum)
	}

	return rest, nil
}

func payload(h section.Header, stored []byte) (*columnReader, error) {
	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, err
	}
	raw, err := codec.Decompress(stored, int(h.RawSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCorruptedColumn, err)
	}

	dir, n, err := section.ParseDirectory(raw, h.Engine())
	if err != nil {
		return nil, err
	}
	if len(dir.Entries) != int(h.Columns) {
		return nil, fmt.Errorf("%w: directory has %d columns, header declares %d",
			errs.ErrCorruptedColumn, len(dir.Entries), h.Columns)
	}
	// Every column stores at least one byte per row.
	if len(dir.Entries) > 0 && uint64(h.Rows) > uint64(len(raw)) {
		return nil, fmt.Errorf("%w: %d rows in %d bytes", errs.ErrCorruptedColumn, h.Rows, len(raw))
	}

	return newColumnReader(h.Engine(), int(h.Rows), dir, raw[n:])
}
