package section

import (
	"fmt"

	"github.com/arloliu/fame/encoding"
	"github.com/arloliu/fame/endian"
	"github.com/arloliu/fame/errs"
	"github.com/arloliu/fame/format"
	"github.com/arloliu/fame/internal/collision"
)

// ColumnEntry describes one column of the payload.
type ColumnEntry struct {
	Name string
	Type format.ColumnType
	// Size is the encoded length of the column data in bytes.
	Size uint64
}

// Directory is the ordered list of columns in a payload.
type Directory struct {
	Entries []ColumnEntry
	names   *collision.Tracker
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{names: collision.NewTracker()}
}

// Add appends a column entry. Names must be unique.
func (d *Directory) Add(entry ColumnEntry) error {
	if _, err := d.names.Track(entry.Name); err != nil {
		return err
	}
	d.Entries = append(d.Entries, entry)

	return nil
}

// Lookup returns the entry named name and its position.
func (d *Directory) Lookup(name string) (ColumnEntry, int, bool) {
	pos, ok := d.names.Lookup(name)
	if !ok {
		return ColumnEntry{}, 0, false
	}

	return d.Entries[pos], pos, true
}

// DataSize returns the total size of the column data.
func (d *Directory) DataSize() uint64 {
	var total uint64
	for _, e := range d.Entries {
		total += e.Size
	}

	return total
}

// Encode writes the directory with the given encoder.
func (d *Directory) Encode(enc *encoding.ColumnEncoder) {
	enc.WriteUvarint(uint64(len(d.Entries)))
	for _, e := range d.Entries {
		enc.WriteString(e.Name)
		enc.WriteUint8(uint8(e.Type))
		enc.WriteUvarint(e.Size)
	}
}

// ParseDirectory reads a directory from the start of data and returns the
// directory together with the number of bytes it occupied.
func ParseDirectory(data []byte, engine endian.EndianEngine) (*Directory, int, error) {
	dec := encoding.NewColumnDecoder(data, engine)
	count := dec.Uvarint()
	if dec.Err() != nil {
		return nil, 0, dec.Err()
	}
	if count > MaxColumns {
		return nil, 0, fmt.Errorf("%w: directory count %d", errs.ErrCorruptedColumn, count)
	}

	d := NewDirectory()
	for range int(count) {
		name := dec.String()
		typ := format.ColumnType(dec.Uint8())
		size := dec.Uvarint()
		if err := dec.Err(); err != nil {
			return nil, 0, err
		}
		if err := d.Add(ColumnEntry{Name: name, Type: typ, Size: size}); err != nil {
			return nil, 0, err
		}
	}

	return d, len(data) - dec.Remaining(), nil
}
