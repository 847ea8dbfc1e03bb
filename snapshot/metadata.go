package snapshot

import (
	"fmt"
	"slices"
	"time"

	"github.com/arloliu/fame/encoding"
	"github.com/arloliu/fame/endian"
	"github.com/arloliu/fame/errs"
)

// DateLayout is the layout of Metadata.Date.
const DateLayout = time.DateOnly

const (
	keyName        = "name"
	keyDescription = "description"
	keyAuthor      = "author"
	keyVersion     = "version"
	keyDate        = "date"
)

// Metadata is the free-form description stored with a snapshot.
type Metadata struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Authors     []string `yaml:"authors,omitempty"`
	// Version is optional.
	Version string `yaml:"version,omitempty"`
	// Date is optional and uses DateLayout.
	Date string `yaml:"date,omitempty"`
}

// Validate checks that the date, when present, uses DateLayout.
func (m Metadata) Validate() error {
	if m.Date == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, m.Date); err != nil {
		return fmt.Errorf("%w: date %q: %v", errs.ErrInvalidMetadata, m.Date, err)
	}

	return nil
}

// Title returns the name used for snapshot file names.
func (m Metadata) Title() string {
	if m.Name == "" {
		return "untitled"
	}

	return m.Name
}

// encode writes the metadata as a count of key/value string pairs. Optional
// fields are omitted when empty and every author is a separate pair.
func (m Metadata) encode(engine endian.EndianEngine) []byte {
	pairs := [][2]string{{keyName, m.Name}}
	if m.Description != "" {
		pairs = append(pairs, [2]string{keyDescription, m.Description})
	}
	for _, author := range m.Authors {
		pairs = append(pairs, [2]string{keyAuthor, author})
	}
	if m.Version != "" {
		pairs = append(pairs, [2]string{keyVersion, m.Version})
	}
	if m.Date != "" {
		pairs = append(pairs, [2]string{keyDate, m.Date})
	}

	enc := encoding.NewColumnEncoder(engine)
	defer enc.Finish()

	enc.WriteUvarint(uint64(len(pairs)))
	for _, p := range pairs {
		enc.WriteString(p[0])
		enc.WriteString(p[1])
	}

	return slices.Clone(enc.Bytes())
}

// decodeMetadata reverses encode. Unknown keys are skipped.
func decodeMetadata(data []byte, engine endian.EndianEngine) (Metadata, error) {
	dec := encoding.NewColumnDecoder(data, engine)
	count := dec.Uvarint()

	var m Metadata
	for i := uint64(0); i < count && dec.Err() == nil; i++ {
		key, value := dec.String(), dec.String()
		switch key {
		case keyName:
			m.Name = value
		case keyDescription:
			m.Description = value
		case keyAuthor:
			m.Authors = append(m.Authors, value)
		case keyVersion:
			m.Version = value
		case keyDate:
			m.Date = value
		}
	}
	if err := dec.Err(); err != nil {
		return Metadata{}, fmt.Errorf("%w: %w", errs.ErrInvalidMetadata, err)
	}
	if dec.Remaining() != 0 {
		return Metadata{}, fmt.Errorf("%w: %d trailing bytes", errs.ErrInvalidMetadata, dec.Remaining())
	}

	return m, m.Validate()
}
