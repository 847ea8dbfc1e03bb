package source

import (
	"fmt"

	"github.com/arloliu/fame/errs"
	"github.com/arloliu/fame/fattyacid"
	"github.com/arloliu/fame/format"
	"github.com/arloliu/fame/internal/hash"
	"github.com/arloliu/fame/shape"
)

// Settings control the Source stage.
type Settings struct {
	// Ddof is the delta degrees of freedom of the replicate standard
	// deviation: 0, 1 or 2.
	Ddof int `yaml:"ddof"`
	// Logarithmic interpolates chain lengths on ln(retention time).
	Logarithmic bool `yaml:"logarithmic"`
	// Relative, when set, divides every mean by the mean of this fatty acid
	// in the same mode.
	Relative *fattyacid.FattyAcid `yaml:"relative,omitempty"`
	Filter   shape.Filter         `yaml:"filter"`
	Sort     format.SourceSort    `yaml:"sort"`
	Order    format.Order         `yaml:"order"`
}

// DefaultSettings returns Bessel-corrected deviations, linear interpolation,
// no reference, no filter and ascending fatty acid order.
func DefaultSettings() Settings {
	return Settings{
		Ddof:  1,
		Sort:  format.SortFattyAcid,
		Order: format.Ascending,
	}
}

// Validate checks every field.
func (s Settings) Validate() error {
	if s.Ddof < 0 || s.Ddof > 2 {
		return fmt.Errorf("%w: %d not in {0, 1, 2}", errs.ErrInvalidDdof, s.Ddof)
	}
	if s.Sort != format.SortFattyAcid && s.Sort != format.SortTime {
		return fmt.Errorf("%w: source sort %d", errs.ErrInvalidSettings, s.Sort)
	}
	if s.Order != format.Ascending && s.Order != format.Descending {
		return fmt.Errorf("%w: order %d", errs.ErrInvalidSettings, s.Order)
	}
	if s.Relative != nil {
		if err := s.Relative.Validate(); err != nil {
			return fmt.Errorf("%w: relative: %w", errs.ErrInvalidSettings, err)
		}
	}

	return nil
}

// Hash returns the fingerprint of every field that affects the Source output.
func (s Settings) Hash() uint64 {
	h := hash.New().Int(s.Ddof).Bool(s.Logarithmic)
	h.Bool(s.Relative != nil)
	if s.Relative != nil {
		s.Relative.AppendHash(h)
	}
	s.Filter.AppendHash(h)
	h.Byte(byte(s.Sort)).Byte(byte(s.Order))

	return h.Sum64()
}
