package distance

import (
	"github.com/arloliu/fame/column"
	"github.com/arloliu/fame/fattyacid"
	"github.com/arloliu/fame/format"
	"github.com/arloliu/fame/internal/hash"
	"github.com/arloliu/fame/shape"
	"github.com/arloliu/fame/table"
)

// Interpolation selects dead time interpolation points. It is accepted and
// carried through settings but does not change any output yet.
type Interpolation struct {
	OnsetTemperature float64 `yaml:"onset_temperature"`
	TemperatureStep  float64 `yaml:"temperature_step"`
}

// Settings shape the Distance table for a view.
type Settings struct {
	Filter        shape.Filter  `yaml:"filter"`
	Sort          shape.Sort    `yaml:"sort"`
	Interpolation Interpolation `yaml:"interpolation"`
}

// DefaultSettings returns no filter and ascending key order.
func DefaultSettings() Settings {
	return Settings{Sort: shape.DefaultSort()}
}

// Validate checks the sort settings.
func (s Settings) Validate() error {
	return s.Sort.Validate()
}

// Hash returns the fingerprint of the filter and sort settings. Interpolation
// is not part of it.
func (s Settings) Hash() uint64 {
	h := hash.New()
	s.Filter.AppendHash(h)
	s.Sort.AppendHash(h)

	return h.Sum64()
}

// Schema plugs Distance rows into the shape shim. Rows are keyed by
// (Mode, From, To) and the filter checks both ends of each pair.
var Schema = shape.Schema[Row]{
	Mode: func(r Row) table.Mode { return r.Mode },
	FattyAcids: func(r Row) []fattyacid.FattyAcid {
		return []fattyacid.FattyAcid{r.FattyAcid.From, r.FattyAcid.To}
	},
	CompareKey: func(a, b Row) int {
		if c := table.CompareModes(a.Mode, b.Mode); c != 0 {
			return c
		}
		if c := fattyacid.Compare(a.FattyAcid.From, b.FattyAcid.From); c != 0 {
			return c
		}

		return fattyacid.Compare(a.FattyAcid.To, b.FattyAcid.To)
	},
	Metric: func(r Row, m format.Metric) (column.Float, bool) {
		switch m {
		case format.MetricAlpha:
			return r.Alpha, true
		case format.MetricRetentionTimeDelta:
			return r.RetentionTime.Delta, true
		case format.MetricECLDelta:
			return r.EquivalentChainLength.Delta, true
		case format.MetricEuclidean:
			return r.EuclideanDistance, true
		default:
			return column.Null(), false
		}
	},
}

// Shape filters and orders a Distance table.
func Shape(input table.Frame[Row], settings Settings) (table.Frame[Row], error) {
	rows, err := shape.Apply(input.Rows, Schema, settings.Filter, settings.Sort)
	if err != nil {
		return table.Frame[Row]{}, err
	}

	return table.NewFrame(rows), nil
}
