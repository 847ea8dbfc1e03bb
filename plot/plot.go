// Package plot projects shaped stage output onto coordinate sets for
// interactive inspection.
//
// A projection assigns every distinct fatty acid (Source) or pair of fatty
// acids (Distance) a dense rank starting at 1, groups points into series by
// rank and an auxiliary mode value, and indexes the metadata observed at each
// coordinate.
package plot

import (
	"fmt"
	"maps"
	"slices"

	"github.com/arloliu/fame/column"
	"github.com/arloliu/fame/errs"
	"github.com/arloliu/fame/fattyacid"
	"github.com/arloliu/fame/format"
	"github.com/arloliu/fame/internal/hash"
	"github.com/arloliu/fame/table"
)

// Metadata names recorded in the index.
const (
	MetaOnsetTemperature   = "OnsetTemperature"
	MetaTemperatureStep    = "TemperatureStep"
	MetaRetentionTimeDelta = "RetentionTime.Delta"
	MetaECLDelta           = "EquivalentChainLength.Delta"
)

// Axes selects the columns projected on X and Y.
type Axes struct {
	X format.Axis `yaml:"x"`
	Y format.Axis `yaml:"y"`
}

func (a Axes) String() string { return fmt.Sprintf("(%s, %s)", a.X, a.Y) }

// Settings control a projection.
type Settings struct {
	Axes   Axes `yaml:"axes"`
	Legend bool `yaml:"legend"`
	// RadiusOfPoints is the marker radius in screen points.
	RadiusOfPoints float64 `yaml:"radius_of_points"`
	// Precision is the number of decimals shown for coordinates.
	Precision int `yaml:"precision"`
}

// AppendHash feeds the axes and the point radius into h. Legend and precision
// only affect rendering.
func (s Settings) AppendHash(h *hash.Hasher) {
	h.Byte(byte(s.Axes.X)).Byte(byte(s.Axes.Y)).Float64(s.RadiusOfPoints)
}

// Metadata maps a name to a value observed at a coordinate.
type Metadata map[string]float64

// SeriesKey identifies a series by rank and an auxiliary mode value.
type SeriesKey struct {
	Rank uint32
	Aux  OrderedFloat
}

// Value is the result of a projection.
type Value struct {
	// FattyAcids maps a rank to its fatty acid, or to its (From, To) pair.
	FattyAcids map[uint32][]fattyacid.FattyAcid
	// OnsetTemperature holds one series per rank and onset temperature.
	OnsetTemperature map[SeriesKey][]Point
	// TemperatureStep holds one series per rank and temperature step.
	TemperatureStep map[SeriesKey][]Point
	// Index maps a coordinate to the distinct metadata observed there.
	Index map[PointKey][]Metadata
}

// Keys returns the index coordinates in ascending order.
func (v Value) Keys() []PointKey {
	return slices.SortedFunc(maps.Keys(v.Index), ComparePointKeys)
}

type sample struct {
	rank uint32
	x, y column.Float
	mode table.Mode
	meta Metadata
}

func newValue() Value {
	return Value{
		FattyAcids:       make(map[uint32][]fattyacid.FattyAcid),
		OnsetTemperature: make(map[SeriesKey][]Point),
		TemperatureStep:  make(map[SeriesKey][]Point),
		Index:            make(map[PointKey][]Metadata),
	}
}

// add appends s to its series and the index. Samples with a null coordinate
// are skipped.
func (v Value) add(s sample) {
	if !s.x.Valid || !s.y.Valid {
		return
	}
	p := Point{X: s.x.Value, Y: s.y.Value}

	onset := SeriesKey{Rank: s.rank, Aux: NewOrderedFloat(s.mode.OnsetTemperature)}
	v.OnsetTemperature[onset] = append(v.OnsetTemperature[onset], p)
	step := SeriesKey{Rank: s.rank, Aux: NewOrderedFloat(s.mode.TemperatureStep)}
	v.TemperatureStep[step] = append(v.TemperatureStep[step], p)

	key := p.Key()
	if !slices.ContainsFunc(v.Index[key], func(m Metadata) bool { return maps.Equal(m, s.meta) }) {
		v.Index[key] = append(v.Index[key], s.meta)
	}
}

// ranks assigns dense ranks from 1 to the distinct keys in cmp order.
func ranks[K any](keys []K, compare func(a, b K) int) ([]K, func(K) uint32) {
	distinct := slices.Clone(keys)
	slices.SortStableFunc(distinct, compare)
	distinct = slices.CompactFunc(distinct, func(a, b K) bool { return compare(a, b) == 0 })

	return distinct, func(k K) uint32 {
		i, _ := slices.BinarySearchFunc(distinct, k, compare)
		return uint32(i + 1) //nolint:gosec
	}
}

func unimplemented(axes Axes) error {
	return fmt.Errorf("%w: %s", errs.ErrUnimplementedAxes, axes)
}
