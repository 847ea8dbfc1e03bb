package source

import (
	"github.com/arloliu/fame/column"
	"github.com/arloliu/fame/fattyacid"
	"github.com/arloliu/fame/internal/hash"
	"github.com/arloliu/fame/table"
)

// Row is one enriched fatty acid measurement.
type Row struct {
	Mode          table.Mode
	FattyAcid     fattyacid.FattyAcid
	DeadTime      float64
	RetentionTime RetentionTime
	// Temperature is the elution temperature, clipped to MaxTemperature.
	Temperature column.Float
	ChainLength ChainLength
	Mass        Mass
	Derivative  Derivative
}

// RetentionTime groups the retention time descriptors.
type RetentionTime struct {
	Absolute Absolute
	// Relative is Mean divided by the reference mean of the same mode. It is
	// NaN when no reference is configured and null when the reference is
	// missing from the mode.
	Relative column.Float
	// Delta is the span between the saturated references around the row.
	Delta column.Float
}

// Absolute holds the replicate statistics.
type Absolute struct {
	Mean              column.Float
	StandardDeviation column.Float
	Values            []float64
}

// ChainLength groups the chain length descriptors.
type ChainLength struct {
	ECL column.Float
	FCL column.Float
	ECN int
}

// Mass holds the monoisotopic masses of the four forms.
type Mass struct {
	RCO     float64
	RCOO    float64
	RCOOH   float64
	RCOOCH3 float64
}

// Derivative holds the slope of ECL against retention time and its angle in
// degrees.
type Derivative struct {
	Slope column.Float
	Angle column.Float
}

// AppendHash feeds every field of r into h.
func (r Row) AppendHash(h *hash.Hasher) {
	r.Mode.AppendHash(h)
	r.FattyAcid.AppendHash(h)
	h.String(r.FattyAcid.Label)
	h.Float64(r.DeadTime)
	r.RetentionTime.Absolute.Mean.AppendHash(h)
	r.RetentionTime.Absolute.StandardDeviation.AppendHash(h)
	h.Float64s(r.RetentionTime.Absolute.Values)
	r.RetentionTime.Relative.AppendHash(h)
	r.RetentionTime.Delta.AppendHash(h)
	r.Temperature.AppendHash(h)
	r.ChainLength.ECL.AppendHash(h)
	r.ChainLength.FCL.AppendHash(h)
	h.Int(r.ChainLength.ECN)
	h.Float64(r.Mass.RCO).Float64(r.Mass.RCOO).Float64(r.Mass.RCOOH).Float64(r.Mass.RCOOCH3)
	r.Derivative.Slope.AppendHash(h)
	r.Derivative.Angle.AppendHash(h)
}
