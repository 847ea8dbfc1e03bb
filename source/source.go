// Package source implements the Source stage: it enriches raw measurements
// into one descriptor row per fatty acid and mode.
//
// All neighbour-dependent values (chain lengths, deltas, slopes, relative
// times) are computed within a single mode, with the rows of the mode ordered
// by mean retention time. Modes are evaluated concurrently.
package source

import (
	"math"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/fame/column"
	"github.com/arloliu/fame/errs"
	"github.com/arloliu/fame/fattyacid"
	"github.com/arloliu/fame/format"
	"github.com/arloliu/fame/shape"
	"github.com/arloliu/fame/table"
)

// MaxTemperature caps the elution temperature in °C.
const MaxTemperature = 250.0

// Compute runs the Source stage over input.
//
// The output holds one row per admitted input row. Empty input yields an
// empty frame. A row with an invalid fatty acid fails the stage with a
// *errs.DataError.
func Compute(input table.Frame[table.Measurement], settings Settings) (table.Frame[Row], error) {
	if err := settings.Validate(); err != nil {
		return table.Frame[Row]{}, err
	}
	measurements := input.Rows
	for i, m := range measurements {
		if err := m.FattyAcid.Validate(); err != nil {
			return table.Frame[Row]{}, errs.NewDataError(i, table.ColumnFattyAcid, err)
		}
	}

	rows := make([]Row, len(measurements))
	groups := column.Groups(len(measurements), func(i int) table.ModeKey { return measurements[i].Mode.Key() })

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, group := range groups {
		g.Go(func() error {
			enrich(measurements, group, settings, rows)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return table.Frame[Row]{}, err
	}

	rows = shape.Exclude(rows, Schema, settings.Filter)
	sortRows(rows, settings.Sort, settings.Order)

	return table.NewFrame(rows), nil
}

// enrich computes the rows of one mode. group holds input row indices and the
// results are written to the same indices of out.
func enrich(measurements []table.Measurement, group []int, settings Settings, out []Row) {
	part := column.Gather(measurements, group)
	means := make([]column.Float, len(part))
	for i, m := range part {
		means[i] = column.Mean(m.RetentionTime)
	}

	// Fill order within the mode: ascending mean, nulls last.
	order := make([]int, len(part))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return column.Compare(means[a], means[b]) })

	sorted := column.Gather(part, order)
	times := column.Gather(means, order)
	saturated := make([]bool, len(sorted))
	carbons := make([]float64, len(sorted))
	for i, m := range sorted {
		saturated[i] = m.FattyAcid.IsSaturated()
		carbons[i] = float64(m.FattyAcid.Carbons)
	}

	ecl := column.ECL(times, carbons, saturated, settings.Logarithmic)
	fcl := column.FCL(ecl, carbons)
	timeBracket := column.NewBracket(times, saturated)
	delta := timeBracket.Delta()
	slope := column.Slope(column.NewBracket(ecl, saturated), timeBracket)
	reference := relativeReference(sorted, times, settings.Relative)

	for i, m := range sorted {
		fa := m.FattyAcid
		mean := times[i]
		out[group[order[i]]] = Row{
			Mode:      m.Mode,
			FattyAcid: fa,
			DeadTime:  m.DeadTime,
			RetentionTime: RetentionTime{
				Absolute: Absolute{
					Mean:              mean,
					StandardDeviation: column.StandardDeviation(m.RetentionTime, settings.Ddof),
					Values:            slices.Clone(m.RetentionTime),
				},
				Relative: relative(mean, reference, settings.Relative != nil),
				Delta:    delta[i],
			},
			Temperature: temperature(m.Mode, mean),
			ChainLength: ChainLength{
				ECL: ecl[i],
				FCL: fcl[i],
				ECN: fa.ECN(),
			},
			Mass: Mass{
				RCO:     fa.Mass(fattyacid.RCO),
				RCOO:    fa.Mass(fattyacid.RCOO),
				RCOOH:   fa.Mass(fattyacid.RCOOH),
				RCOOCH3: fa.Mass(fattyacid.RCOOCH3),
			},
			Derivative: Derivative{
				Slope: slope[i],
				Angle: column.Degrees(slope[i]),
			},
		}
	}
}

func relativeReference(rows []table.Measurement, means []column.Float, target *fattyacid.FattyAcid) column.Float {
	if target == nil {
		return column.Null()
	}
	for i, m := range rows {
		if m.FattyAcid.Equal(*target) {
			return means[i]
		}
	}

	return column.Null()
}

func relative(mean, reference column.Float, enabled bool) column.Float {
	if !enabled {
		return column.Some(math.NaN())
	}

	return mean.Div(reference)
}

func temperature(mode table.Mode, mean column.Float) column.Float {
	if !mean.Valid {
		return mean
	}

	return column.Finite(min(mode.OnsetTemperature+mean.Value*mode.TemperatureStep, MaxTemperature))
}

// sortRows orders rows in place.
//
// SortFattyAcid orders by (Mode, FattyAcid). SortTime orders by mode, then by
// (ECL, Mean) within each mode. Descending inverts every key; null cells stay
// last.
func sortRows(rows []Row, by format.SourceSort, order format.Order) {
	descending := order.Descending()
	slices.SortStableFunc(rows, func(a, b Row) int {
		c := table.CompareModes(a.Mode, b.Mode)
		if c == 0 {
			switch by {
			case format.SortTime:
				c = column.CompareOrdered(a.ChainLength.ECL, b.ChainLength.ECL, descending)
				if c == 0 {
					c = column.CompareOrdered(a.RetentionTime.Absolute.Mean, b.RetentionTime.Absolute.Mean, descending)
				}

				return c
			default:
				c = fattyacid.Compare(a.FattyAcid, b.FattyAcid)
			}
		}
		if descending {
			return -c
		}

		return c
	})
}

// SaturatedFattyAcids returns the distinct saturated fatty acids of rows, the
// candidates for a relative reference.
func SaturatedFattyAcids(rows []table.Measurement) []fattyacid.FattyAcid {
	var out []fattyacid.FattyAcid
	for _, m := range rows {
		if m.FattyAcid.IsSaturated() {
			out = append(out, m.FattyAcid)
		}
	}

	return table.DistinctFattyAcids(out)
}
