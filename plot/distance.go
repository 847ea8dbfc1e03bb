package plot

import (
	"github.com/arloliu/fame/column"
	"github.com/arloliu/fame/distance"
	"github.com/arloliu/fame/fattyacid"
	"github.com/arloliu/fame/format"
	"github.com/arloliu/fame/table"
)

// Distance table projections.
var (
	StepAlphaAxes     = Axes{X: format.AxisTemperatureStep, Y: format.AxisAlpha}
	ECLDeltaAlphaAxes = Axes{X: format.AxisECLDelta, Y: format.AxisAlpha}
)

// DefaultDistanceSettings projects StepAlphaAxes.
func DefaultDistanceSettings() Settings {
	return Settings{Axes: StepAlphaAxes, Legend: true, RadiusOfPoints: 3, Precision: 2}
}

// Distance projects a Distance table onto the temperature step or the ECL
// delta against Alpha. Every other axes pair fails with
// errs.ErrUnimplementedAxes.
func Distance(input table.Frame[distance.Row], settings Settings) (Value, error) {
	var x func(distance.Row) column.Float
	switch settings.Axes {
	case StepAlphaAxes:
		x = func(r distance.Row) column.Float { return column.Some(r.Mode.TemperatureStep) }
	case ECLDeltaAlphaAxes:
		x = func(r distance.Row) column.Float { return r.EquivalentChainLength.Delta }
	default:
		return Value{}, unimplemented(settings.Axes)
	}

	pairs := make([]distance.Pair, len(input.Rows))
	for i, r := range input.Rows {
		pairs[i] = r.FattyAcid
	}
	distinct, rank := ranks(pairs, comparePairs)

	v := newValue()
	for i, p := range distinct {
		v.FattyAcids[uint32(i+1)] = []fattyacid.FattyAcid{p.From, p.To} //nolint:gosec
	}
	for _, r := range input.Rows {
		meta := Metadata{
			MetaOnsetTemperature: r.Mode.OnsetTemperature,
			MetaTemperatureStep:  r.Mode.TemperatureStep,
		}
		if d, ok := r.RetentionTime.Delta.Get(); ok {
			meta[MetaRetentionTimeDelta] = d
		}
		if d, ok := r.EquivalentChainLength.Delta.Get(); ok {
			meta[MetaECLDelta] = d
		}
		v.add(sample{
			rank: rank(r.FattyAcid),
			x:    x(r),
			y:    r.Alpha,
			mode: r.Mode,
			meta: meta,
		})
	}

	return v, nil
}

func comparePairs(a, b distance.Pair) int {
	if c := fattyacid.Compare(a.From, b.From); c != 0 {
		return c
	}

	return fattyacid.Compare(a.To, b.To)
}
