package plot

import (
	"github.com/arloliu/fame/fattyacid"
	"github.com/arloliu/fame/format"
	"github.com/arloliu/fame/source"
	"github.com/arloliu/fame/table"
)

// SourceAxes is the only projection of the Source table: retention time
// against ECL.
var SourceAxes = Axes{X: format.AxisRetentionTime, Y: format.AxisECL}

// DefaultSourceSettings projects SourceAxes.
func DefaultSourceSettings() Settings {
	return Settings{Axes: SourceAxes, Legend: true, RadiusOfPoints: 3, Precision: 2}
}

// Source projects a Source table. Every row contributes its mean retention
// time and ECL; the index records the mode of every row seen at a point.
func Source(input table.Frame[source.Row], settings Settings) (Value, error) {
	if settings.Axes != SourceAxes {
		return Value{}, unimplemented(settings.Axes)
	}

	fas := make([]fattyacid.FattyAcid, len(input.Rows))
	for i, r := range input.Rows {
		fas[i] = r.FattyAcid
	}
	distinct, rank := ranks(fas, fattyacid.Compare)

	v := newValue()
	for i, fa := range distinct {
		v.FattyAcids[uint32(i+1)] = []fattyacid.FattyAcid{fa} //nolint:gosec
	}
	for _, r := range input.Rows {
		v.add(sample{
			rank: rank(r.FattyAcid),
			x:    r.RetentionTime.Absolute.Mean,
			y:    r.ChainLength.ECL,
			mode: r.Mode,
			meta: Metadata{
				MetaOnsetTemperature: r.Mode.OnsetTemperature,
				MetaTemperatureStep:  r.Mode.TemperatureStep,
			},
		})
	}

	return v, nil
}
