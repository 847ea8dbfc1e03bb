package table

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fame/fattyacid"
)

func measurement(onset, step float64, fa string, t0 float64, rt ...float64) Measurement {
	return Measurement{
		Mode:          Mode{OnsetTemperature: onset, TemperatureStep: step},
		FattyAcid:     fattyacid.MustParse(fa),
		DeadTime:      t0,
		RetentionTime: rt,
	}
}

func TestMode_Key(t *testing.T) {
	a := Mode{OnsetTemperature: 120, TemperatureStep: 4}
	b := Mode{OnsetTemperature: 120, TemperatureStep: 4}
	c := Mode{OnsetTemperature: 120, TemperatureStep: 2}

	require.Equal(t, a.Key(), b.Key())
	require.Equal(t, a.Hash(), b.Hash())
	require.NotEqual(t, a.Key(), c.Key())
	require.NotEqual(t, a.Hash(), c.Hash())

	zero := Mode{OnsetTemperature: 0}
	negZero := Mode{OnsetTemperature: math.Copysign(0, -1)}
	require.Equal(t, zero.Key(), negZero.Key())

	nan1 := Mode{TemperatureStep: math.NaN()}
	nan2 := Mode{TemperatureStep: -math.NaN()}
	require.Equal(t, nan1.Key(), nan2.Key())
}

func TestCompareModes(t *testing.T) {
	require.Negative(t, CompareModes(Mode{120, 4}, Mode{150, 1}))
	require.Negative(t, CompareModes(Mode{120, 1}, Mode{120, 4}))
	require.Zero(t, CompareModes(Mode{120, 4}, Mode{120, 4}))
}

func TestFrame_Fingerprint(t *testing.T) {
	rows := []Measurement{
		measurement(120, 4, "C16:0", 1, 5),
		measurement(120, 4, "C18:0", 1, 10),
	}

	a := NewFrame(rows)
	b := NewFrame([]Measurement{
		measurement(120, 4, "C16:0", 1, 5),
		measurement(120, 4, "C18:0", 1, 10),
	})
	require.Equal(t, a.Fingerprint, b.Fingerprint)
	require.Equal(t, 2, a.Len())

	changed := NewFrame([]Measurement{
		measurement(120, 4, "C16:0", 1, 5),
		measurement(120, 4, "C18:0", 1, 10.5),
	})
	require.NotEqual(t, a.Fingerprint, changed.Fingerprint)

	relabeled := NewFrame([]Measurement{
		measurement(120, 4, "C16:0", 1, 5),
		{Mode: Mode{120, 4}, FattyAcid: fattyacid.MustParse("C18:0").WithLabel("Stearic"), DeadTime: 1, RetentionTime: []float64{10}},
	})
	require.NotEqual(t, a.Fingerprint, relabeled.Fingerprint)

	require.NotEqual(t, NewFrame[Measurement](nil).Fingerprint, a.Fingerprint)
}

func TestStack(t *testing.T) {
	a := NewFrame([]Measurement{measurement(120, 4, "C16:0", 1, 5)})
	b := NewFrame([]Measurement{measurement(150, 2, "C18:0", 1, 10), measurement(150, 2, "C20:0", 1, 12)})

	stacked := Stack(a, b)
	require.Equal(t, 3, stacked.Len())
	require.Equal(t, Fingerprint(stacked.Rows), stacked.Fingerprint)
	require.Equal(t, 150.0, stacked.Rows[1].Mode.OnsetTemperature)
}

func TestMerge(t *testing.T) {
	a := NewFrame([]Measurement{
		measurement(120, 4, "C16:0", 1, 5),
		measurement(120, 4, "C18:0", 1, 10),
	})
	b := NewFrame([]Measurement{
		measurement(120, 4, "C18:0", 1.5, 10),
		measurement(120, 4, "C18:0", 1, 10.2),
		measurement(150, 2, "C16:0", 1, 5),
	})

	merged := Merge(a, b)
	require.Equal(t, 4, merged.Len())
	require.Equal(t, Fingerprint(merged.Rows), merged.Fingerprint)
	require.Equal(t, a.Rows, merged.Rows[:2])
	require.Equal(t, 1.0, merged.Rows[1].DeadTime)
	require.Equal(t, []float64{10.2}, merged.Rows[2].RetentionTime)
	require.Equal(t, 150.0, merged.Rows[3].Mode.OnsetTemperature)

	labelled := NewFrame([]Measurement{measurement(120, 4, "C16:0", 1, 5)})
	labelled.Rows[0].FattyAcid = labelled.Rows[0].FattyAcid.WithLabel("Palmitic")
	require.Equal(t, 3, Merge(a, NewFrame(labelled.Rows)).Len())

	require.Equal(t, 2, Merge(a, NewFrame[Measurement](nil)).Len())
	require.Equal(t, 2, Merge(NewFrame[Measurement](nil), a).Len())
}

func TestJoinDeadTimes(t *testing.T) {
	rows := []Measurement{
		measurement(120, 4, "C16:0", 1, 5),
		measurement(150, 4, "C16:0", 1, 4),
	}

	joined := JoinDeadTimes(rows, map[float64]float64{120: 1.25})
	require.Equal(t, 1.25, joined[0].DeadTime)
	require.Equal(t, 1.0, joined[1].DeadTime)
	require.Equal(t, 1.0, rows[0].DeadTime, "input rows are not mutated")
}

func TestDistinct(t *testing.T) {
	rows := []Measurement{
		measurement(150, 4, "C18:1Δ9c", 1, 5),
		measurement(120, 2, "C16:0", 1, 5),
		measurement(120, 4, "C18:1Δ9c", 1, 5),
		measurement(150, 2, "C16:0", 1, 5),
	}

	require.Equal(t, []float64{120, 150}, OnsetTemperatures(rows))
	require.Equal(t, []float64{2, 4}, TemperatureSteps(rows))

	fas := FattyAcids(rows)
	require.Len(t, fas, 2)
	require.Equal(t, "C16:0", fas[0].String())
	require.Equal(t, "C18:1Δ9c", fas[1].String())
}
