package shape

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fame/column"
	"github.com/arloliu/fame/fattyacid"
	"github.com/arloliu/fame/format"
	"github.com/arloliu/fame/internal/hash"
	"github.com/arloliu/fame/table"
)

type pair struct {
	mode     table.Mode
	from, to fattyacid.FattyAcid
	alpha    column.Float
}

var pairSchema = Schema[pair]{
	Mode:       func(p pair) table.Mode { return p.mode },
	FattyAcids: func(p pair) []fattyacid.FattyAcid { return []fattyacid.FattyAcid{p.from, p.to} },
	CompareKey: func(a, b pair) int {
		if c := table.CompareModes(a.mode, b.mode); c != 0 {
			return c
		}
		if c := fattyacid.Compare(a.from, b.from); c != 0 {
			return c
		}

		return fattyacid.Compare(a.to, b.to)
	},
	Metric: func(p pair, m format.Metric) (column.Float, bool) {
		if m != format.MetricAlpha {
			return column.Null(), false
		}

		return p.alpha, true
	},
}

func newPair(onset, step float64, from, to string, alpha column.Float) pair {
	return pair{
		mode:  table.Mode{OnsetTemperature: onset, TemperatureStep: step},
		from:  fattyacid.MustParse(from),
		to:    fattyacid.MustParse(to),
		alpha: alpha,
	}
}

func fixture() []pair {
	return []pair{
		newPair(150, 2, "C16:0", "C18:0", column.Some(0.5)),
		newPair(120, 4, "C18:0", "C20:0", column.Some(-0.9)),
		newPair(120, 4, "C16:0", "C18:0", column.Some(0.1)),
		newPair(150, 2, "C18:0", "C20:0", column.Some(0.7)),
		newPair(170, 1, "C16:0", "C18:0", column.Null()),
	}
}

func TestFilter_Admits(t *testing.T) {
	f := Filter{
		OnsetTemperatures: []float64{150},
		FattyAcids:        []fattyacid.FattyAcid{fattyacid.MustParse("C16:0")},
	}
	mode := table.Mode{OnsetTemperature: 120, TemperatureStep: 4}

	require.True(t, Filter{}.Admits(mode, fattyacid.MustParse("C16:0")))
	require.False(t, f.Admits(mode, fattyacid.MustParse("C16:0")))
	require.False(t, f.Admits(mode, fattyacid.MustParse("C18:0"), fattyacid.MustParse("C16:0")))
	require.True(t, f.Admits(mode, fattyacid.MustParse("C18:0"), fattyacid.MustParse("C20:0")))
	require.False(t, f.Admits(table.Mode{OnsetTemperature: 150}, fattyacid.MustParse("C18:0")))
	require.False(t, Filter{TemperatureSteps: []float64{4}}.Admits(mode))
}

func TestFilter_Hash(t *testing.T) {
	sum := func(f Filter) uint64 {
		h := hash.New()
		f.AppendHash(h)

		return h.Sum64()
	}

	a := Filter{OnsetTemperatures: []float64{120, 150}, FattyAcids: []fattyacid.FattyAcid{fattyacid.MustParse("C16:0"), fattyacid.MustParse("C18:0")}}
	b := Filter{OnsetTemperatures: []float64{150, 120, 150}, FattyAcids: []fattyacid.FattyAcid{fattyacid.MustParse("C18:0"), fattyacid.MustParse("C16:0")}}
	c := Filter{TemperatureSteps: []float64{120, 150}}

	require.Equal(t, sum(a), sum(b))
	require.NotEqual(t, sum(a), sum(c))
	require.NotEqual(t, sum(Filter{}), sum(a))
}

func TestExclude(t *testing.T) {
	rows := fixture()
	f := Filter{FattyAcids: []fattyacid.FattyAcid{fattyacid.MustParse("C16:0")}}

	got := Exclude(rows, pairSchema, f)
	require.Len(t, got, 2)
	for _, p := range got {
		require.False(t, p.from.Equal(fattyacid.MustParse("C16:0")))
		require.False(t, p.to.Equal(fattyacid.MustParse("C16:0")))
	}
	require.Len(t, rows, 5, "input is not modified")

	require.Len(t, Exclude(rows, pairSchema, Filter{}), len(rows))
}

func TestOrder_ByKey(t *testing.T) {
	asc, err := Order(fixture(), pairSchema, DefaultSort())
	require.NoError(t, err)
	require.Equal(t, 120.0, asc[0].mode.OnsetTemperature)
	require.Equal(t, "C16:0", asc[0].from.String())
	require.Equal(t, "C18:0", asc[1].from.String())
	require.Equal(t, 170.0, asc[4].mode.OnsetTemperature)

	s := DefaultSort()
	s.Order = format.Descending
	desc, err := Order(asc, pairSchema, s)
	require.NoError(t, err)
	for i := range asc {
		require.Equal(t, asc[i], desc[len(desc)-1-i])
	}
}

func TestOrder_ByValue(t *testing.T) {
	tests := []struct {
		name        string
		aggregation format.Aggregation
		order       format.Order
		wantOnsets  []float64
	}{
		// |alpha| per mode: 120 -> {0.9, 0.1}, 150 -> {0.5, 0.7}, 170 -> null.
		{name: "median ascending", aggregation: format.Median, order: format.Ascending, wantOnsets: []float64{120, 120, 150, 150, 170}},
		{name: "minimum ascending", aggregation: format.Minimum, order: format.Ascending, wantOnsets: []float64{120, 120, 150, 150, 170}},
		{name: "maximum ascending", aggregation: format.Maximum, order: format.Ascending, wantOnsets: []float64{150, 150, 120, 120, 170}},
		{name: "maximum descending", aggregation: format.Maximum, order: format.Descending, wantOnsets: []float64{120, 120, 150, 150, 170}},
		{name: "minimum descending", aggregation: format.Minimum, order: format.Descending, wantOnsets: []float64{150, 150, 120, 120, 170}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Sort{By: format.ByValue, Aggregation: tt.aggregation, Metric: format.MetricAlpha, Order: tt.order}
			got, err := Order(fixture(), pairSchema, s)
			require.NoError(t, err)

			onsets := make([]float64, len(got))
			for i, p := range got {
				onsets[i] = p.mode.OnsetTemperature
			}
			require.Equal(t, tt.wantOnsets, onsets)
		})
	}
}

func TestOrder_Errors(t *testing.T) {
	_, err := Order(fixture(), pairSchema, Sort{By: format.ByValue, Aggregation: format.Median, Metric: format.MetricECL, Order: format.Ascending})
	require.Error(t, err)

	_, err = Order(fixture(), pairSchema, Sort{})
	require.Error(t, err)
}

func TestApply(t *testing.T) {
	f := Filter{OnsetTemperatures: []float64{170}}
	got, err := Apply(fixture(), pairSchema, f, DefaultSort())
	require.NoError(t, err)
	require.Len(t, got, 4)
}

func TestSort_Hash(t *testing.T) {
	sum := func(s Sort) uint64 {
		h := hash.New()
		s.AppendHash(h)

		return h.Sum64()
	}

	a := DefaultSort()
	b := DefaultSort()
	b.Aggregation = format.Maximum
	require.Equal(t, sum(a), sum(b), "aggregation is irrelevant for key sorts")

	a.By, b.By = format.ByValue, format.ByValue
	require.NotEqual(t, sum(a), sum(b))
}
