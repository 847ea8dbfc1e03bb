// Package shape filters and orders stage output for consumer views.
//
// The same shim serves the Source and the Distance tables. A table plugs in
// through a Schema that tells the shim how to read the mode, the fatty acids,
// the key order and the aggregatable metrics of one row.
package shape

import (
	"slices"

	"github.com/arloliu/fame/fattyacid"
	"github.com/arloliu/fame/internal/hash"
	"github.com/arloliu/fame/table"
)

// Filter excludes rows. A row passes when its onset temperature, its
// temperature step and every one of its fatty acids are absent from the
// corresponding sets. An empty set excludes nothing.
type Filter struct {
	OnsetTemperatures []float64             `yaml:"onset_temperatures,omitempty"`
	TemperatureSteps  []float64             `yaml:"temperature_steps,omitempty"`
	FattyAcids        []fattyacid.FattyAcid `yaml:"fatty_acids,omitempty"`
}

// IsEmpty reports whether f excludes nothing.
func (f Filter) IsEmpty() bool {
	return len(f.OnsetTemperatures) == 0 && len(f.TemperatureSteps) == 0 && len(f.FattyAcids) == 0
}

// Admits reports whether a row with the given mode and fatty acids passes f.
func (f Filter) Admits(mode table.Mode, fas ...fattyacid.FattyAcid) bool {
	if slices.Contains(f.OnsetTemperatures, mode.OnsetTemperature) {
		return false
	}
	if slices.Contains(f.TemperatureSteps, mode.TemperatureStep) {
		return false
	}
	for _, fa := range fas {
		if fattyacid.Contains(f.FattyAcids, fa) {
			return false
		}
	}

	return true
}

// AppendHash feeds f into h. Sets hash the same regardless of element order
// or repeats.
func (f Filter) AppendHash(h *hash.Hasher) {
	temps := slices.Compact(slices.Sorted(slices.Values(f.OnsetTemperatures)))
	h.Float64s(temps)
	steps := slices.Compact(slices.Sorted(slices.Values(f.TemperatureSteps)))
	h.Float64s(steps)

	fas := table.DistinctFattyAcids(f.FattyAcids)
	h.Int(len(fas))
	for _, fa := range fas {
		fa.AppendHash(h)
	}
}

// Exclude returns the rows admitted by f, in input order. The input slice is
// never modified.
func Exclude[R any](rows []R, schema Schema[R], f Filter) []R {
	if f.IsEmpty() {
		return slices.Clone(rows)
	}
	out := make([]R, 0, len(rows))
	for _, r := range rows {
		if f.Admits(schema.Mode(r), schema.FattyAcids(r)...) {
			out = append(out, r)
		}
	}

	return out
}
