// Package table holds the row shapes shared by the stages: the oven program
// Mode, the Measurement input row and the fingerprinted Frame wrapper.
package table

import (
	"cmp"
	"math"

	"github.com/arloliu/fame/internal/hash"
)

// Mode is an oven program: the onset temperature and the temperature step.
type Mode struct {
	OnsetTemperature float64 `yaml:"onset_temperature"`
	TemperatureStep  float64 `yaml:"temperature_step"`
}

// ModeKey is the bit-level identity of a Mode, usable as a map key.
// Equal modes always produce equal keys.
type ModeKey struct {
	OnsetTemperature uint64
	TemperatureStep  uint64
}

// Key returns the identity of m. Negative zero is folded into zero and every
// NaN into a single canonical NaN.
func (m Mode) Key() ModeKey {
	return ModeKey{
		OnsetTemperature: canonicalBits(m.OnsetTemperature),
		TemperatureStep:  canonicalBits(m.TemperatureStep),
	}
}

// Hash returns the xxHash64 of m's key.
func (m Mode) Hash() uint64 {
	k := m.Key()
	return hash.New().Uint64(k.OnsetTemperature).Uint64(k.TemperatureStep).Sum64()
}

// AppendHash feeds m into h.
func (m Mode) AppendHash(h *hash.Hasher) {
	k := m.Key()
	h.Uint64(k.OnsetTemperature).Uint64(k.TemperatureStep)
}

// CompareModes orders modes by onset temperature, then temperature step.
func CompareModes(a, b Mode) int {
	if c := cmp.Compare(a.OnsetTemperature, b.OnsetTemperature); c != 0 {
		return c
	}

	return cmp.Compare(a.TemperatureStep, b.TemperatureStep)
}

func canonicalBits(v float64) uint64 {
	switch {
	case v == 0:
		return 0
	case math.IsNaN(v):
		return math.Float64bits(math.NaN())
	default:
		return math.Float64bits(v)
	}
}
