package table

import (
	"cmp"
	"slices"

	"github.com/arloliu/fame/fattyacid"
	"github.com/arloliu/fame/internal/hash"
)

// Column names of the measurement schema.
const (
	ColumnMode          = "Mode"
	ColumnFattyAcid     = "FattyAcid"
	ColumnDeadTime      = "DeadTime"
	ColumnRetentionTime = "RetentionTime"
)

// Measurement is one raw input row: a fatty acid measured under a mode with
// one retention time per replicate.
type Measurement struct {
	Mode          Mode                `yaml:"mode"`
	FattyAcid     fattyacid.FattyAcid `yaml:"fatty_acid"`
	DeadTime      float64             `yaml:"dead_time"`
	RetentionTime []float64           `yaml:"retention_time"`
}

// AppendHash feeds every field of m into h. The fatty acid label is included
// because it is carried through to the stage outputs.
func (m Measurement) AppendHash(h *hash.Hasher) {
	m.Mode.AppendHash(h)
	m.FattyAcid.AppendHash(h)
	h.String(m.FattyAcid.Label)
	h.Float64(m.DeadTime)
	h.Float64s(m.RetentionTime)
}

// Stack concatenates measurement frames in order.
func Stack(frames ...Frame[Measurement]) Frame[Measurement] {
	var rows []Measurement
	for _, f := range frames {
		rows = append(rows, f.Rows...)
	}

	return NewFrame(rows)
}

// Merge is the full outer join of two measurement frames on every column but
// the dead time. Rows of a come first in their order, followed by the rows of
// b that have no match in a. A matched row keeps the first dead time seen and
// repeated rows appear once.
func Merge(a, b Frame[Measurement]) Frame[Measurement] {
	rows := make([]Measurement, 0, len(a.Rows)+len(b.Rows))
	seen := make(map[uint64][]int, len(a.Rows)+len(b.Rows))
	for _, m := range slices.Concat(a.Rows, b.Rows) {
		key := m.joinKey()
		if slices.ContainsFunc(seen[key], func(i int) bool { return rows[i].sameJoinKey(m) }) {
			continue
		}
		seen[key] = append(seen[key], len(rows))
		rows = append(rows, m)
	}

	return NewFrame(rows)
}

func (m Measurement) joinKey() uint64 {
	h := hash.New()
	m.Mode.AppendHash(h)
	m.FattyAcid.AppendHash(h)
	h.String(m.FattyAcid.Label)
	h.Float64s(m.RetentionTime)

	return h.Sum64()
}

func (m Measurement) sameJoinKey(other Measurement) bool {
	return m.Mode.Key() == other.Mode.Key() &&
		m.FattyAcid.Equal(other.FattyAcid) &&
		m.FattyAcid.Label == other.FattyAcid.Label &&
		slices.Equal(m.RetentionTime, other.RetentionTime)
}

// JoinDeadTimes returns a copy of rows where each dead time is replaced by the
// entry of deadTimes keyed by the row's onset temperature. Rows whose onset
// temperature has no entry keep their own dead time.
func JoinDeadTimes(rows []Measurement, deadTimes map[float64]float64) []Measurement {
	out := slices.Clone(rows)
	for i := range out {
		if t0, ok := deadTimes[out[i].Mode.OnsetTemperature]; ok {
			out[i].DeadTime = t0
		}
	}

	return out
}

// OnsetTemperatures returns the sorted distinct onset temperatures of rows.
func OnsetTemperatures(rows []Measurement) []float64 {
	return distinctFloats(rows, func(m Measurement) float64 { return m.Mode.OnsetTemperature })
}

// TemperatureSteps returns the sorted distinct temperature steps of rows.
func TemperatureSteps(rows []Measurement) []float64 {
	return distinctFloats(rows, func(m Measurement) float64 { return m.Mode.TemperatureStep })
}

// FattyAcids returns the distinct fatty acids of rows in Compare order. The
// first label seen for each fatty acid is kept.
func FattyAcids(rows []Measurement) []fattyacid.FattyAcid {
	out := make([]fattyacid.FattyAcid, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.FattyAcid)
	}

	return DistinctFattyAcids(out)
}

// DistinctFattyAcids sorts fas in Compare order and drops repeats, keeping
// the first label seen.
func DistinctFattyAcids(fas []fattyacid.FattyAcid) []fattyacid.FattyAcid {
	out := slices.Clone(fas)
	slices.SortStableFunc(out, fattyacid.Compare)

	return slices.CompactFunc(out, fattyacid.FattyAcid.Equal)
}

func distinctFloats[R any](rows []R, get func(R) float64) []float64 {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		out = append(out, get(r))
	}
	slices.SortFunc(out, cmp.Compare[float64])

	return slices.Compact(out)
}
