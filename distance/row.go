package distance

import (
	"github.com/arloliu/fame/column"
	"github.com/arloliu/fame/fattyacid"
	"github.com/arloliu/fame/internal/hash"
	"github.com/arloliu/fame/table"
)

// Row is one ordered pair of fatty acids measured under the same mode.
type Row struct {
	Mode                  table.Mode
	DeadTime              float64
	FattyAcid             Pair
	RetentionTime         Span
	EquivalentChainLength Span
	// Alpha is the separation factor (tFrom - t0) / (tTo - t0).
	Alpha             column.Float
	EuclideanDistance column.Float
}

// Pair holds the two fatty acids of a row.
type Pair struct {
	From fattyacid.FattyAcid
	To   fattyacid.FattyAcid
}

// Span holds a value at both ends of a pair and its difference To - From.
type Span struct {
	From  column.Float
	To    column.Float
	Delta column.Float
}

func newSpan(from, to column.Float) Span {
	return Span{From: from, To: to, Delta: to.Sub(from)}
}

// AppendHash feeds every field of r into h.
func (r Row) AppendHash(h *hash.Hasher) {
	r.Mode.AppendHash(h)
	h.Float64(r.DeadTime)
	r.FattyAcid.From.AppendHash(h)
	h.String(r.FattyAcid.From.Label)
	r.FattyAcid.To.AppendHash(h)
	h.String(r.FattyAcid.To.Label)
	for _, s := range []Span{r.RetentionTime, r.EquivalentChainLength} {
		s.From.AppendHash(h)
		s.To.AppendHash(h)
		s.Delta.AppendHash(h)
	}
	r.Alpha.AppendHash(h)
	r.EuclideanDistance.AppendHash(h)
}
