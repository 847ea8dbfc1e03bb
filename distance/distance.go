// Package distance implements the Distance stage, a self-join of the Source
// table that yields one row per unordered pair of fatty acids within a mode,
// and the shim that filters and orders its output.
package distance

import (
	"math"

	"github.com/arloliu/fame/column"
	"github.com/arloliu/fame/errs"
	"github.com/arloliu/fame/fattyacid"
	"github.com/arloliu/fame/source"
	"github.com/arloliu/fame/table"
)

// Field paths used in data errors.
const (
	FieldFrom = "FattyAcid/From"
	FieldTo   = "FattyAcid/To"
)

// Compute pairs every two rows of input that share a mode.
//
// Pairs are emitted by ascending left row index, then ascending right row
// index, with left < right. A mode with n rows contributes n*(n-1)/2 pairs.
// Metrics that are not finite, such as Alpha when tTo equals the dead time,
// become null.
func Compute(input table.Frame[source.Row]) (table.Frame[Row], error) {
	rows := input.Rows
	groups := column.Groups(len(rows), func(i int) uint64 { return rows[i].Mode.Hash() })

	// position[i] is the offset of row i inside its group.
	position := make([]int, len(rows))
	member := make([][]int, len(rows))
	total := 0
	for _, group := range groups {
		n := len(group)
		total += n * (n - 1) / 2
		for offset, i := range group {
			position[i] = offset
			member[i] = group
		}
	}

	out := make([]Row, 0, total)
	for left := range rows {
		group := member[left]
		for _, right := range group[position[left]+1:] {
			if rows[left].Mode.Key() != rows[right].Mode.Key() {
				continue
			}
			row, err := pair(rows[left], rows[right], len(out))
			if err != nil {
				return table.Frame[Row]{}, err
			}
			out = append(out, row)
		}
	}

	return table.NewFrame(out), nil
}

func pair(from, to source.Row, index int) (Row, error) {
	if err := from.FattyAcid.Validate(); err != nil {
		return Row{}, errs.NewDataError(index, FieldFrom, err)
	}
	if err := to.FattyAcid.Validate(); err != nil {
		return Row{}, errs.NewDataError(index, FieldTo, err)
	}

	rt := newSpan(from.RetentionTime.Absolute.Mean, to.RetentionTime.Absolute.Mean)
	ecl := newSpan(from.ChainLength.ECL, to.ChainLength.ECL)
	t0 := column.Some(from.DeadTime)

	return Row{
		Mode:                  from.Mode,
		DeadTime:              from.DeadTime,
		FattyAcid:             Pair{From: from.FattyAcid, To: to.FattyAcid},
		RetentionTime:         rt,
		EquivalentChainLength: ecl,
		Alpha:                 rt.From.Sub(t0).Div(rt.To.Sub(t0)),
		EuclideanDistance:     euclidean(rt.Delta, ecl.Delta),
	}, nil
}

func euclidean(dx, dy column.Float) column.Float {
	if !dx.Valid || !dy.Valid {
		return column.Null()
	}

	return column.Finite(math.Hypot(dx.Value, dy.Value))
}

// Unique returns the distinct fatty acids appearing at either end of rows,
// in fattyacid.Compare order.
func Unique(rows []Row) []fattyacid.FattyAcid {
	fas := make([]fattyacid.FattyAcid, 0, 2*len(rows))
	for _, r := range rows {
		fas = append(fas, r.FattyAcid.From, r.FattyAcid.To)
	}

	return table.DistinctFattyAcids(fas)
}
