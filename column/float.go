// Package column provides the nullable cell type and the vectorised
// primitives the stages are built from: saturated-or-null masking, forward
// and backward fills, deltas, slopes, chain-length interpolation and the
// replicate statistics.
//
// Every primitive that looks at neighbouring rows operates on a single
// partition. Callers split rows into partitions (see Groups) and apply the
// primitive to each one, so values never leak across partitions.
package column

import (
	"cmp"
	"math"
	"strconv"

	"github.com/arloliu/fame/internal/hash"
)

// Float is a nullable float64 cell.
//
// A valid cell may still hold NaN when NaN is a meaningful value, as for the
// relative retention time without a reference. Use Finite to build cells whose
// contract requires a finite value.
type Float struct {
	Value float64
	Valid bool
}

// Some returns a valid cell holding v.
func Some(v float64) Float { return Float{Value: v, Valid: true} }

// Null returns an empty cell.
func Null() Float { return Float{} }

// Finite returns a valid cell when v is finite and a null cell otherwise.
func Finite(v float64) Float {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Float{}
	}

	return Some(v)
}

// Get returns the value and whether the cell is valid.
func (f Float) Get() (float64, bool) { return f.Value, f.Valid }

// Or returns the value, or def when the cell is null.
func (f Float) Or(def float64) float64 {
	if !f.Valid {
		return def
	}

	return f.Value
}

// Abs returns the absolute value, keeping nulls.
func (f Float) Abs() Float {
	if !f.Valid {
		return f
	}

	return Some(math.Abs(f.Value))
}

// Sub returns f - other as a finite cell.
func (f Float) Sub(other Float) Float {
	if !f.Valid || !other.Valid {
		return Null()
	}

	return Finite(f.Value - other.Value)
}

// Div returns f / other as a finite cell. Division by zero yields null.
func (f Float) Div(other Float) Float {
	if !f.Valid || !other.Valid {
		return Null()
	}

	return Finite(f.Value / other.Value)
}

// AppendHash feeds f into h. All null cells hash alike.
func (f Float) AppendHash(h *hash.Hasher) {
	if !f.Valid {
		h.Bool(false)
		return
	}
	h.Bool(true).Float64(f.Value)
}

func (f Float) String() string {
	if !f.Valid {
		return "null"
	}

	return strconv.FormatFloat(f.Value, 'g', -1, 64)
}

// Compare orders two cells with nulls after every valid value. Valid cells
// compare with cmp.Compare, so NaN sorts before all other numbers.
func Compare(a, b Float) int {
	switch {
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		return 1
	case !b.Valid:
		return -1
	default:
		return cmp.Compare(a.Value, b.Value)
	}
}

// CompareOrdered is like Compare but inverts valid values when descending.
// Nulls stay last in both directions.
func CompareOrdered(a, b Float, descending bool) int {
	if a.Valid && b.Valid && descending {
		return cmp.Compare(b.Value, a.Value)
	}

	return Compare(a, b)
}

// Floats converts plain values to valid cells.
func Floats(values ...float64) []Float {
	out := make([]Float, len(values))
	for i, v := range values {
		out[i] = Some(v)
	}

	return out
}
