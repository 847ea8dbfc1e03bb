package column

import "math"

// SaturatedOrNull keeps values[i] where saturated[i] holds and nulls the rest.
func SaturatedOrNull(values []Float, saturated []bool) []Float {
	out := make([]Float, len(values))
	for i, v := range values {
		if saturated[i] {
			out[i] = v
		}
	}

	return out
}

// ForwardFill replaces each null with the closest preceding valid value.
// Leading nulls stay null.
func ForwardFill(values []Float) []Float {
	out := make([]Float, len(values))
	last := Null()
	for i, v := range values {
		if v.Valid {
			last = v
		}
		out[i] = last
	}

	return out
}

// BackwardFill replaces each null with the closest following valid value.
// Trailing nulls stay null.
func BackwardFill(values []Float) []Float {
	out := make([]Float, len(values))
	next := Null()
	for i := len(values) - 1; i >= 0; i-- {
		if values[i].Valid {
			next = values[i]
		}
		out[i] = next
	}

	return out
}

// Bracket holds, for one row, the closest saturated reference value at or
// before the row (Forward) and at or after the row (Backward).
type Bracket struct {
	Forward  []Float
	Backward []Float
}

// NewBracket masks values to saturated rows and fills in both directions.
func NewBracket(values []Float, saturated []bool) Bracket {
	masked := SaturatedOrNull(values, saturated)

	return Bracket{
		Forward:  ForwardFill(masked),
		Backward: BackwardFill(masked),
	}
}

// Delta returns Backward - Forward for every row. Saturated rows get zero.
func (b Bracket) Delta() []Float {
	out := make([]Float, len(b.Forward))
	for i := range out {
		out[i] = b.Backward[i].Sub(b.Forward[i])
	}

	return out
}

// Slope divides the delta of num by the delta of den row by row. Rows where
// the denominator delta is zero, such as saturated rows, become null.
func Slope(num, den Bracket) []Float {
	dn, dd := num.Delta(), den.Delta()
	out := make([]Float, len(dn))
	for i := range out {
		out[i] = dn[i].Div(dd[i])
	}

	return out
}

// Degrees converts a slope to an angle in degrees.
func Degrees(slope Float) Float {
	if !slope.Valid {
		return slope
	}

	return Finite(math.Atan(slope.Value) * 180 / math.Pi)
}
