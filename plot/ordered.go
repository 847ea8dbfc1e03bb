package plot

import (
	"cmp"
	"math"
)

// OrderedFloat is a float64 mapped onto a uint64 whose natural order matches
// the numeric order of the float. Unlike float64 it is usable as a map key:
// a NaN equals itself when the bit patterns are identical, and -0 differs
// from +0.
type OrderedFloat uint64

const signBit = 1 << 63

// NewOrderedFloat returns the ordinal of v.
func NewOrderedFloat(v float64) OrderedFloat {
	bits := math.Float64bits(v)
	if bits&signBit != 0 {
		return OrderedFloat(^bits)
	}

	return OrderedFloat(bits | signBit)
}

// Float64 returns the float the ordinal was built from.
func (o OrderedFloat) Float64() float64 {
	bits := uint64(o)
	if bits&signBit != 0 {
		return math.Float64frombits(bits &^ signBit)
	}

	return math.Float64frombits(^bits)
}

// Compare orders two ordinals.
func (o OrderedFloat) Compare(other OrderedFloat) int {
	return cmp.Compare(o, other)
}

// Point is a plotted coordinate.
type Point struct {
	X float64
	Y float64
}

// PointKey is the map key form of a Point.
type PointKey struct {
	X OrderedFloat
	Y OrderedFloat
}

// Key returns the map key of p.
func (p Point) Key() PointKey {
	return PointKey{X: NewOrderedFloat(p.X), Y: NewOrderedFloat(p.Y)}
}

// Point returns the coordinate k was built from.
func (k PointKey) Point() Point {
	return Point{X: k.X.Float64(), Y: k.Y.Float64()}
}

// ComparePointKeys orders keys by X, then Y.
func ComparePointKeys(a, b PointKey) int {
	if c := a.X.Compare(b.X); c != 0 {
		return c
	}

	return a.Y.Compare(b.Y)
}
