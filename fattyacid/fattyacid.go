// Package fattyacid models fatty acids as measured by gas chromatography of
// their methyl esters (FAME).
//
// A FattyAcid is identified by its carbon count and the ordered positions and
// kinds of its unsaturated bonds. The label is descriptive only and never part
// of identity.
//
// # Notation
//
// FattyAcid.String renders and Parse reads the common shorthand:
//
//	C16:0          palmitic acid
//	C18:1Δ9c       oleic acid
//	C18:2Δ9c,12c   linoleic acid
//	C18:1Δ9t       elaidic acid
//	C18:1Δ9a       stearolic acid (triple bond)
//
// A bond position without suffix is a double bond of unspecified geometry.
package fattyacid

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/arloliu/fame/errs"
	"github.com/arloliu/fame/internal/hash"
)

// Bond kinds stored in DoubleBondKinds.
const (
	Double int8 = 1 // Double is a double bond of unspecified geometry.
	Cis    int8 = 2 // Cis is a cis double bond.
	Trans  int8 = 3 // Trans is a trans double bond.
	Triple int8 = 4 // Triple is a triple bond; it counts as two unsaturations.
)

// FattyAcid describes a single fatty acid.
type FattyAcid struct {
	// Carbons is the chain length.
	Carbons uint8 `yaml:"carbons"`
	// DoubleBondIndices holds the 1-based positions of the unsaturated bonds.
	DoubleBondIndices []uint8 `yaml:"indices,omitempty"`
	// DoubleBondKinds holds one kind per entry of DoubleBondIndices.
	DoubleBondKinds []int8 `yaml:"kinds,omitempty"`
	// Label is a free-form display name, e.g. "Oleic".
	Label string `yaml:"label,omitempty"`
}

// New returns a saturated fatty acid with the given chain length.
func New(carbons uint8) FattyAcid {
	return FattyAcid{Carbons: carbons}
}

// WithBond returns a copy of fa with an extra unsaturated bond appended.
func (fa FattyAcid) WithBond(index uint8, kind int8) FattyAcid {
	fa.DoubleBondIndices = append(slices.Clone(fa.DoubleBondIndices), index)
	fa.DoubleBondKinds = append(slices.Clone(fa.DoubleBondKinds), kind)

	return fa
}

// WithLabel returns a copy of fa with the given label.
func (fa FattyAcid) WithLabel(label string) FattyAcid {
	fa.Label = label
	return fa
}

// Validate checks the structural invariants: one kind per index, every index
// within [1, Carbons] and every kind known.
func (fa FattyAcid) Validate() error {
	if len(fa.DoubleBondIndices) != len(fa.DoubleBondKinds) {
		return fmt.Errorf("%w: %d bond indices, %d bond kinds",
			errs.ErrInvalidFattyAcid, len(fa.DoubleBondIndices), len(fa.DoubleBondKinds))
	}
	for _, index := range fa.DoubleBondIndices {
		if index < 1 || index > fa.Carbons {
			return fmt.Errorf("%w: bond index %d outside [1, %d]", errs.ErrInvalidFattyAcid, index, fa.Carbons)
		}
	}
	for _, kind := range fa.DoubleBondKinds {
		if kind < Double || kind > Triple {
			return fmt.Errorf("%w: unknown bond kind %d", errs.ErrInvalidFattyAcid, kind)
		}
	}

	return nil
}

// IsSaturated reports whether fa has no unsaturated bonds.
func (fa FattyAcid) IsSaturated() bool {
	return len(fa.DoubleBondIndices) == 0 && len(fa.DoubleBondKinds) == 0
}

// Unsaturation returns the number of unsaturations; a triple bond counts twice.
func (fa FattyAcid) Unsaturation() int {
	n := 0
	for _, kind := range fa.DoubleBondKinds {
		if kind == Triple {
			n += 2
		} else {
			n++
		}
	}

	return n
}

// ECN returns the equivalent carbon number: carbons minus two per unsaturation.
func (fa FattyAcid) ECN() int {
	return int(fa.Carbons) - 2*fa.Unsaturation()
}

// Equal reports identity by (Carbons, DoubleBondIndices, DoubleBondKinds).
// Labels are ignored.
func (fa FattyAcid) Equal(other FattyAcid) bool {
	return fa.Carbons == other.Carbons &&
		slices.Equal(fa.DoubleBondIndices, other.DoubleBondIndices) &&
		slices.Equal(fa.DoubleBondKinds, other.DoubleBondKinds)
}

// Compare orders fatty acids by carbons, then number of unsaturated bonds,
// then bond indices, then bond kinds, comparing sequences lexicographically.
// It returns 0 exactly when Equal does.
func Compare(a, b FattyAcid) int {
	if c := cmp.Compare(a.Carbons, b.Carbons); c != 0 {
		return c
	}
	if c := cmp.Compare(len(a.DoubleBondIndices), len(b.DoubleBondIndices)); c != 0 {
		return c
	}
	if c := slices.Compare(a.DoubleBondIndices, b.DoubleBondIndices); c != 0 {
		return c
	}

	return slices.Compare(a.DoubleBondKinds, b.DoubleBondKinds)
}

// AppendHash feeds the identity of fa into h. The label is not hashed.
func (fa FattyAcid) AppendHash(h *hash.Hasher) {
	h.Byte(fa.Carbons)
	h.Int(len(fa.DoubleBondIndices))
	for _, index := range fa.DoubleBondIndices {
		h.Byte(index)
	}
	h.Int(len(fa.DoubleBondKinds))
	for _, kind := range fa.DoubleBondKinds {
		h.Byte(byte(kind))
	}
}

// String renders fa in the C18:2Δ9c,12c notation.
func (fa FattyAcid) String() string {
	var sb strings.Builder
	sb.WriteByte('C')
	sb.WriteString(strconv.Itoa(int(fa.Carbons)))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(len(fa.DoubleBondIndices)))
	for i, index := range fa.DoubleBondIndices {
		if i == 0 {
			sb.WriteString("Δ")
		} else {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(index)))
		if i < len(fa.DoubleBondKinds) {
			sb.WriteString(kindSuffix(fa.DoubleBondKinds[i]))
		}
	}

	return sb.String()
}

func kindSuffix(kind int8) string {
	switch kind {
	case Cis:
		return "c"
	case Trans:
		return "t"
	case Triple:
		return "a"
	default:
		return ""
	}
}

// Parse reads the notation produced by String. The leading "C" is optional.
func Parse(s string) (FattyAcid, error) {
	text := strings.TrimPrefix(strings.TrimSpace(s), "C")
	head, bonds, hasBonds := strings.Cut(text, "Δ")
	carbonsText, countText, ok := strings.Cut(head, ":")
	if !ok {
		return FattyAcid{}, fmt.Errorf("%w: %q: missing ':'", errs.ErrInvalidFattyAcid, s)
	}
	carbons, err := strconv.ParseUint(carbonsText, 10, 8)
	if err != nil {
		return FattyAcid{}, fmt.Errorf("%w: %q: carbons: %v", errs.ErrInvalidFattyAcid, s, err)
	}
	count, err := strconv.Atoi(countText)
	if err != nil {
		return FattyAcid{}, fmt.Errorf("%w: %q: bond count: %v", errs.ErrInvalidFattyAcid, s, err)
	}

	fa := New(uint8(carbons))
	if hasBonds {
		for _, bond := range strings.Split(bonds, ",") {
			kind := Double
			digits := bond
			switch {
			case strings.HasSuffix(bond, "c"):
				kind = Cis
			case strings.HasSuffix(bond, "t"):
				kind = Trans
			case strings.HasSuffix(bond, "a"):
				kind = Triple
			}
			if kind != Double {
				digits = bond[:len(bond)-1]
			}
			index, err := strconv.ParseUint(digits, 10, 8)
			if err != nil {
				return FattyAcid{}, fmt.Errorf("%w: %q: bond %q: %v", errs.ErrInvalidFattyAcid, s, bond, err)
			}
			fa.DoubleBondIndices = append(fa.DoubleBondIndices, uint8(index))
			fa.DoubleBondKinds = append(fa.DoubleBondKinds, kind)
		}
	}
	if count != len(fa.DoubleBondIndices) {
		return FattyAcid{}, fmt.Errorf("%w: %q: declares %d bonds, lists %d",
			errs.ErrInvalidFattyAcid, s, count, len(fa.DoubleBondIndices))
	}
	if err := fa.Validate(); err != nil {
		return FattyAcid{}, err
	}

	return fa, nil
}

// MustParse is like Parse but panics on error. Intended for tests and literals.
func MustParse(s string) FattyAcid {
	fa, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return fa
}

// UnmarshalText implements encoding.TextUnmarshaler so configuration files can
// write fatty acids in notation form.
func (fa *FattyAcid) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*fa = parsed

	return nil
}

// Contains reports whether set holds a fatty acid equal to fa.
func Contains(set []FattyAcid, fa FattyAcid) bool {
	return slices.ContainsFunc(set, fa.Equal)
}
