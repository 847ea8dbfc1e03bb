package fattyacid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/fame/errs"
	"github.com/arloliu/fame/internal/hash"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    FattyAcid
		wantErr bool
	}{
		{name: "saturated", input: "C16:0", want: New(16)},
		{name: "without prefix", input: "18:0", want: New(18)},
		{name: "oleic", input: "C18:1Δ9c", want: New(18).WithBond(9, Cis)},
		{name: "linoleic", input: "C18:2Δ9c,12c", want: New(18).WithBond(9, Cis).WithBond(12, Cis)},
		{name: "elaidic", input: "C18:1Δ9t", want: New(18).WithBond(9, Trans)},
		{name: "unspecified", input: "C20:1Δ11", want: New(20).WithBond(11, Double)},
		{name: "triple", input: "C18:1Δ9a", want: New(18).WithBond(9, Triple)},
		{name: "count mismatch", input: "C18:2Δ9c", wantErr: true},
		{name: "index out of range", input: "C4:1Δ9c", wantErr: true},
		{name: "missing colon", input: "C18", wantErr: true},
		{name: "garbage", input: "Cxx:0", wantErr: true},
		{name: "two suffixes", input: "C18:1Δ9ct", wantErr: true},
		{name: "repeated suffix", input: "C18:1Δ9cc", wantErr: true},
		{name: "suffix only", input: "C18:1Δc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, errs.ErrInvalidFattyAcid))

				return
			}
			require.NoError(t, err)
			require.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestString_RoundTrip(t *testing.T) {
	for _, s := range []string{"C16:0", "C18:1Δ9c", "C18:2Δ9c,12c", "C18:1Δ9t", "C20:1Δ11", "C22:1Δ13a"} {
		fa := MustParse(s)
		require.Equal(t, s, fa.String())
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, New(18).WithBond(9, Cis).Validate())

	mismatched := FattyAcid{Carbons: 18, DoubleBondIndices: []uint8{9}}
	require.ErrorIs(t, mismatched.Validate(), errs.ErrInvalidFattyAcid)

	zero := New(18).WithBond(0, Cis)
	require.ErrorIs(t, zero.Validate(), errs.ErrInvalidFattyAcid)

	unknown := New(18).WithBond(9, 7)
	require.ErrorIs(t, unknown.Validate(), errs.ErrInvalidFattyAcid)
}

func TestEqual_IgnoresLabel(t *testing.T) {
	a := MustParse("C18:1Δ9c").WithLabel("Oleic")
	b := MustParse("C18:1Δ9c")
	c := MustParse("C18:1Δ9t").WithLabel("Oleic")

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.Zero(t, Compare(a, b))
	require.True(t, Contains([]FattyAcid{c, b}, a))
	require.False(t, Contains([]FattyAcid{c}, a))

	ha, hb := hash.New(), hash.New()
	a.AppendHash(ha)
	b.AppendHash(hb)
	require.Equal(t, ha.Sum64(), hb.Sum64())
}

func TestCompare(t *testing.T) {
	ordered := []FattyAcid{
		MustParse("C16:0"),
		MustParse("C18:0"),
		MustParse("C18:1Δ9c"),
		MustParse("C18:1Δ9t"),
		MustParse("C18:1Δ9a"),
		MustParse("C18:1Δ11c"),
		MustParse("C18:2Δ9c,12c"),
		MustParse("C18:2Δ9c,12t"),
		MustParse("C18:3Δ6c,9c,12c"),
		MustParse("C20:0"),
	}
	for i := 1; i < len(ordered); i++ {
		assert.Negative(t, Compare(ordered[i-1], ordered[i]), "%s < %s", ordered[i-1], ordered[i])
		assert.Positive(t, Compare(ordered[i], ordered[i-1]))
	}
	for i, a := range ordered {
		for j, b := range ordered {
			assert.Equal(t, i == j, Compare(a, b) == 0, "%s vs %s", a, b)
			assert.Equal(t, a.Equal(b), Compare(a, b) == 0)
		}
	}
}

func TestSaturation(t *testing.T) {
	require.True(t, MustParse("C16:0").IsSaturated())
	require.False(t, MustParse("C18:1Δ9c").IsSaturated())

	require.Equal(t, 0, MustParse("C16:0").Unsaturation())
	require.Equal(t, 2, MustParse("C18:2Δ9c,12c").Unsaturation())
	require.Equal(t, 2, MustParse("C18:1Δ9a").Unsaturation())
}

func TestECN(t *testing.T) {
	require.Equal(t, 16, MustParse("C16:0").ECN())
	require.Equal(t, 16, MustParse("C18:1Δ9c").ECN())
	require.Equal(t, 12, MustParse("C18:3Δ9c,12c,15c").ECN())
	require.Equal(t, 14, MustParse("C18:1Δ9a").ECN())

	// Carbons minus two per unsaturation; a triple bond is two unsaturations.
	require.Equal(t, 14, MustParse("C18:2Δ9c,12c").ECN())
	require.Equal(t, 12, MustParse("C18:2Δ9a,12c").ECN())
	require.Equal(t, 10, MustParse("C18:2Δ9a,12a").ECN())
}

func TestMass(t *testing.T) {
	palmitic := MustParse("C16:0")
	oleic := MustParse("C18:1Δ9c")

	// C16H32O2
	require.InDelta(t, 256.2402, palmitic.Mass(RCOOH), 1e-4)
	// C17H34O2
	require.InDelta(t, 270.2559, palmitic.Mass(RCOOCH3), 1e-4)
	// C16H31O2-
	require.InDelta(t, 255.2330, palmitic.Mass(RCOO), 1e-4)
	// C16H31O+
	require.InDelta(t, 239.2369, palmitic.Mass(RCO), 1e-4)
	// C18H34O2
	require.InDelta(t, 282.2559, oleic.Mass(RCOOH), 1e-4)

	require.InDelta(t, MassC+2*MassH, palmitic.Mass(RCOOCH3)-palmitic.Mass(RCOOH), 1e-9)
}

func TestMassKind_Text(t *testing.T) {
	var k MassKind
	require.NoError(t, k.UnmarshalText([]byte("rcooch3")))
	require.Equal(t, RCOOCH3, k)

	text, err := RCO.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "RCO", string(text))

	require.Error(t, k.UnmarshalText([]byte("RCOOOH")))
}

func TestUnmarshalText(t *testing.T) {
	var fa FattyAcid
	require.NoError(t, fa.UnmarshalText([]byte("C18:2Δ9c,12c")))
	require.Equal(t, 2, len(fa.DoubleBondIndices))
	require.Error(t, fa.UnmarshalText([]byte("nope")))
}
