package column

import "math"

// ECL interpolates the equivalent chain length of every row in one partition.
//
// times holds the retention times and carbons the chain lengths, both in
// partition order, and saturated marks the reference rows. A saturated row has
// an ECL equal to its chain length. Every other row is placed between the
// closest saturated references before and after it:
//
//	ECL = Cp + (Cn - Cp) * (f(t) - f(tp)) / (f(tn) - f(tp))
//
// where f is the identity, or the natural logarithm when logarithmic is set.
// Rows without a reference on both sides get null.
func ECL(times []Float, carbons []float64, saturated []bool, logarithmic bool) []Float {
	transform := func(v Float) Float { return v }
	if logarithmic {
		transform = func(v Float) Float {
			if !v.Valid {
				return v
			}

			return Finite(math.Log(v.Value))
		}
	}

	chains := Floats(carbons...)
	t := make([]Float, len(times))
	for i, v := range times {
		t[i] = transform(v)
	}
	// References need a usable time as well as a saturated chain.
	refs := make([]bool, len(times))
	for i := range refs {
		refs[i] = saturated[i] && t[i].Valid
	}
	rt := NewBracket(t, refs)
	chain := NewBracket(chains, refs)

	out := make([]Float, len(times))
	for i := range out {
		if saturated[i] {
			out[i] = chains[i]
			continue
		}
		span := rt.Backward[i].Sub(rt.Forward[i])
		offset := t[i].Sub(rt.Forward[i])
		step := chain.Backward[i].Sub(chain.Forward[i])
		if !span.Valid || !offset.Valid || !step.Valid || !chain.Forward[i].Valid {
			continue
		}
		out[i] = Finite(chain.Forward[i].Value + step.Value*offset.Value/span.Value)
	}

	return out
}

// FCL returns the fractional chain length ECL - carbons for every row.
func FCL(ecl []Float, carbons []float64) []Float {
	out := make([]Float, len(ecl))
	for i, v := range ecl {
		out[i] = v.Sub(Some(carbons[i]))
	}

	return out
}
