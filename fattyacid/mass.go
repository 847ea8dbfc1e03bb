package fattyacid

import (
	"fmt"
	"strings"
)

// Monoisotopic masses in daltons.
const (
	MassC        = 12.0
	MassH        = 1.00782503223
	MassO        = 15.99491461957
	MassElectron = 0.00054857990946
)

// MassKind selects the ionic or neutral form of a fatty acid.
type MassKind uint8

const (
	RCO     MassKind = iota + 1 // RCO is the acylium ion [RCO]+.
	RCOO                        // RCOO is the carboxylate anion [RCOO]-.
	RCOOH                       // RCOOH is the neutral free acid.
	RCOOCH3                     // RCOOCH3 is the neutral methyl ester.
)

func (k MassKind) String() string {
	switch k {
	case RCO:
		return "RCO"
	case RCOO:
		return "RCOO"
	case RCOOH:
		return "RCOOH"
	case RCOOCH3:
		return "RCOOCH3"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k MassKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *MassKind) UnmarshalText(text []byte) error {
	for _, kind := range []MassKind{RCO, RCOO, RCOOH, RCOOCH3} {
		if strings.EqualFold(kind.String(), string(text)) {
			*k = kind
			return nil
		}
	}

	return fmt.Errorf("unknown mass kind %q", text)
}

// Mass returns the monoisotopic mass of fa in the requested form.
//
// The free acid is CnH(2n-2u)O2 where u is the unsaturation. The methyl ester
// adds CH2. The carboxylate loses a proton and keeps its electron; the acylium
// loses a hydroxyl and an electron.
func (fa FattyAcid) Mass(kind MassKind) float64 {
	c := float64(fa.Carbons)
	h := 2*c - 2*float64(fa.Unsaturation())
	switch kind {
	case RCO:
		return c*MassC + (h-1)*MassH + MassO - MassElectron
	case RCOO:
		return c*MassC + (h-1)*MassH + 2*MassO + MassElectron
	case RCOOCH3:
		return (c+1)*MassC + (h+2)*MassH + 2*MassO
	default:
		return c*MassC + h*MassH + 2*MassO
	}
}
