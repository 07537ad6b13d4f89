// Package fission decodes the fission-neutron-yield (NU) block and its
// delayed-neutron precursor family sub-blocks.
package fission

import (
	"fmt"

	"github.com/sohnishi/acexs/ace/token"
)

// Type distinguishes the two LNU encodings of a fission-neutron-yield block.
type Type int

const (
	// Unset means no NU data was present.
	Unset Type = iota
	// Polynomial is LNU=1: nu(E) given by a polynomial in E.
	Polynomial
	// Tabulated is LNU=2: nu(E) given by an (energy, nu) table.
	Tabulated
)

// InvalidLNUError is returned when a NU block's LNU discriminator is neither
// 1 nor 2.
type InvalidLNUError struct{ LNU int64 }

func (e *InvalidLNUError) Error() string {
	return fmt.Sprintf("invalid LNU type = %d", e.LNU)
}

// NeutronYield is a decoded fission-neutron-yield block: either a polynomial
// (Type == Polynomial, Coefficients populated) or a tabulated yield curve
// (Type == Tabulated, the NBT/INT/Energies/Yields fields populated).
type NeutronYield struct {
	Type Type

	// Polynomial (LNU=1) fields.
	Coefficients []float64

	// Tabulated (LNU=2) fields.
	NBT     []float64
	INT     []float64
	Energies []float64
	Yields   []float64
}

// Decode reads a fission-neutron-yield block from xss starting at the
// 1-based position index.
func Decode(xss *token.Stream, index int) (*NeutronYield, error) {
	lnu, err := xss.Int(index)
	if err != nil {
		return nil, fmt.Errorf("reading LNU: %w", err)
	}

	switch lnu {
	case 1:
		nc, err := xss.Int(index + 1)
		if err != nil {
			return nil, fmt.Errorf("reading NC: %w", err)
		}
		coeffs, err := xss.FloatSlice(index+2, int(nc))
		if err != nil {
			return nil, fmt.Errorf("reading polynomial coefficients: %w", err)
		}
		return &NeutronYield{Type: Polynomial, Coefficients: coeffs}, nil
	case 2:
		nr, err := xss.Int(index + 1)
		if err != nil {
			return nil, fmt.Errorf("reading NR: %w", err)
		}
		nbt, err := xss.FloatSlice(index+2, int(nr))
		if err != nil {
			return nil, fmt.Errorf("reading NBT: %w", err)
		}
		intr, err := xss.FloatSlice(index+2+int(nr), int(nr))
		if err != nil {
			return nil, fmt.Errorf("reading INT: %w", err)
		}
		ne, err := xss.Int(index + 2 + 2*int(nr))
		if err != nil {
			return nil, fmt.Errorf("reading NE: %w", err)
		}
		energies, err := xss.FloatSlice(index+2+2*int(nr)+1, int(ne))
		if err != nil {
			return nil, fmt.Errorf("reading yield energies: %w", err)
		}
		yields, err := xss.FloatSlice(index+2+2*int(nr)+1+int(ne), int(ne))
		if err != nil {
			return nil, fmt.Errorf("reading yield values: %w", err)
		}
		return &NeutronYield{Type: Tabulated, NBT: nbt, INT: intr, Energies: energies, Yields: yields}, nil
	default:
		return nil, &InvalidLNUError{LNU: lnu}
	}
}

// Precursor is one delayed-neutron precursor family: a decay constant and a
// tabulated emission-probability curve.
type Precursor struct {
	DecayConstant float64
	NBT           []float64
	INT           []float64
	Energies      []float64
	Probabilities []float64
}

// DecodePrecursor reads one precursor family block from xss starting at the
// 1-based position index.
func DecodePrecursor(xss *token.Stream, index int) (*Precursor, error) {
	decay, err := xss.Float(index)
	if err != nil {
		return nil, fmt.Errorf("reading decay constant: %w", err)
	}
	nr, err := xss.Int(index + 1)
	if err != nil {
		return nil, fmt.Errorf("reading NR: %w", err)
	}
	nbt, err := xss.FloatSlice(index+2, int(nr))
	if err != nil {
		return nil, fmt.Errorf("reading NBT: %w", err)
	}
	intr, err := xss.FloatSlice(index+2+int(nr), int(nr))
	if err != nil {
		return nil, fmt.Errorf("reading INT: %w", err)
	}
	ne, err := xss.Int(index + 2 + 2*int(nr))
	if err != nil {
		return nil, fmt.Errorf("reading NE: %w", err)
	}
	energies, err := xss.FloatSlice(index+2+2*int(nr)+1, int(ne))
	if err != nil {
		return nil, fmt.Errorf("reading precursor energies: %w", err)
	}
	probs, err := xss.FloatSlice(index+2+2*int(nr)+1+int(ne), int(ne))
	if err != nil {
		return nil, fmt.Errorf("reading precursor probabilities: %w", err)
	}
	return &Precursor{DecayConstant: decay, NBT: nbt, INT: intr, Energies: energies, Probabilities: probs}, nil
}

// DecodePrecursorFamilies reads count consecutive precursor blocks, each
// starting where the previous one ended.
func DecodePrecursorFamilies(xss *token.Stream, index, count int) ([]*Precursor, error) {
	out := make([]*Precursor, 0, count)
	pos := index
	for i := 0; i < count; i++ {
		p, err := DecodePrecursor(xss, pos)
		if err != nil {
			return nil, fmt.Errorf("precursor family %d: %w", i, err)
		}
		out = append(out, p)
		nr := len(p.NBT)
		ne := len(p.Energies)
		pos += 2 + 2*nr + 1 + 2*ne
	}
	return out, nil
}
