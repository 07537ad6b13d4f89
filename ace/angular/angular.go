// Package angular decodes the AND-block angular-distribution sub-tables
// referenced by a neutron transport reaction's LAND entry.
package angular

import (
	"fmt"

	"github.com/sohnishi/acexs/ace/token"
)

// Kind classifies how a single incident-energy angular distribution is
// stored, per the sign of its LOCB location value.
type Kind int

const (
	// Isotropic means the distribution is isotropic in the given frame;
	// LOCB == 0 and there is no further data to read.
	Isotropic Kind = iota
	// EquiprobableBins means the distribution is stored as 32 equiprobable
	// cosine bins (LOCB > 0). Decoding the bin boundaries is out of scope;
	// only the LOCB offset is recorded.
	EquiprobableBins
	// Tabulated means the distribution is stored as a (mu, pdf, cdf) table
	// (LOCB < 0).
	Tabulated
)

// Distribution is one incident-energy entry of an angular-distribution
// sub-table.
type Distribution struct {
	Energy        float64
	Kind          Kind
	Locator       int64 // the raw LOCB value this entry was decoded from
	Interpolation int64 // only meaningful for Tabulated
	AngularPoints []float64
	PDF           []float64
	CDF           []float64
}

// InvalidLocatorError is returned when a LAND/LOCB reference points outside
// the XSS payload.
type InvalidLocatorError struct {
	Locator int64
}

func (e *InvalidLocatorError) Error() string {
	return fmt.Sprintf("angular distribution locator %d is out of range", e.Locator)
}

// DecodeTable decodes the angular-distribution sub-table for one reaction,
// given the 1-based start of the AND block (JXS(9)) and that reaction's LOCB
// entry from the LAND block (a 1-based offset relative to the AND block
// start).
func DecodeTable(xss *token.Stream, andBlockPos, locb int64) ([]Distribution, error) {
	findex := andBlockPos + locb - 1
	numEpoints, err := xss.Int(int(findex))
	if err != nil {
		return nil, fmt.Errorf("reading angular sub-table energy count: %w", err)
	}

	angularEpoints, err := xss.FloatSlice(int(findex+1), int(numEpoints))
	if err != nil {
		return nil, fmt.Errorf("reading angular sub-table energies: %w", err)
	}
	locations, err := xss.IntSlice(int(findex+1+numEpoints), int(numEpoints))
	if err != nil {
		return nil, fmt.Errorf("reading angular sub-table locators: %w", err)
	}

	out := make([]Distribution, 0, numEpoints)
	for i := range angularEpoints {
		loc := locations[i]
		d := Distribution{Energy: angularEpoints[i], Locator: loc}

		switch {
		case loc == 0:
			d.Kind = Isotropic
		case loc > 0:
			d.Kind = EquiprobableBins
		default:
			d.Kind = Tabulated
			absLoc := loc
			if absLoc < 0 {
				absLoc = -absLoc
			}
			refPos := andBlockPos + absLoc - 1

			interp, err := xss.Int(int(refPos))
			if err != nil {
				return nil, &InvalidLocatorError{Locator: loc}
			}
			numApoints, err := xss.Int(int(refPos + 1))
			if err != nil {
				return nil, &InvalidLocatorError{Locator: loc}
			}
			apoints, err := xss.FloatSlice(int(refPos+2), int(numApoints))
			if err != nil {
				return nil, &InvalidLocatorError{Locator: loc}
			}
			pdf, err := xss.FloatSlice(int(refPos+2+numApoints), int(numApoints))
			if err != nil {
				return nil, &InvalidLocatorError{Locator: loc}
			}
			cdf, err := xss.FloatSlice(int(refPos+2+2*numApoints), int(numApoints))
			if err != nil {
				return nil, &InvalidLocatorError{Locator: loc}
			}

			d.Interpolation = interp
			d.AngularPoints = apoints
			d.PDF = pdf
			d.CDF = cdf
		}
		out = append(out, d)
	}
	return out, nil
}
