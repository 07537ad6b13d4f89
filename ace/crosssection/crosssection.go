// Package crosssection implements the (energy, cross-section) table model:
// construction with a monotonicity invariant, log-linear interpolated
// lookup, and the two-column textual dump format used for golden-file
// comparisons.
package crosssection

import (
	"fmt"
	"io"
	"math"

	"github.com/sohnishi/acexs/ace/angular"
	"github.com/sohnishi/acexs/internal/numeric"
	"github.com/sohnishi/acexs/reaction"
)

// NonMonotonicEnergyError is returned when the energy grid passed to New is
// not strictly ascending.
type NonMonotonicEnergyError struct{}

func (e *NonMonotonicEnergyError) Error() string { return "energy points are not ascendant" }

// EnergyOutOfRangeError is returned by At when the query energy falls
// outside [energyPoints[0], energyPoints[len-1]).
type EnergyOutOfRangeError struct {
	E, Min, Max float64
}

func (e *EnergyOutOfRangeError) Error() string {
	return fmt.Sprintf("energy %g is out of xs table range [%g, %g)", e.E, e.Min, e.Max)
}

// CrossSection is an immutable (after construction) reaction cross-section
// table, carrying the metadata needed to reconstruct it in context (release
// multiplicity, Q value, master-grid offset, angular-distribution flag).
type CrossSection struct {
	energyPoints []float64
	xsValues     []float64
	reaction     reaction.Reaction
	releaseN     int32
	qValue       float64
	energyOffset int64
	angularFlag  int32
	angularDists []angular.Distribution
}

// New constructs a CrossSection, validating that energyPoints is strictly
// ascending and that it has the same length as xsValues.
func New(energyPoints, xsValues []float64, react reaction.Reaction, releaseN int32, qValue float64, energyOffset int64, angularFlag int32) (*CrossSection, error) {
	if len(energyPoints) != len(xsValues) {
		return nil, fmt.Errorf("energy_points has %d entries, xs_values has %d", len(energyPoints), len(xsValues))
	}
	if !numeric.StrictlyAscending(energyPoints) {
		return nil, &NonMonotonicEnergyError{}
	}
	return &CrossSection{
		energyPoints: energyPoints,
		xsValues:     xsValues,
		reaction:     react,
		releaseN:     releaseN,
		qValue:       qValue,
		energyOffset: energyOffset,
		angularFlag:  angularFlag,
	}, nil
}

func (c *CrossSection) EnergyPoints() []float64         { return c.energyPoints }
func (c *CrossSection) XSValues() []float64             { return c.xsValues }
func (c *CrossSection) Reaction() reaction.Reaction      { return c.reaction }
func (c *CrossSection) ReleaseN() int32                  { return c.releaseN }
func (c *CrossSection) QValue() float64                  { return c.qValue }
func (c *CrossSection) EnergyOffset() int64              { return c.energyOffset }
func (c *CrossSection) AngularFlag() int32               { return c.angularFlag }
func (c *CrossSection) AngularDists() []angular.Distribution { return c.angularDists }

// SetAngularDists performs the late-binding assignment of the AND-block
// decode result onto an already-constructed CrossSection (spec: the angular
// flag/dists are the one field allowed to be set after construction).
func (c *CrossSection) SetAngularDists(flag int32, dists []angular.Distribution) {
	c.angularFlag = flag
	c.angularDists = dists
}

// At returns the cross section at energy, linearly interpolating the weight
// in energy and log-interpolating the value: w = (energy-e0)/(e1-e0),
// result = x0^(1-w) * x1^w.
//
// If the table has no energy points, At returns 0 (unread reaction). If
// energy is below the first grid point or at/above the last, At fails with
// *EnergyOutOfRangeError.
func (c *CrossSection) At(energy float64) (float64, error) {
	if len(c.energyPoints) == 0 {
		return 0, nil
	}
	first, last := c.energyPoints[0], c.energyPoints[len(c.energyPoints)-1]
	if energy < first || energy >= last {
		return 0, &EnergyOutOfRangeError{E: energy, Min: first, Max: last}
	}

	i := numeric.UpperBoundIndex(c.energyPoints, energy)
	// energyPoints[i-1] <= energy < energyPoints[i]
	e0, e1 := c.energyPoints[i-1], c.energyPoints[i]
	x0, x1 := c.xsValues[i-1], c.xsValues[i]
	if energy == e0 {
		return x0, nil
	}
	w := (energy - e0) / (e1 - e0)
	return math.Pow(x0, 1-w) * math.Pow(x1, w), nil
}

// Dump writes the CrossSection's metadata header and two-column energy/value
// table. Field widths (14/16) and precisions (7/8 significant digits,
// scientific notation) are an external contract relied on by golden-file
// tests and must not change.
func (c *CrossSection) Dump(w io.Writer) error {
	if len(c.energyPoints) != len(c.xsValues) {
		return fmt.Errorf("energy_points/xs_values length mismatch")
	}
	if _, err := fmt.Fprintf(w, "#! MT=%d\n", int(c.reaction)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "#! Q=%g\n", c.qValue); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "#! offset=%d\n", c.energyOffset); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "#! angular_dist_flag=%d\n", c.angularFlag); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# %s\n", reaction.Description(c.reaction)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# Energy        Value\n"); err != nil {
		return err
	}
	for i := range c.energyPoints {
		e := formatSci(c.energyPoints[i], 7)
		v := formatSci(c.xsValues[i], 8)
		if _, err := fmt.Fprintf(w, "%-14s%16s\n", e, v); err != nil {
			return err
		}
	}
	return nil
}

// DumpAngular writes the per-energy angular-distribution sub-tables for
// reactions with AngularFlag() != 0, one "Energy angular_point pdf cdf"
// block per incident energy, matching the original C++ implementation's
// *.angle.dat sibling-file layout (an in-scope supplement, see SPEC_FULL.md).
func (c *CrossSection) DumpAngular(w io.Writer) error {
	if c.angularFlag == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "# Energy  angular_point   pdf   cdf\n"); err != nil {
		return err
	}
	for _, d := range c.angularDists {
		for j := range d.AngularPoints {
			if _, err := fmt.Fprintf(w, "%-13s%12s%14s%14s\n",
				formatSci(d.Energy, 5),
				formatSci(d.AngularPoints[j], 5),
				formatSci(d.PDF[j], 7),
				formatSci(d.CDF[j], 7),
			); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// formatSci renders v in scientific notation with decimals digits after the
// decimal point, matching C++ iostream's
// std::scientific/std::setprecision(decimals) output exactly.
func formatSci(v float64, decimals int) string {
	return fmt.Sprintf("%.*E", decimals, v)
}
