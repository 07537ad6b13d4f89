// Package photoatomic decodes the continuous-energy photoatomic
// sub-format: the log-stored ESZG energy/incoherent/coherent/photoelectric/
// pair-production block, the JINC/JCOH scattering-function grids, the JFLO
// fluorescence data, the LHNM heating numbers, and the per-shell electron
// count/binding-energy/interaction-probability/Compton-profile blocks.
package photoatomic

import (
	"fmt"
	"math"

	"github.com/sohnishi/acexs/ace/crosssection"
	"github.com/sohnishi/acexs/ace/token"
	"github.com/sohnishi/acexs/reaction"
)

// numFFIncoherent and numFFCoherent are the fixed-size recoil-electron
// momentum grids for the JINC and JCOH form-factor blocks (MCNP manual
// Appendix F).
const (
	numFFIncoherent = 21
	numFFCoherent   = 55
	smallExpFloor   = 1e-30
)

// ComptonProfile is one electron shell's (momentum, pdf, cdf) incoherent
// scattering profile.
type ComptonProfile struct {
	JJ       int64
	Momentum []float64
	PDF      []float64
	CDF      []float64
}

// Table is the decoded contents of a photoatomic table.
type Table struct {
	Reactions map[reaction.Reaction]*crosssection.CrossSection

	IncoherentRecoilMomenta []float64 // JINC grid, fixed 21 entries
	CoherentIntegratedGrid  []float64 // JCOH integrated form-factor grid, fixed 55 entries
	CoherentRecoilMomenta   []float64 // JCOH grid, fixed 55 entries

	EdgeEnergies          []float64
	RelativeProbabilities []float64
	Yields                []float64
	FluorescentEnergies   []float64

	ElectronsPerShell                []int64
	BindingEnergiesPerShell          []float64
	InteractionProbabilitiesPerShell []float64
	ComptonProfiles                  []ComptonProfile
}

// Decode walks a photoatomic table's XSS payload given its NXS/JXS index
// arrays.
func Decode(xss *token.Stream, nxs [16]int64, jxs [32]int64) (*Table, error) {
	nes := int(nxs[2])
	nflo := int(nxs[3])
	nsh := int(nxs[4])

	eszg := int(jxs[0])
	jinc := int(jxs[1])
	jcoh := int(jxs[2])
	jflo := int(jxs[3])
	lhnm := int(jxs[4])
	lswd := int(jxs[8])
	swd := int(jxs[9])

	rawEpoints, err := xss.FloatSlice(eszg, nes)
	if err != nil {
		return nil, fmt.Errorf("reading ESZG energies: %w", err)
	}
	epoints := make([]float64, len(rawEpoints))
	for i, v := range rawEpoints {
		epoints[i] = math.Exp(v)
	}

	incoherent, err := readExpBlock(xss, eszg+nes, nes)
	if err != nil {
		return nil, fmt.Errorf("reading incoherent xs: %w", err)
	}
	coherent, err := readExpBlock(xss, eszg+2*nes, nes)
	if err != nil {
		return nil, fmt.Errorf("reading coherent xs: %w", err)
	}
	photoelectric, err := readExpBlock(xss, eszg+3*nes, nes)
	if err != nil {
		return nil, fmt.Errorf("reading photoelectric xs: %w", err)
	}
	pairProduction, err := xss.FloatSlice(eszg+4*nes, nes)
	if err != nil {
		return nil, fmt.Errorf("reading pair production xs: %w", err)
	}
	totalxs := make([]float64, nes)
	for i := range pairProduction {
		if math.Abs(pairProduction[i]) < smallExpFloor {
			pairProduction[i] = 0
		} else {
			pairProduction[i] = math.Exp(pairProduction[i])
		}
		totalxs[i] = incoherent[i] + coherent[i] + photoelectric[i] + pairProduction[i]
	}

	t := &Table{Reactions: make(map[reaction.Reaction]*crosssection.CrossSection, 6)}
	for _, e := range []struct {
		mt     int
		values []float64
	}{
		{501, totalxs},
		{504, incoherent},
		{502, coherent},
		{522, photoelectric},
		{516, pairProduction},
	} {
		cs, err := crosssection.New(epoints, e.values, reaction.FromMT(e.mt), 0, 0, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("constructing cross section for MT%d: %w", e.mt, err)
		}
		t.Reactions[reaction.FromMT(e.mt)] = cs
	}

	t.IncoherentRecoilMomenta, err = xss.FloatSlice(jinc, numFFIncoherent)
	if err != nil {
		return nil, fmt.Errorf("reading JINC grid: %w", err)
	}
	t.CoherentIntegratedGrid, err = xss.FloatSlice(jcoh, numFFCoherent)
	if err != nil {
		return nil, fmt.Errorf("reading JCOH integrated grid: %w", err)
	}
	t.CoherentRecoilMomenta, err = xss.FloatSlice(jcoh+numFFCoherent, numFFCoherent)
	if err != nil {
		return nil, fmt.Errorf("reading JCOH grid: %w", err)
	}

	if nflo > 0 {
		t.EdgeEnergies, err = xss.FloatSlice(jflo, nflo)
		if err != nil {
			return nil, fmt.Errorf("reading JFLO edge energies: %w", err)
		}
		t.RelativeProbabilities, err = xss.FloatSlice(jflo+nflo, nflo)
		if err != nil {
			return nil, fmt.Errorf("reading JFLO probabilities: %w", err)
		}
		t.Yields, err = xss.FloatSlice(jflo+2*nflo, nflo)
		if err != nil {
			return nil, fmt.Errorf("reading JFLO yields: %w", err)
		}
		t.FluorescentEnergies, err = xss.FloatSlice(jflo+3*nflo, nflo)
		if err != nil {
			return nil, fmt.Errorf("reading JFLO fluorescent energies: %w", err)
		}
	}

	heating, err := xss.FloatSlice(lhnm, nes)
	if err != nil {
		return nil, fmt.Errorf("reading LHNM heating numbers: %w", err)
	}
	heatCS, err := crosssection.New(epoints, heating, reaction.FromMT(301), 0, 0, 0, 0)
	if err != nil {
		return nil, err
	}
	t.Reactions[reaction.FromMT(301)] = heatCS

	if nsh > 0 {
		electronsPerShell, err := xss.IntSlice(lhnm+nes, nsh)
		if err != nil {
			return nil, fmt.Errorf("reading electrons per shell: %w", err)
		}
		t.ElectronsPerShell = electronsPerShell

		currentPosition := nsh + lhnm + nes
		t.BindingEnergiesPerShell, err = xss.FloatSlice(currentPosition, nsh)
		if err != nil {
			return nil, fmt.Errorf("reading binding energies per shell: %w", err)
		}
		t.InteractionProbabilitiesPerShell, err = xss.FloatSlice(currentPosition+nsh, nsh)
		if err != nil {
			return nil, fmt.Errorf("reading interaction probabilities per shell: %w", err)
		}

		locations, err := xss.IntSlice(lswd, nsh)
		if err != nil {
			return nil, fmt.Errorf("reading Compton profile locations: %w", err)
		}
		profiles := make([]ComptonProfile, 0, nsh)
		for _, loc := range locations {
			refPos := swd + int(loc)
			jj, err := xss.Int(refPos - 1)
			if err != nil {
				return nil, fmt.Errorf("reading Compton profile JJ flag: %w", err)
			}
			ne, err := xss.Int(refPos)
			if err != nil {
				return nil, fmt.Errorf("reading Compton profile point count: %w", err)
			}
			momentum, err := xss.FloatSlice(refPos+1, int(ne))
			if err != nil {
				return nil, fmt.Errorf("reading Compton profile momentum grid: %w", err)
			}
			pdf, err := xss.FloatSlice(refPos+1+int(ne), int(ne))
			if err != nil {
				return nil, fmt.Errorf("reading Compton profile pdf: %w", err)
			}
			cdf, err := xss.FloatSlice(refPos+1+2*int(ne), int(ne))
			if err != nil {
				return nil, fmt.Errorf("reading Compton profile cdf: %w", err)
			}
			profiles = append(profiles, ComptonProfile{JJ: jj, Momentum: momentum, PDF: pdf, CDF: cdf})
		}
		t.ComptonProfiles = profiles
	}

	return t, nil
}

func readExpBlock(xss *token.Stream, pos, n int) ([]float64, error) {
	raw, err := xss.FloatSlice(pos, n)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = math.Exp(v)
	}
	return out, nil
}
