// Package transport decodes the continuous-energy neutron transport
// sub-format: the ESZ energy/total/absorption/elastic/heating block, the
// fission-neutron-yield and delayed-precursor blocks, the MTR/LQR/TYR/LSIG/SIG
// reaction-cross-section walk, and the LAND/AND angular-distribution walk.
// The LDLW/DLW secondary-energy-distribution block offsets are recorded but
// not decoded.
package transport

import (
	"fmt"

	intersect "github.com/juliangruber/go-intersect"

	"github.com/sohnishi/acexs/ace/angular"
	"github.com/sohnishi/acexs/ace/crosssection"
	"github.com/sohnishi/acexs/ace/fission"
	"github.com/sohnishi/acexs/ace/token"
	"github.com/sohnishi/acexs/internal/warn"
	"github.com/sohnishi/acexs/reaction"
)

// DiscontinuousDataError is returned when the NU block position implied by
// JXS(2) does not immediately follow the ESZ block, which indicates a
// corrupt or unsupported table layout.
type DiscontinuousDataError struct {
	NES, NU int64
}

func (e *DiscontinuousDataError) Error() string {
	return fmt.Sprintf("data table is discontinuous: NES*5=%d should equal NU-1=%d", e.NES*5, e.NU-1)
}

// Table is the decoded contents of a continuous-energy neutron transport
// table.
type Table struct {
	NES int

	Reactions map[reaction.Reaction]*crosssection.CrossSection
	// MTOrder preserves the table's on-disk MT ordering (the order the SIG
	// block's cross sections were written in), which a map alone discards.
	MTOrder []reaction.Reaction

	PromptFissionNeutronData  *fission.NeutronYield
	TotalFissionNeutronData   *fission.NeutronYield
	DelayedFissionNeutronData *fission.NeutronYield
	PrecursorFamilies         []*fission.Precursor

	// SecondaryEnergyLocations holds the LDLW block's relative offsets into
	// DLW; decoding the secondary energy distributions themselves is out of
	// scope.
	SecondaryEnergyLocations []int64
}

// Decode walks a continuous-energy neutron transport table's XSS payload
// given its NXS/JXS index arrays.
func Decode(xss *token.Stream, nxs [16]int64, jxs [32]int64) (*Table, error) {
	NES := int(nxs[2])
	NTR := int(nxs[3])
	NR := int(nxs[4])
	NPCR := int(nxs[7])

	ESZ := int(jxs[0])
	NU := int(jxs[1])
	MTR := int(jxs[2])
	LQR := int(jxs[3])
	TYR := int(jxs[4])
	LSIG := int(jxs[5])
	SIG := int(jxs[6])
	LAND := int(jxs[7])
	AND := int(jxs[8])
	LDLW := int(jxs[9])
	DNU := int(jxs[23])
	BDD := int(jxs[24])

	t := &Table{NES: NES, Reactions: make(map[reaction.Reaction]*crosssection.CrossSection)}

	epoints, err := xss.FloatSlice(ESZ, NES)
	if err != nil {
		return nil, fmt.Errorf("reading ESZ energies: %w", err)
	}
	total, err := xss.FloatSlice(ESZ+NES, NES)
	if err != nil {
		return nil, fmt.Errorf("reading ESZ total xs: %w", err)
	}
	disappearance, err := xss.FloatSlice(ESZ+2*NES, NES)
	if err != nil {
		return nil, fmt.Errorf("reading ESZ absorption xs: %w", err)
	}
	elastic, err := xss.FloatSlice(ESZ+3*NES, NES)
	if err != nil {
		return nil, fmt.Errorf("reading ESZ elastic xs: %w", err)
	}
	heating, err := xss.FloatSlice(ESZ+4*NES, NES)
	if err != nil {
		return nil, fmt.Errorf("reading ESZ heating numbers: %w", err)
	}

	totalCS, err := crosssection.New(epoints, total, reaction.FromMT(1), 0, 0, 0, 0)
	if err != nil {
		return nil, err
	}
	disCS, err := crosssection.New(epoints, disappearance, reaction.FromMT(101), 0, 0, 0, 0)
	if err != nil {
		return nil, err
	}
	elasticCS, err := crosssection.New(epoints, elastic, reaction.FromMT(2), 1, 0, 0, 0)
	if err != nil {
		return nil, err
	}
	heatCS, err := crosssection.New(epoints, heating, reaction.FromMT(301), 0, 0, 0, 0)
	if err != nil {
		return nil, err
	}
	t.Reactions[reaction.FromMT(1)] = totalCS
	t.Reactions[reaction.FromMT(101)] = disCS
	t.Reactions[reaction.FromMT(2)] = elasticCS
	t.Reactions[reaction.FromMT(301)] = heatCS

	if NU != 0 {
		if int64(NES*5) != int64(NU-1) {
			return nil, &DiscontinuousDataError{NES: int64(NES), NU: int64(NU)}
		}
		fissionFlag, err := xss.Int(NU)
		if err != nil {
			return nil, fmt.Errorf("reading fission flag: %w", err)
		}
		switch {
		case fissionFlag > 0:
			ny, err := fission.Decode(xss, NU)
			if err != nil {
				return nil, fmt.Errorf("reading total fission neutron data: %w", err)
			}
			t.TotalFissionNeutronData = ny
		case fissionFlag < 0:
			knu := NU + 1
			abs := fissionFlag
			if abs < 0 {
				abs = -abs
			}
			prompt, err := fission.Decode(xss, knu)
			if err != nil {
				return nil, fmt.Errorf("reading prompt fission neutron data: %w", err)
			}
			total, err := fission.Decode(xss, knu+int(abs))
			if err != nil {
				return nil, fmt.Errorf("reading total fission neutron data: %w", err)
			}
			t.PromptFissionNeutronData = prompt
			t.TotalFissionNeutronData = total
		}
	}

	if DNU > 0 {
		dn, err := fission.Decode(xss, DNU)
		if err != nil {
			return nil, fmt.Errorf("reading delayed fission neutron data: %w", err)
		}
		t.DelayedFissionNeutronData = dn

		if NPCR > 0 {
			families, err := fission.DecodePrecursorFamilies(xss, BDD, NPCR)
			if err != nil {
				return nil, fmt.Errorf("reading precursor families: %w", err)
			}
			t.PrecursorFamilies = families
		}
	}

	mtNums, err := xss.IntSlice(MTR, NTR)
	if err != nil {
		return nil, fmt.Errorf("reading MTR: %w", err)
	}
	mtList := make([]reaction.Reaction, NTR)
	for i, mt := range mtNums {
		mtList[i] = reaction.FromMT(int(mt))
		if mtList[i] == reaction.NotDefined {
			warn.Default.Once(fmt.Sprintf("undefined-mt-in-mtr-%d", mt), fmt.Sprintf("MT%d in MTR block is not a defined reaction", mt))
		}
	}
	t.MTOrder = append([]reaction.Reaction{reaction.FromMT(2)}, mtList...)

	qvals, err := xss.FloatSlice(LQR, NTR)
	if err != nil {
		return nil, fmt.Errorf("reading LQR: %w", err)
	}
	releaseN, err := xss.IntSlice(TYR, NTR)
	if err != nil {
		return nil, fmt.Errorf("reading TYR: %w", err)
	}
	posXS, err := xss.IntSlice(LSIG, NTR)
	if err != nil {
		return nil, fmt.Errorf("reading LSIG: %w", err)
	}

	for i := range mtList {
		base := SIG + int(posXS[i]) - 1
		ie, err := xss.Int(base)
		if err != nil {
			return nil, fmt.Errorf("reading SIG lower energy index for MT%v: %w", mtList[i], err)
		}
		ne, err := xss.Int(base + 1)
		if err != nil {
			return nil, fmt.Errorf("reading SIG point count for MT%v: %w", mtList[i], err)
		}
		epointsMT := epoints[ie-1 : ie-1+ne]
		xsVals, err := xss.FloatSlice(SIG+int(posXS[i])+1, int(ne))
		if err != nil {
			return nil, fmt.Errorf("reading SIG xs values for MT%v: %w", mtList[i], err)
		}
		cs, err := crosssection.New(epointsMT, xsVals, mtList[i], int32(releaseN[i]), qvals[i], ie, 0)
		if err != nil {
			return nil, fmt.Errorf("constructing cross section for MT%v: %w", mtList[i], err)
		}
		t.Reactions[mtList[i]] = cs
	}

	if err := decodeAngular(xss, t, mtList, releaseN, LAND, AND); err != nil {
		return nil, err
	}

	if NR > 0 {
		locs, err := xss.IntSlice(LDLW, NR)
		if err != nil {
			return nil, fmt.Errorf("reading LDLW: %w", err)
		}
		t.SecondaryEnergyLocations = locs
	}

	return t, nil
}

// decodeAngular assigns and decodes the LAND/AND angular-distribution
// blocks. The elastic reaction's entry always comes first in LAND;
// subsequent entries follow mtList's order, but only for reactions with a
// nonzero neutron-release multiplicity (reactions that release no secondary
// neutron carry no angular distribution). go-intersect narrows mtList down
// to that "has an angular entry" subset, mirroring the original decoder's
// "MT in MTR and has a LAND slot" condition.
func decodeAngular(xss *token.Stream, t *Table, mtList []reaction.Reaction, releaseN []int64, land, and int) error {
	elasticFlag, err := xss.Int(land)
	if err != nil {
		return fmt.Errorf("reading elastic angular flag: %w", err)
	}
	elasticCS := t.Reactions[reaction.FromMT(2)]
	elasticCS.SetAngularDists(int32(elasticFlag), nil)
	if elasticFlag > 0 {
		dists, err := angular.DecodeTable(xss, int64(and), elasticFlag)
		if err != nil {
			return fmt.Errorf("decoding elastic angular distribution: %w", err)
		}
		elasticCS.SetAngularDists(int32(elasticFlag), dists)
	}

	hasReleaseSet := make([]int, 0, len(mtList))
	for i, mt := range mtList {
		if releaseN[i] != 0 {
			hasReleaseSet = append(hasReleaseSet, int(mt))
		}
	}
	mtSet := make([]int, len(mtList))
	for i, mt := range mtList {
		mtSet[i] = int(mt)
	}
	withAngular := intersect.Simple(mtSet, hasReleaseSet)

	angularIndex := make(map[int]bool, len(withAngular))
	for _, v := range withAngular {
		if mt, ok := v.(int); ok {
			angularIndex[mt] = true
		}
	}

	for i, mt := range mtList {
		if !angularIndex[int(mt)] {
			continue
		}
		flag, err := xss.Int(land + i + 1)
		if err != nil {
			return fmt.Errorf("reading angular flag for MT%v: %w", mt, err)
		}
		cs := t.Reactions[mt]
		cs.SetAngularDists(int32(flag), nil)
		if flag != 0 && flag != -1 {
			dists, err := angular.DecodeTable(xss, int64(and), flag)
			if err != nil {
				return fmt.Errorf("decoding angular distribution for MT%v: %w", mt, err)
			}
			cs.SetAngularDists(int32(flag), dists)
		}
	}
	return nil
}
