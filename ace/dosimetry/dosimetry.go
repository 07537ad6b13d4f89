// Package dosimetry decodes the neutron dosimetry sub-format: a simpler
// MTR/LSIG/SIG-only walk with no shared master energy grid, no neutron
// release multiplicity, and no angular distributions.
package dosimetry

import (
	"fmt"

	"github.com/sohnishi/acexs/ace/crosssection"
	"github.com/sohnishi/acexs/ace/token"
	"github.com/sohnishi/acexs/internal/warn"
	"github.com/sohnishi/acexs/reaction"
)

// Table is the decoded contents of a dosimetry cross-section table.
type Table struct {
	Reactions map[reaction.Reaction]*crosssection.CrossSection
	MTOrder   []reaction.Reaction
}

// Decode walks a dosimetry table's XSS payload given its NXS/JXS index
// arrays.
func Decode(xss *token.Stream, nxs [16]int64, jxs [32]int64) (*Table, error) {
	ntr := int(nxs[3])
	mtr := int(jxs[2])
	lsig := int(jxs[5])
	sigd := int(jxs[6])

	t := &Table{Reactions: make(map[reaction.Reaction]*crosssection.CrossSection, ntr)}

	mtNums, err := xss.IntSlice(mtr, ntr)
	if err != nil {
		return nil, fmt.Errorf("reading MTR: %w", err)
	}
	mtList := make([]reaction.Reaction, ntr)
	for i, mt := range mtNums {
		mtList[i] = reaction.FromMT(int(mt))
		if mtList[i] == reaction.NotDefined {
			warn.Default.Once(fmt.Sprintf("undefined-mt-dosimetry-%d", mt), fmt.Sprintf("MT%d in dosimetry MTR block is not a defined reaction", mt))
		}
	}
	t.MTOrder = mtList

	posXS, err := xss.IntSlice(lsig, ntr)
	if err != nil {
		return nil, fmt.Errorf("reading LSIG: %w", err)
	}

	for i, mt := range mtList {
		refPos := sigd + int(posXS[i])
		nr, err := xss.Int(refPos - 1)
		if err != nil {
			return nil, fmt.Errorf("reading interpolation region count for MT%v: %w", mt, err)
		}
		if nr != 0 {
			warn.Default.Once("dosimetry-nonzero-interpolation-regions",
				"dosimetry SIG block declares non-lin-lin interpolation regions; only lin-lin is implemented, NBT/INT parameters are ignored")
		}
		ne, err := xss.Int(refPos + 2*int(nr))
		if err != nil {
			return nil, fmt.Errorf("reading energy point count for MT%v: %w", mt, err)
		}
		epointsMT, err := xss.FloatSlice(refPos+2*int(nr)+1, int(ne))
		if err != nil {
			return nil, fmt.Errorf("reading energies for MT%v: %w", mt, err)
		}
		xsVals, err := xss.FloatSlice(refPos+2*int(nr)+1+int(ne), int(ne))
		if err != nil {
			return nil, fmt.Errorf("reading xs values for MT%v: %w", mt, err)
		}
		cs, err := crosssection.New(epointsMT, xsVals, mt, 0, 0, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("constructing cross section for MT%v: %w", mt, err)
		}
		t.Reactions[mt] = cs
	}

	return t, nil
}
