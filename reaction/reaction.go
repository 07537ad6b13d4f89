// Package reaction holds the closed enumeration of ENDF MT reaction
// identifiers used throughout ACE files, together with their human-readable
// labels and the IRDF MT>1000 folding rule.
package reaction

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/sohnishi/acexs/internal/warn"
)

// Reaction is an MT reaction number. NotDefined is the distinguished value
// used for any MT not present in the catalog.
type Reaction int

const NotDefined Reaction = -1

// labels is the closed MT -> human-readable description table, transcribed
// from the ENDF/ACE MT taxonomy (MT 1-117 particle-production channels,
// 201-218 production channels, 301-303 heating, 444-447 damage, 500-573
// photon/electron channels). Entries for the 600-849 per-residual-level
// channels are generated in init, since they follow one formulaic pattern
// per emitted particle (see buildResidualLevels).
var labels = map[Reaction]string{
	1:   "MT1: Total",
	2:   "MT2: Elastic",
	3:   "MT3: Non-Elastic",
	4:   "MT4: Production of a neutron",
	5:   "MT5: (, anything other)",
	10:  "MT10: Total continuum reaction",
	11:  "MT11: (, 2nd)",
	16:  "MT16: (, 2n)",
	17:  "MT17: (, 3n)",
	18:  "MT18: (, fission)",
	19:  "MT19: (n,f)",
	20:  "MT20: (n,nf)",
	21:  "MT21: (n,2nf)",
	22:  "MT22: (, na)",
	23:  "MT23: (n, n3a)",
	24:  "MT24: (n, 2na)",
	25:  "MT25: (n, 3na)",
	27:  "MT27: absorption (MT18+MT102)",
	28:  "MT28: (, np)",
	29:  "MT29: (, n2a)",
	30:  "MT30: (, 2n2a)",
	32:  "MT32: (, nd)",
	33:  "MT33: (, nt)",
	34:  "MT34: (, nHe3)",
	35:  "MT35: (, nd2a)",
	36:  "MT36: (, nt2a)",
	37:  "MT37: (, 4n)",
	38:  "MT38: (n, 3nf)",
	41:  "MT41: (, 2np)",
	42:  "MT42: (, 3np)",
	44:  "MT44: (, n2p)",
	45:  "MT45: (, npa)",
	101: "MT101: neutron disappearance, sum of 102-117",
	102: "MT102: (, g)",
	103: "MT103: (, p)",
	104: "MT104: (, d)",
	105: "MT105: (, t)",
	106: "MT106: (, He3)",
	107: "MT107: (, a)",
	108: "MT108: (, 2a)",
	109: "MT109: (, 3a)",
	111: "MT111: (, 2p)",
	112: "MT112: (, pa)",
	113: "MT113: (, t2a)",
	114: "MT114: (, d2a)",
	115: "MT115: (, pd)",
	116: "MT116: (, pt)",
	117: "MT117: (, da)",
	201: "MT201: (, Xn)",
	202: "MT202: (, Xg)",
	203: "MT203: (, Xp)",
	204: "MT204: (, Xd)",
	205: "MT205: (, Xt)",
	206: "MT206: (, XHe3)",
	207: "MT207: (, Xa)",
	208: "MT208: (, XPi+)",
	209: "MT209: (, XPi0)",
	210: "MT210: (, XPi-)",
	211: "MT211: (, XMu+)",
	212: "MT212: (, XMu-)",
	213: "MT213: (, XK+)",
	214: "MT214: (, XK0long)",
	215: "MT215: (, XK0short)",
	216: "MT216: (, XK-)",
	217: "MT217: (, anti-p)",
	218: "MT218: (, anti-n)",
	301: "MT301: Total heating number",
	302: "MT302: Elastic heating number",
	303: "MT303: Non-elastic heating number",
	444: "MT444: Neutron total damage",
	445: "MT445: Neutron elastic damage",
	446: "MT446: Neutron inelastic damage",
	447: "MT447: Neutron disappearance damage",
	500: "MT500: Total charged-particle stopping power",
	501: "MT501: Total photon interaction",
	502: "MT502: Photon coherent",
	504: "MT504: Photon incoherent",
	505: "MT505: Imaginary scattering factor",
	506: "MT506: Real scattering factor",
	515: "MT515: Pair production, electron field",
	516: "MT516: Pair production, total",
	517: "MT517: Pair production, nuclear field",
	522: "MT522: Photoelectric absorption",
	523: "MT523: Photo-excitation cross section",
	526: "MT526: Electro-atomic scattering",
	527: "MT527: Electro-atomic bremsstrahlung",
	528: "MT528: Electro-atomic excitation",
	533: "MT533: Atomic relaxation data",
}

// neutronExcitedOrdinal labels MT50-91: (, n') to the k-th excited state of
// the residual, plus MT91 "continuum".
var neutronExcitedOrdinal = []string{
	"ground", "1st", "2nd", "3rd", "4th", "5th", "6th", "7th", "8th", "9th",
	"10th", "11th", "12th", "13th", "14th", "15th", "16th", "17th", "18th",
	"19th", "20th", "21st", "22nd", "23rd", "24th", "25th", "26th", "27th",
	"28th", "29th", "30th", "31st", "32nd", "33rd", "34th", "35th", "36th",
	"37th", "38th", "39th", "40th",
}

// residualSeries is a (firstMT, particle) table for the 600-849 per-level
// production blocks: 50 MTs each, "grand"/0th + 1st..48th + "cont".
var residualSeries = []struct {
	first    int
	particle string
}{
	{600, "proton"},
	{650, "deuteron"},
	{700, "triton"},
	{750, "He3"},
	{800, "alpha"},
}

func ordinal(n int) string {
	if n == 0 {
		return "grand"
	}
	switch n % 10 {
	case 1:
		if n%100 != 11 {
			return fmt.Sprintf("%dst", n)
		}
	case 2:
		if n%100 != 12 {
			return fmt.Sprintf("%dnd", n)
		}
	case 3:
		if n%100 != 13 {
			return fmt.Sprintf("%drd", n)
		}
	}
	return fmt.Sprintf("%dth", n)
}

func init() {
	for i, lbl := range neutronExcitedOrdinal {
		mt := Reaction(50 + i)
		if i == 0 {
			labels[mt] = fmt.Sprintf("MT%d: (, n)ground", mt)
			continue
		}
		labels[mt] = fmt.Sprintf("MT%d: (, n') %s", mt, lbl)
	}
	labels[91] = "MT91: (, n') cont"

	for _, series := range residualSeries {
		for level := 0; level < 49; level++ {
			mt := Reaction(series.first + level)
			labels[mt] = fmt.Sprintf("MT%d: %s production, residual %s excited", mt, series.particle, ordinal(level))
		}
		labels[Reaction(series.first+49)] = fmt.Sprintf("MT%d: %s production, residual cont excited", series.first+49, series.particle)
	}
}

// mtStringPattern extracts the integer from strings like "MT52".
var mtStringPattern = regexp.MustCompile(`^MT(-?\d+)$`)

// FromMT returns the Reaction for an MT number, or NotDefined if mt is
// outside the catalog (logged once per distinct unknown value).
func FromMT(mt int) Reaction {
	r := Reaction(mt)
	if _, ok := labels[r]; !ok {
		warn.Default.Once(fmt.Sprintf("unknown-mt-%d", mt), fmt.Sprintf("MT%d is not in the reaction catalog; mapped to NOT_DEFINED", mt))
		return NotDefined
	}
	return r
}

// FromMTString parses a string like "MT52" and calls FromMT.
func FromMTString(s string) (Reaction, error) {
	m := mtStringPattern.FindStringSubmatch(s)
	if m == nil {
		return NotDefined, fmt.Errorf("%q does not match the MT<n> pattern", s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return NotDefined, fmt.Errorf("%q: %w", s, err)
	}
	return FromMT(n), nil
}

// CanonicalMT folds any MT > 1000 down to MT mod 1000, the IRDF dosimetry
// convention MT* = MT + 1000*(10+LFS). It logs once per distinct folded
// value and performs no other arithmetic.
func CanonicalMT(mt int) int {
	if mt > 1000 {
		folded := mt % 1000
		warn.Default.Once(fmt.Sprintf("fold-mt-%d", mt), fmt.Sprintf("folding IRDF MT%d to MT%d", mt, folded))
		return folded
	}
	return mt
}

// ToMTString renders a Reaction as "MT<n>".
func ToMTString(r Reaction) string {
	return fmt.Sprintf("MT%d", int(r))
}

// Description returns the human-readable label for r, or "Not reaction" for
// NotDefined / anything outside the catalog.
func Description(r Reaction) string {
	if lbl, ok := labels[r]; ok {
		return lbl
	}
	return "Not reaction"
}
