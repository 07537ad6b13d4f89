// Package identifier parses and classifies ACE nuclide identifiers: ZAID
// ("ZA.IIC") and SZAX ("SSSZZZAAA.IICC") strings, and maps their class suffix
// to a nuclide-type (NTY) tag.
package identifier

import (
	"fmt"
	"regexp"
)

// NTY is the nuclide-type tag encoded in an identifier's class suffix.
type NTY int

const (
	Unknown NTY = iota
	ContinuousNeutron
	DiscreteNeutron
	MultigroupNeutron
	Dosimetry
	Thermal
	Photoatomic
	Photonuclear
)

func (n NTY) String() string {
	switch n {
	case ContinuousNeutron:
		return "continuous-neutron"
	case DiscreteNeutron:
		return "discrete-neutron"
	case MultigroupNeutron:
		return "multigroup-neutron"
	case Dosimetry:
		return "dosimetry"
	case Thermal:
		return "thermal"
	case Photoatomic:
		return "photoatomic"
	case Photonuclear:
		return "photonuclear"
	default:
		return "unknown"
	}
}

// classToNTY is the closed table of recognized class suffixes, both the
// version-1 one/two-letter form and the version-2/SZAX "n"/"p"-prefixed form.
var classToNTY = map[string]NTY{
	"c": ContinuousNeutron, "nc": ContinuousNeutron,
	"d": DiscreteNeutron, "nd": DiscreteNeutron,
	"m": MultigroupNeutron, "nm": MultigroupNeutron,
	"y": Dosimetry, "ny": Dosimetry,
	"t": Thermal, "nt": Thermal,
	"p": Photoatomic, "pp": Photoatomic,
	"u": Photonuclear, "pu": Photonuclear,
}

// classRegex is the closed-class regex used by xsdir lookups that key on NTY
// instead of an exact table id (spec §4.3's get(id, nty)).
var classRegex = map[NTY]*regexp.Regexp{
	ContinuousNeutron: regexp.MustCompile(`^(c|nc)$`),
	DiscreteNeutron:    regexp.MustCompile(`^(d|nd)$`),
	MultigroupNeutron:  regexp.MustCompile(`^(m|nm)$`),
	Dosimetry:          regexp.MustCompile(`^(y|ny)$`),
	Thermal:            regexp.MustCompile(`^(t|nt)$`),
	Photoatomic:        regexp.MustCompile(`^(p|pp)$`),
	Photonuclear:       regexp.MustCompile(`^(u|pu)$`),
}

// ClassRegex returns the closed regular expression matching class suffixes
// for nty.
func ClassRegex(nty NTY) (*regexp.Regexp, bool) {
	re, ok := classRegex[nty]
	return re, ok
}

var (
	zaidPattern = regexp.MustCompile(`^([0-9]{1,7})\.([0-9]{2,3})([A-Za-z]{1,2})$`)
	szaxPattern = regexp.MustCompile(`^([0-9]{4,9})\.([0-9]{1,3})([A-Za-z]{2})$`)
)

// UnknownClassError is returned when an identifier's class suffix is not in
// the recognized set.
type UnknownClassError struct{ Class string }

func (e *UnknownClassError) Error() string {
	return fmt.Sprintf("%q is not a valid ace class string", e.Class)
}

// InvalidIdentifierError is returned when a string is neither a valid ZAID
// nor a valid SZAX.
type InvalidIdentifierError struct{ Value string }

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("%q is not a valid ZAID or SZAX identifier", e.Value)
}

// IsZAID reports whether s has the ZAID shape "ZA.IIC": 1-7 digit ZA,
// literal dot, 2-3 digit library id, 1-2 letter class. A string that is also
// SZAX-shaped is classified as SZAX, not ZAID: the two grammars overlap for
// 4-7 digit prefixes with a 2-3 digit library id and 2-letter class, and
// SZAX takes precedence there.
func IsZAID(s string) bool {
	return zaidPattern.MatchString(s) && !szaxPattern.MatchString(s)
}

// IsSZAX reports whether s has the SZAX shape "SSSZZZAAA.IICC": 4-9 digit
// prefix, literal dot, 1-3 digit library id, 2-letter class.
func IsSZAX(s string) bool {
	return szaxPattern.MatchString(s)
}

// ClassOf returns the class (letter) suffix of a ZAID or SZAX identifier, or
// the empty string if s is neither. SZAX is matched first since its shape
// takes precedence over the overlapping ZAID grammar.
func ClassOf(s string) string {
	if m := szaxPattern.FindStringSubmatch(s); m != nil {
		return m[3]
	}
	if m := zaidPattern.FindStringSubmatch(s); m != nil {
		return m[3]
	}
	return ""
}

// ClassStrToNTY maps a class suffix string to its NTY, failing with
// *UnknownClassError for anything outside the closed class table.
func ClassStrToNTY(class string) (NTY, error) {
	nty, ok := classToNTY[class]
	if !ok {
		return Unknown, &UnknownClassError{Class: class}
	}
	return nty, nil
}

// NTYOf classifies a ZAID or SZAX identifier's NTY, failing with
// *InvalidIdentifierError if s is neither valid shape, or *UnknownClassError
// if the class suffix is unrecognized.
func NTYOf(s string) (NTY, error) {
	class := ClassOf(s)
	if class == "" {
		return Unknown, &InvalidIdentifierError{Value: s}
	}
	return ClassStrToNTY(class)
}

// Validate reports whether s is a valid identifier: exactly one ".", the
// pre-dot part all digits, and a recognized class suffix.
func Validate(s string) error {
	if !IsZAID(s) && !IsSZAX(s) {
		return &InvalidIdentifierError{Value: s}
	}
	if _, err := ClassStrToNTY(ClassOf(s)); err != nil {
		return err
	}
	return nil
}
