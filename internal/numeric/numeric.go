// Package numeric holds the small numeric primitives shared by every ACE
// decoder: ACE writes integers in scientific notation
// ("3.100000000000E+01"), so every integer field must be parsed as a float
// and truncated rather than parsed directly as an integer.
package numeric

import (
	"fmt"
	"strconv"

	"golang.org/x/exp/constraints"
)

// ParseFloat parses a single whitespace-delimited ACE token as float64.
func ParseFloat(tok string) (float64, error) {
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("not a numeric token: %q: %w", tok, err)
	}
	return f, nil
}

// ParseInt parses an ACE integer token, which is written in scientific
// notation, by parsing as float64 and truncating toward zero. Parsing the
// token directly with strconv.Atoi would silently yield 3 from "3.1E+01".
func ParseInt(tok string) (int64, error) {
	f, err := ParseFloat(tok)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

// StrictlyAscending reports whether vs is strictly increasing.
func StrictlyAscending[T constraints.Ordered](vs []T) bool {
	for i := 1; i < len(vs); i++ {
		if vs[i] <= vs[i-1] {
			return false
		}
	}
	return true
}

// UpperBoundIndex returns the smallest index i such that vs[i] > x, or
// len(vs) if no such index exists. vs must be sorted ascending.
func UpperBoundIndex[T constraints.Ordered](vs []T, x T) int {
	lo, hi := 0, len(vs)
	for lo < hi {
		mid := (lo + hi) / 2
		if vs[mid] > x {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
