// Package token implements the whitespace-delimited token cursor over an
// ACE table's "XSS" payload, with Fortran 1-based position semantics.
package token

import (
	"fmt"
	"strings"

	"github.com/sohnishi/acexs/internal/numeric"
)

// OutOfRangeError is returned when a token-stream access falls outside the
// bounds of the stream.
type OutOfRangeError struct {
	Pos int
	Len int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("position %d is out of xss range (len=%d)", e.Pos, e.Len)
}

// Stream is a 1-based (Fortran-style) cursor over a sequence of
// whitespace-separated tokens.
type Stream struct {
	tokens []string
}

// NewStream splits raw on whitespace to build a Stream.
func NewStream(raw string) *Stream {
	return &Stream{tokens: strings.Fields(raw)}
}

// NewStreamFromTokens wraps an already-split token slice.
func NewStreamFromTokens(tokens []string) *Stream {
	return &Stream{tokens: tokens}
}

// Len returns the number of tokens in the stream.
func (s *Stream) Len() int { return len(s.tokens) }

// Raw returns the underlying token slice; callers must not mutate it.
func (s *Stream) Raw() []string { return s.tokens }

func (s *Stream) at(pos int) (string, error) {
	if pos < 1 || pos > len(s.tokens) {
		return "", &OutOfRangeError{Pos: pos, Len: len(s.tokens)}
	}
	return s.tokens[pos-1], nil
}

// Float reads the token at 1-based position pos as a float64.
func (s *Stream) Float(pos int) (float64, error) {
	tok, err := s.at(pos)
	if err != nil {
		return 0, err
	}
	return numeric.ParseFloat(tok)
}

// Int reads the token at 1-based position pos as an int64, using the
// parse-as-float-then-truncate rule (ACE writes integers in scientific
// notation).
func (s *Stream) Int(pos int) (int64, error) {
	tok, err := s.at(pos)
	if err != nil {
		return 0, err
	}
	return numeric.ParseInt(tok)
}

// FloatSlice returns n float64 values starting at 1-based position pos.
func (s *Stream) FloatSlice(pos, n int) ([]float64, error) {
	if n == 0 {
		return nil, nil
	}
	if pos < 1 || pos+n-1 > len(s.tokens) {
		return nil, &OutOfRangeError{Pos: pos + n - 1, Len: len(s.tokens)}
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := numeric.ParseFloat(s.tokens[pos-1+i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// IntSlice returns n int64 values starting at 1-based position pos.
func (s *Stream) IntSlice(pos, n int) ([]int64, error) {
	if n == 0 {
		return nil, nil
	}
	if pos < 1 || pos+n-1 > len(s.tokens) {
		return nil, &OutOfRangeError{Pos: pos + n - 1, Len: len(s.tokens)}
	}
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		v, err := numeric.ParseInt(s.tokens[pos-1+i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// StringSlice returns n raw tokens starting at 1-based position pos.
func (s *Stream) StringSlice(pos, n int) ([]string, error) {
	if n == 0 {
		return nil, nil
	}
	if pos < 1 || pos+n-1 > len(s.tokens) {
		return nil, &OutOfRangeError{Pos: pos + n - 1, Len: len(s.tokens)}
	}
	out := make([]string, n)
	copy(out, s.tokens[pos-1:pos-1+n])
	return out, nil
}
