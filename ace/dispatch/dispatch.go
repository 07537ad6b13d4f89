// Package dispatch opens an ACE file, seeks to a named nuclide, classifies
// its table class, and decodes it with the sub-format decoder that class
// requires.
package dispatch

import (
	"fmt"
	"io"
	"os"

	"github.com/sohnishi/acexs/ace/dosimetry"
	"github.com/sohnishi/acexs/ace/header"
	"github.com/sohnishi/acexs/ace/photoatomic"
	"github.com/sohnishi/acexs/ace/seek"
	"github.com/sohnishi/acexs/ace/transport"
	"github.com/sohnishi/acexs/identifier"
)

// NotImplementedError is returned for a recognized but unsupported nuclide
// type: photonuclear, thermal scattering, discrete-energy neutron, and
// multigroup neutron libraries use XSS layouts no decoder here implements.
type NotImplementedError struct{ NTY identifier.NTY }

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("decoding %s tables is not implemented", e.NTY)
}

// TrailingDataError is returned when bytes remain after a nuclide's table
// that are neither EOF nor the start of another nuclide's ZAID/SZAX header.
type TrailingDataError struct{ Token string }

func (e *TrailingDataError) Error() string {
	return fmt.Sprintf("unexpected trailing data after table: %q", e.Token)
}

// Nuclide is a decoded ACE table, holding exactly one of Transport,
// Dosimetry, or Photoatomic depending on its NTY.
type Nuclide struct {
	ID     string
	NTY    identifier.NTY
	Header *header.Header

	Transport   *transport.Table
	Dosimetry   *dosimetry.Table
	Photoatomic *photoatomic.Table
}

// Decode opens filename, seeks to the nuclide named id (or the first
// nuclide in the file if id is empty), classifies it, and decodes it.
// startLineHint, if nonzero, is a 1-based line number (typically sourced
// from an xsdir entry's Address) the seeker may skip to before searching.
func Decode(filename, id string, startLineHint int) (*Nuclide, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	defer f.Close()

	szax := identifier.IsSZAX(id)
	if err := seek.ToNuclide(f, id, startLineHint, szax); err != nil {
		return nil, err
	}

	h, xss, err := header.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing header for %s: %w", id, err)
	}

	nty, err := identifier.NTYOf(h.TableID)
	if err != nil {
		return nil, fmt.Errorf("classifying %s: %w", h.TableID, err)
	}

	n := &Nuclide{ID: h.TableID, NTY: nty, Header: h}

	switch nty {
	case identifier.ContinuousNeutron:
		n.Transport, err = transport.Decode(xss, h.NXS, h.JXS)
	case identifier.Dosimetry:
		n.Dosimetry, err = dosimetry.Decode(xss, h.NXS, h.JXS)
	case identifier.Photoatomic:
		n.Photoatomic, err = photoatomic.Decode(xss, h.NXS, h.JXS)
	default:
		return nil, &NotImplementedError{NTY: nty}
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s table for %s: %w", nty, id, err)
	}

	if err := checkEndOfData(f); err != nil {
		return nil, err
	}

	return n, nil
}

// checkEndOfData reads one more token from f, positioned (by header.Parse)
// exactly at the end of the decoded table. EOF and the start of another
// nuclide's ZAID/SZAX header are both acceptable; anything else means the
// table's declared length (NXS(1)) did not match its actual extent.
func checkEndOfData(f io.Reader) error {
	tok, err := nextToken(f)
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking end of table data: %w", err)
	}
	if identifier.IsZAID(tok) || identifier.IsSZAX(tok) {
		return nil
	}
	return &TrailingDataError{Token: tok}
}

func nextToken(r io.Reader) (string, error) {
	buf := make([]byte, 1)
	var tok []byte
	skipping := true
	for {
		n, err := r.Read(buf)
		if n == 0 {
			if err != nil {
				if len(tok) > 0 {
					return string(tok), nil
				}
				return "", err
			}
			continue
		}
		b := buf[0]
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			if skipping {
				continue
			}
			return string(tok), nil
		}
		skipping = false
		tok = append(tok, b)
	}
}
