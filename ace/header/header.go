// Package header detects an ACE table's format version (fixed version-1 or
// variable version-2), reads its NXS and JXS index arrays, and collects the
// XSS numeric payload that follows them.
package header

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sohnishi/acexs/identifier"
	"github.com/sohnishi/acexs/ace/token"
	"github.com/sohnishi/acexs/internal/numeric"
)

const (
	nxsLen = 16
	jxsLen = 32
)

// UnsupportedVersionError is returned when the first header token is neither
// a valid ZAID (version 1) nor a floating-point value >= 2.0 followed by a
// valid SZAX (version 2).
type UnsupportedVersionError struct{ FirstToken string }

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported ace version, first header token was %q", e.FirstToken)
}

// Header holds an ACE table's format version, table identifier, and its two
// fixed-size index arrays.
type Header struct {
	Version int // 1 or 2
	TableID string
	NXS     [nxsLen]int64
	JXS     [jxsLen]int64
}

// countingReader tracks the total number of bytes read from an underlying
// io.Reader, so a logical stop position can be recovered through a
// buffering bufio.Reader (offset = total read - bufio.Buffered()). See
// ace/seek's identical helper for why this matters: a bufio.Reader
// routinely over-reads past what callers have logically consumed.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// wordFeed tokenizes a bufio.Reader across line boundaries, on demand.
type wordFeed struct {
	br  *bufio.Reader
	buf []rune
}

func newWordFeed(br *bufio.Reader) *wordFeed { return &wordFeed{br: br} }

func (f *wordFeed) next() (string, error) {
	var sb strings.Builder
	skipping := true
	for {
		r, _, err := f.br.ReadRune()
		if err != nil {
			if sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if skipping {
				continue
			}
			return sb.String(), nil
		}
		skipping = false
		sb.WriteRune(r)
	}
}

func (f *wordFeed) nextN(n int) ([]string, error) {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		tok, err := f.next()
		if err != nil {
			return nil, fmt.Errorf("reading token %d/%d: %w", i+1, n, err)
		}
		out = append(out, tok)
	}
	return out, nil
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if line == "" && err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Parse reads rs positioned at the start of a nuclide's first header token,
// returning its Header and the XSS payload token stream (whose length is
// taken from NXS(1), the canonical table length).
//
// rs must be an io.ReadSeeker (rather than a plain io.Reader) so that, once
// the XSS payload has been consumed, Parse can seek rs back to the exact
// logical end of the table: a bufio.Reader normally reads ahead in blocks,
// and without correcting for that, the byte position left on rs would point
// past the table's actual end rather than at it. Callers that need to check
// for trailing data after the table (e.g. the next nuclide header, or
// end-of-file) rely on this to resume reading from the right place.
func Parse(rs io.ReadSeeker) (*Header, *token.Stream, error) {
	cr := &countingReader{r: rs}
	br := bufio.NewReader(cr)
	feed := newWordFeed(br)

	firstTok, err := feed.next()
	if err != nil {
		return nil, nil, fmt.Errorf("reading first header token: %w", err)
	}

	h := &Header{}
	switch {
	case identifier.IsZAID(firstTok):
		h.Version = 1
		h.TableID = firstTok
		// version-1 header: 4 tokenized lines total (this line plus 3 more),
		// then 2 free-form comment lines.
		if _, err := feed.nextN(3); err != nil { // rest of line 1: AWR, temperature, date
			return nil, nil, err
		}
		for i := 0; i < 3; i++ { // lines 2-4
			if _, err := readLine(br); err != nil {
				return nil, nil, fmt.Errorf("reading v1 header line %d: %w", i+2, err)
			}
		}
		for i := 0; i < 2; i++ { // 2 comment lines
			if _, err := readLine(br); err != nil {
				return nil, nil, fmt.Errorf("reading v1 comment line %d: %w", i+1, err)
			}
		}
	default:
		firstVal, ferr := numeric.ParseFloat(firstTok)
		if ferr != nil || firstVal < 2.0 {
			return nil, nil, &UnsupportedVersionError{FirstToken: firstTok}
		}
		h.Version = 2
		// remaining 3 tokens of line 1
		if _, err := feed.nextN(3); err != nil {
			return nil, nil, err
		}
		szax, err := feed.next()
		if err != nil {
			return nil, nil, fmt.Errorf("reading szax token: %w", err)
		}
		if !identifier.IsSZAX(szax) {
			return nil, nil, &UnsupportedVersionError{FirstToken: firstTok}
		}
		h.TableID = szax
		// remaining 4 tokens of line 2, the 5th of which is NC (comment count)
		rest, err := feed.nextN(4)
		if err != nil {
			return nil, nil, err
		}
		nc, err := numeric.ParseInt(rest[3])
		if err != nil {
			return nil, nil, fmt.Errorf("parsing NC: %w", err)
		}
		// consume the remainder of line 2, then 4+NC header/comment lines.
		// The delimiter that ended NC may have been the line's newline, so
		// push it back before reading the rest of the line.
		_ = br.UnreadRune()
		if _, err := readLine(br); err != nil {
			return nil, nil, fmt.Errorf("reading rest of v2 line 2: %w", err)
		}
		for i := int64(0); i < 4+nc; i++ {
			if _, err := readLine(br); err != nil {
				return nil, nil, fmt.Errorf("reading v2 header/comment line %d: %w", i+1, err)
			}
		}
	}

	nxsToks, err := feed.nextN(nxsLen)
	if err != nil {
		return nil, nil, fmt.Errorf("reading NXS: %w", err)
	}
	for i, t := range nxsToks {
		v, err := numeric.ParseInt(t)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing NXS[%d]: %w", i, err)
		}
		h.NXS[i] = v
	}

	jxsToks, err := feed.nextN(jxsLen)
	if err != nil {
		return nil, nil, fmt.Errorf("reading JXS: %w", err)
	}
	for i, t := range jxsToks {
		v, err := numeric.ParseInt(t)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing JXS[%d]: %w", i, err)
		}
		h.JXS[i] = v
	}

	length := int(h.NXS[0])
	xssToks, err := feed.nextN(length)
	if err != nil {
		return nil, nil, fmt.Errorf("reading XSS payload (len=%d): %w", length, err)
	}

	logicalEnd := cr.n - int64(br.Buffered())
	if _, err := rs.Seek(logicalEnd, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("seeking to end of table data: %w", err)
	}

	return h, token.NewStreamFromTokens(xssToks), nil
}
