// Package seek advances a byte stream to the first token of a named
// nuclide, leaving the stream positioned at the start of that nuclide's
// header line.
//
// ACE files are opened as binary byte streams deliberately: on platforms
// whose text mode translates newlines, position queries against a text-mode
// stream are unreliable, and the seeker must be able to rewind to an exact
// byte offset once it finds a matching line.
package seek

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// NotFoundError is returned when EOF is reached before a matching nuclide
// header line is found.
type NotFoundError struct{ ID string }

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("nuclide %q not found while seeking", e.ID)
}

// countingReader tracks the total number of bytes read from an underlying
// io.Reader, so that a position can be recovered even through a buffering
// bufio.Reader sitting on top of it (offset = total read - bufio.Buffered()).
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// ToNuclide seeks rs (opened in binary mode) to the start of the line
// describing id.
//
// If startLineHint is non-zero, the seeker first skips startLineHint-1 lines
// unconditionally. If id is empty, the seeker is a no-op and accepts the
// first nuclide header line it would otherwise have had to match.
//
// On return, rs is positioned at the first byte of the matching line; the
// caller is expected to re-read from there (e.g. via header.Parse).
func ToNuclide(rs io.ReadSeeker, id string, startLineHint int, szax bool) error {
	cr := &countingReader{r: rs}
	br := bufio.NewReader(cr)

	if startLineHint > 0 {
		for i := 0; i < startLineHint-1; i++ {
			if _, err := br.ReadString('\n'); err != nil {
				return &NotFoundError{ID: id}
			}
		}
	}

	for {
		lineStart := cr.n - int64(br.Buffered())
		line, err := br.ReadString('\n')
		if line == "" && err != nil {
			return &NotFoundError{ID: id}
		}

		fields := strings.Fields(line)
		if id == "" {
			if len(fields) > 0 {
				_, serr := rs.Seek(lineStart, io.SeekStart)
				return serr
			}
		} else {
			idx := 0
			if szax {
				idx = 1
			}
			if len(fields) > idx && fields[idx] == id {
				_, serr := rs.Seek(lineStart, io.SeekStart)
				return serr
			}
		}

		if err != nil {
			return &NotFoundError{ID: id}
		}
	}
}
