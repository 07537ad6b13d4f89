// Package xsdir reads an XSDIR directory file: an optional DATAPATH
// override, an atomic-weight-ratio table, and a directory section mapping
// nuclide table identifiers to the (file, offset) location of their ACE
// data and associated metadata.
package xsdir

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/sohnishi/acexs/identifier"
)

// XsInfo is one directory-section entry: where a nuclide's ACE table lives
// and how to read it.
type XsInfo struct {
	TableID          string
	AWR              float64
	Filename         string
	AccessRoute      string
	FileType         int
	Address          int
	TableLength      int
	RecordLength     int
	EntriesPerRecord int
	Temperature      float64
	HasPtable        bool
}

func (x XsInfo) String() string {
	return fmt.Sprintf("id=%s, awr=%g, file=%s, route=%s, type=%d, address=%d, tablength=%d, reclength=%d, entries per rec=%d, temperature=%g, has ptable=%t",
		x.TableID, x.AWR, x.Filename, x.AccessRoute, x.FileType, x.Address, x.TableLength, x.RecordLength, x.EntriesPerRecord, x.Temperature, x.HasPtable)
}

// MissingDatapathHeaderError is returned when an XSDIR file's opening lines
// do not contain the required "atomic weight ratios" marker.
type MissingDatapathHeaderError struct{ Line string }

func (e *MissingDatapathHeaderError) Error() string {
	return fmt.Sprintf(`xsdir should start with "atomic weight ratios", actual=%q`, e.Line)
}

// UnexpectedEOFError is returned when EOF is reached before the "directory"
// marker line.
type UnexpectedEOFError struct{}

func (e *UnexpectedEOFError) Error() string { return `unexpected EOF before "directory"` }

// InvalidTableInfoError is returned when a directory-section line matches
// neither the long nor short entry shape.
type InvalidTableInfoError struct{ Line string }

func (e *InvalidTableInfoError) Error() string {
	return fmt.Sprintf("%q is not a valid table info line", e.Line)
}

// NuclideNotFoundError is returned by Get when no entry matches id/nty.
type NuclideNotFoundError struct {
	ID  string
	NTY identifier.NTY
}

func (e *NuclideNotFoundError) Error() string {
	return fmt.Sprintf("material id = %s for %s not found in xsdir", e.ID, e.NTY)
}

var (
	datapathPattern  = regexp.MustCompile(`(?i)^ *datapath *=*`)
	awrPattern       = regexp.MustCompile(`^ *atomic weight ratios *$`)
	directoryPattern = regexp.MustCompile(`(?i)^ *directory *$`)
	zaidTokenPattern = regexp.MustCompile(`^[0-9.]+$`)
	longDirPattern   = regexp.MustCompile(`^ *(\S+) +(\S+) +(\S+) +(\S+) +(\d+) +(\d+) +(\d+) +(\d+) +(\d+) +(\S+)`)
	shortDirPattern  = regexp.MustCompile(`^ *(\S+) +(\S+) +(\S+) +(\S+) +(\d+) +(\d+) +(\d+)`)
)

// Option configures Parse.
type Option func(*options)

type options struct {
	ntyFilter     []identifier.NTY
	withoutTables bool
}

// WithNTYFilter restricts the directory-section entries retained to those
// whose class suffix matches one of ntys. An empty/absent filter keeps all
// entries.
func WithNTYFilter(ntys ...identifier.NTY) Option {
	return func(o *options) { o.ntyFilter = ntys }
}

// WithoutTableInfo skips the directory section entirely; only the
// atomic-weight-ratio map and DATAPATH are read. Useful when only AWRs are
// wanted.
func WithoutTableInfo() Option {
	return func(o *options) { o.withoutTables = true }
}

// XsDir is a parsed XSDIR file.
type XsDir struct {
	Filename string
	Datapath string
	AWRMap   map[string]float64

	// entries is keyed by the ZAID/SZAX prefix before the first ".".
	entries map[string][]XsInfo

	// lastLine holds the most recently read (but not yet consumed as a
	// directory-section entry) line while scanning for the "directory"
	// marker.
	lastLine string
}

// Parse reads an XSDIR file from r.
func Parse(r io.Reader, filename string, opts ...Option) (*XsDir, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	x := &XsDir{Filename: filename, AWRMap: make(map[string]float64), entries: make(map[string][]XsInfo)}

	br := bufio.NewReader(r)
	line, err := readLine(br)
	if err != nil {
		return nil, fmt.Errorf("reading first xsdir line: %w", err)
	}

	if m := datapathPattern.FindStringIndex(line); m != nil {
		x.Datapath = strings.TrimSpace(line[m[1]:])
		line, err = readLine(br)
		if err != nil {
			return nil, fmt.Errorf("reading line after DATAPATH: %w", err)
		}
	} else if dp, ok := os.LookupEnv("DATAPATH"); ok {
		x.Datapath = dp
	}

	if !awrPattern.MatchString(line) {
		return nil, &MissingDatapathHeaderError{Line: line}
	}

	if err := readAWRTable(br, x); err != nil {
		return nil, err
	}

	found := false
	// the "directory" marker may appear on the line already buffered by the
	// AWR-reading loop, or require scanning further lines.
	for {
		if directoryPattern.MatchString(x.lastLine) {
			found = true
			break
		}
		nl, err := readLine(br)
		if err != nil {
			break
		}
		x.lastLine = nl
	}
	if !found {
		return nil, &UnexpectedEOFError{}
	}

	if o.withoutTables {
		return x, nil
	}

	for {
		l, err := readLine(br)
		if err != nil {
			break
		}
		if strings.TrimSpace(l) == "" {
			continue
		}
		info, err := parseTableInfoLine(l)
		if err != nil {
			return nil, err
		}
		if !matchesFilter(info.TableID, o.ntyFilter) {
			continue
		}
		x.register(info)
	}

	return x, nil
}

func readAWRTable(br *bufio.Reader, x *XsDir) error {
	for {
		tok, err := readToken(br)
		if err != nil {
			// EOF here means the file ended inside (or right after) the AWR
			// table without ever reaching a "directory" marker; let the
			// caller's scan loop report that as UnexpectedEOFError.
			if err == io.EOF {
				x.lastLine = ""
				return nil
			}
			return fmt.Errorf("reading AWR table: %w", err)
		}
		if !zaidTokenPattern.MatchString(tok) {
			x.lastLine = tok
			return nil
		}
		awrTok, err := readToken(br)
		if err != nil {
			return fmt.Errorf("reading AWR value for %s: %w", tok, err)
		}
		awr, err := strconv.ParseFloat(awrTok, 64)
		if err != nil {
			return fmt.Errorf("parsing AWR value for %s: %w", tok, err)
		}
		x.AWRMap[tok] = awr
	}
}

func parseTableInfoLine(line string) (XsInfo, error) {
	if m := longDirPattern.FindStringSubmatch(line); m != nil {
		filetype, _ := strconv.Atoi(m[5])
		address, _ := strconv.Atoi(m[6])
		tablen, _ := strconv.Atoi(m[7])
		reclen, _ := strconv.Atoi(m[8])
		nent, _ := strconv.Atoi(m[9])
		awr, _ := strconv.ParseFloat(m[2], 64)
		temp, _ := strconv.ParseFloat(m[10], 64)
		return XsInfo{
			TableID: m[1], AWR: awr, Filename: m[3], AccessRoute: m[4],
			FileType: filetype, Address: address, TableLength: tablen,
			RecordLength: reclen, EntriesPerRecord: nent, Temperature: temp,
			HasPtable: strings.Contains(line, "ptable"),
		}, nil
	}
	if m := shortDirPattern.FindStringSubmatch(line); m != nil {
		filetype, _ := strconv.Atoi(m[5])
		address, _ := strconv.Atoi(m[6])
		tablen, _ := strconv.Atoi(m[7])
		awr, _ := strconv.ParseFloat(m[2], 64)
		return XsInfo{
			TableID: m[1], AWR: awr, Filename: m[3], AccessRoute: m[4],
			FileType: filetype, Address: address, TableLength: tablen,
		}, nil
	}
	return XsInfo{}, &InvalidTableInfoError{Line: line}
}

func matchesFilter(tableID string, ntys []identifier.NTY) bool {
	if len(ntys) == 0 {
		return true
	}
	class := identifier.ClassOf(tableID)
	for _, nty := range ntys {
		if re, ok := identifier.ClassRegex(nty); ok && re.MatchString(class) {
			return true
		}
	}
	return false
}

func (x *XsDir) register(info XsInfo) {
	zaid := info.TableID
	if i := strings.IndexByte(zaid, '.'); i >= 0 {
		zaid = zaid[:i]
	}
	x.entries[zaid] = append(x.entries[zaid], info)
}

// All returns every registered directory entry, in no particular order.
func (x *XsDir) All() []XsInfo {
	all := make([]XsInfo, 0, len(x.entries))
	for _, infos := range x.entries {
		all = append(all, infos...)
	}
	return all
}

// Get returns the directory entry for id (a bare ZAID prefix or a full
// ZAID/SZAX table identifier) restricted to nty. If id has no "." (a bare
// ZAID), the first registered entry matching nty is returned.
func (x *XsDir) Get(id string, nty identifier.NTY) (XsInfo, error) {
	re, ok := identifier.ClassRegex(nty)
	if !ok {
		return XsInfo{}, &NuclideNotFoundError{ID: id, NTY: nty}
	}

	dotPos := strings.IndexByte(id, '.')
	if dotPos < 0 {
		for _, info := range x.entries[id] {
			if strings.HasPrefix(info.TableID, id+".") && re.MatchString(identifier.ClassOf(info.TableID)) {
				return info, nil
			}
		}
		return XsInfo{}, &NuclideNotFoundError{ID: id, NTY: nty}
	}

	zaid := id[:dotPos]
	for _, info := range x.entries[zaid] {
		if info.TableID == id {
			return info, nil
		}
	}
	return XsInfo{}, &NuclideNotFoundError{ID: id, NTY: nty}
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if line == "" && err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func readToken(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	skipping := true
	for {
		r, _, err := br.ReadRune()
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
