package xsdir

import (
	"strings"
	"testing"

	"github.com/sohnishi/acexs/identifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLong = `atomic weight ratios
1001 0.999167 8016 15.857510
directory
1001.80c   0.999167  h1.710nc  0   1  0  6553   1  0  2.5301E-08 ptable
8016.80c  15.857510  o16.710nc 0   2  0  3291   1  0  2.5301E-08
`

func TestParseBasicDirectory(t *testing.T) {
	x, err := Parse(strings.NewReader(sampleLong), "xsdir")
	require.NoError(t, err)

	assert.InDelta(t, 0.999167, x.AWRMap["1001"], 1e-9)
	assert.InDelta(t, 15.857510, x.AWRMap["8016"], 1e-9)

	info, err := x.Get("1001.80c", identifier.ContinuousNeutron)
	require.NoError(t, err)
	assert.Equal(t, "h1.710nc", info.Filename)
	assert.True(t, info.HasPtable)
	assert.Equal(t, 6553, info.TableLength)

	info2, err := x.Get("1001", identifier.ContinuousNeutron)
	require.NoError(t, err)
	assert.Equal(t, "1001.80c", info2.TableID)
}

func TestParseMissingAWRHeaderFails(t *testing.T) {
	_, err := Parse(strings.NewReader("not the right header\n"), "xsdir")
	require.Error(t, err)
	var hdrErr *MissingDatapathHeaderError
	require.ErrorAs(t, err, &hdrErr)
}

func TestParseMissingDirectoryMarkerFails(t *testing.T) {
	src := "atomic weight ratios\n1001 0.999167\n"
	_, err := Parse(strings.NewReader(src), "xsdir")
	require.Error(t, err)
	var eofErr *UnexpectedEOFError
	require.ErrorAs(t, err, &eofErr)
}

func TestParseDatapathLine(t *testing.T) {
	src := "datapath = /opt/data\n" + sampleLong
	x, err := Parse(strings.NewReader(src), "xsdir")
	require.NoError(t, err)
	assert.Equal(t, "/opt/data", x.Datapath)
}

func TestGetNotFound(t *testing.T) {
	x, err := Parse(strings.NewReader(sampleLong), "xsdir")
	require.NoError(t, err)

	_, err = x.Get("9999.80c", identifier.ContinuousNeutron)
	require.Error(t, err)
	var notFound *NuclideNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestWithNTYFilterExcludesOtherClasses(t *testing.T) {
	x, err := Parse(strings.NewReader(sampleLong), "xsdir", WithNTYFilter(identifier.Dosimetry))
	require.NoError(t, err)
	_, err = x.Get("1001.80c", identifier.ContinuousNeutron)
	require.Error(t, err)
}

func TestWithoutTableInfoSkipsDirectory(t *testing.T) {
	x, err := Parse(strings.NewReader(sampleLong), "xsdir", WithoutTableInfo())
	require.NoError(t, err)
	_, err = x.Get("1001.80c", identifier.ContinuousNeutron)
	require.Error(t, err)
	assert.InDelta(t, 0.999167, x.AWRMap["1001"], 1e-9)
}
