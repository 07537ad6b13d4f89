package header

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildNXSJXS() (string, string) {
	nxs := make([]string, 16)
	for i := range nxs {
		nxs[i] = "0"
	}
	nxs[0] = "2" // XSS length
	jxs := make([]string, 32)
	for i := range jxs {
		jxs[i] = "0"
	}
	return strings.Join(nxs, " "), strings.Join(jxs, " ")
}

func TestParseVersion1(t *testing.T) {
	nxs, jxs := buildNXSJXS()
	raw := "1001.80c 0.999167  2.5301E-08   03/01/10\n" +
		"1001.80c Hydrogen ENDF/B-VIII.0\n" +
		"line3\n" +
		"line4\n" +
		"comment1\n" +
		"comment2\n" +
		nxs + "\n" + jxs + "\n" +
		"1.0 2.0\n"

	h, xss, err := Parse(strings.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 1, h.Version)
	assert.Equal(t, "1001.80c", h.TableID)
	assert.Len(t, h.NXS, 16)
	assert.Len(t, h.JXS, 32)
	assert.Equal(t, int64(2), h.NXS[0])
	assert.Equal(t, 2, xss.Len())
	v, err := xss.Float(1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestParseVersion2(t *testing.T) {
	nxs, jxs := buildNXSJXS()
	raw := "2.0 0.999167 2.5301E-08 0\n" +
		"1001.800nc 0 1 2 0\n" +
		"header1\n" + "header2\n" + "header3\n" + "header4\n" +
		nxs + "\n" + jxs + "\n" +
		"1.0 2.0\n"

	h, xss, err := Parse(strings.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 2, h.Version)
	assert.Equal(t, "1001.800nc", h.TableID)
	assert.Equal(t, 2, xss.Len())
}

func TestParseUnsupportedVersion(t *testing.T) {
	_, _, err := Parse(strings.NewReader("not-a-zaid 1 2 3\n"))
	require.Error(t, err)
	var uve *UnsupportedVersionError
	assert.ErrorAs(t, err, &uve)
}
