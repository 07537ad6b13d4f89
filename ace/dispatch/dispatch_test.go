package dispatch

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohnishi/acexs/identifier"
	"github.com/sohnishi/acexs/reaction"
)

// buildNXSJXS renders fixed-size NXS/JXS arrays as space-joined strings,
// with the given field overrides applied by index.
func buildNXSJXS(nxsOverrides, jxsOverrides map[int]int64) (string, string) {
	nxs := make([]string, 16)
	for i := range nxs {
		nxs[i] = "0"
	}
	for i, v := range nxsOverrides {
		nxs[i] = strconv.FormatInt(v, 10)
	}
	jxs := make([]string, 32)
	for i := range jxs {
		jxs[i] = "0"
	}
	for i, v := range jxsOverrides {
		jxs[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(nxs, " "), strings.Join(jxs, " ")
}

func writeAceFile(t *testing.T, id string, xssTokens []string, nxsOverrides, jxsOverrides map[int]int64) string {
	t.Helper()
	nxsOverrides[0] = int64(len(xssTokens))
	nxs, jxs := buildNXSJXS(nxsOverrides, jxsOverrides)

	content := id + " 1.0 2.5301E-08 03/01/10\n" +
		id + " comment\n" +
		"line3\n" +
		"line4\n" +
		"comment1\n" +
		"comment2\n" +
		nxs + "\n" + jxs + "\n" +
		strings.Join(xssTokens, " ") + "\n"

	path := filepath.Join(t.TempDir(), "ace.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDecodeDosimetryTable(t *testing.T) {
	xss := []string{"102", "1", "0", "2", "1.0", "2.0", "0.01", "0.02"}
	path := writeAceFile(t, "26056.24y", xss,
		map[int]int64{3: 1},
		map[int]int64{2: 1, 5: 2, 6: 3})

	n, err := Decode(path, "26056.24y", 0)
	require.NoError(t, err)
	assert.Equal(t, identifier.Dosimetry, n.NTY)
	require.NotNil(t, n.Dosimetry)

	mt102 := n.Dosimetry.Reactions[reaction.FromMT(102)]
	require.NotNil(t, mt102)
	assert.Equal(t, []float64{0.01, 0.02}, mt102.XSValues())
}

func TestDecodeNotImplementedForThermal(t *testing.T) {
	path := writeAceFile(t, "26056.24t", []string{"0.0"}, map[int]int64{}, map[int]int64{})

	_, err := Decode(path, "26056.24t", 0)
	require.Error(t, err)
	var notImpl *NotImplementedError
	require.ErrorAs(t, err, &notImpl)
	assert.Equal(t, identifier.Thermal, notImpl.NTY)
}

func TestDecodeTrailingDataError(t *testing.T) {
	xss := []string{"102", "1", "0", "2", "1.0", "2.0", "0.01", "0.02"}
	path := writeAceFile(t, "26056.24y", xss,
		map[int]int64{3: 1},
		map[int]int64{2: 1, 5: 2, 6: 3})

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("garbage\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = Decode(path, "26056.24y", 0)
	require.Error(t, err)
	var trailing *TrailingDataError
	require.ErrorAs(t, err, &trailing)
}

func TestDecodeNuclideNotFound(t *testing.T) {
	xss := []string{"102", "1", "0", "2", "1.0", "2.0", "0.01", "0.02"}
	path := writeAceFile(t, "26056.24y", xss,
		map[int]int64{3: 1},
		map[int]int64{2: 1, 5: 2, 6: 3})

	_, err := Decode(path, "99999.24y", 0)
	require.Error(t, err)
}
