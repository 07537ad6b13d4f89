package pool

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func writeDosimetryAceFile(t *testing.T, id string) string {
	t.Helper()
	xss := []string{"102", "1", "0", "2", "1.0", "2.0", "0.01", "0.02"}
	nxs, jxs := buildNXSJXS(map[int]int64{0: int64(len(xss)), 3: 1}, map[int]int64{2: 1, 5: 2, 6: 3})

	content := id + " 1.0 2.5301E-08 03/01/10\n" +
		id + " comment\n" + "line3\n" + "line4\n" + "comment1\n" + "comment2\n" +
		nxs + "\n" + jxs + "\n" + strings.Join(xss, " ") + "\n"

	path := filepath.Join(t.TempDir(), "ace.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGetOrDecodeCachesResult(t *testing.T) {
	path := writeDosimetryAceFile(t, "26056.24y")
	p := New()

	n1, err := p.GetOrDecode(path, "26056.24y", 0)
	require.NoError(t, err)
	n2, err := p.GetOrDecode(path, "26056.24y", 0)
	require.NoError(t, err)
	assert.Same(t, n1, n2)
}

func TestGetOrDecodeConcurrentCallsCollapse(t *testing.T) {
	path := writeDosimetryAceFile(t, "26056.24y")
	p := New()

	const n = 20
	results := make([]interface{}, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			nuc, err := p.GetOrDecode(path, "26056.24y", 0)
			require.NoError(t, err)
			results[i] = nuc
		}()
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestGetOrDecodeAllResolvesIndependentIdentifiers(t *testing.T) {
	pathA := writeDosimetryAceFile(t, "26056.24y")
	pathB := writeDosimetryAceFile(t, "1001.24y")
	p := New()

	results, err := p.GetOrDecodeAll([]Request{
		{Path: pathA, ID: "26056.24y"},
		{Path: pathB, ID: "1001.24y"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "26056.24y", results[0].ID)
	assert.Equal(t, "1001.24y", results[1].ID)
}

func TestGetOrDecodeAllPropagatesError(t *testing.T) {
	pathA := writeDosimetryAceFile(t, "26056.24y")
	p := New()

	_, err := p.GetOrDecodeAll([]Request{
		{Path: pathA, ID: "26056.24y"},
		{Path: pathA, ID: "99999.24y"},
	})
	require.Error(t, err)
}
