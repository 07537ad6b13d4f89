package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything written to it. Several subcommands print directly to
// os.Stdout via fmt.Println/tablewriter rather than a cli.App writer, so
// this is the only way to assert on their output.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	rescue := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = rescue

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

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

func TestDecodeCommandPrintsSummary(t *testing.T) {
	path := writeDosimetryAceFile(t, "26056.24y")

	out := captureStdout(t, func() {
		app := application()
		err := app.Run([]string{"acexs", "decode", "--file", path, "--id", "26056.24y"})
		require.NoError(t, err)
	})

	assert.Contains(t, out, "26056.24y")
	assert.Contains(t, out, "dosimetry")
}

func TestFingerprintCommandPrintsDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	out := captureStdout(t, func() {
		app := application()
		err := app.Run([]string{"acexs", "fingerprint", "--file", path})
		require.NoError(t, err)
	})

	assert.NotEmpty(t, strings.TrimSpace(out))
}

func TestFingerprintCommandRejectsUnknownAlgorithm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	app := application()
	err := app.Run([]string{"acexs", "fingerprint", "--file", path, "--algo", "md5"})
	require.Error(t, err)
}

const sampleXsDir = `atomic weight ratios
1001 0.999167 8016 15.857510
directory
1001.80c   0.999167  h1.710nc  0   1  0  6553   1  0  2.5301E-08 ptable
8016.80c  15.857510  o16.710nc 0   2  0  3291   1  0  2.5301E-08
`

func TestXsdirListCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xsdir")
	require.NoError(t, os.WriteFile(path, []byte(sampleXsDir), 0o644))

	out := captureStdout(t, func() {
		app := application()
		err := app.Run([]string{"acexs", "xsdir", "list", "--file", path})
		require.NoError(t, err)
	})

	assert.Contains(t, out, "1001.80c")
	assert.Contains(t, out, "8016.80c")
}

func TestXsdirGetCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xsdir")
	require.NoError(t, os.WriteFile(path, []byte(sampleXsDir), 0o644))

	out := captureStdout(t, func() {
		app := application()
		err := app.Run([]string{"acexs", "xsdir", "get", "--file", path, "--id", "1001.80c", "--class", "c"})
		require.NoError(t, err)
	})

	assert.Contains(t, out, "1001.80c")
}

func TestMirrorCommandDownloadsMatchingFiles(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tables/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<a href="92238.800nc">92238.800nc</a>`)
	})
	mux.HandleFunc("/tables/92238.800nc", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "table data")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dest := t.TempDir()
	app := application()
	err := app.Run([]string{"acexs", "mirror", "--index", srv.URL + "/tables/", "--dest", dest})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dest, "92238.800nc"))
	require.NoError(t, err)
	assert.Equal(t, "table data", string(data))
}
