package mirror

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexHTML = `<html><body>
<a href="../">Parent Directory</a>
<a href="92238.800nc">92238.800nc</a>
<a href="1001.800nc">1001.800nc</a>
<a href="README.txt">README.txt</a>
<a href="?C=N;O=D">sort by name</a>
</body></html>`

func newIndexServer(t *testing.T, fileBodies map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/tables/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, indexHTML)
	})
	for name, body := range fileBodies {
		body := body
		mux.HandleFunc("/tables/"+name, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Length", fmt.Sprintf("%d", len(body)))
			if r.Method == http.MethodHead {
				return
			}
			fmt.Fprint(w, body)
		})
	}
	return httptest.NewServer(mux)
}

func TestListIndexExcludesNavigationLinks(t *testing.T) {
	srv := newIndexServer(t, nil)
	defer srv.Close()

	entries, err := ListIndex(srv.Client(), srv.URL+"/tables/")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.ElementsMatch(t, []string{"92238.800nc", "1001.800nc", "README.txt"}, names)
}

func TestMirrorDownloadsAcceptedFiles(t *testing.T) {
	srv := newIndexServer(t, map[string]string{
		"92238.800nc": "neutron table data",
		"1001.800nc":  "hydrogen table data",
		"README.txt":  "not an ace table",
	})
	defer srv.Close()

	dest := t.TempDir()
	isAceTable := func(name string) bool { return strings.HasSuffix(name, "nc") }

	written, err := Mirror(srv.Client(), srv.URL+"/tables/", dest, isAceTable)
	require.NoError(t, err)
	assert.Len(t, written, 2)

	data, err := os.ReadFile(filepath.Join(dest, "92238.800nc"))
	require.NoError(t, err)
	assert.Equal(t, "neutron table data", string(data))

	_, err = os.Stat(filepath.Join(dest, "README.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestMirrorSkipsFilesAlreadyUpToDate(t *testing.T) {
	body := "neutron table data"
	srv := newIndexServer(t, map[string]string{"92238.800nc": body})
	defer srv.Close()

	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dest, "92238.800nc"), []byte(body), 0o644))

	only92238 := func(name string) bool { return name == "92238.800nc" }
	written, err := Mirror(srv.Client(), srv.URL+"/tables/", dest, only92238)
	require.NoError(t, err)
	assert.Empty(t, written)
}

func TestMirrorRedownloadsWhenSizeDiffers(t *testing.T) {
	srv := newIndexServer(t, map[string]string{"92238.800nc": "new longer table data"})
	defer srv.Close()

	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dest, "92238.800nc"), []byte("stale"), 0o644))

	only92238 := func(name string) bool { return name == "92238.800nc" }
	written, err := Mirror(srv.Client(), srv.URL+"/tables/", dest, only92238)
	require.NoError(t, err)
	require.Len(t, written, 1)

	data, err := os.ReadFile(filepath.Join(dest, "92238.800nc"))
	require.NoError(t, err)
	assert.Equal(t, "new longer table data", string(data))
}

func TestListIndexFetchErrorOnNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := ListIndex(srv.Client(), srv.URL+"/missing/")
	require.Error(t, err)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
}
