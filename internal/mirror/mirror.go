// Package mirror scrapes an HTML directory-index page (the kind served by
// a plain Apache/nginx autoindex) for linked files and mirrors the ones a
// caller-supplied filter accepts into a local directory, skipping files
// already present with a matching size.
package mirror

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Entry is one link discovered on a directory-index page.
type Entry struct {
	Name string // link text / basename
	URL  string // absolute URL
}

// FetchError wraps a non-2xx HTTP response from indexURL or a file URL.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
}

// ListIndex fetches indexURL and returns every anchor link on the page,
// excluding parent-directory links ("..", "/") and same-page fragments.
// Relative hrefs are resolved against indexURL.
func ListIndex(client *http.Client, indexURL string) ([]Entry, error) {
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(indexURL)
	if err != nil {
		return nil, fmt.Errorf("fetching index %s: %w", indexURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: indexURL, StatusCode: resp.StatusCode}
	}

	base, err := url.Parse(indexURL)
	if err != nil {
		return nil, fmt.Errorf("parsing index URL %s: %w", indexURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing index page %s: %w", indexURL, err)
	}

	var entries []Entry
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		if isSkippableHref(href) {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		entries = append(entries, Entry{
			Name: strings.TrimSuffix(filepath.Base(abs.Path), "/"),
			URL:  abs.String(),
		})
	})

	return entries, nil
}

func isSkippableHref(href string) bool {
	switch {
	case href == "", href == "/", href == "..", href == "../":
		return true
	case strings.HasPrefix(href, "#"):
		return true
	case strings.HasPrefix(href, "?"):
		return true
	default:
		return false
	}
}

// downloadFile streams fileURL's body to destPath, returning the number of
// bytes written.
func downloadFile(client *http.Client, fileURL, destPath string) (int64, error) {
	resp, err := client.Get(fileURL)
	if err != nil {
		return 0, fmt.Errorf("fetching %s: %w", fileURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, &FetchError{URL: fileURL, StatusCode: resp.StatusCode}
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return 0, fmt.Errorf("creating directory for %s: %w", destPath, err)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", destPath, err)
	}
	defer f.Close()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		return n, fmt.Errorf("writing %s: %w", destPath, err)
	}
	return n, nil
}

// remoteSize issues a HEAD request for fileURL and returns its
// Content-Length, or -1 if the server doesn't report one.
func remoteSize(client *http.Client, fileURL string) (int64, error) {
	resp, err := client.Head(fileURL)
	if err != nil {
		return -1, fmt.Errorf("HEAD %s: %w", fileURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return -1, &FetchError{URL: fileURL, StatusCode: resp.StatusCode}
	}
	return resp.ContentLength, nil
}

// Mirror lists indexURL, downloads every entry for which accept(name)
// returns true into destDir, and returns the local paths of the files it
// actually wrote. An entry already present locally with a size matching
// the remote Content-Length is skipped rather than re-downloaded.
func Mirror(client *http.Client, indexURL, destDir string, accept func(name string) bool) ([]string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	entries, err := ListIndex(client, indexURL)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, e := range entries {
		if !accept(e.Name) {
			continue
		}
		destPath := filepath.Join(destDir, e.Name)

		if info, err := os.Stat(destPath); err == nil {
			if size, sizeErr := remoteSize(client, e.URL); sizeErr == nil && size >= 0 && size == info.Size() {
				continue
			}
		}

		if _, err := downloadFile(client, e.URL, destPath); err != nil {
			return written, err
		}
		written = append(written, destPath)
	}

	return written, nil
}
