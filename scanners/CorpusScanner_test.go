package scanners

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func writeFiles(t *testing.T, root string, names ...string) {
	for _, name := range names {
		path := filepath.Join(root, name)
		assert.Nil(t, os.MkdirAll(filepath.Dir(path), os.ModePerm))
		assert.Nil(t, os.WriteFile(path, []byte("<html></html>"), 0644))
	}
}

func basenames(paths []string) []string {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	return names
}

func TestDiscoverReturnsSortedHTMLFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "zebra.html", "about.html", "index.html", "styles.css", "notes.txt")

	scanner, err := NewCorpusScanner(nil, nil, nil)
	assert.Nil(t, err)

	paths, err := scanner.Discover(root)
	assert.Nil(t, err)
	assert.Equal(t, []string{"about.html", "index.html", "zebra.html"}, basenames(paths))
}

func TestDiscoverExcludesBackupsAndDeniedNames(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "index.html", "index.html.backup", "wireframe-home.html", "example-page.html")

	scanner, err := NewCorpusScanner([]string{".html"}, []string{"wireframe", "example"}, nil)
	assert.Nil(t, err)

	paths, err := scanner.Discover(root)
	assert.Nil(t, err)
	assert.Equal(t, []string{"index.html"}, basenames(paths))
}

func TestDiscoverSkipsAssetAndHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"index.html",
		"assets/fragment.html",
		"node_modules/pkg/readme.html",
		".git/info.html",
		"pages/contact.html")

	scanner, err := NewCorpusScanner(nil, nil, nil)
	assert.Nil(t, err)

	paths, err := scanner.Discover(root)
	assert.Nil(t, err)
	assert.Equal(t, []string{"index.html", "contact.html"}, basenames(paths))
}

func TestDiscoverHonorsIncludeGlobs(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "industry-mining.html", "industry-energy.html", "about.html")

	scanner, err := NewCorpusScanner(nil, nil, []string{"industry-*.html"})
	assert.Nil(t, err)

	paths, err := scanner.Discover(root)
	assert.Nil(t, err)
	assert.Equal(t, []string{"industry-energy.html", "industry-mining.html"}, basenames(paths))
}

func TestDiscoverHonorsSinceCutoff(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "old.html", "new.html")

	past := time.Now().Add(-48 * time.Hour)
	assert.Nil(t, os.Chtimes(filepath.Join(root, "old.html"), past, past))

	scanner, err := NewCorpusScanner(nil, nil, nil)
	assert.Nil(t, err)
	scanner.Since = time.Now().Add(-time.Hour)

	paths, err := scanner.Discover(root)
	assert.Nil(t, err)
	assert.Equal(t, []string{"new.html"}, basenames(paths))
}

func TestDiscoverEmptyCorpusIsNotAnError(t *testing.T) {
	scanner, err := NewCorpusScanner(nil, nil, nil)
	assert.Nil(t, err)

	paths, err := scanner.Discover(t.TempDir())
	assert.Nil(t, err)
	assert.Empty(t, paths)
}

func TestDiscoverRejectsMissingRoot(t *testing.T) {
	scanner, err := NewCorpusScanner(nil, nil, nil)
	assert.Nil(t, err)

	_, err = scanner.Discover(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
