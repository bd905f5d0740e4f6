package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaveOnlyWritesWhenContentChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	assert.Nil(t, os.WriteFile(path, []byte("<html></html>"), 0644))

	doc, err := LoadDocument(path)
	assert.Nil(t, err)
	assert.False(t, doc.Changed())

	wrote, err := doc.Save()
	assert.Nil(t, err)
	assert.False(t, wrote)

	doc.Content = "<html><head></head></html>"
	assert.True(t, doc.Changed())

	wrote, err = doc.Save()
	assert.Nil(t, err)
	assert.True(t, wrote)
	assert.False(t, doc.Changed())

	data, err := os.ReadFile(path)
	assert.Nil(t, err)
	assert.Equal(t, "<html><head></head></html>", string(data))
}

func TestRevertRestoresLoadedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	assert.Nil(t, os.WriteFile(path, []byte("original"), 0644))

	doc, err := LoadDocument(path)
	assert.Nil(t, err)

	doc.Content = "mutated"
	doc.Revert()
	assert.Equal(t, "original", doc.Content)
	assert.False(t, doc.Changed())
}

func TestLoadDocumentMissingFile(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "nope.html"))
	assert.Error(t, err)
}
