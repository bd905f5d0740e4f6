package core

import (
	"fmt"
	"os"
)

// Document is one HTML page held wholesale in memory. Content is mutated
// in place by fixers; Save only touches the file when the bytes differ
// from what was loaded.
type Document struct {
	Path    string
	Content string

	loaded string
	mode   os.FileMode
}

func LoadDocument(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat document %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	return &Document{
		Path:    path,
		Content: string(data),
		loaded:  string(data),
		mode:    info.Mode().Perm(),
	}, nil
}

// NewDocument builds an in-memory document that was never read from
// disk, e.g. a page about to be generated.
func NewDocument(path, content string) *Document {
	return &Document{Path: path, Content: content, mode: 0644}
}

func (d *Document) Changed() bool {
	return d.Content != d.loaded
}

// Revert discards any mutation and restores the loaded bytes.
func (d *Document) Revert() {
	d.Content = d.loaded
}

// Save writes the document back only if it changed. Returns true when a
// write happened.
func (d *Document) Save() (bool, error) {
	if !d.Changed() {
		return false, nil
	}
	if err := os.WriteFile(d.Path, []byte(d.Content), d.mode); err != nil {
		return false, fmt.Errorf("failed to write document %s: %w", d.Path, err)
	}
	d.loaded = d.Content
	return true, nil
}
