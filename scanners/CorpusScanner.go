package scanners

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gobwas/glob"
)

// Directories that never contain production pages.
var skipDirNames = map[string]bool{
	"node_modules": true,
	"assets":       true,
}

// CorpusScanner enumerates the production documents under a site root:
// recursive walk, extension filter, denylist substrings, optional glob
// includes and an optional modification-time cutoff. The result is
// sorted so every run visits documents in the same order.
type CorpusScanner struct {
	Extensions []string
	Deny       []string
	Includes   []glob.Glob
	Since      time.Time
}

func NewCorpusScanner(extensions, deny, includes []string) (*CorpusScanner, error) {
	s := &CorpusScanner{
		Extensions: extensions,
		Deny:       deny,
	}
	if len(s.Extensions) == 0 {
		s.Extensions = []string{".html"}
	}
	for _, pattern := range includes {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad include pattern '%s': %w", pattern, err)
		}
		s.Includes = append(s.Includes, g)
	}
	return s, nil
}

// Discover returns the sorted corpus under root. An empty corpus is not
// an error; callers print zero counts.
func (s *CorpusScanner) Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("site root '%s' does not exist", root)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("'%s' is not a directory", root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || skipDirNames[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if !s.wants(path, name) {
			return nil
		}
		if !s.Since.IsZero() {
			fi, statErr := d.Info()
			if statErr != nil {
				return statErr
			}
			if fi.ModTime().Before(s.Since) {
				return nil
			}
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

func (s *CorpusScanner) wants(path, name string) bool {
	if strings.HasSuffix(name, ".backup") {
		return false
	}
	ext := filepath.Ext(name)
	matched := false
	for _, want := range s.Extensions {
		if strings.EqualFold(ext, want) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	for _, deny := range s.Deny {
		if strings.Contains(name, deny) {
			return false
		}
	}
	if len(s.Includes) > 0 {
		for _, g := range s.Includes {
			if g.Match(filepath.ToSlash(path)) || g.Match(name) {
				return true
			}
		}
		return false
	}
	return true
}
