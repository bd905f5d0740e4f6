package checks

import (
	"path/filepath"
	"strings"

	"github.com/akmcyber/sitepatch/core"
)

// IsHTMLFile reports whether a path looks like a production page.
// Backups of earlier runs are never part of the corpus.
func IsHTMLFile(path string) bool {
	if strings.HasSuffix(path, ".backup") {
		return false
	}
	return strings.EqualFold(filepath.Ext(path), ".html")
}

// InitializeChecks returns every audit in its default configuration.
func InitializeChecks() []core.DocumentCheck {
	return []core.DocumentCheck{
		SeoCheck{},
		MenuCheck{},
		SyntaxCheck{},
	}
}

// ChecksByName filters the default audits down to the named ones; "all"
// or an empty list keeps everything.
func ChecksByName(names ...string) []core.DocumentCheck {
	all := InitializeChecks()
	if len(names) == 0 {
		return all
	}
	var selected []core.DocumentCheck
	for _, check := range all {
		for _, name := range names {
			if name == "all" || name == check.Name() {
				selected = append(selected, check)
				break
			}
		}
	}
	return selected
}
