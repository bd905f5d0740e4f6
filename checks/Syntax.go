package checks

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/akmcyber/sitepatch/core"
)

var (
	scriptBlockRe = regexp.MustCompile(`(?s)<script[^>]*>(.*?)</script>`)
	strayBraceRe  = regexp.MustCompile(`(?s)observer\.observe\(document\.body[^;]+;\s*\n\s*}\s*\n\s*}`)
)

// SyntaxCheck flags likely-broken inline scripts. Brace counting is a
// heuristic, not a parse: a mismatch means "likely malformed" and is
// reported as an issue.
type SyntaxCheck struct{}

func (SyntaxCheck) Name() string {
	return "syntax"
}

func (SyntaxCheck) Supports(path string) bool {
	return IsHTMLFile(path)
}

func (c SyntaxCheck) Check(path string, site string, content string) ([]core.Finding, error) {
	var findings []core.Finding

	if strayBraceRe.MatchString(content) {
		findings = append(findings, core.Finding{
			Name:     "stray-brace-after-observer",
			Type:     "Syntax",
			Category: "script",
			Properties: map[string]interface{}{
				"detail": "stray closing brace '}' after observer.observe",
			},
			Path: path,
			Site: site,
		})
	}

	for i, block := range scriptBlockRe.FindAllStringSubmatch(content, -1) {
		script := block[1]
		open := strings.Count(script, "{")
		closed := strings.Count(script, "}")
		if open != closed {
			findings = append(findings, core.Finding{
				Name:     "unbalanced-braces",
				Type:     "Syntax",
				Category: "script",
				Properties: map[string]interface{}{
					"block":  i + 1,
					"detail": fmt.Sprintf("mismatched braces (%d open, %d close)", open, closed),
				},
				Path: path,
				Site: site,
			})
		}
	}

	return findings, nil
}
