package checks

import (
	"regexp"
	"strings"

	"github.com/akmcyber/sitepatch/core"
)

var (
	titleRe      = regexp.MustCompile(`<title>(.*?)</title>`)
	metaDescRe   = regexp.MustCompile(`<meta name="description" content="(.*?)"`)
	ogTitleRe    = regexp.MustCompile(`<meta property="og:title" content="(.*?)"`)
	ogDescRe     = regexp.MustCompile(`<meta property="og:description" content="(.*?)"`)
	ogImageRe    = regexp.MustCompile(`<meta property="og:image" content="(.*?)"`)
	twitterRe    = regexp.MustCompile(`<meta name="twitter:card" content="(.*?)"`)
	canonicalRe  = regexp.MustCompile(`<link rel="canonical" href="(.*?)"`)
	viewportRe   = regexp.MustCompile(`<meta name="viewport"`)
	charsetRe    = regexp.MustCompile(`<meta charset="(.*?)"`)
	h1Re         = regexp.MustCompile(`(?s)<h1[^>]*>(.*?)</h1>`)
	imgTagRe     = regexp.MustCompile(`<img[^>]*>`)
	stripTagsRe  = regexp.MustCompile(`<[^>]+>`)
	descLengthLo = 50
	descLengthHi = 160
)

// SeoCheck audits the metadata a page needs before the copywriter pass:
// title, meta description, social tags, canonical URL, heading
// structure, image alt text and structured data.
type SeoCheck struct{}

func (SeoCheck) Name() string {
	return "seo"
}

func (SeoCheck) Supports(path string) bool {
	return IsHTMLFile(path)
}

func (c SeoCheck) Check(path string, site string, content string) ([]core.Finding, error) {
	var findings []core.Finding
	add := func(name, category string, props map[string]interface{}) {
		findings = append(findings, core.Finding{
			Name:       name,
			Type:       "SEO",
			Category:   category,
			Properties: props,
			Path:       path,
			Site:       site,
		})
	}

	title := firstGroup(titleRe, content)
	if title == "" {
		add("missing-title", "metadata", nil)
	}

	desc := firstGroup(metaDescRe, content)
	if desc == "" {
		add("missing-meta-description", "metadata", nil)
	} else if len(desc) < descLengthLo || len(desc) > descLengthHi {
		add("meta-description-length", "metadata", map[string]interface{}{
			"length": len(desc),
		})
	}

	if firstGroup(ogTitleRe, content) == "" ||
		firstGroup(ogDescRe, content) == "" ||
		firstGroup(ogImageRe, content) == "" {
		add("missing-open-graph", "social", nil)
	}
	if firstGroup(twitterRe, content) == "" {
		add("missing-twitter-card", "social", nil)
	}
	if firstGroup(canonicalRe, content) == "" {
		add("missing-canonical", "metadata", nil)
	}
	if !viewportRe.MatchString(content) {
		add("missing-viewport", "metadata", nil)
	}
	if firstGroup(charsetRe, content) == "" {
		add("missing-charset", "metadata", nil)
	}

	h1s := h1Re.FindAllStringSubmatch(content, -1)
	switch {
	case len(h1s) == 0:
		add("no-h1", "headings", nil)
	case len(h1s) > 1:
		texts := make([]string, 0, 3)
		for i, m := range h1s {
			if i == 3 {
				break
			}
			texts = append(texts, strings.TrimSpace(stripTagsRe.ReplaceAllString(m[1], "")))
		}
		add("multiple-h1", "headings", map[string]interface{}{
			"count":    len(h1s),
			"headings": strings.Join(texts, " | "),
		})
	}

	missingAlt := 0
	for _, img := range imgTagRe.FindAllString(content, -1) {
		if !strings.Contains(img, "alt=") {
			missingAlt++
		}
	}
	if missingAlt > 0 {
		add("images-missing-alt", "images", map[string]interface{}{
			"count": missingAlt,
		})
	}

	if !strings.Contains(content, "application/ld+json") && !strings.Contains(content, "itemscope") {
		add("missing-structured-data", "metadata", nil)
	}

	return findings, nil
}

func firstGroup(re *regexp.Regexp, content string) string {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return m[1]
}
