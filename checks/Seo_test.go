package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akmcyber/sitepatch/core"
)

const seoCompletePage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Industrial Key Management</title>
    <meta name="description" content="Protect operational technology networks with managed cryptographic key distribution and rotation.">
    <meta property="og:title" content="Industrial Key Management">
    <meta property="og:description" content="Managed key distribution for OT networks.">
    <meta property="og:image" content="assets/og-image.png">
    <meta name="twitter:card" content="summary_large_image">
    <link rel="canonical" href="https://example.com/">
    <script type="application/ld+json">{"@context": "https://schema.org"}</script>
</head>
<body>
    <h1>Industrial Key Management</h1>
    <img src="assets/hero.png" alt="Control room">
</body>
</html>`

func findingNames(findings []core.Finding) []string {
	names := make([]string, 0, len(findings))
	for _, f := range findings {
		names = append(names, f.Name)
	}
	return names
}

func TestSeoCheckPassesCompletePage(t *testing.T) {
	findings, err := SeoCheck{}.Check("index.html", "site", seoCompletePage)
	assert.Nil(t, err)
	assert.Empty(t, findings)
}

func TestSeoCheckFlagsEmptyPage(t *testing.T) {
	findings, err := SeoCheck{}.Check("empty.html", "site", "<html><body></body></html>")
	assert.Nil(t, err)

	names := findingNames(findings)
	assert.Contains(t, names, "missing-title")
	assert.Contains(t, names, "missing-meta-description")
	assert.Contains(t, names, "missing-open-graph")
	assert.Contains(t, names, "missing-twitter-card")
	assert.Contains(t, names, "missing-canonical")
	assert.Contains(t, names, "missing-viewport")
	assert.Contains(t, names, "missing-charset")
	assert.Contains(t, names, "no-h1")
	assert.Contains(t, names, "missing-structured-data")
}

func TestSeoCheckFlagsShortMetaDescription(t *testing.T) {
	page := `<meta name="description" content="Too short">`
	findings, err := SeoCheck{}.Check("page.html", "site", page)
	assert.Nil(t, err)

	names := findingNames(findings)
	assert.Contains(t, names, "meta-description-length")
	assert.NotContains(t, names, "missing-meta-description")
}

func TestSeoCheckFlagsMultipleH1(t *testing.T) {
	page := "<h1>First</h1><h1>Second <span>heading</span></h1>"
	findings, err := SeoCheck{}.Check("page.html", "site", page)
	assert.Nil(t, err)

	for _, f := range findings {
		if f.Name == "multiple-h1" {
			assert.Equal(t, 2, f.Properties["count"])
			assert.Equal(t, "First | Second heading", f.Properties["headings"])
			return
		}
	}
	t.Fatal("expected a multiple-h1 finding")
}

func TestSeoCheckCountsImagesWithoutAlt(t *testing.T) {
	page := `<img src="a.png"><img src="b.png" alt="b"><img src="c.png">`
	findings, err := SeoCheck{}.Check("page.html", "site", page)
	assert.Nil(t, err)

	for _, f := range findings {
		if f.Name == "images-missing-alt" {
			assert.Equal(t, 2, f.Properties["count"])
			return
		}
	}
	t.Fatal("expected an images-missing-alt finding")
}

func TestSeoCheckSkipsNonHTMLFiles(t *testing.T) {
	assert.False(t, SeoCheck{}.Supports("styles.css"))
	assert.False(t, SeoCheck{}.Supports("index.html.backup"))
	assert.True(t, SeoCheck{}.Supports("index.html"))
}
