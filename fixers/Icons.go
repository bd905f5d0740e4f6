package fixers

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/akmcyber/sitepatch/checks"
	"github.com/akmcyber/sitepatch/core"
)

var cardIconPatterns = []*regexp.Regexp{
	// Feature cards
	regexp.MustCompile(`(?s)(<div class="(?:fade-in-card )?bg-(?:white|black)(?: text-white)? shadow-lg p-6.*?<i data-lucide="[^"]*" class=")w-8 h-8`),
	// Solution cards
	regexp.MustCompile(`(?s)(<div class="(?:fade-in-card )?bg-white border-t-4 border-black shadow-lg p-8.*?<i data-lucide="[^"]*" class=")w-8 h-8`),
	// Remaining card contexts still on the oversized icons
	regexp.MustCompile(`(?s)(<div class="(?:fade-in-card )?(?:bg-(?:white|black)|.*?shadow-lg).*?p-6.*?<i data-lucide="[^"]*" class=")w-12 h-12`),
}

// Icons on the home page "How We Solve" section sit in a different
// wrapper than the other cards.
var homeSolutionIconRe = regexp.MustCompile(`(?s)(<div class="p-3 bg-gray-100 rounded-lg">\s*<i data-lucide="[^"]*" class=")w-8 h-8`)

// IconsFixer standardizes card icon sizes to w-10 h-10 in feature,
// solution and industry cards. Navigation, hero and testimonial icons
// stay as they are; the quote icon in particular keeps its size.
type IconsFixer struct{}

func (IconsFixer) Name() string {
	return "icons"
}

func (IconsFixer) Supports(path string) bool {
	return checks.IsHTMLFile(path)
}

func (f IconsFixer) Apply(doc *core.Document) (core.Outcome, error) {
	before := doc.Content

	for _, re := range cardIconPatterns {
		doc.Content = replaceCardIconSize(re, doc.Content)
	}
	if filepath.Base(doc.Path) == "index.html" {
		doc.Content = homeSolutionIconRe.ReplaceAllString(doc.Content, "${1}w-10 h-10")
	}

	if doc.Content != before {
		return core.OutcomeFixed, nil
	}
	return core.OutcomeAlreadyOK, nil
}

// replaceCardIconSize rewrites each match unless the icon is the quote
// glyph used by testimonials.
func replaceCardIconSize(re *regexp.Regexp, content string) string {
	return re.ReplaceAllStringFunc(content, func(match string) string {
		if strings.Contains(match, `data-lucide="quote"`) {
			return match
		}
		sub := re.FindStringSubmatch(match)
		if sub == nil {
			return match
		}
		return sub[1] + "w-10 h-10"
	})
}
