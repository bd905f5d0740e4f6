package fixers

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/akmcyber/sitepatch/checks"
	"github.com/akmcyber/sitepatch/config"
	"github.com/akmcyber/sitepatch/core"
)

var industryBackgroundRe = regexp.MustCompile(`background-image:\s*url\('assets/industries/industries-[^']+\.png'\)`)

// ImageUrlsFixer points pages at the optimized image variants: CSS
// backgrounds move to the -large jpg, card and content images become
// picture elements with a srcset, photos get a plain jpg swap.
type ImageUrlsFixer struct {
	Rewrites config.ImageRewrites
}

func NewImageUrlsFixer(rewrites config.ImageRewrites) *ImageUrlsFixer {
	return &ImageUrlsFixer{Rewrites: rewrites}
}

func (f *ImageUrlsFixer) Name() string {
	return "images"
}

func (f *ImageUrlsFixer) Supports(path string) bool {
	return checks.IsHTMLFile(path)
}

func (f *ImageUrlsFixer) Apply(doc *core.Document) (core.Outcome, error) {
	before := doc.Content

	doc.Content = f.rewriteBackgrounds(doc.Content)
	doc.Content = f.rewriteCardImages(doc.Content)
	doc.Content = f.rewritePhotos(doc.Content)
	doc.Content = f.rewriteContentImages(doc.Content)
	doc.Content = f.rewriteIndustryHero(doc.Path, doc.Content)

	if doc.Content != before {
		return core.OutcomeFixed, nil
	}
	return core.OutcomeAlreadyOK, nil
}

func (f *ImageUrlsFixer) rewriteBackgrounds(content string) string {
	for old, optimized := range f.Rewrites.Backgrounds {
		content = strings.ReplaceAll(content,
			fmt.Sprintf("url('assets/%s')", old),
			fmt.Sprintf("url('assets/%s')", optimized))
		content = strings.ReplaceAll(content,
			fmt.Sprintf(`url("assets/%s")`, old),
			fmt.Sprintf(`url("assets/%s")`, optimized))
	}
	return content
}

func (f *ImageUrlsFixer) rewriteCardImages(content string) string {
	for _, card := range f.Rewrites.Cards {
		pattern := regexp.MustCompile(fmt.Sprintf(`<img src="assets/industries/%s\.png"([^>]*)>`, regexp.QuoteMeta(card)))
		replacement := pictureMarkup(card, "(max-width: 768px) 100vw, (max-width: 1024px) 50vw, 33vw")
		content = pattern.ReplaceAllString(content, replacement)
	}
	return content
}

func (f *ImageUrlsFixer) rewritePhotos(content string) string {
	for _, photo := range f.Rewrites.Photos {
		pattern := regexp.MustCompile(fmt.Sprintf(`<img src="assets/industries/%s\.png"([^>]*)>`, regexp.QuoteMeta(photo)))
		replacement := fmt.Sprintf(`<img src="assets/optimized/%s.jpg" loading="lazy"$1>`, photo)
		content = pattern.ReplaceAllString(content, replacement)
	}
	return content
}

func (f *ImageUrlsFixer) rewriteContentImages(content string) string {
	for old, base := range f.Rewrites.Content {
		pattern := regexp.MustCompile(fmt.Sprintf(`<img src="assets/%s"([^>]*)>`, regexp.QuoteMeta(old)))
		content = pattern.ReplaceAllString(content, pictureMarkup(base, "100vw"))
	}
	return content
}

// rewriteIndustryHero swaps the industry page's hero background for the
// page's own optimized image, whatever industry png it pointed at.
func (f *ImageUrlsFixer) rewriteIndustryHero(path, content string) string {
	base, ok := f.Rewrites.IndustryPages[filepath.Base(path)]
	if !ok {
		return content
	}
	replacement := fmt.Sprintf("background-image: url('assets/optimized/%s-large.jpg')", base)
	return industryBackgroundRe.ReplaceAllString(content, replacement)
}

func pictureMarkup(base, sizes string) string {
	return fmt.Sprintf(`<picture>
                    <img src="assets/optimized/%[1]s-large.jpg"
                         srcset="assets/optimized/%[1]s-mobile.jpg 640w,
                                 assets/optimized/%[1]s-small.jpg 1280w,
                                 assets/optimized/%[1]s-medium.jpg 1920w,
                                 assets/optimized/%[1]s-large.jpg 2560w"
                         sizes="%[2]s"
                         loading="lazy"$1>
                </picture>`, base, sizes)
}
