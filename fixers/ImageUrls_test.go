package fixers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akmcyber/sitepatch/config"
	"github.com/akmcyber/sitepatch/core"
)

func defaultImageFixer() *ImageUrlsFixer {
	return NewImageUrlsFixer(config.Default().Images)
}

func TestImageUrlsFixerRewritesCssBackgrounds(t *testing.T) {
	page := `<section style="background-image: url('assets/hero-banner.png')"></section>`
	doc := core.NewDocument("index.html", page)

	outcome, err := defaultImageFixer().Apply(doc)
	assert.Nil(t, err)
	assert.Equal(t, core.OutcomeFixed, outcome)
	assert.Contains(t, doc.Content, `url('assets/optimized/hero-banner-large.jpg')`)
	assert.NotContains(t, doc.Content, "hero-banner.png")
}

func TestImageUrlsFixerTurnsCardImagesIntoPictureElements(t *testing.T) {
	page := `<img src="assets/industries/industries-energy.png" alt="Energy sector" class="card-img">`
	doc := core.NewDocument("industries.html", page)

	outcome, err := defaultImageFixer().Apply(doc)
	assert.Nil(t, err)
	assert.Equal(t, core.OutcomeFixed, outcome)
	assert.Contains(t, doc.Content, "<picture>")
	assert.Contains(t, doc.Content, "assets/optimized/industries-energy-large.jpg")
	assert.Contains(t, doc.Content, "assets/optimized/industries-energy-mobile.jpg 640w")
	assert.Contains(t, doc.Content, `loading="lazy" alt="Energy sector" class="card-img">`)
}

func TestImageUrlsFixerSwapsPhotosForPlainJpegs(t *testing.T) {
	page := `<img src="assets/industries/industries-mining-photo.png" alt="Mining">`
	doc := core.NewDocument("industry-mining.html", page)

	outcome, err := defaultImageFixer().Apply(doc)
	assert.Nil(t, err)
	assert.Equal(t, core.OutcomeFixed, outcome)
	assert.Contains(t, doc.Content, `<img src="assets/optimized/industries-mining-photo.jpg" loading="lazy" alt="Mining">`)
	assert.NotContains(t, doc.Content, "<picture>")
}

func TestImageUrlsFixerPointsIndustryHeroAtPageImage(t *testing.T) {
	page := `<section style="background-image: url('assets/industries/industries-placeholder.png')"></section>`
	doc := core.NewDocument("industry-energy-oil-gas.html", page)

	outcome, err := defaultImageFixer().Apply(doc)
	assert.Nil(t, err)
	assert.Equal(t, core.OutcomeFixed, outcome)
	assert.Contains(t, doc.Content, `background-image: url('assets/optimized/industries-energy-large.jpg')`)
}

func TestImageUrlsFixerLeavesRewrittenPagesAlone(t *testing.T) {
	page := `<section style="background-image: url('assets/optimized/hero-banner-large.jpg')"></section>`
	doc := core.NewDocument("index.html", page)

	outcome, err := defaultImageFixer().Apply(doc)
	assert.Nil(t, err)
	assert.Equal(t, core.OutcomeAlreadyOK, outcome)
}
