package images

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"

	"github.com/akmcyber/sitepatch/core"
)

// Variant is one responsive rendition of a source image.
type Variant struct {
	Suffix string
	Scale  float64
}

var responsiveVariants = []Variant{
	{Suffix: "-large", Scale: 1.0},
	{Suffix: "-medium", Scale: 0.75},
	{Suffix: "-small", Scale: 0.5},
	{Suffix: "-mobile", Scale: 0.25},
}

// heroPatterns selects the hero and background assets that get the full
// set of responsive variants.
var heroPatterns = []string{
	"assets/*hero*.png",
	"assets/*background*.png",
	"assets/future-of-ot-security.png",
	"assets/ready-to-secure.png",
	"assets/how-*.png",
	"assets/built-for-the-future.png",
}

// Optimizer compresses site PNGs into responsive JPEG variants plus an
// optimized PNG, written to OutputDir under the site root.
type Optimizer struct {
	OutputDir string
	Quality   int
}

func NewOptimizer(outputDir string) *Optimizer {
	return &Optimizer{OutputDir: outputDir, Quality: 85}
}

// OptimizeAll processes hero/background images and industry card images
// with the full variant set, and industry photos as single higher
// quality JPEGs.
func (o *Optimizer) OptimizeAll(root string) (core.Tally, error) {
	var tally core.Tally

	outputDir := filepath.Join(root, o.OutputDir)
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return tally, fmt.Errorf("failed to create output directory '%s': %w", outputDir, err)
	}

	fmt.Println("=== Processing hero and background images ===")
	for _, pattern := range heroPatterns {
		paths, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return tally, err
		}
		for _, path := range paths {
			tally.Add(o.optimizeOne(path, outputDir))
		}
	}

	fmt.Println("=== Processing industry card images ===")
	cards, err := filepath.Glob(filepath.Join(root, "assets/industries/industries-*.png"))
	if err != nil {
		return tally, err
	}
	for _, path := range cards {
		if strings.HasSuffix(path, "-photo.png") {
			continue
		}
		tally.Add(o.optimizeOne(path, outputDir))
	}

	fmt.Println("=== Processing industry photos ===")
	photos, err := filepath.Glob(filepath.Join(root, "assets/industries/*-photo.png"))
	if err != nil {
		return tally, err
	}
	for _, path := range photos {
		tally.Add(o.optimizePhoto(path, outputDir))
	}

	return tally, nil
}

// optimizeOne writes the four responsive JPEG variants and an optimized
// PNG for one source image.
func (o *Optimizer) optimizeOne(inputPath, outputDir string) core.Outcome {
	name := baseName(inputPath)
	fmt.Printf("Processing: %s\n", filepath.Base(inputPath))

	img, err := loadFlattened(inputPath)
	if err != nil {
		log.Errorf("Failed to process %s: %v", inputPath, err)
		return core.OutcomeError
	}

	for _, variant := range responsiveVariants {
		scaled := img
		if variant.Scale != 1.0 {
			scaled = resize(img, variant.Scale)
		}
		outPath := filepath.Join(outputDir, name+variant.Suffix+".jpg")
		if err := saveJpeg(outPath, scaled, o.Quality); err != nil {
			log.Errorf("Failed to write %s: %v", outPath, err)
			return core.OutcomeError
		}
	}

	pngPath := filepath.Join(outputDir, name+"-optimized.png")
	if err := savePng(pngPath, img); err != nil {
		log.Errorf("Failed to write %s: %v", pngPath, err)
		return core.OutcomeError
	}

	reportReduction(inputPath, filepath.Join(outputDir, name+"-large.jpg"))
	return core.OutcomeFixed
}

// optimizePhoto writes a single higher-quality JPEG, no variants.
func (o *Optimizer) optimizePhoto(inputPath, outputDir string) core.Outcome {
	name := baseName(inputPath)
	fmt.Printf("Processing: %s\n", filepath.Base(inputPath))

	img, err := loadFlattened(inputPath)
	if err != nil {
		log.Errorf("Failed to process %s: %v", inputPath, err)
		return core.OutcomeError
	}

	outPath := filepath.Join(outputDir, name+".jpg")
	if err := saveJpeg(outPath, img, 90); err != nil {
		log.Errorf("Failed to write %s: %v", outPath, err)
		return core.OutcomeError
	}
	return core.OutcomeFixed
}

// loadFlattened decodes an image and composites any alpha channel onto a
// white background, since JPEG has no transparency.
func loadFlattened(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	bounds := src.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, bounds, src, bounds.Min, draw.Over)
	return flat, nil
}

func resize(img *image.RGBA, scale float64) *image.RGBA {
	bounds := img.Bounds()
	width := int(float64(bounds.Dx()) * scale)
	height := int(float64(bounds.Dy()) * scale)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}

func saveJpeg(path string, img image.Image, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
}

func savePng(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	encoder := png.Encoder{CompressionLevel: png.BestCompression}
	return encoder.Encode(f, img)
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func reportReduction(originalPath, optimizedPath string) {
	origInfo, err := os.Stat(originalPath)
	if err != nil {
		return
	}
	optInfo, err := os.Stat(optimizedPath)
	if err != nil {
		return
	}
	reduction := (1 - float64(optInfo.Size())/float64(origInfo.Size())) * 100
	fmt.Printf("  Size reduction: %.1f%%\n", reduction)
}
