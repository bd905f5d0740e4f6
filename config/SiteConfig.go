package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// SiteConfig is the site.toml layout. Everything the original one-off
// scripts hardcoded (page lists, denylist substrings, image variant
// maps) lives here as data instead.
type SiteConfig struct {
	Root          string        `toml:"root"`
	Extensions    []string      `toml:"extensions"`
	Deny          []string      `toml:"deny"`
	Include       []string      `toml:"include"`
	IndustryPages []string      `toml:"industry_pages"`
	Images        ImageRewrites `toml:"images"`
}

// ImageRewrites maps original asset references to their optimized
// variants. Cards and content images get picture/srcset markup, photos a
// plain jpg swap, backgrounds a CSS url() rewrite.
type ImageRewrites struct {
	OutputDir     string            `toml:"output_dir"`
	Backgrounds   map[string]string `toml:"backgrounds"`
	Cards         []string          `toml:"cards"`
	Photos        []string          `toml:"photos"`
	Content       map[string]string `toml:"content"`
	IndustryPages map[string]string `toml:"industry_pages"`
}

func Load(path string) (*SiteConfig, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// Default carries the site layout the maintenance scripts grew up with.
func Default() *SiteConfig {
	return &SiteConfig{
		Root:       ".",
		Extensions: []string{".html"},
		Deny:       []string{"wireframe", "example"},
		IndustryPages: []string{
			"industry-aerospace-defense.html",
			"industry-chemical-processing.html",
			"industry-energy-oil-gas.html",
			"industry-financial-services.html",
			"industry-government.html",
			"industry-manufacturing.html",
			"industry-mining.html",
			"industry-pharmaceuticals.html",
			"industry-transportation.html",
			"industry-utilities.html",
		},
		Images: ImageRewrites{
			OutputDir: "assets/optimized",
			Backgrounds: map[string]string{
				"industries-sub-hero-background.png": "optimized/industries-sub-hero-background-large.jpg",
				"solutions-sub-hero-background.png":  "optimized/solutions-sub-hero-background-large.jpg",
				"sub-hero-about.png":                 "optimized/sub-hero-about-large.jpg",
				"hero-banner.png":                    "optimized/hero-banner-large.jpg",
				"hero-subpages.png":                  "optimized/hero-subpages-large.jpg",
			},
			Cards: []string{
				"industries-energy", "industries-financial", "industries-government",
				"industries-manufacturing", "industries-mining", "industries-pharmaceuticals",
				"industries-transportation", "industries-utilities", "industries-aerospace",
				"industries-chemical",
			},
			Photos: []string{
				"industries-energy-photo", "industries-financial-photo", "industries-government-photo",
				"industries-manufacturing-photo", "industries-mining-photo", "industries-pharmaceuticals-photo",
				"industries-transportation-photo", "industries-utilities-photo", "industries-aerospace-photo",
				"industries-chemical-photo",
			},
			Content: map[string]string{
				"future-of-ot-security.png":             "future-of-ot-security",
				"ready-to-secure.png":                   "ready-to-secure",
				"how-we-solve.png":                      "how-we-solve",
				"how-akm-securekey-works-for-you.png":   "how-akm-securekey-works-for-you",
				"how-akm-securekey-works-for-you-2.png": "how-akm-securekey-works-for-you-2",
				"built-for-the-future.png":              "built-for-the-future",
			},
			IndustryPages: map[string]string{
				"industry-aerospace-defense.html":   "industries-aerospace",
				"industry-chemical-processing.html": "industries-chemical",
				"industry-energy-oil-gas.html":      "industries-energy",
				"industry-financial-services.html":  "industries-financial",
				"industry-government.html":          "industries-government",
				"industry-manufacturing.html":       "industries-manufacturing",
				"industry-mining.html":              "industries-mining",
				"industry-pharmaceuticals.html":     "industries-pharmaceuticals",
				"industry-transportation.html":      "industries-transportation",
				"industry-utilities.html":           "industries-utilities",
			},
		},
	}
}
