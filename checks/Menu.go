package checks

import (
	"regexp"
	"strings"

	"github.com/akmcyber/sitepatch/core"
)

var (
	toggleListenerRe = regexp.MustCompile(`(?s)mobileMenuToggle\.addEventListener\s*\(\s*['"]click['"].*?mobileMenuOverlay\.classList\.add\s*\(\s*['"]active['"]`)
	closeListenerRe  = regexp.MustCompile(`(?s)closeMenuButton\.addEventListener\s*\(\s*['"]click['"].*?closeMobileMenu`)
)

// MenuCheck verifies the hamburger-menu wiring on a page: the toggle,
// overlay and close-button elements, their listeners, and the slide-in
// CSS. Marker presence is taken as proof the behavior is there; absence
// of any marker is an issue.
type MenuCheck struct{}

func (MenuCheck) Name() string {
	return "menu"
}

func (MenuCheck) Supports(path string) bool {
	return IsHTMLFile(path)
}

func (c MenuCheck) Check(path string, site string, content string) ([]core.Finding, error) {
	var findings []core.Finding
	report := func(name, detail string) {
		findings = append(findings, core.Finding{
			Name:     name,
			Type:     "MobileMenu",
			Category: "interaction",
			Properties: map[string]interface{}{
				"detail": detail,
			},
			Path: path,
			Site: site,
		})
	}

	if !strings.Contains(content, `id="mobile-menu-toggle"`) {
		report("missing-menu-toggle", "no element with id='mobile-menu-toggle'")
	}
	if !strings.Contains(content, `id="mobile-menu-overlay"`) {
		report("missing-menu-overlay", "no element with id='mobile-menu-overlay'")
	}
	if !strings.Contains(content, `id="close-menu-button"`) {
		report("missing-close-button", "no element with id='close-menu-button'")
	}
	if !toggleListenerRe.MatchString(content) {
		report("missing-toggle-listener", "toggle click listener does not activate the overlay")
	}
	if !strings.Contains(content, "function closeMobileMenu()") {
		report("missing-close-function", "no closeMobileMenu function")
	}
	if !closeListenerRe.MatchString(content) {
		report("missing-close-listener", "close button has no click listener")
	}
	if !strings.Contains(content, ".mobile-menu-overlay") || !strings.Contains(content, "transform: translateX(-100%)") {
		report("missing-overlay-css", "overlay slide-out CSS not found")
	}
	if !strings.Contains(content, ".mobile-menu-overlay.active") || !strings.Contains(content, "transform: translateX(0)") {
		report("missing-active-css", "overlay active-state CSS not found")
	}

	return findings, nil
}
