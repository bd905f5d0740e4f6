package fixers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/akmcyber/sitepatch/checks"
	"github.com/akmcyber/sitepatch/core"
)

// The one contract every menu patch was circling around: the overlay
// opens on toggle click and closes on the close button, Escape, or a
// click outside it; submenu toggles flip their icon between 0 and 45
// degrees. WrappedMarker is the proof a page already carries the final
// form of that script.
const WrappedMarker = "Mobile menu functionality - wrapped in DOMContentLoaded"

// menuScript is the canonical replacement block, DOM-ready guarded and
// null-checked, at the indentation the site's inline scripts use.
const menuScript = `// Mobile menu functionality - wrapped in DOMContentLoaded to ensure elements exist
        document.addEventListener('DOMContentLoaded', function() {
            const mobileMenuToggle = document.getElementById('mobile-menu-toggle');
            const mobileMenuOverlay = document.getElementById('mobile-menu-overlay');
            const closeMenuButton = document.getElementById('close-menu-button');

            // Mobile dropdown toggles
            const solutionsToggle = document.getElementById('solutions-mobile-toggle');
            const solutionsMenu = document.getElementById('solutions-mobile-menu');
            const industriesToggle = document.getElementById('industries-mobile-toggle');
            const industriesMenu = document.getElementById('industries-mobile-menu');

            // Ensure elements exist before adding listeners
            if (solutionsToggle && solutionsMenu) {
                solutionsToggle.addEventListener('click', (e) => {
                    e.preventDefault();
                    e.stopPropagation();
                    solutionsMenu.classList.toggle('hidden');

                    // Find and rotate the icon (svg after Lucide processes it)
                    const icon = solutionsToggle.querySelector('svg');
                    if (icon) {
                        icon.style.transform = solutionsMenu.classList.contains('hidden') ? 'rotate(0deg)' : 'rotate(45deg)';
                        icon.style.transition = 'transform 0.3s ease';
                    }
                });
            }

            if (industriesToggle && industriesMenu) {
                industriesToggle.addEventListener('click', (e) => {
                    e.preventDefault();
                    e.stopPropagation();
                    industriesMenu.classList.toggle('hidden');

                    // Find and rotate the icon (svg after Lucide processes it)
                    const icon = industriesToggle.querySelector('svg');
                    if (icon) {
                        icon.style.transform = industriesMenu.classList.contains('hidden') ? 'rotate(0deg)' : 'rotate(45deg)';
                        icon.style.transition = 'transform 0.3s ease';
                    }
                });
            }

            if (mobileMenuToggle && mobileMenuOverlay && closeMenuButton) {
                mobileMenuToggle.addEventListener('click', function() {
                    mobileMenuOverlay.classList.add('active');
                    document.body.style.overflow = 'hidden';
                });

                function closeMobileMenu() {
                    mobileMenuOverlay.classList.remove('active');
                    document.body.style.overflow = '';
                }

                closeMenuButton.addEventListener('click', closeMobileMenu);

                mobileMenuOverlay.addEventListener('click', function(e) {
                    if (e.target === mobileMenuOverlay) {
                        closeMobileMenu();
                    }
                });

                document.addEventListener('keydown', function(e) {
                    if (e.key === 'Escape' && mobileMenuOverlay.classList.contains('active')) {
                        closeMobileMenu();
                    }
                });
            }
        });`

var (
	incompleteSnippetRe = regexp.MustCompile(`// Mobile menu functionality\s*\n\s*const mobileMenuToggle = document\.getElementById\('mobile-menu-toggle'\);\s*\n\s*const mobileMenuOverlay = document\.getElementById\('mobile-menu-overlay'\);\s*\n\s*const closeMenuButton = document\.getElementById\('close-menu-button'\);\s*\n\s*\}`)

	standaloneSnippetRe = regexp.MustCompile(`// Mobile menu functionality\s*\n\s*const mobileMenuToggle = document\.getElementById\('mobile-menu-toggle'\);\s*\n\s*const mobileMenuOverlay = document\.getElementById\('mobile-menu-overlay'\);\s*\n\s*const closeMenuButton = document\.getElementById\('close-menu-button'\);\s*\n\s*`)

	completeMenuScriptRe = regexp.MustCompile(`(?s)// Mobile menu functionality\s*\n\s*const mobileMenuToggle = document\.getElementById.*?document\.addEventListener\(['"]keydown['"].*?\}\);\s*\}\);`)
)

// MenuFixer rewrites a page's mobile-menu script and submenu markup to
// the canonical form, whatever intermediate state an earlier patch left
// it in: duplicated half-snippets are removed, the submenu toggle id
// moves to the clickable parent div, and the whole script gets the
// DOMContentLoaded guard.
type MenuFixer struct{}

func (MenuFixer) Name() string {
	return "menu"
}

func (MenuFixer) Supports(path string) bool {
	return checks.IsHTMLFile(path)
}

func (f MenuFixer) Apply(doc *core.Document) (core.Outcome, error) {
	if !strings.Contains(doc.Content, `id="mobile-menu-toggle"`) {
		return core.OutcomeSkipped, nil
	}

	before := doc.Content
	doc.Content = removeDuplicateSnippets(doc.Content)
	doc.Content = fixSubmenuMarkup(doc.Content)

	wrapped := strings.Contains(doc.Content, WrappedMarker)
	if !wrapped {
		if loc := completeMenuScriptRe.FindStringIndex(doc.Content); loc != nil {
			doc.Content = doc.Content[:loc[0]] + menuScript + doc.Content[loc[1]:]
			wrapped = true
		}
	}

	switch {
	case doc.Content != before:
		return core.OutcomeFixed, nil
	case wrapped:
		return core.OutcomeAlreadyOK, nil
	default:
		return core.OutcomeSkipped, nil
	}
}

// removeDuplicateSnippets strips the half-copied menu declarations a
// broken merge left on some pages. A declaration immediately followed by
// further menu code is the real one and stays.
func removeDuplicateSnippets(content string) string {
	if strings.Count(content, "// Mobile menu functionality") <= 1 {
		return content
	}

	content = incompleteSnippetRe.ReplaceAllString(content, "}")

	if !strings.Contains(content, "mobileMenuToggle.addEventListener") {
		return content
	}
	for {
		loc := findStandaloneSnippet(content)
		if loc == nil {
			break
		}
		content = content[:loc[0]] + content[loc[1]:]
	}
	return content
}

func findStandaloneSnippet(content string) []int {
	for _, loc := range standaloneSnippetRe.FindAllStringIndex(content, -1) {
		rest := strings.TrimLeft(content[loc[1]:], " \t\n")
		if strings.HasPrefix(rest, "//") {
			continue
		}
		return loc
	}
	return nil
}

// fixSubmenuMarkup moves the toggle id from the plus icon to its parent
// div so the whole row is clickable, for both dropdown sections.
func fixSubmenuMarkup(content string) string {
	for _, section := range []struct {
		label string
		id    string
	}{
		{"Solutions", "solutions-mobile-toggle"},
		{"Industries", "industries-mobile-toggle"},
	} {
		pattern := regexp.MustCompile(fmt.Sprintf(
			`(?s)<div class="text-white text-xl font-medium py-2 flex items-center justify-between">\s*<span>%s</span>\s*<i data-lucide="plus" class="w-6 h-6" id="%s"></i>\s*</div>`,
			section.label, section.id))
		replacement := fmt.Sprintf(`<div class="text-white text-xl font-medium py-2 flex items-center justify-between cursor-pointer" id="%s">
                        <span>%s</span>
                        <i data-lucide="plus" class="w-6 h-6"></i>
                    </div>`, section.id, section.label)
		content = pattern.ReplaceAllString(content, replacement)
	}
	return content
}
