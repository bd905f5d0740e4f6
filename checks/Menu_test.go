package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const menuCompletePage = `<!DOCTYPE html>
<html>
<head>
<style>
.mobile-menu-overlay { transform: translateX(-100%); }
.mobile-menu-overlay.active { transform: translateX(0); }
</style>
</head>
<body>
<button id="mobile-menu-toggle">Menu</button>
<div id="mobile-menu-overlay" class="mobile-menu-overlay">
    <button id="close-menu-button">Close</button>
</div>
<script>
function closeMobileMenu() {
    mobileMenuOverlay.classList.remove('active');
}
mobileMenuToggle.addEventListener('click', function() {
    mobileMenuOverlay.classList.add('active');
});
closeMenuButton.addEventListener('click', closeMobileMenu);
</script>
</body>
</html>`

func TestMenuCheckPassesCompleteWiring(t *testing.T) {
	findings, err := MenuCheck{}.Check("index.html", "site", menuCompletePage)
	assert.Nil(t, err)
	assert.Empty(t, findings)
}

func TestMenuCheckFlagsMissingElements(t *testing.T) {
	findings, err := MenuCheck{}.Check("bare.html", "site", "<html><body></body></html>")
	assert.Nil(t, err)

	names := findingNames(findings)
	assert.Contains(t, names, "missing-menu-toggle")
	assert.Contains(t, names, "missing-menu-overlay")
	assert.Contains(t, names, "missing-close-button")
	assert.Contains(t, names, "missing-toggle-listener")
	assert.Contains(t, names, "missing-close-function")
	assert.Contains(t, names, "missing-close-listener")
	assert.Contains(t, names, "missing-overlay-css")
	assert.Contains(t, names, "missing-active-css")
}

func TestMenuCheckFlagsListenerWithoutActivation(t *testing.T) {
	page := `<button id="mobile-menu-toggle"></button>
<div id="mobile-menu-overlay"></div>
<button id="close-menu-button"></button>
<script>
mobileMenuToggle.addEventListener('click', function() {
    console.log('clicked');
});
</script>`
	findings, err := MenuCheck{}.Check("page.html", "site", page)
	assert.Nil(t, err)
	assert.Contains(t, findingNames(findings), "missing-toggle-listener")
}
