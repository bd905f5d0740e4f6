package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyntaxCheckPassesBalancedScripts(t *testing.T) {
	findings, err := SyntaxCheck{}.Check("index.html", "site", menuCompletePage)
	assert.Nil(t, err)
	assert.Empty(t, findings)
}

func TestSyntaxCheckFlagsStrayBraceAfterObserver(t *testing.T) {
	page := `<script>
const observer = new MutationObserver(callback);
observer.observe(document.body, { childList: true, subtree: true });
    }
}
</script>`
	findings, err := SyntaxCheck{}.Check("page.html", "site", page)
	assert.Nil(t, err)
	assert.Contains(t, findingNames(findings), "stray-brace-after-observer")
}

func TestSyntaxCheckCountsBracesPerScriptBlock(t *testing.T) {
	page := `<script>function ok() { return 1; }</script>
<script>function broken() { if (x) { return 2; }</script>`
	findings, err := SyntaxCheck{}.Check("page.html", "site", page)
	assert.Nil(t, err)

	assert.Len(t, findings, 1)
	assert.Equal(t, "unbalanced-braces", findings[0].Name)
	assert.Equal(t, 2, findings[0].Properties["block"])
}
