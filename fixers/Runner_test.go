package fixers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akmcyber/sitepatch/core"
	"github.com/akmcyber/sitepatch/rules"
	"github.com/akmcyber/sitepatch/scanners"
	"github.com/akmcyber/sitepatch/utils"
)

const pageWithoutFavicon = `<html><head>
<title>t</title>
</head><body></body></html>`

const pageWithFavicon = `<html><head>
<title>t</title>
<link rel="icon" href="assets/favicon.ico">
</head><body></body></html>`

func faviconRuleSet(t *testing.T) *rules.RuleSet {
	set := &rules.RuleSet{
		Name: "favicon",
		Rules: []*rules.Rule{
			{
				Name:        "before-head-close",
				Kind:        rules.InsertBefore,
				Anchor:      "</head>",
				Literal:     true,
				Text:        "<link rel=\"icon\" href=\"assets/favicon.ico\">\n",
				WhenMissing: []string{"favicon.ico"},
			},
		},
	}
	assert.Nil(t, set.Compile())
	return set
}

func newTestRunner(t *testing.T, dryRun bool) *Runner {
	corpus, err := scanners.NewCorpusScanner([]string{".html"}, nil, nil)
	assert.Nil(t, err)
	return &Runner{Corpus: corpus, DryRun: dryRun}
}

func writeSite(t *testing.T) string {
	root := t.TempDir()
	assert.Nil(t, os.WriteFile(filepath.Join(root, "page.html"), []byte(pageWithoutFavicon), 0644))
	assert.Nil(t, os.WriteFile(filepath.Join(root, "done.html"), []byte(pageWithFavicon), 0644))
	return root
}

func TestRunnerFixesAndPersists(t *testing.T) {
	root := writeSite(t)
	runner := newTestRunner(t, false)

	tally, err := runner.Run(root, NewRuleFixer(faviconRuleSet(t)))
	assert.Nil(t, err)
	assert.Equal(t, 2, tally.Total)
	assert.Equal(t, 1, tally.Fixed)
	assert.Equal(t, 1, tally.AlreadyOK)
	assert.Equal(t, 0, tally.Errors)

	data, err := os.ReadFile(filepath.Join(root, "page.html"))
	assert.Nil(t, err)
	assert.Contains(t, string(data), `<link rel="icon" href="assets/favicon.ico">`)
}

func TestRunnerIsIdempotent(t *testing.T) {
	root := writeSite(t)
	runner := newTestRunner(t, false)
	fixer := NewRuleFixer(faviconRuleSet(t))

	_, err := runner.Run(root, fixer)
	assert.Nil(t, err)

	first, err := os.ReadFile(filepath.Join(root, "page.html"))
	assert.Nil(t, err)

	tally, err := runner.Run(root, fixer)
	assert.Nil(t, err)
	assert.Equal(t, 0, tally.Fixed)
	assert.Equal(t, 2, tally.AlreadyOK)

	second, err := os.ReadFile(filepath.Join(root, "page.html"))
	assert.Nil(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestRunnerDryRunWritesNothing(t *testing.T) {
	root := writeSite(t)
	runner := newTestRunner(t, true)

	tally, err := runner.Run(root, NewRuleFixer(faviconRuleSet(t)))
	assert.Nil(t, err)
	assert.Equal(t, 1, tally.Fixed)

	data, err := os.ReadFile(filepath.Join(root, "page.html"))
	assert.Nil(t, err)
	assert.Equal(t, pageWithoutFavicon, string(data))
}

func TestRunnerBacksUpFilesBeforeFirstWrite(t *testing.T) {
	root := writeSite(t)
	runner := newTestRunner(t, false)
	runner.Backups = utils.NewBackupCache(root)

	_, err := runner.Run(root, NewRuleFixer(faviconRuleSet(t)))
	assert.Nil(t, err)

	backup, err := os.ReadFile(filepath.Join(root, "page.html.backup"))
	assert.Nil(t, err)
	assert.Equal(t, pageWithoutFavicon, string(backup))

	// The untouched page gets no backup.
	_, err = os.Stat(filepath.Join(root, "done.html.backup"))
	assert.True(t, os.IsNotExist(err))
}

type unbalancingFixer struct{}

func (unbalancingFixer) Name() string { return "unbalancing" }

func (unbalancingFixer) Supports(string) bool { return true }

func (unbalancingFixer) Apply(doc *core.Document) (core.Outcome, error) {
	doc.Content += "<div>"
	return core.OutcomeFixed, nil
}

func TestRunnerRevertsEditsThatDriftTagBalance(t *testing.T) {
	root := writeSite(t)
	runner := newTestRunner(t, false)

	tally, err := runner.Run(root, unbalancingFixer{})
	assert.Nil(t, err)
	assert.Equal(t, 2, tally.Errors)
	assert.Equal(t, 0, tally.Fixed)

	data, err := os.ReadFile(filepath.Join(root, "page.html"))
	assert.Nil(t, err)
	assert.Equal(t, pageWithoutFavicon, string(data))
}
