package fixers

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/akmcyber/sitepatch/core"
	"github.com/akmcyber/sitepatch/htmlcheck"
	"github.com/akmcyber/sitepatch/scanners"
	"github.com/akmcyber/sitepatch/utils"
)

// Runner drives one fixer over the corpus, one document at a time. A
// fixed document is re-measured for tag balance before it is written
// back; a transform that drifted the balance is rolled back and counted
// as an error. With DryRun no file is ever written.
type Runner struct {
	Corpus  *scanners.CorpusScanner
	Backups *utils.BackupCache
	DryRun  bool
}

func (r *Runner) Run(root string, fixer core.DocumentFixer) (core.Tally, error) {
	var tally core.Tally

	paths, err := r.Corpus.Discover(root)
	if err != nil {
		return tally, err
	}
	fmt.Printf("Running '%s' over %d files\n", fixer.Name(), len(paths))

	for _, path := range paths {
		if !fixer.Supports(path) {
			continue
		}
		outcome := r.runOne(path, fixer)
		tally.Add(outcome)
		fmt.Printf("  %-10s %s\n", outcome.String()+":", path)
	}

	return tally, nil
}

func (r *Runner) runOne(path string, fixer core.DocumentFixer) core.Outcome {
	doc, err := core.LoadDocument(path)
	if err != nil {
		log.Errorf("Failed to load %s: %v", path, err)
		return core.OutcomeError
	}

	balanceBefore := htmlcheck.Measure(doc.Content)

	outcome, err := fixer.Apply(doc)
	if err != nil {
		log.Errorf("Fixer '%s' failed on %s: %v", fixer.Name(), path, err)
		return core.OutcomeError
	}
	if outcome != core.OutcomeFixed || !doc.Changed() {
		return outcome
	}

	if err := htmlcheck.Compare(balanceBefore, htmlcheck.Measure(doc.Content)); err != nil {
		log.Errorf("Refusing to write %s: %v", path, err)
		doc.Revert()
		return core.OutcomeError
	}

	if r.DryRun {
		return outcome
	}

	if r.Backups != nil {
		if _, err := r.Backups.Ensure(path); err != nil {
			log.Errorf("Failed to back up %s: %v", path, err)
			return core.OutcomeError
		}
	}
	if _, err := doc.Save(); err != nil {
		log.Errorf("Failed to write %s: %v", path, err)
		return core.OutcomeError
	}
	return outcome
}
