package scanners

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/akmcyber/sitepatch/core"
	"github.com/akmcyber/sitepatch/utils"
)

// SiteScanner runs the configured audits over a corpus, stores the
// findings and hands the repository to the reporter. Documents are
// processed one at a time, in order; a file that cannot be read is
// logged and the batch continues.
type SiteScanner struct {
	reporter   core.Reporter
	checks     []core.DocumentCheck
	repository core.FindingRepository
	corpus     *CorpusScanner
	progress   utils.ProgressReporter
}

func NewSiteScanner(
	reporter core.Reporter,
	checks []core.DocumentCheck,
	repository core.FindingRepository,
	corpus *CorpusScanner,
	progress utils.ProgressReporter,
) *SiteScanner {
	return &SiteScanner{
		reporter:   reporter,
		checks:     checks,
		repository: repository,
		corpus:     corpus,
		progress:   progress,
	}
}

// Scan audits every document under root and generates the report.
// It returns the number of findings.
func (s *SiteScanner) Scan(root string, site string) (int, error) {
	paths, err := s.corpus.Discover(root)
	if err != nil {
		return 0, err
	}
	fmt.Printf("Auditing %d files under %s\n", len(paths), root)
	s.progress.SetTotal(len(paths))

	total := 0
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			log.Errorf("Failed to read file %s: %v", path, err)
			s.progress.Increment()
			continue
		}
		var findings []core.Finding
		for _, check := range s.checks {
			if !check.Supports(path) {
				continue
			}
			results, err := check.Check(path, site, string(content))
			if err != nil {
				log.Errorf("Check '%s' failed on %s: %v", check.Name(), path, err)
				continue
			}
			findings = append(findings, results...)
		}
		if len(findings) > 0 {
			if err := s.repository.Store(findings); err != nil {
				return total, fmt.Errorf("failed to store findings for %s: %w", path, err)
			}
			total += len(findings)
		}
		s.progress.Increment()
	}
	s.progress.Finish()

	if err := s.reporter.Report(s.repository); err != nil {
		return total, fmt.Errorf("failed to generate report: %w", err)
	}
	return total, nil
}
