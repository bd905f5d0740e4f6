package scanners

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/akmcyber/sitepatch/utils"
)

// CloneBaseDir is where remote site checkouts land.
var CloneBaseDir = filepath.Join(os.TempDir(), "sitepatch")

// RepoScanner clones a site's git repository and audits the checkout.
type RepoScanner struct {
	Site *SiteScanner
}

func NewRepoScanner(site *SiteScanner) *RepoScanner {
	return &RepoScanner{Site: site}
}

// Scan clones repoURL (or reuses an earlier checkout) and runs the
// audits over it. Returns the finding count.
func (r *RepoScanner) Scan(repoURL string) (int, error) {
	if err := os.MkdirAll(CloneBaseDir, os.ModePerm); err != nil {
		return 0, fmt.Errorf("failed to create clone base directory '%s': %w", CloneBaseDir, err)
	}

	siteName, err := utils.ExtractSiteName(repoURL)
	if err != nil {
		return 0, fmt.Errorf("invalid repository URL '%s': %w", repoURL, err)
	}

	checkout := filepath.Join(CloneBaseDir, utils.SanitizeSiteName(siteName))
	if err := utils.CloneRepository(repoURL, checkout); err != nil {
		return 0, fmt.Errorf("failed to clone '%s': %w", siteName, err)
	}

	return r.Site.Scan(checkout, siteName)
}
