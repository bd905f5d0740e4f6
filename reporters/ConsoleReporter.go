package reporters

import (
	"fmt"
	"sort"
	"strings"

	"github.com/akmcyber/sitepatch/core"
)

// ConsoleReporter prints findings grouped per page, then a summary of
// issue counts, the way the audits have always read.
type ConsoleReporter struct{}

func (ConsoleReporter) Report(repository core.FindingRepository) error {
	byPath := make(map[string][]core.Finding)
	counts := make(map[string]int)
	total := 0

	iterator := repository.NewIterator()
	for iterator.HasNext() {
		set, err := iterator.Next()
		if err != nil {
			return fmt.Errorf("failed to retrieve findings: %w", err)
		}
		for _, finding := range set.Findings {
			byPath[finding.Path] = append(byPath[finding.Path], finding)
			counts[finding.Type+"/"+finding.Name]++
			total++
		}
	}

	fmt.Println(strings.Repeat("=", 80))
	if total == 0 {
		fmt.Println("No issues found.")
		fmt.Println(strings.Repeat("=", 80))
		return nil
	}

	paths := make([]string, 0, len(byPath))
	for path := range byPath {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		fmt.Printf("\n%s\n", path)
		for _, finding := range byPath[path] {
			line := fmt.Sprintf("  - [%s] %s", finding.Type, finding.Name)
			if detail, ok := finding.Properties["detail"].(string); ok {
				line += ": " + detail
			}
			fmt.Println(line)
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Printf("Summary: %d issues across %d pages\n", total, len(byPath))

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-40s %d\n", name, counts[name])
	}
	return nil
}
