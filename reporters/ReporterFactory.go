package reporters

import (
	"fmt"

	"github.com/akmcyber/sitepatch/core"
)

func CreateReporter(reportFormat string, queries core.SqlQueries, artifactPrefix string) (core.Reporter, error) {
	switch reportFormat {
	case "console", "":
		return ConsoleReporter{}, nil
	case "json":
		return JsonReporter{Queries: queries, ArtifactPrefix: artifactPrefix}, nil
	case "xlsx":
		return XlsxReporter{Queries: queries, ArtifactPrefix: artifactPrefix}, nil
	}
	return nil, fmt.Errorf("unknown report format: %s", reportFormat)
}
