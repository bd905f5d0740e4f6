package main

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/akmcyber/sitepatch/core"
)

// embeddedData carries the default rule packs and the summary queries
// so the binary is self-contained.
//
//go:embed data
var embeddedData embed.FS

// loadQueries reads the summary SQL queries shipped with the binary.
func loadQueries() (core.SqlQueries, error) {
	var queries core.SqlQueries

	fileData, err := embeddedData.ReadFile("data/queries.yaml")
	if err != nil {
		return queries, fmt.Errorf("failed to read embedded queries: %w", err)
	}
	if err := yaml.Unmarshal(fileData, &queries); err != nil {
		return queries, fmt.Errorf("failed to unmarshal queries YAML: %w", err)
	}
	return queries, nil
}
