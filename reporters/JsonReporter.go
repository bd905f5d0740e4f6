package reporters

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	_ "github.com/mattn/go-sqlite3"

	"github.com/akmcyber/sitepatch/core"
	"github.com/akmcyber/sitepatch/utils"
)

const (
	DefaultJsonReport        = "audit_report.json"
	DefaultJsonSummaryReport = "audit_summary.json"
	DefaultSqliteDBFilename  = "audit_findings.db"
)

// JsonReporter writes the full findings stream as JSON lines, then runs
// the configured summary queries over a throwaway SQLite load of the
// same data and writes the results as a second file.
type JsonReporter struct {
	Queries          core.SqlQueries
	ArtifactPrefix   string
	SqliteDBFilename string
	OutputDir        string
}

func (j *JsonReporter) setDefaults() {
	if j.OutputDir == "" {
		j.OutputDir = "."
	}
	if j.SqliteDBFilename == "" {
		j.SqliteDBFilename = DefaultSqliteDBFilename
	}
}

func (j JsonReporter) Report(repository core.FindingRepository) error {
	j.setDefaults()

	dbPath := filepath.Join(os.TempDir(), fmt.Sprintf("%s_%s", j.ArtifactPrefix, j.SqliteDBFilename))
	db, err := utils.InitializeSQLiteDB(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize SQLite database: %w", err)
	}
	defer db.Close()

	if err := utils.ProcessFindingsIncrementally(db, repository); err != nil {
		return fmt.Errorf("failed to process findings: %w", err)
	}

	if err := j.generateDetailedReport(repository); err != nil {
		return fmt.Errorf("failed to generate detailed JSON report: %w", err)
	}

	if err := j.generateSummaryReport(db); err != nil {
		return fmt.Errorf("failed to generate summary JSON report: %w", err)
	}

	return nil
}

// generateDetailedReport streams every finding set out as one JSON
// object per line.
func (j JsonReporter) generateDetailedReport(repository core.FindingRepository) error {
	outputFilePath := filepath.Join(j.OutputDir, fmt.Sprintf("%s_%s", j.ArtifactPrefix, DefaultJsonReport))
	outputFile, err := os.Create(outputFilePath)
	if err != nil {
		return fmt.Errorf("failed to create detailed output file: %w", err)
	}
	defer outputFile.Close()

	iterator := repository.NewIterator()
	for iterator.HasNext() {
		set, err := iterator.Next()
		if err != nil {
			return fmt.Errorf("failed to retrieve next finding: %w", err)
		}

		jsonBytes, err := json.Marshal(set)
		if err != nil {
			return fmt.Errorf("failed to marshal findings to JSON: %w", err)
		}
		if _, err := outputFile.Write(append(jsonBytes, '\n')); err != nil {
			return fmt.Errorf("failed to write to detailed output file: %w", err)
		}
	}

	fmt.Printf("Detailed JSON report generated successfully: %s\n", outputFile.Name())
	return nil
}

func (j JsonReporter) generateSummaryReport(db *sql.DB) error {
	if len(j.Queries.Queries) == 0 {
		log.Warn("No summary queries defined, skipping summary report")
		return nil
	}

	summaryData := make(map[string]interface{})
	for _, query := range j.Queries.Queries {
		results, err := executeSQLQuery(db, query.Query)
		if err != nil {
			log.Errorf("Skipping summary query '%s': %v", query.Name, err)
			continue
		}
		summaryData[query.Name] = results
	}

	summaryBytes, err := json.MarshalIndent(summaryData, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary data: %w", err)
	}

	outputFilePath := filepath.Join(j.OutputDir, fmt.Sprintf("%s_%s", j.ArtifactPrefix, DefaultJsonSummaryReport))
	if err := os.WriteFile(outputFilePath, summaryBytes, 0644); err != nil {
		return fmt.Errorf("failed to write summary output file: %w", err)
	}

	fmt.Printf("Summary JSON report generated successfully: %s\n", outputFilePath)
	return nil
}

// executeSQLQuery runs a query and returns the rows as a slice of
// column-name keyed maps.
func executeSQLQuery(db *sql.DB, query string) ([]map[string]interface{}, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query '%s': %w", query, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve columns for query '%s': %w", query, err)
	}

	var results []map[string]interface{}
	for rows.Next() {
		columnValues := make([]interface{}, len(columns))
		columnPointers := make([]interface{}, len(columns))
		for i := range columnValues {
			columnPointers[i] = &columnValues[i]
		}

		if err := rows.Scan(columnPointers...); err != nil {
			return nil, fmt.Errorf("failed to scan row for query '%s': %w", query, err)
		}

		rowData := make(map[string]interface{})
		for i, colName := range columns {
			if b, ok := columnValues[i].([]byte); ok {
				rowData[colName] = string(b)
			} else {
				rowData[colName] = columnValues[i]
			}
		}
		results = append(results, rowData)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error for query '%s': %w", query, err)
	}
	return results, nil
}
