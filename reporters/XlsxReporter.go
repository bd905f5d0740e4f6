package reporters

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	_ "github.com/mattn/go-sqlite3"

	"github.com/akmcyber/sitepatch/core"
	"github.com/akmcyber/sitepatch/utils"
)

const DefaultXlsxReport = "audit_report.xlsx"

// XlsxReporter writes one workbook: a raw Findings sheet plus one sheet
// per configured summary query.
type XlsxReporter struct {
	Queries        core.SqlQueries
	ArtifactPrefix string
	OutputDir      string
}

func (x XlsxReporter) Report(repository core.FindingRepository) error {
	fmt.Println("Generating XLSX report")

	outputDir := x.OutputDir
	if outputDir == "" {
		outputDir = "."
	}

	dbPath := filepath.Join(os.TempDir(), fmt.Sprintf("%s_%s", x.ArtifactPrefix, DefaultSqliteDBFilename))
	db, err := utils.InitializeSQLiteDB(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize SQLite database: %w", err)
	}
	defer db.Close()
	defer os.Remove(dbPath)

	if err := utils.ProcessFindingsIncrementally(db, repository); err != nil {
		return fmt.Errorf("failed to process findings: %w", err)
	}

	excelFile := excelize.NewFile()
	defaultSheet := excelFile.GetSheetName(0)

	if err := x.writeFindingsSheet(excelFile, repository); err != nil {
		return fmt.Errorf("failed to write findings sheet: %w", err)
	}

	for _, query := range x.Queries.Queries {
		if err := x.writeQuerySheet(db, excelFile, query.Query, query.Name); err != nil {
			log.Errorf("Skipping summary sheet '%s': %v", query.Name, err)
		}
	}

	if err := excelFile.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("failed to delete default sheet %q: %w", defaultSheet, err)
	}

	outputFilePath := filepath.Join(outputDir, fmt.Sprintf("%s_%s", x.ArtifactPrefix, DefaultXlsxReport))
	if err := excelFile.SaveAs(outputFilePath); err != nil {
		return fmt.Errorf("failed to save XLSX report: %w", err)
	}

	fmt.Printf("XLSX report generated successfully: %s\n", outputFilePath)
	return nil
}

func (x XlsxReporter) writeFindingsSheet(excelFile *excelize.File, repository core.FindingRepository) error {
	const sheetName = "Findings"
	if _, err := excelFile.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to create sheet '%s': %w", sheetName, err)
	}

	headers := []interface{}{"Name", "Type", "Category", "Path", "Site", "Properties"}
	if err := excelFile.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	rowIndex := 2
	iterator := repository.NewIterator()
	for iterator.HasNext() {
		set, err := iterator.Next()
		if err != nil {
			return fmt.Errorf("failed to retrieve findings: %w", err)
		}
		for _, finding := range set.Findings {
			props := ""
			if len(finding.Properties) > 0 {
				if b, err := json.Marshal(finding.Properties); err == nil {
					props = string(b)
				}
			}
			row := []interface{}{
				finding.Name,
				finding.Type,
				finding.Category,
				finding.Path,
				finding.Site,
				props,
			}
			cellAddr := fmt.Sprintf("A%d", rowIndex)
			if err := excelFile.SetSheetRow(sheetName, cellAddr, &row); err != nil {
				return fmt.Errorf("failed to write data row: %w", err)
			}
			rowIndex++
		}
	}
	return nil
}

func (x XlsxReporter) writeQuerySheet(db *sql.DB, excelFile *excelize.File, query, sheetName string) error {
	rows, err := db.Query(query)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	colNames, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("failed to get columns: %w", err)
	}

	if _, err := excelFile.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to create sheet '%s': %w", sheetName, err)
	}

	headers := make([]interface{}, len(colNames))
	for i, name := range colNames {
		headers[i] = name
	}
	if err := excelFile.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	rowIndex := 2
	for rows.Next() {
		cols := make([]interface{}, len(colNames))
		colPtrs := make([]interface{}, len(cols))
		for i := range cols {
			colPtrs[i] = &cols[i]
		}
		if err := rows.Scan(colPtrs...); err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}
		for i, col := range cols {
			if b, ok := col.([]byte); ok {
				cols[i] = string(b)
			}
		}
		cellAddr := fmt.Sprintf("A%d", rowIndex)
		if err := excelFile.SetSheetRow(sheetName, cellAddr, &cols); err != nil {
			return fmt.Errorf("failed to write data row: %w", err)
		}
		rowIndex++
	}
	return rows.Err()
}
