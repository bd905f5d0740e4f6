package utils

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	_ "github.com/mattn/go-sqlite3"

	"github.com/akmcyber/sitepatch/core"
)

// PredefinedFieldsSlice contains the fields that always go in the
// Findings table as their own columns.
var PredefinedFieldsSlice = []string{"Name", "Type", "Category", "Path", "Site"}

// InitializeSQLiteDB opens (or recreates) the findings DB used to drive
// summary queries for the json and xlsx reports.
func InitializeSQLiteDB(dbPath string) (*sql.DB, error) {
	if err := DeleteFileIfExists(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// One-shot bulk load, so trade durability for insert speed.
	_, _ = db.Exec("PRAGMA journal_mode = WAL;")
	_, _ = db.Exec("PRAGMA synchronous = OFF;")

	createStmt := `CREATE TABLE IF NOT EXISTS Findings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		Name TEXT,
		Type TEXT,
		Category TEXT,
		Path TEXT,
		Site TEXT,
		Properties TEXT
	);`
	if _, err := db.Exec(createStmt); err != nil {
		return nil, fmt.Errorf("failed to create findings table: %w", err)
	}

	return db, nil
}

// InsertFindings loads a batch of findings inside one transaction.
func InsertFindings(db *sql.DB, findings []core.Finding) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO Findings (Name, Type, Category, Path, Site, Properties)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for _, finding := range findings {
		jsonProps, jErr := json.Marshal(flattenProperties(finding.Properties))
		if jErr != nil {
			log.Errorf("Failed to marshal properties for finding '%s': %v", finding.Name, jErr)
			jsonProps = []byte("{}")
		}

		if _, execErr := stmt.Exec(
			finding.Name,
			finding.Type,
			finding.Category,
			finding.Path,
			finding.Site,
			string(jsonProps),
		); execErr != nil {
			return fmt.Errorf("failed to insert finding '%s': %w", finding.Name, execErr)
		}
	}

	return nil
}

// ProcessFindingsIncrementally streams every finding set from the
// repository into the database.
func ProcessFindingsIncrementally(db *sql.DB, repository core.FindingRepository) error {
	iterator := repository.NewIterator()
	for iterator.HasNext() {
		set, err := iterator.Next()
		if err != nil {
			return fmt.Errorf("failed to retrieve findings: %w", err)
		}
		if err := InsertFindings(db, set.Findings); err != nil {
			return err
		}
	}
	return nil
}

// flattenProperties JSON-encodes any nested maps so every property is a
// scalar by the time it hits a column.
func flattenProperties(properties map[string]interface{}) map[string]interface{} {
	flattened := make(map[string]interface{})
	for key, value := range properties {
		if isPredefinedField(key) {
			continue
		}
		switch v := value.(type) {
		case map[string]interface{}:
			jsonBytes, err := json.Marshal(v)
			if err != nil {
				log.Errorf("Failed to marshal nested map for key '%s': %v", key, err)
				flattened[key] = nil
			} else {
				flattened[key] = string(jsonBytes)
			}
		default:
			flattened[key] = value
		}
	}
	return flattened
}

func isPredefinedField(key string) bool {
	for _, field := range PredefinedFieldsSlice {
		if strings.EqualFold(key, field) {
			return true
		}
	}
	return false
}
