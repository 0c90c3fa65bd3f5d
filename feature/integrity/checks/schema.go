package checks

import (
	"fmt"

	"scene-toolkit/core/database"
	"scene-toolkit/feature/assets"

	"gorm.io/gorm"
)

// SchemaReport is the result of a database schema check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport lists what one table lacks.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// ExpectedTables maps each table the toolkit persists to to its columns.
var ExpectedTables = map[string][]string{
	assets.ManifestEntry{}.TableName(): assets.ManifestColumns,
}

// CheckSchema compares the connected database against ExpectedTables.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for table, columns := range ExpectedTables {
		missing, err := database.MissingColumns(db, table, columns...)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}

		tbl := TableReport{MissingColumns: []string{}, Status: "ok"}
		if len(missing) > 0 {
			tbl.MissingColumns = missing
			tbl.Status = "error"
			report.Matched = false
		}
		report.Tables[table] = tbl
	}

	return report, nil
}
