// =============================================================================
// CSV to Zefania Converter - XLSX Parser
// =============================================================================
//
// Verse lists are often maintained in spreadsheets. This module reads a
// workbook sheet into the same types.Table the CSV parser produces, so the
// rest of the pipeline does not care where the rows came from.
//
// SHEET LAYOUT:
//
//   | Book Number | Chapter | Verse | Text             | Book Name |
//   |-------------|---------|-------|------------------|-----------|
//   | 1           | 1       | 1     | In the beginning | Genesis   |
//   | 1           | 1       | 2     | And the earth    | Genesis   |
//
//   Row 1 is the header row. Header spellings follow the same rules as CSV.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/csv2zefania/internal/types"
)

// Settings contains settings for reading workbooks.
type Settings struct {
	// Sheet is the name of the sheet to read.
	// Default: "" (the first sheet)
	Sheet string
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads one sheet of an XLSX workbook.
//
// PARAMETERS:
//   - workbookPath: The path to the XLSX file.
//   - settings: Sheet selection.
//
// RETURNS:
//   - A pointer to the Table containing headers and rows.
//   - An error if the file cannot be opened, the sheet does not exist, or
//     the sheet is empty.
func Parse(workbookPath string, settings Settings) (*types.Table, error) {
	// Open the XLSX file.
	f, err := excelize.OpenFile(workbookPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	table, err := parseFile(f, settings)
	if err != nil {
		return nil, err
	}

	table.SourceFile = workbookPath
	return table, nil
}

// parseFile reads the selected sheet from an open workbook.
func parseFile(f *excelize.File, settings Settings) (*types.Table, error) {
	sheetName := settings.Sheet
	if sheetName == "" {
		// Get the first sheet name.
		sheetName = f.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	} else if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheetName)
	}

	// Get all rows from the sheet. Trailing empty cells are not returned,
	// which is why rows can be shorter than the header.
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	// Skip leading empty rows to find the header.
	start := 0
	for start < len(rows) && isRowEmpty(rows[start]) {
		start++
	}
	if start >= len(rows) {
		return nil, types.ErrEmptyInput
	}

	if err := types.CheckEncoding(start+1, rows[start]); err != nil {
		return nil, err
	}

	table := &types.Table{
		Headers: rows[start],
	}

	for i := start + 1; i < len(rows); i++ {
		row := rows[i]

		// Skip empty rows.
		if len(row) == 0 || isRowEmpty(row) {
			continue
		}

		if err := types.CheckEncoding(i+1, row); err != nil {
			return nil, err
		}

		table.Rows = append(table.Rows, types.Row{
			Number: i + 1, // Sheet rows are 1-based.
			Cells:  row,
		})
	}

	return table, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
