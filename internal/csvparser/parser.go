// =============================================================================
// CSV to Zefania Converter - CSV Parser Module
// =============================================================================
//
// This module reads verse CSV files into a types.Table. It does not know
// anything about books or chapters; column resolution happens afterwards.
//
// FEATURES:
//   - Configurable delimiter (comma, semicolon, tab, pipe)
//   - Lazy quotes and variable field counts, so a short row is reported
//     against the exact field it is missing instead of failing the read
//   - A UTF-8 byte order mark on the header row is removed
//   - Blank lines are skipped
//   - Every cell must be valid UTF-8; the first bad cell stops the read
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/csv2zefania/internal/types"
)

// utf8BOM is stripped from the first header cell.
const utf8BOM = "\uFEFF"

// Settings contains settings for parsing CSV files.
type Settings struct {
	// Delimiter is the field separator.
	// Default: ','
	Delimiter rune
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{Delimiter: ','}
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed table.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - A pointer to the Table containing headers and raw rows.
//   - An error if the file cannot be opened or read.
//
// The file is closed before Parse returns, on every path.
func Parse(filePath string, settings Settings) (*types.Table, error) {
	// Open the file.
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	table, err := ParseReader(bufio.NewReader(file), settings)
	if err != nil {
		return nil, err
	}

	table.SourceFile = filePath
	return table, nil
}

// ParseReader reads CSV data from r.
func ParseReader(r io.Reader, settings Settings) (*types.Table, error) {
	// Create the CSV reader.
	csvReader := csv.NewReader(r)

	// Configure the CSV reader based on settings.
	configureReader(csvReader, settings)

	// Read the header row.
	headers, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, types.ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	if err := types.CheckEncoding(1, headers); err != nil {
		return nil, err
	}

	table := &types.Table{
		Headers: cleanHeaders(headers),
	}

	// Read data rows one at a time so each keeps its line number.
	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		line, _ := csvReader.FieldPos(0)

		// A line holding only a lone empty field is a blank line with
		// trailing whitespace; csv.Reader already drops truly empty lines.
		if isRowEmpty(record) && len(record) <= 1 {
			continue
		}

		if err := types.CheckEncoding(line, record); err != nil {
			return nil, err
		}

		table.Rows = append(table.Rows, types.Row{
			Number: line,
			Cells:  record,
		})
	}

	return table, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings Settings) {
	reader.Comma = settings.Delimiter
	if reader.Comma == 0 {
		reader.Comma = ',' // Default to comma
	}

	// Allow variable number of fields per row. Rows missing a required
	// cell are reported by the transformer with the row number.
	reader.FieldsPerRecord = -1

	// Allow lazy quotes (quotes that don't follow strict CSV rules).
	reader.LazyQuotes = true

	// Each Read returns a fresh slice; rows are retained in the table.
	reader.ReuseRecord = false
}

// cleanHeaders removes the byte order mark from the first header.
// Headers are otherwise kept exactly as written; the column resolver
// decides how strictly to compare them.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	copy(cleaned, headers)

	if len(cleaned) > 0 {
		cleaned[0] = strings.TrimPrefix(cleaned[0], utf8BOM)
	}

	return cleaned
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
