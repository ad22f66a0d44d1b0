// =============================================================================
// CSV to Zefania Converter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser / xlsxparser (Table)
//   - columns (MissingColumnError)
//   - converter (Record, MissingFieldError)
//   - csvparser / xlsxparser (InvalidEncodingError)
//
// =============================================================================

package types

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// =============================================================================
// TABLE TYPES
// =============================================================================

// Table is the raw result of reading an input file, before any column
// resolution has happened.
type Table struct {
	// Headers contains the column headers from the first row.
	Headers []string

	// Rows contains the data rows as raw cell slices.
	// A row may be shorter than Headers; missing cells are reported later,
	// when a required field is actually looked up.
	Rows []Row

	// SourceFile is the path to the file the table was read from.
	SourceFile string
}

// Row is a single data row of a Table.
type Row struct {
	// Number is the 1-based line (or sheet row) the data came from.
	// The header row is line 1, so the first data row is usually 2.
	Number int

	// Cells holds the raw cell values in column order.
	Cells []string
}

// Cell returns the value at the given column index and whether the row
// actually has a cell there.
func (r Row) Cell(index int) (string, bool) {
	if index < 0 || index >= len(r.Cells) {
		return "", false
	}
	return r.Cells[index], true
}

// =============================================================================
// RECORD TYPES
// =============================================================================

// Record is one verse row after column resolution.
// Records are transient: the transformer consumes each one exactly once.
type Record struct {
	// BookNumber identifies the book. It is an opaque string, never parsed.
	BookNumber string

	// BookName is the display name from the optional book name column.
	// Empty when the column is absent or the cell is blank.
	BookName string

	// Chapter is the chapter ordinal within the book.
	Chapter string

	// Verse is the verse ordinal within the chapter.
	Verse string

	// Text is the verse body.
	Text string

	// RowNumber is the source row, used for error reporting.
	RowNumber int
}

// =============================================================================
// ERROR TYPES
// =============================================================================

// Sentinel errors for errors.Is checks.
var (
	// ErrMissingColumn indicates a required column could not be resolved.
	ErrMissingColumn = errors.New("missing required column")

	// ErrMissingField indicates a row has no value for a required column.
	ErrMissingField = errors.New("missing required field")

	// ErrEmptyInput indicates the input has no header row.
	ErrEmptyInput = errors.New("input is empty")

	// ErrInvalidEncoding indicates a cell that is not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid UTF-8")
)

// MissingColumnError is returned when no acceptable spelling of a required
// logical field matches any header in the input.
type MissingColumnError struct {
	// Field is the logical field name (e.g. "text").
	Field string

	// Tried lists the header spellings that were attempted, in order.
	Tried []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q (tried: %s)", e.Field, strings.Join(e.Tried, ", "))
}

func (e *MissingColumnError) Unwrap() error {
	return ErrMissingColumn
}

// MissingFieldError is returned when a row does not carry a cell for a
// resolved required column.
type MissingFieldError struct {
	// Field is the logical field name.
	Field string

	// Column is the actual header the field was resolved to.
	Column string

	// RowNumber is the source row that was missing the value.
	RowNumber int
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("row %d: missing value for %q (column %q)", e.RowNumber, e.Field, e.Column)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// InvalidEncodingError is returned by the table readers when a cell holds
// bytes that are not valid UTF-8. Such bytes cannot be written to the XML
// output.
type InvalidEncodingError struct {
	// RowNumber is the source row. The header row is 1.
	RowNumber int

	// Column is the 1-based column of the offending cell.
	Column int
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("row %d: invalid UTF-8 in column %d", e.RowNumber, e.Column)
}

func (e *InvalidEncodingError) Unwrap() error {
	return ErrInvalidEncoding
}

// CheckEncoding returns an *InvalidEncodingError for the first cell of the
// row that is not valid UTF-8, or nil.
func CheckEncoding(rowNumber int, cells []string) error {
	for i, cell := range cells {
		if !utf8.ValidString(cell) {
			return &InvalidEncodingError{RowNumber: rowNumber, Column: i + 1}
		}
	}
	return nil
}
