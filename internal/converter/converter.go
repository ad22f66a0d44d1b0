// =============================================================================
// CSV to Zefania Converter - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It orchestrates the entire
// conversion pipeline for a single file, from reading the table to writing
// the Zefania XML.
//
// CONVERSION PIPELINE:
//   1. Read the input table (CSV, or XLSX by extension)
//   2. Resolve the header row onto logical fields
//   3. Build the Book/Chapter/Verse tree in one pass over the rows
//   4. Check the tree for suspicious data (warnings only)
//   5. Render the XML document
//   6. Stage the output file under a temporary name
//   7. Export the verses to SQLite (optional)
//   8. Move the output file into place
//
// FAILURE BEHAVIOUR:
//   Nothing is written until the tree is complete. A missing column, a short
//   row, bad UTF-8 or a failed SQLite export aborts the run without creating
//   the output file.
//
// =============================================================================

package converter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ginjaninja78/csv2zefania/internal/columns"
	"github.com/ginjaninja78/csv2zefania/internal/config"
	"github.com/ginjaninja78/csv2zefania/internal/csvparser"
	"github.com/ginjaninja78/csv2zefania/internal/logging"
	"github.com/ginjaninja78/csv2zefania/internal/store"
	"github.com/ginjaninja78/csv2zefania/internal/types"
	"github.com/ginjaninja78/csv2zefania/internal/validation"
	"github.com/ginjaninja78/csv2zefania/internal/xlsxparser"
	"github.com/ginjaninja78/csv2zefania/internal/xmlwriter"
	"github.com/ginjaninja78/csv2zefania/internal/zefania"
	"github.com/ginjaninja78/csv2zefania/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// InputFile is the path to the input file that was processed.
	InputFile string

	// OutputFile is the path to the generated XML file.
	OutputFile string

	// SQLiteFile is the path to the SQLite export, empty when disabled.
	SQLiteFile string

	// RunID identifies this conversion in the logs.
	RunID string

	// Warnings holds the data warnings found in the input, in document order.
	Warnings []validation.Warning

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RowsProcessed is the number of data rows read.
	RowsProcessed int

	// BooksCreated is the number of BIBLEBOOK elements.
	BooksCreated int

	// ChaptersCreated is the number of CHAPTER elements.
	ChaptersCreated int

	// VersesCreated is the number of VERS elements.
	VersesCreated int

	// ValidationWarnings is the number of data warnings logged. Warnings
	// never stop the conversion.
	ValidationWarnings int

	// StrongNumbersExported is the number of Strong's references written to
	// SQLite. Zero when the export is disabled.
	StrongNumbersExported int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single input file to Zefania XML.
type Converter struct {
	// inputPath is the path to the input CSV or XLSX file.
	inputPath string

	// outputPath is the XML destination. Derived from inputPath when empty.
	outputPath string

	// sqlitePath enables the SQLite export when set.
	sqlitePath string

	cfg    *config.Config
	logger *slog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithOutputPath overrides the derived XML output path.
func WithOutputPath(path string) Option {
	return func(c *Converter) {
		if path != "" {
			c.outputPath = path
		}
	}
}

// WithSQLitePath enables the SQLite export to path.
func WithSQLitePath(path string) Option {
	return func(c *Converter) {
		if path != "" {
			c.sqlitePath = path
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - inputPath: The path to the input file.
//   - cfg: The configuration. nil means the defaults.
//   - opts: Output overrides and the logger.
//
// RETURNS:
//   - A new Converter instance.
func New(inputPath string, cfg *config.Config, opts ...Option) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}

	c := &Converter{
		inputPath:  inputPath,
		outputPath: utils.OutputPath(inputPath),
		sqlitePath: cfg.Output.SQLitePath,
		cfg:        cfg,
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
//
// RETURNS:
//   - A Result describing the files written.
//   - An error if any step fails. errors.As works with
//     *types.MissingColumnError and *types.MissingFieldError.
func (c *Converter) Run(ctx context.Context) (Result, error) {
	startTime := time.Now()
	result := Result{
		InputFile: c.inputPath,
		RunID:     logging.NewRunID(),
	}

	ctx = logging.WithRunID(ctx, result.RunID)
	logger := logging.FromContext(ctx, c.logger)

	logger.Info("converting file", "input", c.inputPath)

	// =========================================================================
	// STEP 1: READ INPUT TABLE
	// =========================================================================

	table, err := c.readTable()
	if err != nil {
		return result, err
	}

	result.Stats.RowsProcessed = len(table.Rows)
	logger.Debug("read input table", "headers", table.Headers, "rows", len(table.Rows))

	// =========================================================================
	// STEP 2: RESOLVE COLUMNS
	// =========================================================================
	// Done before any row is looked at, so a missing column never produces
	// output.

	resolver := columns.NewResolver(
		columns.WithStrict(c.cfg.Columns.Strict),
		columns.WithExtraSynonyms(c.cfg.Columns.Synonyms),
	)

	mapping, err := resolver.Resolve(table.Headers)
	if err != nil {
		return result, err
	}

	for _, field := range []string{columns.BookNumber, columns.Chapter, columns.Verse, columns.Text, columns.BookName} {
		if col, ok := mapping.Lookup(field); ok {
			logger.Debug("resolved column", "field", field, "header", col.Header, "index", col.Index)
		} else {
			logger.Debug("optional column not present", "field", field)
		}
	}

	// =========================================================================
	// STEP 3: BUILD THE TREE
	// =========================================================================

	options := TransformOptions{
		NormalizeStrongs:   c.cfg.ShouldNormalizeStrongs(),
		CanonicalBookNames: c.cfg.Books.CanonicalNames,
	}

	doc, stats, err := BuildDocument(table, mapping, c.metadata(), options)
	if err != nil {
		return result, err
	}

	result.Stats.BooksCreated = stats.Books
	result.Stats.ChaptersCreated = stats.Chapters
	result.Stats.VersesCreated = stats.Verses
	logger.Debug("built document", "books", stats.Books, "chapters", stats.Chapters, "verses", stats.Verses)

	// =========================================================================
	// STEP 4: CHECK DATA
	// =========================================================================

	checked := validation.Check(doc)
	result.Warnings = checked.Warnings
	result.Stats.ValidationWarnings = len(checked.Warnings)
	for _, w := range checked.Warnings {
		logger.Warn(w.Message, "rule", w.Rule, "location", w.Location())
	}
	logger.Debug("checked data",
		"verses", checked.VersesValidated,
		validation.RuleNonNumeric, checked.Count(validation.RuleNonNumeric),
		validation.RuleEmptyText, checked.Count(validation.RuleEmptyText),
		validation.RuleDuplicateVerse, checked.Count(validation.RuleDuplicateVerse))

	// =========================================================================
	// STEP 5: GENERATE XML DOCUMENT
	// =========================================================================

	xmlDoc, err := xmlwriter.Generate(doc)
	if err != nil {
		return result, fmt.Errorf("failed to generate XML: %w", err)
	}

	// =========================================================================
	// STEP 6: STAGE OUTPUT FILE
	// =========================================================================
	// The XML stays under a temporary name until the SQLite export has
	// succeeded, so a failed export leaves no output.

	staged, err := utils.StageFile(c.outputPath, xmlDoc)
	if err != nil {
		return result, fmt.Errorf("failed to write output: %w", err)
	}

	// =========================================================================
	// STEP 7: SQLITE EXPORT
	// =========================================================================

	if c.sqlitePath != "" {
		exported, err := c.export(ctx, doc)
		if err != nil {
			staged.Discard()
			return result, err
		}
		result.SQLiteFile = c.sqlitePath
		result.Stats.StrongNumbersExported = exported.StrongNumbers
		logger.Info("exported verses", "database", c.sqlitePath,
			"verses", exported.Verses, "strong_numbers", exported.StrongNumbers)
	}

	// =========================================================================
	// STEP 8: COMMIT OUTPUT FILE
	// =========================================================================

	if err := staged.Commit(); err != nil {
		return result, fmt.Errorf("failed to write output: %w", err)
	}

	result.OutputFile = staged.Path()
	logger.Info("wrote output", "output", result.OutputFile, "bytes", len(xmlDoc))

	result.Stats.ProcessingTime = time.Since(startTime)
	logger.Info("conversion complete", "duration", result.Stats.ProcessingTime)

	return result, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// export writes the tree to the SQLite database. A database file created by
// a failed export is removed again; an existing one keeps its previous
// contents because the export is a single transaction.
func (c *Converter) export(ctx context.Context, doc *zefania.Document) (store.ExportStats, error) {
	existed := utils.FileExists(c.sqlitePath)

	exported, err := store.ExportFile(ctx, c.sqlitePath, doc)
	if err != nil {
		if !existed {
			os.Remove(c.sqlitePath)
		}
		return exported, fmt.Errorf("failed to export to SQLite: %w", err)
	}
	return exported, nil
}

// readTable reads the input with the reader matching its extension.
func (c *Converter) readTable() (*types.Table, error) {
	if utils.IsWorkbook(c.inputPath) {
		table, err := xlsxparser.Parse(c.inputPath, xlsxparser.Settings{Sheet: c.cfg.XLSX.Sheet})
		if err != nil {
			return nil, fmt.Errorf("failed to read workbook %s: %w", c.inputPath, err)
		}
		return table, nil
	}

	delimiter, err := config.DelimiterRune(c.cfg.CSV.Delimiter)
	if err != nil {
		return nil, err
	}

	table, err := csvparser.Parse(c.inputPath, csvparser.Settings{Delimiter: delimiter})
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV %s: %w", c.inputPath, err)
	}
	return table, nil
}

// metadata builds the root attributes from the configuration.
func (c *Converter) metadata() zefania.Metadata {
	name := c.cfg.Bible.Name
	if name == "" {
		name = utils.BibleName(c.inputPath)
	}

	meta := zefania.DefaultMetadata(name)
	if c.cfg.Bible.SchemaLocation != "" {
		meta.SchemaLocation = c.cfg.Bible.SchemaLocation
	}
	if c.cfg.Bible.Status != "" {
		meta.Status = c.cfg.Bible.Status
	}
	if c.cfg.Bible.Version != "" {
		meta.Version = c.cfg.Bible.Version
	}
	if c.cfg.Bible.Type != "" {
		meta.Type = c.cfg.Bible.Type
	}
	if c.cfg.Bible.Revision != "" {
		meta.Revision = c.cfg.Bible.Revision
	}
	return meta
}
