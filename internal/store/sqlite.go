// =============================================================================
// CSV to Zefania Converter - SQLite Verse Export
// =============================================================================
//
// This module writes a converted Zefania tree into a SQLite database so the
// same verses can be queried without parsing XML.
//
// TABLES:
//
//   verses               one row per VERS, in document order
//   verse_strong_numbers one row per Strong's reference found in a verse
//
// Every export replaces the previous contents of both tables. All rows are
// written inside one transaction; a failure leaves the database unchanged.
//
// =============================================================================

package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/ginjaninja78/csv2zefania/internal/strongs"
	"github.com/ginjaninja78/csv2zefania/internal/zefania"
)

// driverName is the database/sql name registered by modernc.org/sqlite.
const driverName = "sqlite"

const schema = `
DROP TABLE IF EXISTS verse_strong_numbers;
DROP TABLE IF EXISTS verses;

CREATE TABLE verses (
	id             INTEGER PRIMARY KEY,
	book_number    TEXT NOT NULL,
	chapter_number TEXT NOT NULL,
	verse_number   TEXT NOT NULL,
	book_name      TEXT NOT NULL,
	verse          TEXT NOT NULL
);

CREATE INDEX idx_verses_ref ON verses(book_number, chapter_number, verse_number);

CREATE TABLE verse_strong_numbers (
	verse_id       INTEGER NOT NULL REFERENCES verses(id),
	book_number    TEXT NOT NULL,
	chapter_number TEXT NOT NULL,
	verse_number   TEXT NOT NULL,
	position       INTEGER NOT NULL,
	strong_number  TEXT NOT NULL
);

CREATE INDEX idx_strong_number ON verse_strong_numbers(strong_number);
`

// ExportStats reports what an export wrote.
type ExportStats struct {
	Verses        int
	StrongNumbers int
}

// Open opens (or creates) a SQLite database file.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One writer; the export is a single transaction.
	db.SetMaxOpenConns(1)
	return db, nil
}

// ExportFile writes the document into the database at path.
func ExportFile(ctx context.Context, path string, doc *zefania.Document) (ExportStats, error) {
	db, err := Open(path)
	if err != nil {
		return ExportStats{}, err
	}
	defer db.Close()

	return Export(ctx, db, doc)
}

// Export writes the document into db.
//
// PARAMETERS:
//   - ctx: Cancels the transaction.
//   - db: An open SQLite database.
//   - doc: The completed Zefania tree.
//
// RETURNS:
//   - Counts of the rows written.
//   - An error if any statement fails. The transaction is rolled back.
func Export(ctx context.Context, db *sql.DB, doc *zefania.Document) (stats ExportStats, err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, schema); err != nil {
		return stats, fmt.Errorf("creating tables: %w", err)
	}

	verseStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO verses (book_number, chapter_number, verse_number, book_name, verse) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return stats, fmt.Errorf("preparing verse insert: %w", err)
	}
	defer verseStmt.Close()

	strongStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO verse_strong_numbers (verse_id, book_number, chapter_number, verse_number, position, strong_number) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return stats, fmt.Errorf("preparing strong number insert: %w", err)
	}
	defer strongStmt.Close()

	for _, book := range doc.Books {
		for _, chapter := range book.Chapters {
			for _, verse := range chapter.Verses {
				res, err := verseStmt.ExecContext(ctx, book.Number, chapter.Number, verse.Number, book.Name, verse.Body)
				if err != nil {
					return stats, fmt.Errorf("inserting verse %s %s:%s: %w", book.Number, chapter.Number, verse.Number, err)
				}
				stats.Verses++

				refs := strongs.Extract(verse.Body)
				if len(refs) == 0 {
					continue
				}

				verseID, err := res.LastInsertId()
				if err != nil {
					return stats, fmt.Errorf("reading verse id: %w", err)
				}

				for i, ref := range refs {
					if _, err := strongStmt.ExecContext(ctx, verseID, book.Number, chapter.Number, verse.Number, i+1, ref); err != nil {
						return stats, fmt.Errorf("inserting strong number %s: %w", ref, err)
					}
					stats.StrongNumbers++
				}
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return stats, fmt.Errorf("committing transaction: %w", err)
	}

	return stats, nil
}
