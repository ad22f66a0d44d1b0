// =============================================================================
// CSV to Zefania Converter - Row-to-Tree Transformer
// =============================================================================
//
// This module turns resolved rows into the Zefania tree. It makes a single
// forward pass over the rows:
//
//   1. Extract and trim the field values using the column mapping
//   2. Normalize Strong's references in the verse text (if enabled)
//   3. Pick the book display name
//   4. Look up or create the Book for the book number
//   5. Look up or create the Chapter for the chapter within that book
//   6. Append a Verse
//
// ORDERING:
//   Books and chapters appear in the order they are first seen. Nothing is
//   sorted, so a book "10" that appears before book "2" stays first.
//
// DUPLICATES:
//   Verses are always appended. Two rows for the same verse number produce
//   two sibling VERS elements.
//
// =============================================================================

package converter

import (
	"strings"

	"github.com/ginjaninja78/csv2zefania/internal/columns"
	"github.com/ginjaninja78/csv2zefania/internal/strongs"
	"github.com/ginjaninja78/csv2zefania/internal/types"
	"github.com/ginjaninja78/csv2zefania/internal/zefania"
)

// =============================================================================
// TRANSFORM OPTIONS
// =============================================================================

// TransformOptions controls how records become tree nodes.
type TransformOptions struct {
	// NormalizeStrongs rewrites {(H1234)} into {H1234}.
	// Default: true
	NormalizeStrongs bool

	// CanonicalBookNames names books 1-66 "Genesis" ... "Revelation" when
	// the input provides no name. Other numbers fall back to "Book N".
	// Default: false
	CanonicalBookNames bool
}

// DefaultTransformOptions returns the default options.
func DefaultTransformOptions() TransformOptions {
	return TransformOptions{NormalizeStrongs: true}
}

// TransformStats contains counts for a built tree.
type TransformStats struct {
	Rows     int
	Books    int
	Chapters int
	Verses   int
}

// =============================================================================
// BUILDER
// =============================================================================

// Builder accumulates records into a zefania.Document.
type Builder struct {
	doc     *zefania.Document
	options TransformOptions

	// books indexes doc.Books by book number; doc.Books keeps the order.
	books map[string]*bookEntry

	rows int
}

// bookEntry pairs a Book with the index of its chapters.
type bookEntry struct {
	book     *zefania.Book
	chapters map[string]*zefania.Chapter
}

// NewBuilder creates a Builder for a document with the given root metadata.
func NewBuilder(metadata zefania.Metadata, options TransformOptions) *Builder {
	return &Builder{
		doc:     &zefania.Document{Metadata: metadata},
		options: options,
		books:   make(map[string]*bookEntry),
	}
}

// Add places one record into the tree.
func (b *Builder) Add(rec types.Record) {
	b.rows++

	text := rec.Text
	if b.options.NormalizeStrongs {
		text = strongs.Normalize(text)
	}

	entry, exists := b.books[rec.BookNumber]
	if !exists {
		entry = &bookEntry{
			book: &zefania.Book{
				Number:    rec.BookNumber,
				Name:      b.displayName(rec),
				ShortName: zefania.ShortBookName(rec.BookNumber),
			},
			chapters: make(map[string]*zefania.Chapter),
		}
		b.books[rec.BookNumber] = entry
		b.doc.Books = append(b.doc.Books, entry.book)
	}

	chapter, exists := entry.chapters[rec.Chapter]
	if !exists {
		chapter = &zefania.Chapter{Number: rec.Chapter}
		entry.chapters[rec.Chapter] = chapter
		entry.book.Chapters = append(entry.book.Chapters, chapter)
	}

	chapter.Verses = append(chapter.Verses, &zefania.Verse{
		Number: rec.Verse,
		Body:   text,
	})
}

// displayName picks the bname for the first record of a book.
func (b *Builder) displayName(rec types.Record) string {
	if rec.BookName != "" {
		return rec.BookName
	}
	if b.options.CanonicalBookNames {
		if name, ok := zefania.CanonicalName(rec.BookNumber); ok {
			return name
		}
	}
	return zefania.DefaultBookName(rec.BookNumber)
}

// Document returns the tree built so far.
func (b *Builder) Document() *zefania.Document {
	return b.doc
}

// Stats returns the counts for the tree built so far.
func (b *Builder) Stats() TransformStats {
	return TransformStats{
		Rows:     b.rows,
		Books:    len(b.doc.Books),
		Chapters: b.doc.ChapterCount(),
		Verses:   b.doc.VerseCount(),
	}
}

// =============================================================================
// ROW EXTRACTION
// =============================================================================

// RecordFromRow extracts a trimmed Record from a raw row.
//
// PARAMETERS:
//   - row: The raw row.
//   - mapping: The resolved columns.
//
// RETURNS:
//   - The Record.
//   - A *types.MissingFieldError if the row is too short to hold a required
//     column. A missing optional book name cell is not an error.
func RecordFromRow(row types.Row, mapping *columns.Mapping) (types.Record, error) {
	rec := types.Record{RowNumber: row.Number}

	required := []struct {
		field  string
		column columns.Column
		target *string
	}{
		{columns.BookNumber, mapping.BookNumber, &rec.BookNumber},
		{columns.Chapter, mapping.Chapter, &rec.Chapter},
		{columns.Verse, mapping.Verse, &rec.Verse},
		{columns.Text, mapping.Text, &rec.Text},
	}

	for _, r := range required {
		value, ok := row.Cell(r.column.Index)
		if !ok {
			return types.Record{}, &types.MissingFieldError{
				Field:     r.field,
				Column:    r.column.Header,
				RowNumber: row.Number,
			}
		}
		*r.target = strings.TrimSpace(value)
	}

	if mapping.BookName != nil {
		if value, ok := row.Cell(mapping.BookName.Index); ok {
			rec.BookName = strings.TrimSpace(value)
		}
	}

	return rec, nil
}

// BuildDocument runs every row of table through a Builder.
//
// The tree is returned only when every row succeeded; the first
// MissingFieldError aborts the pass.
func BuildDocument(table *types.Table, mapping *columns.Mapping, metadata zefania.Metadata, options TransformOptions) (*zefania.Document, TransformStats, error) {
	builder := NewBuilder(metadata, options)

	for _, row := range table.Rows {
		rec, err := RecordFromRow(row, mapping)
		if err != nil {
			return nil, builder.Stats(), err
		}
		builder.Add(rec)
	}

	return builder.Document(), builder.Stats(), nil
}
