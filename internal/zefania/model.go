// =============================================================================
// CSV to Zefania Converter - Zefania Document Model
// =============================================================================
//
// This module defines the in-memory tree that is built from the input rows
// and written out as Zefania XML:
//
//   Document (XMLBIBLE)
//     └── Book (BIBLEBOOK bnumber bname bsname)
//           └── Chapter (CHAPTER cnumber)
//                 └── Verse (VERS vnumber)
//
// Children are kept in the order they were first seen. Nothing is sorted:
// book "10" stays wherever it first appeared in the input.
//
// =============================================================================

package zefania

import "fmt"

// Default root attribute values.
const (
	SchemaInstanceNS      = "http://www.w3.org/2001/XMLSchema-instance"
	DefaultSchemaLocation = "zef2005.xsd"
	DefaultStatus         = "v"
	DefaultVersion        = "2.0.1.18"
	DefaultType           = "x-bible"
	DefaultRevision       = "0"
)

// =============================================================================
// TREE TYPES
// =============================================================================

// Metadata holds the fixed attributes of the XMLBIBLE root element.
type Metadata struct {
	SchemaLocation string
	BibleName      string
	Status         string
	Version        string
	Type           string
	Revision       string
}

// DefaultMetadata returns the root attributes for the given bible name.
func DefaultMetadata(bibleName string) Metadata {
	return Metadata{
		SchemaLocation: DefaultSchemaLocation,
		BibleName:      bibleName,
		Status:         DefaultStatus,
		Version:        DefaultVersion,
		Type:           DefaultType,
		Revision:       DefaultRevision,
	}
}

// Document is the root of the tree.
type Document struct {
	Metadata Metadata
	Books    []*Book
}

// Book is one BIBLEBOOK element.
type Book struct {
	// Number is the book number exactly as it appeared in the input.
	Number string

	// Name is the display name written to bname.
	Name string

	// ShortName is written to bsname.
	ShortName string

	Chapters []*Chapter
}

// Chapter is one CHAPTER element.
type Chapter struct {
	Number string
	Verses []*Verse
}

// Verse is one VERS element.
type Verse struct {
	Number string
	Body   string
}

// =============================================================================
// NAMING
// =============================================================================

// DefaultBookName returns the display name used when the input has no name
// for a book.
func DefaultBookName(number string) string {
	return fmt.Sprintf("Book %s", number)
}

// ShortBookName returns the bsname value for a book number.
func ShortBookName(number string) string {
	return "B" + number
}

// =============================================================================
// COUNTS
// =============================================================================

// ChapterCount returns the number of chapters across all books.
func (d *Document) ChapterCount() int {
	total := 0
	for _, b := range d.Books {
		total += len(b.Chapters)
	}
	return total
}

// VerseCount returns the number of verses across all books.
func (d *Document) VerseCount() int {
	total := 0
	for _, b := range d.Books {
		total += b.VerseCount()
	}
	return total
}

// VerseCount returns the number of verses in the book.
func (b *Book) VerseCount() int {
	total := 0
	for _, c := range b.Chapters {
		total += len(c.Verses)
	}
	return total
}
