// =============================================================================
// CSV to Zefania Converter - Validation Engine
// =============================================================================
//
// This module inspects a built Zefania tree for data that is accepted but
// probably not intended:
//   - Book, chapter or verse numbers that are not positive integers
//   - Verses with empty text
//   - The same verse number appearing twice in a chapter
//
// VALIDATION STRATEGY:
//   Findings are collected, never thrown. The tree is written exactly as it
//   was built; the converter only logs what is found here. Numbers stay
//   opaque strings and duplicate verses stay in the output.
//
// =============================================================================

package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/csv2zefania/internal/zefania"
)

// Rule names.
const (
	RuleNonNumeric     = "non_numeric"
	RuleEmptyText      = "empty_text"
	RuleDuplicateVerse = "duplicate_verse"
)

// =============================================================================
// VALIDATION WARNING TYPES
// =============================================================================

// Warning is a single finding.
type Warning struct {
	// Rule is the check that produced the warning.
	Rule string

	// Book, Chapter and Verse locate the finding. Chapter and Verse are empty
	// when the finding is about the book itself.
	Book    string
	Chapter string
	Verse   string

	// Message is a human-readable description.
	Message string
}

// String formats the warning with its location.
func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s: %s", strings.ToUpper(w.Rule), w.Location(), w.Message)
}

// Location returns "book 1", "book 1 chapter 2" or "1 2:3".
func (w Warning) Location() string {
	switch {
	case w.Verse != "":
		return fmt.Sprintf("%s %s:%s", w.Book, w.Chapter, w.Verse)
	case w.Chapter != "":
		return fmt.Sprintf("book %s chapter %s", w.Book, w.Chapter)
	default:
		return fmt.Sprintf("book %s", w.Book)
	}
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// Result contains the results of validation.
type Result struct {
	// Warnings contains every finding in document order.
	Warnings []Warning

	// VersesValidated is the total number of verses checked.
	VersesValidated int
}

// Count returns the number of warnings produced by rule.
func (r *Result) Count(rule string) int {
	n := 0
	for _, w := range r.Warnings {
		if w.Rule == rule {
			n++
		}
	}
	return n
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// Check validates the whole document.
//
// PARAMETERS:
//   - doc: The built tree.
//
// RETURNS:
//   - A Result with every warning found.
func Check(doc *zefania.Document) *Result {
	result := &Result{}

	for _, book := range doc.Books {
		if !isPositiveInteger(book.Number) {
			result.add(RuleNonNumeric, book.Number, "", "",
				fmt.Sprintf("book number %q is not a positive integer", book.Number))
		}

		for _, chapter := range book.Chapters {
			if !isPositiveInteger(chapter.Number) {
				result.add(RuleNonNumeric, book.Number, chapter.Number, "",
					fmt.Sprintf("chapter number %q is not a positive integer", chapter.Number))
			}

			checkVerses(result, book, chapter)
		}
	}

	return result
}

// checkVerses validates the verses of one chapter.
func checkVerses(result *Result, book *zefania.Book, chapter *zefania.Chapter) {
	seen := make(map[string]int, len(chapter.Verses))

	for _, verse := range chapter.Verses {
		result.VersesValidated++

		if !isPositiveInteger(verse.Number) {
			result.add(RuleNonNumeric, book.Number, chapter.Number, verse.Number,
				fmt.Sprintf("verse number %q is not a positive integer", verse.Number))
		}

		if strings.TrimSpace(verse.Body) == "" {
			result.add(RuleEmptyText, book.Number, chapter.Number, verse.Number,
				"verse text is empty")
		}

		seen[verse.Number]++
		if seen[verse.Number] == 2 {
			result.add(RuleDuplicateVerse, book.Number, chapter.Number, verse.Number,
				"verse number appears more than once in the chapter")
		}
	}
}

func (r *Result) add(rule, book, chapter, verse, message string) {
	r.Warnings = append(r.Warnings, Warning{
		Rule:    rule,
		Book:    book,
		Chapter: chapter,
		Verse:   verse,
		Message: message,
	})
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// isPositiveInteger checks that value is made of digits and is above zero.
func isPositiveInteger(value string) bool {
	n, err := strconv.Atoi(value)
	if err != nil {
		return false
	}
	// Atoi accepts a leading sign.
	return n > 0 && value[0] != '+'
}

// FormatWarnings formats warnings for display, one per line.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return "No validation warnings."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d validation warnings:\n", len(warnings)))
	for i, w := range warnings {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, w.String()))
	}
	return sb.String()
}
