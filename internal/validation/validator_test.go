package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/csv2zefania/internal/zefania"
)

func doc(books ...*zefania.Book) *zefania.Document {
	return &zefania.Document{Metadata: zefania.DefaultMetadata("x"), Books: books}
}

func book(number string, chapters ...*zefania.Chapter) *zefania.Book {
	return &zefania.Book{Number: number, Name: zefania.DefaultBookName(number), ShortName: zefania.ShortBookName(number), Chapters: chapters}
}

func chapter(number string, verses ...*zefania.Verse) *zefania.Chapter {
	return &zefania.Chapter{Number: number, Verses: verses}
}

func verse(number, body string) *zefania.Verse {
	return &zefania.Verse{Number: number, Body: body}
}

func TestCheck_Clean(t *testing.T) {
	result := Check(doc(
		book("1", chapter("1", verse("1", "a"), verse("2", "b"))),
		book("2", chapter("1", verse("1", "c"))),
	))

	assert.Empty(t, result.Warnings)
	assert.Equal(t, 3, result.VersesValidated)
	assert.Equal(t, "No validation warnings.", FormatWarnings(result.Warnings))
}

func TestCheck_NonNumeric(t *testing.T) {
	result := Check(doc(
		book("Gen", chapter("1a", verse("0", "a"), verse("+2", "b"), verse("-1", "c"))),
	))

	require.Equal(t, 5, result.Count(RuleNonNumeric))
	assert.Equal(t, "book Gen", result.Warnings[0].Location())
	assert.Equal(t, "book Gen chapter 1a", result.Warnings[1].Location())
	assert.Equal(t, "Gen 1a:0", result.Warnings[2].Location())
}

func TestCheck_EmptyText(t *testing.T) {
	result := Check(doc(book("1", chapter("1", verse("1", ""), verse("2", "  ")))))

	assert.Equal(t, 2, result.Count(RuleEmptyText))
}

func TestCheck_DuplicateVerse(t *testing.T) {
	result := Check(doc(book("1", chapter("1",
		verse("1", "a"), verse("1", "b"), verse("1", "c"), verse("2", "d"),
	))))

	// Reported once per duplicated number.
	require.Equal(t, 1, result.Count(RuleDuplicateVerse))
	assert.Equal(t, "1 1:1", result.Warnings[0].Location())
}

func TestWarning_String(t *testing.T) {
	w := Warning{Rule: RuleEmptyText, Book: "1", Chapter: "2", Verse: "3", Message: "verse text is empty"}
	assert.Equal(t, "[EMPTY_TEXT] 1 2:3: verse text is empty", w.String())
}

func TestFormatWarnings(t *testing.T) {
	out := FormatWarnings([]Warning{
		{Rule: RuleEmptyText, Book: "1", Chapter: "1", Verse: "1", Message: "verse text is empty"},
	})
	assert.Contains(t, out, "Found 1 validation warnings:")
	assert.Contains(t, out, "  1. [EMPTY_TEXT] 1 1:1: verse text is empty")
}
