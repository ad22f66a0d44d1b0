package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/csv2zefania/internal/zefania"
)

func testDocument() *zefania.Document {
	return &zefania.Document{
		Metadata: zefania.DefaultMetadata("kjv"),
		Books: []*zefania.Book{
			{Number: "1", Name: "Genesis", ShortName: "B1", Chapters: []*zefania.Chapter{
				{Number: "1", Verses: []*zefania.Verse{
					{Number: "1", Body: "In the beginning{H7225} God{H430}"},
					{Number: "2", Body: "And the earth"},
				}},
			}},
			{Number: "40", Name: "Matthew", ShortName: "B40", Chapters: []*zefania.Chapter{
				{Number: "1", Verses: []*zefania.Verse{
					{Number: "1", Body: "The book{G976}"},
				}},
			}},
		},
	}
}

func TestExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kjv.db")

	stats, err := ExportFile(context.Background(), path, testDocument())
	require.NoError(t, err)
	assert.Equal(t, ExportStats{Verses: 3, StrongNumbers: 3}, stats)

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM verses").Scan(&count))
	assert.Equal(t, 3, count)

	var name, text string
	require.NoError(t, db.QueryRow(
		"SELECT book_name, verse FROM verses WHERE book_number = ? AND chapter_number = ? AND verse_number = ?",
		"40", "1", "1").Scan(&name, &text))
	assert.Equal(t, "Matthew", name)
	assert.Equal(t, "The book{G976}", text)

	rows, err := db.Query(
		"SELECT strong_number FROM verse_strong_numbers WHERE book_number = '1' ORDER BY position")
	require.NoError(t, err)
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		require.NoError(t, rows.Scan(&ref))
		refs = append(refs, ref)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"H7225", "H430"}, refs)
}

func TestExportFile_ReplacesPreviousContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kjv.db")

	_, err := ExportFile(context.Background(), path, testDocument())
	require.NoError(t, err)
	_, err = ExportFile(context.Background(), path, testDocument())
	require.NoError(t, err)

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM verses").Scan(&count))
	assert.Equal(t, 3, count)
}

func TestExport_CanceledContext(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "kjv.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Export(ctx, db, testDocument())
	assert.Error(t, err)
}
