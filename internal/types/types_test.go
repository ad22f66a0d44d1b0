package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRow_Cell(t *testing.T) {
	row := Row{Number: 2, Cells: []string{"1", "1", "1"}}

	value, ok := row.Cell(0)
	assert.True(t, ok)
	assert.Equal(t, "1", value)

	_, ok = row.Cell(3)
	assert.False(t, ok)

	_, ok = row.Cell(-1)
	assert.False(t, ok)
}

func TestMissingColumnError(t *testing.T) {
	err := fmt.Errorf("resolve: %w", &MissingColumnError{Field: "text", Tried: []string{"Text", "text"}})

	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.False(t, errors.Is(err, ErrMissingField))

	var mce *MissingColumnError
	assert.True(t, errors.As(err, &mce))
	assert.Equal(t, "text", mce.Field)
	assert.Contains(t, err.Error(), `missing required column "text" (tried: Text, text)`)
}

func TestMissingFieldError(t *testing.T) {
	err := &MissingFieldError{Field: "verse", Column: "Verse", RowNumber: 7}

	assert.True(t, errors.Is(err, ErrMissingField))
	assert.Equal(t, `row 7: missing value for "verse" (column "Verse")`, err.Error())
}

func TestCheckEncoding(t *testing.T) {
	assert.NoError(t, CheckEncoding(2, []string{"1", "1", "1", "café"}))

	err := CheckEncoding(3, []string{"1", "1", "1", "caf\xe9"})
	assert.True(t, errors.Is(err, ErrInvalidEncoding))

	var iee *InvalidEncodingError
	assert.True(t, errors.As(err, &iee))
	assert.Equal(t, 4, iee.Column)
	assert.Equal(t, "row 3: invalid UTF-8 in column 4", err.Error())
}
