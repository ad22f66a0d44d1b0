package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "", cfg.Bible.Name)
	assert.Equal(t, "zef2005.xsd", cfg.Bible.SchemaLocation)
	assert.Equal(t, "v", cfg.Bible.Status)
	assert.Equal(t, "2.0.1.18", cfg.Bible.Version)
	assert.Equal(t, "x-bible", cfg.Bible.Type)
	assert.Equal(t, "0", cfg.Bible.Revision)
	assert.True(t, cfg.ShouldNormalizeStrongs())
	assert.False(t, cfg.Columns.Strict)
	assert.False(t, cfg.Books.CanonicalNames)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
bible:
  name: KJV
  revision: "3"
columns:
  strict: true
  synonyms:
    chapter: ["Kapitel"]
text:
  normalize_strongs: false
books:
  canonical_names: true
csv:
  delimiter: ";"
xlsx:
  sheet: Verses
output:
  sqlite_path: out.db
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "KJV", cfg.Bible.Name)
	assert.Equal(t, "3", cfg.Bible.Revision)
	assert.Equal(t, "x-bible", cfg.Bible.Type)
	assert.True(t, cfg.Columns.Strict)
	assert.Equal(t, []string{"Kapitel"}, cfg.Columns.Synonyms["chapter"])
	assert.False(t, cfg.ShouldNormalizeStrongs())
	assert.True(t, cfg.Books.CanonicalNames)
	assert.Equal(t, ";", cfg.CSV.Delimiter)
	assert.Equal(t, "Verses", cfg.XLSX.Sheet)
	assert.Equal(t, "out.db", cfg.Output.SQLitePath)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{
			name:    "malformed yaml",
			content: "bible: [",
			errText: "failed to parse config file",
		},
		{
			name:    "unknown synonym field",
			content: "columns:\n  synonyms:\n    psalm: [\"x\"]\n",
			errText: `unknown field "psalm"`,
		},
		{
			name:    "empty synonym",
			content: "columns:\n  synonyms:\n    text: [\" \"]\n",
			errText: "empty spelling",
		},
		{
			name:    "bad log level",
			content: "logging:\n  level: loud\n",
			errText: `unknown level "loud"`,
		},
		{
			name:    "bad log format",
			content: "logging:\n  format: xml\n",
			errText: `unknown format "xml"`,
		},
		{
			name:    "bad delimiter",
			content: "csv:\n  delimiter: \"::\"\n",
			errText: "unsupported delimiter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestDelimiterRune(t *testing.T) {
	tests := []struct {
		input    string
		expected rune
	}{
		{"", ','},
		{",", ','},
		{"tab", '\t'},
		{"\\t", '\t'},
		{"pipe", '|'},
		{";", ';'},
		{":", ':'},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := DelimiterRune(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, r)
		})
	}

	_, err := DelimiterRune(`"`)
	assert.Error(t, err)
}
