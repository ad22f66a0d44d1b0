// =============================================================================
// CSV to Zefania Converter - Configuration Module
// =============================================================================
//
// This module loads the optional YAML configuration file. The converter works
// without any configuration: every setting has a default that reproduces the
// plain "csv2zefania file.csv" behaviour. A configuration file only changes
// the defaults; command-line flags override both.
//
// EXAMPLE (config.yaml):
//
//   bible:
//     name: "KJV"               # overrides the biblename derived from the file
//   columns:
//     strict: false
//     synonyms:
//       book_number: ["Buch"]
//       chapter: ["Kapitel"]
//   text:
//     normalize_strongs: true
//   books:
//     canonical_names: true
//   csv:
//     delimiter: ";"
//   output:
//     sqlite_path: "./kjv.db"
//   logging:
//     level: debug
//     format: text
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/csv2zefania/internal/columns"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// Bible controls the fixed attributes of the XMLBIBLE root element.
	Bible BibleSettings `yaml:"bible"`

	// Columns controls header resolution.
	Columns ColumnSettings `yaml:"columns"`

	// Text controls verse text normalization.
	Text TextSettings `yaml:"text"`

	// Books controls book display names.
	Books BookSettings `yaml:"books"`

	// CSV contains settings for parsing CSV input.
	CSV CSVSettings `yaml:"csv"`

	// XLSX contains settings for reading workbook input.
	XLSX XLSXSettings `yaml:"xlsx"`

	// Output contains settings for additional outputs.
	Output OutputSettings `yaml:"output"`

	// Logging controls the structured logger.
	Logging LoggingSettings `yaml:"logging"`
}

// BibleSettings holds the XMLBIBLE root attributes.
type BibleSettings struct {
	// Name overrides the biblename attribute.
	// Default: "" (derived from the input file's base name)
	Name string `yaml:"name"`

	// SchemaLocation is the xsi:noNamespaceSchemaLocation attribute.
	// Default: "zef2005.xsd"
	SchemaLocation string `yaml:"schema_location"`

	// Status is the status attribute.
	// Default: "v"
	Status string `yaml:"status"`

	// Version is the version attribute.
	// Default: "2.0.1.18"
	Version string `yaml:"version"`

	// Type is the type attribute.
	// Default: "x-bible"
	Type string `yaml:"type"`

	// Revision is the revision attribute.
	// Default: "0"
	Revision string `yaml:"revision"`
}

// ColumnSettings controls how input headers map onto logical fields.
type ColumnSettings struct {
	// Strict disables header normalization: spellings must match exactly.
	// Default: false
	Strict bool `yaml:"strict"`

	// Synonyms adds header spellings per logical field. Configured spellings
	// are tried before the built-in ones.
	// Valid keys: book_number, chapter, verse, text, book_name
	Synonyms map[string][]string `yaml:"synonyms"`
}

// TextSettings controls verse text normalization.
type TextSettings struct {
	// NormalizeStrongs rewrites {(H1234)} into {H1234}.
	// A pointer so that an explicit "false" can be told apart from "unset".
	// Default: true
	NormalizeStrongs *bool `yaml:"normalize_strongs"`
}

// BookSettings controls book display names.
type BookSettings struct {
	// CanonicalNames uses English book names (Genesis, Exodus, ...) for books
	// 1-66 when the input has no book name column.
	// Default: false ("Book {number}")
	CanonicalNames bool `yaml:"canonical_names"`
}

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the character used to separate fields.
	// Common values: "," (comma), ";" (semicolon), "\t" or "tab", "|"
	// Default: ","
	Delimiter string `yaml:"delimiter"`
}

// XLSXSettings contains settings for reading workbooks.
type XLSXSettings struct {
	// Sheet is the name of the sheet to read.
	// Default: "" (the first sheet)
	Sheet string `yaml:"sheet"`
}

// OutputSettings contains settings for additional outputs.
type OutputSettings struct {
	// SQLitePath, when set, also writes the verses to a SQLite database.
	// Default: "" (disabled)
	SQLitePath string `yaml:"sqlite_path"`
}

// LoggingSettings controls the logger.
type LoggingSettings struct {
	// Level controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "warn"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Valid values: "text", "json"
	// Default: "text"
	Format string `yaml:"format"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file. An empty path returns
//     the defaults; a named file must exist.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read or parsed, or is invalid.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	// Read the configuration file.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse parses YAML configuration data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply default values.
	applyDefaults(&cfg)

	// Validate the configuration.
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.Bible.SchemaLocation == "" {
		cfg.Bible.SchemaLocation = "zef2005.xsd"
	}
	if cfg.Bible.Status == "" {
		cfg.Bible.Status = "v"
	}
	if cfg.Bible.Version == "" {
		cfg.Bible.Version = "2.0.1.18"
	}
	if cfg.Bible.Type == "" {
		cfg.Bible.Type = "x-bible"
	}
	if cfg.Bible.Revision == "" {
		cfg.Bible.Revision = "0"
	}
	if cfg.Text.NormalizeStrongs == nil {
		normalize := true
		cfg.Text.NormalizeStrongs = &normalize
	}
	if cfg.CSV.Delimiter == "" {
		cfg.CSV.Delimiter = ","
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

// validate validates the configuration.
func validate(cfg *Config) error {
	known := columns.DefaultSynonyms()
	for field, spellings := range cfg.Columns.Synonyms {
		if _, ok := known[field]; !ok {
			return fmt.Errorf("columns.synonyms: unknown field %q", field)
		}
		for _, s := range spellings {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("columns.synonyms.%s: empty spelling", field)
			}
		}
	}

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", cfg.Logging.Level)
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q", cfg.Logging.Format)
	}

	if _, err := DelimiterRune(cfg.CSV.Delimiter); err != nil {
		return fmt.Errorf("csv.delimiter: %w", err)
	}

	return nil
}

// ShouldNormalizeStrongs reports whether Strong's normalization is enabled.
func (c *Config) ShouldNormalizeStrongs() bool {
	return c.Text.NormalizeStrongs == nil || *c.Text.NormalizeStrongs
}

// DelimiterRune converts a configured delimiter into the rune used by the
// CSV reader. Named delimiters are accepted for characters that are awkward
// to write in YAML.
func DelimiterRune(delimiter string) (rune, error) {
	switch delimiter {
	case "", ",", "comma":
		return ',', nil
	case "\\t", "\t", "tab", "TAB":
		return '\t', nil
	case "|", "pipe", "PIPE":
		return '|', nil
	case ";", "semicolon":
		return ';', nil
	}

	runes := []rune(delimiter)
	if len(runes) != 1 {
		return 0, fmt.Errorf("unsupported delimiter %q", delimiter)
	}
	switch runes[0] {
	case '"', '\r', '\n':
		return 0, fmt.Errorf("unsupported delimiter %q", delimiter)
	}
	return runes[0], nil
}
