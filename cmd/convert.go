// =============================================================================
// CSV to Zefania Converter - Convert Command
// =============================================================================
//
// This file holds the conversion run by the root command.
//
// COMMAND USAGE:
//   csv2zefania <filename.csv> [flags]
//
// FLAGS:
//   --output, -o   : Output path (default: input path with .xml extension)
//   --bible-name   : biblename attribute (default: input file base name)
//   --strict       : Match headers exactly, without normalization
//   --no-normalize : Keep {(H1234)} Strong's references as written
//   --sqlite       : Also export the verses to this SQLite database
//
// OUTPUT:
//   Converted kjv.csv -> kjv.xml
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/csv2zefania/internal/config"
	"github.com/ginjaninja78/csv2zefania/internal/converter"
	"github.com/ginjaninja78/csv2zefania/internal/logging"
	"github.com/ginjaninja78/csv2zefania/internal/validation"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// outputPath overrides the derived output path.
var outputPath string

// bibleName overrides the biblename attribute.
var bibleName string

// strict disables header normalization.
var strict bool

// noNormalize disables Strong's normalization.
var noNormalize bool

// sqlitePath enables the SQLite export.
var sqlitePath string

// registerConvertFlags adds the conversion flags to cmd.
func registerConvertFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output XML path (default: input path with .xml extension)")
	cmd.Flags().StringVar(&bibleName, "bible-name", "", "biblename attribute (default: input file base name)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Match column headers exactly")
	cmd.Flags().BoolVar(&noNormalize, "no-normalize", false, "Do not rewrite {(H1234)} Strong's references")
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Also write the verses to this SQLite database")
}

// =============================================================================
// CONVERSION
// =============================================================================

// runConvert converts the file named by the first argument.
//
// The usage check happens before any file is touched, including the
// configuration file.
func runConvert(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), usageLine)
		return &UsageError{Reason: "missing input file"}
	}
	if len(args) > 1 {
		fmt.Fprintln(cmd.OutOrStdout(), usageLine)
		return &UsageError{Reason: fmt.Sprintf("expected one input file, got %d", len(args))}
	}
	inputPath := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	conv := converter.New(inputPath, cfg,
		converter.WithOutputPath(outputPath),
		converter.WithSQLitePath(sqlitePath),
		converter.WithLogger(logger),
	)

	result, err := conv.Run(cmd.Context())
	if err != nil {
		return err
	}

	if verbose && len(result.Warnings) > 0 {
		fmt.Fprint(cmd.ErrOrStderr(), validation.FormatWarnings(result.Warnings))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Converted %s -> %s\n", result.InputFile, result.OutputFile)
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// loadConfig loads the file named with --config, or the defaults.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// applyFlagOverrides copies command-line flags over configured values.
func applyFlagOverrides(cfg *config.Config) {
	if bibleName != "" {
		cfg.Bible.Name = bibleName
	}
	if strict {
		cfg.Columns.Strict = true
	}
	if noNormalize {
		normalize := false
		cfg.Text.NormalizeStrongs = &normalize
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
}

// newLogger builds the logger for a command. Logs go to stderr.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return logger, nil
}
