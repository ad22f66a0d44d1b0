// =============================================================================
// CSV to Zefania Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Called with a file
// argument, the root command converts that file; the subcommands cover the
// remaining operations.
//
// COBRA CLI STRUCTURE:
//   rootCmd (csv2zefania <file.csv>)
//   ├── inspectCmd (csv2zefania inspect <file.xml>)
//   └── versionCmd (csv2zefania version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration file named with --config
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// usageLine is printed to stdout when no input file is given.
const usageLine = "Usage: csv2zefania <filename.csv>"

// cfgFile holds the path to the configuration file named with --config.
// Empty means no file is read.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// UsageError is returned when the command line is missing the input file.
// The usage line has already been printed when it is returned.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return e.Reason
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "csv2zefania <filename.csv>",
	Short: "Convert verse tables to Zefania XML",
	Long: `csv2zefania converts a table of scripture verses (CSV, or an XLSX
workbook) into a Zefania XML bible.

The input needs a header row with book number, chapter, verse and text
columns. Header spellings are matched loosely ("Book Number", "book",
"BOOK_NUMBER" all work). An optional book name column fills bname.

Example Usage:
  csv2zefania kjv.csv                      # writes kjv.xml next to the input
  csv2zefania kjv.csv -o out/kjv.xml       # choose the output path
  csv2zefania kjv.xlsx --sqlite kjv.db     # also export verses to SQLite
  csv2zefania inspect kjv.xml              # count books, chapters and verses`,

	// The file argument is not a subcommand name.
	Args: cobra.ArbitraryArgs,

	// Errors are printed once by Execute.
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args)
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		var usageErr *UsageError
		if !errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init is called automatically when the package is loaded.
// It sets up the global flags.
func init() {
	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================
	// Persistent flags are available to this command and all subcommands.

	// --config flag: Allows the user to specify a configuration file.
	// Without it the built-in defaults are used; a named file must exist.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to a YAML configuration file",
	)

	// --verbose flag: Enables verbose/debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	registerConvertFlags(rootCmd)
}
