// =============================================================================
// CSV to Zefania Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the csv2zefania CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   csv2zefania <file.csv>           - Convert a verse table to Zefania XML
//   csv2zefania inspect <file.xml>   - Summarize a Zefania XML file
//   csv2zefania version              - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core conversion logic (not for external import)
//   - pkg/           : Contains shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/csv2zefania/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
