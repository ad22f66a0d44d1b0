// =============================================================================
// CSV to Zefania Converter - Inspect Command
// =============================================================================
//
// This file defines the 'inspect' command, which reads a Zefania XML file
// back and prints what it contains.
//
// COMMAND USAGE:
//   csv2zefania inspect <file.xml>
//
// OUTPUT:
//   Bible: kjv
//   Book 1 (Genesis): 50 chapters, 1533 verses
//   Book 2 (Exodus): 40 chapters, 1213 verses
//   Total: 2 books, 2746 verses
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/csv2zefania/internal/zefania"
)

// inspectCmd represents the 'inspect' command.
var inspectCmd = &cobra.Command{
	Use:   "inspect <file.xml>",
	Short: "Summarize a Zefania XML file",
	Long:  `Parse a Zefania XML file and print the bible name and the chapter and verse counts of each book.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd, args[0])
	},
}

// runInspect prints the summary of one XML file.
func runInspect(cmd *cobra.Command, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	summary, err := zefania.Inspect(file)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Bible: %s\n", summary.BibleName)
	for _, book := range summary.Books {
		fmt.Fprintf(out, "Book %s (%s): %d chapters, %d verses\n",
			book.Number, book.Name, book.Chapters, book.Verses)
	}
	fmt.Fprintf(out, "Total: %d books, %d verses\n", len(summary.Books), summary.VerseCount())

	return nil
}

// init registers the inspect command with the root command.
func init() {
	rootCmd.AddCommand(inspectCmd)
}
