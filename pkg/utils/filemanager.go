// =============================================================================
// CSV to Zefania Converter - File Manager Utility
// =============================================================================
//
// This module provides the file helpers used around a conversion:
//   - Output path and bible name derivation from the input path
//   - Input format detection
//   - Staged whole-file writes that never leave a partial output behind
//
// OUTPUT NAMING:
//   bibles/kjv.csv   -> bibles/kjv.xml     (biblename "kjv")
//   bibles/kjv       -> bibles/kjv.xml
//   bibles/kjv.v2.csv -> bibles/kjv.v2.xml (only the last extension is replaced)
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// OutputPath derives the XML output path from the input path by replacing
// its extension with ".xml". An input without an extension gets ".xml"
// appended.
func OutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + ".xml"
}

// BibleName returns the base name of the input file without its extension.
func BibleName(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsWorkbook reports whether the input should be read as an XLSX workbook.
func IsWorkbook(inputPath string) bool {
	return strings.EqualFold(filepath.Ext(inputPath), ".xlsx")
}

// =============================================================================
// FILE WRITING
// =============================================================================

// StagedFile is a complete file written next to its destination but not
// yet visible under the destination name.
type StagedFile struct {
	path    string
	tmpPath string
}

// StageFile writes data to a temporary file in the directory of path. Call
// Commit to move it into place or Discard to drop it. Until Commit, any
// existing file at path is untouched.
//
// PARAMETERS:
//   - path: The destination path.
//   - data: The complete file contents.
//
// RETURNS:
//   - The staged file.
//   - An error if the temporary file cannot be written.
func StageFile(path string, data []byte) (*StagedFile, error) {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &StagedFile{path: path, tmpPath: tmpPath}, nil
}

// Path returns the destination path.
func (s *StagedFile) Path() string {
	return s.path
}

// Commit renames the staged file to its destination.
func (s *StagedFile) Commit() error {
	if err := os.Rename(s.tmpPath, s.path); err != nil {
		os.Remove(s.tmpPath)
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}

// Discard removes the staged file.
func (s *StagedFile) Discard() {
	os.Remove(s.tmpPath)
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
