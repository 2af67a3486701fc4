// =============================================================================
// Booking Invoicer - File Manager Utility
// =============================================================================
//
// This module provides the file handling around a batch:
//   - Directory bootstrap
//   - Importing external exports into the incoming directory
//   - Scanning incoming for exports
//   - Moving finished exports to processed
//   - Writing the plain-text processing summary
//
// LIFECYCLE OF AN EXPORT:
//   import -> incoming/<name>.csv -> (batch) -> processed/<name>.csv
//   A file is moved to processed exactly once, when its batch ends, and
//   replaces any earlier file of the same name there.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the invoicer.
type FileManager struct {
	// IncomingDir holds exports waiting to be processed.
	IncomingDir string

	// ProcessedDir receives exports once their batch has run.
	ProcessedDir string

	// PayloadsDir holds one JSON payload per booking.
	PayloadsDir string

	// ReportsDir holds XLSX reports and processing summaries.
	ReportsDir string
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(incomingDir, processedDir, payloadsDir, reportsDir string) *FileManager {
	return &FileManager{
		IncomingDir:  incomingDir,
		ProcessedDir: processedDir,
		PayloadsDir:  payloadsDir,
		ReportsDir:   reportsDir,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates all managed directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	return ensureDirs(fm.IncomingDir, fm.ProcessedDir, fm.PayloadsDir, fm.ReportsDir)
}

// EnsureOutputDirectories creates the directories a batch writes into.
func (fm *FileManager) EnsureOutputDirectories() error {
	return ensureDirs(fm.ProcessedDir, fm.PayloadsDir)
}

func ensureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// IncomingPath returns the path of an export in the incoming directory. Only
// the base name of fileName is used.
func (fm *FileManager) IncomingPath(fileName string) string {
	return filepath.Join(fm.IncomingDir, filepath.Base(fileName))
}

// DiscoverInputFiles lists the .csv files in the incoming directory.
//
// RETURNS:
//   - Base file names, sorted.
//   - An error if the directory cannot be read.
func (fm *FileManager) DiscoverInputFiles() ([]string, error) {
	entries, err := os.ReadDir(fm.IncomingDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan incoming directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		files = append(files, entry.Name())
	}

	sort.Strings(files)
	return files, nil
}

// =============================================================================
// IMPORT AND RELOCATION
// =============================================================================

// ImportFile copies an external export into the incoming directory under its
// base name, replacing any file of the same name. A file that already is the
// incoming copy is left untouched.
//
// RETURNS:
//   - The base name of the imported file.
//   - An error if the copy fails.
func (fm *FileManager) ImportFile(srcPath string) (string, error) {
	name := filepath.Base(srcPath)
	if err := ensureDirs(fm.IncomingDir); err != nil {
		return "", err
	}

	target := filepath.Join(fm.IncomingDir, name)
	if sameFile(srcPath, target) {
		return name, nil
	}

	if err := copyFile(srcPath, target); err != nil {
		return "", fmt.Errorf("failed to import %s: %w", srcPath, err)
	}
	return name, nil
}

// MoveToProcessed moves a file into the processed directory under its base
// name, overwriting any existing file there.
//
// RETURNS:
//   - The new path of the file.
//   - An error if the move fails. The file then stays where it was.
func (fm *FileManager) MoveToProcessed(filePath string) (string, error) {
	target := filepath.Join(fm.ProcessedDir, filepath.Base(filePath))

	if err := os.Rename(filePath, target); err != nil {
		// Rename fails across devices; fall back to copy and delete.
		if _, statErr := os.Stat(filePath); statErr != nil {
			return "", fmt.Errorf("failed to move file to processed: %w", err)
		}
		if err := copyFile(filePath, target); err != nil {
			return "", fmt.Errorf("failed to copy file to processed: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return target, nil
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about one process run.
type ProcessingSummary struct {
	StartTime time.Time
	EndTime   time.Time
	Files     []FileSummary
}

// FileSummary describes the batch of one export.
type FileSummary struct {
	FileName  string
	RunID     string
	Admitted  int
	Succeeded int
	Failed    int
	Skipped   int

	// FileError is set when the batch aborted on a file-level failure.
	FileError string

	// ReportPath is the XLSX report of the batch, if one was written.
	ReportPath string
}

// Totals sums the booking counters over all files.
func (s ProcessingSummary) Totals() (admitted, succeeded, failed int) {
	for _, f := range s.Files {
		admitted += f.Admitted
		succeeded += f.Succeeded
		failed += f.Failed
	}
	return admitted, succeeded, failed
}

// WriteSummaryLog writes a processing summary to a text file.
//
// PARAMETERS:
//   - summary: The processing summary.
//   - outputDir: The directory to write the summary file.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	if err := ensureDirs(outputDir); err != nil {
		return "", err
	}

	timestamp := summary.StartTime.Format("20060102_150405")
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("processing_summary_%s.txt", timestamp))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	admitted, succeeded, failed := summary.Totals()
	fmt.Fprintf(writer, "Booking Invoicer - Processing Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n\n"+
		"Statistics:\n"+
		"  Files:          %d\n"+
		"  Bookings:       %d\n"+
		"  Submitted:      %d\n"+
		"  Failed:         %d\n\n",
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Sub(summary.StartTime).String(),
		len(summary.Files),
		admitted,
		succeeded,
		failed)

	if len(summary.Files) > 0 {
		writer.WriteString("Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, f := range summary.Files {
			fmt.Fprintf(writer, "  File:      %s\n", f.FileName)
			fmt.Fprintf(writer, "  Run ID:    %s\n", f.RunID)
			if f.FileError != "" {
				fmt.Fprintf(writer, "  Error:     %s\n", f.FileError)
			}
			fmt.Fprintf(writer, "  Bookings:  %d (submitted %d, failed %d, skipped rows %d)\n",
				f.Admitted, f.Succeeded, f.Failed, f.Skipped)
			if f.ReportPath != "" {
				fmt.Fprintf(writer, "  Report:    %s\n", f.ReportPath)
			}
			writer.WriteString("\n")
		}
	}

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		return err
	}
	if err := destFile.Sync(); err != nil {
		destFile.Close()
		return err
	}

	return destFile.Close()
}

// sameFile reports whether both paths name the same existing file. Copying a
// file onto itself would truncate it.
func sameFile(a, b string) bool {
	infoA, err := os.Stat(a)
	if err != nil {
		return false
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}
