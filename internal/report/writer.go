// =============================================================================
// Booking Invoicer - XLSX Batch Report
// =============================================================================
//
// Every processed export gets a workbook named <file-stem>_<run-id>.xlsx:
//
//   | Sheet   | Content                                        |
//   |---------|------------------------------------------------|
//   | Results | Booking Number, Success, Message (one per row) |
//   | Summary | Run id, file, timings and counters             |
//
// File-level failures appear in Results with an empty booking number.
//
// =============================================================================

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/booking-invoicer/internal/converter"
)

const (
	ResultsSheet = "Results"
	SummarySheet = "Summary"

	timeLayout = "2006-01-02 15:04:05"
)

var resultsHeader = []interface{}{"Booking Number", "Success", "Message"}

// FileName returns the report file name for a batch.
func FileName(r converter.Result) string {
	stem := strings.TrimSuffix(r.FileName, filepath.Ext(r.FileName))
	return fmt.Sprintf("%s_%s.xlsx", stem, r.RunID)
}

// WriteXLSX writes the report of a batch into dir.
//
// RETURNS:
//   - The path of the written workbook.
//   - An error if the workbook cannot be built or saved.
func WriteXLSX(dir string, r converter.Result) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		return "", fmt.Errorf("failed to create results sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return "", fmt.Errorf("failed to create summary sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeResults(f, r, bold); err != nil {
		return "", err
	}
	if err := writeSummary(f, r, bold); err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName(r))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	return path, nil
}

func writeResults(f *excelize.File, r converter.Result, headerStyle int) error {
	if err := f.SetSheetRow(ResultsSheet, "A1", &resultsHeader); err != nil {
		return fmt.Errorf("failed to write results header: %w", err)
	}
	if err := f.SetCellStyle(ResultsSheet, "A1", "C1", headerStyle); err != nil {
		return fmt.Errorf("failed to style results header: %w", err)
	}

	for i, res := range r.Results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{res.BookingNumber, yesNo(res.Success), res.Message}
		if err := f.SetSheetRow(ResultsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write result row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(ResultsSheet, "A", "A", 18); err != nil {
		return err
	}
	if err := f.SetColWidth(ResultsSheet, "B", "B", 10); err != nil {
		return err
	}
	return f.SetColWidth(ResultsSheet, "C", "C", 80)
}

func writeSummary(f *excelize.File, r converter.Result, labelStyle int) error {
	fileError := r.FileError
	if fileError == "" {
		fileError = "-"
	}

	rows := [][]interface{}{
		{"Run ID", r.RunID},
		{"File", r.FileName},
		{"Started", r.StartedAt.Format(timeLayout)},
		{"Finished", r.FinishedAt.Format(timeLayout)},
		{"Bookings", r.Stats.Admitted},
		{"Submitted", r.Stats.Succeeded},
		{"Failed", r.Stats.Failed},
		{"Skipped Rows", r.Stats.Skipped},
		{"Moved To Processed", yesNo(r.Moved)},
		{"File Error", fileError},
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}

	if err := f.SetCellStyle(SummarySheet, "A1", fmt.Sprintf("A%d", len(rows)), labelStyle); err != nil {
		return fmt.Errorf("failed to style summary labels: %w", err)
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 22); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "B", "B", 60)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
