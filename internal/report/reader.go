package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/booking-invoicer/internal/types"
)

// =============================================================================
// REPORT READER
// =============================================================================

// ResultColumns holds the zero-based column positions of the Results sheet.
type ResultColumns struct {
	BookingNumber int
	Success       int
	Message       int

	// DataStartRow is the first row after the header (0-indexed).
	DataStartRow int
}

// DefaultResultColumns returns the layout written by WriteXLSX.
func DefaultResultColumns() ResultColumns {
	return ResultColumns{
		BookingNumber: 0,
		Success:       1,
		Message:       2,
		DataStartRow:  1,
	}
}

// ReadResults reads the per-row results back from a saved report.
//
// PARAMETERS:
//   - path: The path to the XLSX report.
//
// RETURNS:
//   - The results in sheet order.
//   - An error if the workbook cannot be opened or has no Results sheet.
func ReadResults(path string) ([]types.ProcessResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(ResultsSheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("report has no %s sheet", ResultsSheet)
	}

	rows, err := f.GetRows(ResultsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	columns := DefaultResultColumns()
	var results []types.ProcessResult
	for i := columns.DataStartRow; i < len(rows); i++ {
		row := rows[i]
		if isRowEmpty(row) {
			continue
		}
		results = append(results, types.ProcessResult{
			BookingNumber: getCell(row, columns.BookingNumber),
			Success:       strings.EqualFold(getCell(row, columns.Success), "yes"),
			Message:       getCell(row, columns.Message),
		})
	}

	return results, nil
}

// getCell returns the trimmed value at index, or "" for short rows.
func getCell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
