// =============================================================================
// Booking Invoicer - CSV Parser Module
// =============================================================================
//
// This module parses booking export files. Exports are semicolon-delimited,
// carry a single header row, and are read positionally: no column is typed or
// looked up by header name.
//
// FEATURES:
//   - Empty lines are skipped
//   - Quoted fields are unquoted by the reader
//   - Malformed quoting is a parse error for the whole file
//   - A leading UTF-8 byte-order mark is ignored
//   - Header shape validation (exact column count)
//
// =============================================================================

package csvparser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// Delimiter separates fields in booking exports.
const Delimiter = ';'

// ExpectedColumns is the column count every booking export must have.
const ExpectedColumns = 27

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// =============================================================================
// CSV DATA STRUCTURE
// =============================================================================

// CSVData represents a parsed booking export.
type CSVData struct {
	// Rows contains every non-empty line as raw string fields, in file order.
	// Rows[0] is the header row.
	Rows [][]string

	// SourceFile is the path to the source CSV file, if parsed from disk.
	SourceFile string
}

// ColumnCount returns the number of fields in the header row, or 0 for an
// empty file.
func (d *CSVData) ColumnCount() int {
	if len(d.Rows) == 0 {
		return 0
	}
	return len(d.Rows[0])
}

// DataRows returns every row after the header.
func (d *CSVData) DataRows() [][]string {
	if len(d.Rows) <= 1 {
		return nil
	}
	return d.Rows[1:]
}

// =============================================================================
// ERRORS
// =============================================================================

// ColumnCountError reports a header row with the wrong number of fields.
type ColumnCountError struct {
	FileName string
	Expected int
	Actual   int
}

func (e *ColumnCountError) Error() string {
	return fmt.Sprintf("Invalid number of columns in file %s. Expected %d, got %d",
		e.FileName, e.Expected, e.Actual)
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseFile reads a booking export from disk and returns the parsed rows.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//
// RETURNS:
//   - A pointer to the CSVData struct containing the parsed rows.
//   - An error if the file cannot be opened or its content is not valid CSV.
func ParseFile(filePath string) (*CSVData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := Parse(file)
	if err != nil {
		return nil, err
	}

	data.SourceFile = filePath
	return data, nil
}

// Parse reads a booking export from r.
//
// The whole input is consumed; on any read or syntax error no partial rows
// are returned.
func Parse(r io.Reader) (*CSVData, error) {
	reader := bufio.NewReader(r)

	// Drop a leading byte-order mark so it does not end up in the first field.
	if prefix, err := reader.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		if _, err := reader.Discard(len(utf8BOM)); err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
	}

	csvReader := csv.NewReader(reader)
	configureReader(csvReader)

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return &CSVData{Rows: rows}, nil
}

// configureReader configures the CSV reader for booking exports.
func configureReader(reader *csv.Reader) {
	reader.Comma = Delimiter

	// Rows may differ in length; only the header is checked, and short data
	// rows fail individually during transformation.
	reader.FieldsPerRecord = -1

	// Strict quoting: a stray quote in an unquoted field or an unterminated
	// quoted field fails the file.
	reader.LazyQuotes = false

	// Field whitespace is significant to the transformer (e.g. prices).
	reader.TrimLeadingSpace = false
}

// ValidateColumnCount checks the header row against the expected column count.
//
// PARAMETERS:
//   - data: The parsed CSV data.
//   - fileName: The file name used in the error message.
//   - expected: The required number of columns.
//
// RETURNS:
//   - A *ColumnCountError if the header has a different number of fields.
func ValidateColumnCount(data *CSVData, fileName string, expected int) error {
	if actual := data.ColumnCount(); actual != expected {
		return &ColumnCountError{FileName: fileName, Expected: expected, Actual: actual}
	}
	return nil
}
