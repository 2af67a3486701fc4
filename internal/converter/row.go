package converter

import (
	"fmt"
	"regexp"

	"github.com/ginjaninja78/booking-invoicer/internal/csvparser"
)

// =============================================================================
// COLUMN LAYOUT
// =============================================================================
// Zero-based positions of the booking export columns the converter reads.
// Every other column is ignored. Reordered exports only need changes here.

const (
	colBookNumber    = 0
	colBookedBy      = 1
	colCheckIn       = 3
	colCheckOut      = 4
	colPeople        = 8
	colAdults        = 9
	colPrice         = 12
	colBookerCountry = 19
	colDuration      = 23
	colPhone         = 26
)

var bookingNumberPattern = regexp.MustCompile(`^\d+$`)

// =============================================================================
// BOOKING ROW
// =============================================================================

// BookingRow is one data row of a booking export with its columns named.
// Values are raw: quotes and units are stripped later by the transformer.
type BookingRow struct {
	BookNumber    string
	BookedBy      string
	CheckIn       string
	CheckOut      string
	People        string
	Adults        string
	Price         string
	BookerCountry string
	Duration      string
	Phone         string
}

// Admissible reports whether a raw row carries a booking number. Rows that
// do not (blank, header-like or malformed) are skipped without a result.
func Admissible(raw []string) bool {
	return len(raw) > 0 && bookingNumberPattern.MatchString(raw[colBookNumber])
}

// NewBookingRow names the columns of a raw row.
//
// RETURNS:
//   - The named row.
//   - An error if the row is too short to hold every column.
func NewBookingRow(raw []string) (BookingRow, error) {
	if len(raw) < csvparser.ExpectedColumns {
		return BookingRow{}, fmt.Errorf("missing fields: row has %d columns, expected %d",
			len(raw), csvparser.ExpectedColumns)
	}

	return BookingRow{
		BookNumber:    raw[colBookNumber],
		BookedBy:      raw[colBookedBy],
		CheckIn:       raw[colCheckIn],
		CheckOut:      raw[colCheckOut],
		People:        raw[colPeople],
		Adults:        raw[colAdults],
		Price:         raw[colPrice],
		BookerCountry: raw[colBookerCountry],
		Duration:      raw[colDuration],
		Phone:         raw[colPhone],
	}, nil
}
