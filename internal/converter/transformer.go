// =============================================================================
// Booking Invoicer - Transformation Engine
// =============================================================================
//
// This module turns one booking row into one invoice payload by merging the
// row into the payload template.
//
// FIELD RULES:
//   - Booked-by name, country code and both dates lose their quote characters
//   - Price loses " EUR" and quotes, is trimmed and read as a decimal
//   - Phone loses quotes and every "+", is trimmed and re-prefixed with "+"
//   - The phone number is carried in partner.ulica
//   - Line-item quantity is the number of nights
//   - Line-item VAT is the configured VAT
//   - Closing text embeds the configured city tax rate
//
// DATES:
//   datum_dodania is the check-in date; datum_vystavenia and datum_splatnosti
//   are both the check-out date.
//
// The template is never modified. Each payload is built field by field from a
// copy of the template and owns its own line-item slice.
//
// =============================================================================

package converter

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/booking-invoicer/internal/config"
	"github.com/ginjaninja78/booking-invoicer/internal/types"
)

// =============================================================================
// TRANSFORMER
// =============================================================================

// Transformer builds invoice payloads from booking rows.
type Transformer struct {
	settings *config.Settings
	template *types.Document
}

// NewTransformer creates a Transformer for the given settings and template.
// The template must contain at least one line item.
func NewTransformer(settings *config.Settings, template *types.Document) *Transformer {
	return &Transformer{
		settings: settings,
		template: template,
	}
}

// Conversion is the result of transforming one booking row.
type Conversion struct {
	// Payload is the invoice document to persist and submit.
	Payload types.Document

	// CityTaxSubjects is the number of guests the city tax applies to.
	CityTaxSubjects int

	// CityTaxTotal is rate * subjects * nights. It is informational and is
	// not part of the payload.
	CityTaxTotal decimal.Decimal
}

// =============================================================================
// TRANSFORMATION
// =============================================================================

// Transform builds the payload for one booking row.
//
// PARAMETERS:
//   - row: The named booking row.
//
// RETURNS:
//   - The conversion holding the payload.
//   - An error if a numeric field cannot be read.
func (t *Transformer) Transform(row BookingRow) (*Conversion, error) {
	if len(t.template.Doklad.Polozky) == 0 {
		return nil, fmt.Errorf("template has no line items")
	}

	price, err := parseLeadingDecimal(cleanPrice(row.Price))
	if err != nil {
		return nil, fmt.Errorf("invalid price: %w", err)
	}

	nights, err := parseLeadingDecimal(row.Duration)
	if err != nil {
		return nil, fmt.Errorf("invalid duration: %w", err)
	}

	subjects := cityTaxSubjects(row.Adults, row.People)

	payload := *t.template

	payload.Partner.NazovFirmy = stripQuotes(row.BookedBy)
	payload.Partner.KodKrajiny = stripQuotes(row.BookerCountry)
	payload.Partner.Ulica = normalizePhone(row.Phone)

	checkIn := stripQuotes(row.CheckIn)
	checkOut := stripQuotes(row.CheckOut)
	payload.Doklad.DatumDodania = checkIn
	payload.Doklad.DatumVystavenia = checkOut
	payload.Doklad.DatumSplatnosti = checkOut
	payload.Doklad.TextZaver = t.settings.ClosingText()

	item := t.template.Doklad.Polozky[0]
	item.MnozstvoHodnota = nights
	item.CenaSpolu = price
	item.DphPerc = t.settings.VAT
	payload.Doklad.Polozky = []types.Polozka{item}

	return &Conversion{
		Payload:         payload,
		CityTaxSubjects: subjects,
		CityTaxTotal:    t.settings.CityTaxRate.Mul(decimal.NewFromInt(int64(subjects))).Mul(nights),
	}, nil
}

// =============================================================================
// FIELD NORMALIZATION
// =============================================================================

func stripQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}

// cleanPrice removes the currency suffix and quotes. Inner spaces are kept,
// so "1 234.50 EUR" reads as 1.
func cleanPrice(s string) string {
	s = strings.ReplaceAll(s, " EUR", "")
	s = stripQuotes(s)
	return strings.TrimSpace(s)
}

// normalizePhone returns the phone number with exactly one leading "+".
func normalizePhone(s string) string {
	s = stripQuotes(s)
	s = strings.ReplaceAll(s, "+", "")
	return "+" + strings.TrimSpace(s)
}

// cityTaxSubjects picks the adult count, then the guest count, then 1: the
// first value that parses to a non-zero integer wins.
func cityTaxSubjects(adults, people string) int {
	for _, field := range []string{adults, people} {
		if n, ok := parseLeadingInt(stripQuotes(field)); ok && n != 0 {
			return n
		}
	}
	return 1
}
