// =============================================================================
// Booking Invoicer - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - config     (template loading)
//   - converter  (row transformation and batch orchestration)
//   - sink       (payload persistence and submission)
//   - validation (template checks)
//   - report     (batch reports)
//
// The invoice document mirrors the JSON shape expected by the remote invoicing
// API. Field names follow the API's Slovak JSON keys.
//
// =============================================================================

package types

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PROCESS RESULT
// =============================================================================

// ProcessResult is the outcome of processing one admitted booking row, or of a
// file-level failure (in which case BookingNumber is empty).
type ProcessResult struct {
	// Success is true only when the payload was accepted by the endpoint.
	Success bool `json:"success"`

	// Message is a human-readable description of the outcome.
	Message string `json:"message"`

	// BookingNumber is the booking identifier of the row.
	// Empty for file-level failures.
	BookingNumber string `json:"bookingNumber,omitempty"`
}

// Succeeded builds a success result for a booking.
func Succeeded(bookingNumber, message string) ProcessResult {
	return ProcessResult{Success: true, Message: message, BookingNumber: bookingNumber}
}

// Failed builds a failure result for a booking.
func Failed(bookingNumber, message string) ProcessResult {
	return ProcessResult{Success: false, Message: message, BookingNumber: bookingNumber}
}

// FileFailure builds a file-level failure result (no booking number).
func FileFailure(message string) ProcessResult {
	return ProcessResult{Success: false, Message: message}
}

// =============================================================================
// INVOICE DOCUMENT
// =============================================================================

// Document is the invoice document. The template and every generated payload
// share this shape.
type Document struct {
	Partner Partner `json:"partner"`
	Doklad  Doklad  `json:"doklad"`
}

// Partner is the invoiced party.
type Partner struct {
	// NazovFirmy is the company (or guest) name.
	NazovFirmy string `json:"nazov_firmy"`

	// KodKrajiny is the ISO country code.
	KodKrajiny string `json:"kod_krajiny"`

	// Ulica is the street line. Generated payloads carry the guest phone
	// number here.
	Ulica string `json:"ulica"`

	// Obec is the city.
	Obec string `json:"obec"`

	// Psc is the postal code.
	Psc string `json:"psc"`
}

// Doklad is the accounting document header plus its line items.
type Doklad struct {
	Dodavatel       string    `json:"dodavatel"`
	UpdateDokladu   bool      `json:"update_dokladu"`
	DatumVystavenia string    `json:"datum_vystavenia"`
	DatumDodania    string    `json:"datum_dodania"`
	DatumSplatnosti string    `json:"datum_splatnosti"`
	PrijemkaVydajka bool      `json:"prijemka_vydajka"`
	TextZaver       string    `json:"text_zaver"`
	CenySuSDph      bool      `json:"ceny_su_s_dph"`
	Vyhotovil       string    `json:"vyhotovil"`
	Kontakt         string    `json:"kontakt"`
	Polozky         []Polozka `json:"polozky"`
}

// Polozka is a single invoice line item.
type Polozka struct {
	PoradoveCislo    int             `json:"poradove_cislo"`
	NazovKarty       string          `json:"nazov_karty"`
	MnozstvoHodnota  decimal.Decimal `json:"mnozstvo_hodnota"`
	MnozstvoJednotka string          `json:"mnozstvo_jednotka"`
	CenaSpolu        decimal.Decimal `json:"cena_spolu"`
	DphPerc          decimal.Decimal `json:"dph_perc"`
}

// MarshalJSON renders the decimal fields as JSON numbers instead of the
// quoted strings decimal.Decimal produces by default. Strings are not
// HTML-escaped.
func (p Polozka) MarshalJSON() ([]byte, error) {
	item := struct {
		PoradoveCislo    int         `json:"poradove_cislo"`
		NazovKarty       string      `json:"nazov_karty"`
		MnozstvoHodnota  json.Number `json:"mnozstvo_hodnota"`
		MnozstvoJednotka string      `json:"mnozstvo_jednotka"`
		CenaSpolu        json.Number `json:"cena_spolu"`
		DphPerc          json.Number `json:"dph_perc"`
	}{
		PoradoveCislo:    p.PoradoveCislo,
		NazovKarty:       p.NazovKarty,
		MnozstvoHodnota:  json.Number(p.MnozstvoHodnota.String()),
		MnozstvoJednotka: p.MnozstvoJednotka,
		CenaSpolu:        json.Number(p.CenaSpolu.String()),
		DphPerc:          json.Number(p.DphPerc.String()),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(item); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
