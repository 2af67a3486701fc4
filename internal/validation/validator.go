// =============================================================================
// Booking Invoicer - Validation Engine
// =============================================================================
//
// This module checks the booking settings and the payload template before a
// batch starts, so that a misconfiguration is reported once instead of once
// per booking.
//
// SETTINGS RULES:
//   - API_ENDPOINT is an absolute http or https URL           (error)
//   - AUTH_HEADER and CONTENT_TYPE are not blank              (error)
//   - VAT is within 0..100                                    (error)
//   - CITY_TAX is not negative                                (error)
//   - CONTENT_TYPE names a JSON media type                    (warning)
//
// TEMPLATE RULES:
//   - doklad.dodavatel is not blank                           (error)
//   - doklad.polozky has at least one item                    (error)
//   - The first item has a name and a unit                    (error)
//   - Items after the first are never used                    (warning)
//
// ERROR HANDLING:
//   - Problems are collected, never returned one at a time
//   - Warnings are reported but do not make the result invalid
//
// =============================================================================

package validation

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/booking-invoicer/internal/config"
	"github.com/ginjaninja78/booking-invoicer/internal/types"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationError represents a single validation problem.
type ValidationError struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// Source is the file the problem belongs to ("settings" or "template").
	Source string

	// Field is the setting key or the JSON path of the template field.
	Field string

	// Value is the offending value.
	Value string

	// Message is a human-readable error message.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s %s: %s (value: '%s')",
		strings.ToUpper(e.Severity),
		e.Source,
		e.Field,
		e.Message,
		e.Value,
	)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no errors. Warnings do not count.
	IsValid bool

	// Errors contains all problems, warnings included, in check order.
	Errors []*ValidationError

	ErrorCount   int
	WarningCount int
}

func (r *ValidationResult) add(e *ValidationError) {
	r.Errors = append(r.Errors, e)
	if e.Severity == SeverityWarning {
		r.WarningCount++
		return
	}
	r.ErrorCount++
	r.IsValid = false
}

// =============================================================================
// VALIDATION FUNCTIONS
// =============================================================================

// Validate checks settings and template together.
func Validate(settings *config.Settings, template *types.Document) *ValidationResult {
	result := &ValidationResult{IsValid: true}
	for _, e := range ValidateSettings(settings) {
		result.add(e)
	}
	for _, e := range ValidateTemplate(template) {
		result.add(e)
	}
	return result
}

// ValidateSettings checks the booking settings.
//
// RETURNS:
//   - Every problem found, in check order. Empty when the settings are usable.
func ValidateSettings(s *config.Settings) []*ValidationError {
	var errs []*ValidationError
	add := func(severity, field, value, message string) {
		errs = append(errs, &ValidationError{
			Severity: severity,
			Source:   "settings",
			Field:    field,
			Value:    value,
			Message:  message,
		})
	}

	if msg := validateEndpoint(s.APIEndpoint); msg != "" {
		add(SeverityError, "API_ENDPOINT", s.APIEndpoint, msg)
	}

	if strings.TrimSpace(s.AuthHeader) == "" {
		add(SeverityError, "AUTH_HEADER", s.AuthHeader, "must not be blank")
	}

	if strings.TrimSpace(s.ContentType) == "" {
		add(SeverityError, "CONTENT_TYPE", s.ContentType, "must not be blank")
	} else if !strings.Contains(strings.ToLower(s.ContentType), "json") {
		add(SeverityWarning, "CONTENT_TYPE", s.ContentType, "payloads are JSON but the content type is not")
	}

	hundred := decimal.NewFromInt(100)
	if s.VAT.IsNegative() || s.VAT.GreaterThan(hundred) {
		add(SeverityError, "VAT", s.VAT.String(), "must be between 0 and 100")
	}

	if s.CityTaxRate.IsNegative() {
		add(SeverityError, "CITY_TAX", s.CityTax, "must not be negative")
	}

	return errs
}

// ValidateTemplate checks the payload template.
//
// RETURNS:
//   - Every problem found, in check order. Empty when the template is usable.
func ValidateTemplate(t *types.Document) []*ValidationError {
	var errs []*ValidationError
	add := func(severity, field, value, message string) {
		errs = append(errs, &ValidationError{
			Severity: severity,
			Source:   "template",
			Field:    field,
			Value:    value,
			Message:  message,
		})
	}

	if strings.TrimSpace(t.Doklad.Dodavatel) == "" {
		add(SeverityError, "doklad.dodavatel", t.Doklad.Dodavatel, "supplier id must not be blank")
	}

	items := t.Doklad.Polozky
	if len(items) == 0 {
		add(SeverityError, "doklad.polozky", "", "at least one line item is required")
		return errs
	}

	first := items[0]
	if strings.TrimSpace(first.NazovKarty) == "" {
		add(SeverityError, "doklad.polozky[0].nazov_karty", first.NazovKarty, "line item name must not be blank")
	}
	if strings.TrimSpace(first.MnozstvoJednotka) == "" {
		add(SeverityError, "doklad.polozky[0].mnozstvo_jednotka", first.MnozstvoJednotka, "line item unit must not be blank")
	}

	if len(items) > 1 {
		add(SeverityWarning, "doklad.polozky", fmt.Sprintf("%d items", len(items)),
			"only the first line item is used")
	}

	return errs
}

// validateEndpoint returns an error message, or "" if the URL is valid.
func validateEndpoint(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "must not be blank"
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "is not a valid URL"
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "must use http or https"
	}
	if u.Host == "" {
		return "must include a host"
	}

	return ""
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation errors for display or logging.
//
// PARAMETERS:
//   - errors: The validation errors to format.
//
// RETURNS:
//   - A formatted string containing all errors.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d problem(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}
