package validation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/booking-invoicer/internal/config"
	"github.com/ginjaninja78/booking-invoicer/internal/types"
	"github.com/ginjaninja78/booking-invoicer/internal/validation"
)

func validSettings() *config.Settings {
	return &config.Settings{
		APIEndpoint: "https://invoices.example.com/api/v1/doklad",
		AuthHeader:  "Basic dXNlcjpwYXNz",
		ContentType: "application/json",
		CityTax:     "1.50",
		CityTaxRate: decimal.RequireFromString("1.50"),
		VAT:         decimal.NewFromInt(5),
		CityTaxText: config.DefaultCityTaxText,
	}
}

func validTemplate() *types.Document {
	return &types.Document{
		Doklad: types.Doklad{
			Dodavatel: "42",
			Polozky: []types.Polozka{
				{PoradoveCislo: 1, NazovKarty: "Accommodation", MnozstvoJednotka: "noc"},
			},
		},
	}
}

func fields(errs []*validation.ValidationError) []string {
	var out []string
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidate_Valid(t *testing.T) {
	result := validation.Validate(validSettings(), validTemplate())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "No validation errors.", validation.FormatErrors(result.Errors))
}

func TestValidateSettings_Endpoint(t *testing.T) {
	tests := map[string]string{
		"":                         "must not be blank",
		"ftp://example.com/upload": "must use http or https",
		"/relative/path":           "must use http or https",
		"https://":                 "must include a host",
		"http://[::1":              "is not a valid URL",
	}

	for endpoint, want := range tests {
		s := validSettings()
		s.APIEndpoint = endpoint

		errs := validation.ValidateSettings(s)
		require.Len(t, errs, 1, endpoint)
		assert.Equal(t, "API_ENDPOINT", errs[0].Field)
		assert.Equal(t, want, errs[0].Message, endpoint)
	}
}

func TestValidateSettings_Ranges(t *testing.T) {
	s := validSettings()
	s.VAT = decimal.NewFromInt(120)
	s.CityTax = "-1"
	s.CityTaxRate = decimal.NewFromInt(-1)
	s.AuthHeader = "  "

	errs := validation.ValidateSettings(s)
	assert.Equal(t, []string{"AUTH_HEADER", "VAT", "CITY_TAX"}, fields(errs))
}

func TestValidateSettings_BoundaryVAT(t *testing.T) {
	for _, vat := range []int64{0, 100} {
		s := validSettings()
		s.VAT = decimal.NewFromInt(vat)
		assert.Empty(t, validation.ValidateSettings(s))
	}
}

func TestValidateSettings_NonJSONContentTypeWarns(t *testing.T) {
	s := validSettings()
	s.ContentType = "text/plain"

	result := validation.Validate(s, validTemplate())

	assert.True(t, result.IsValid)
	assert.Equal(t, 1, result.WarningCount)
	assert.Equal(t, validation.SeverityWarning, result.Errors[0].Severity)
}

func TestValidateTemplate(t *testing.T) {
	tmpl := validTemplate()
	tmpl.Doklad.Dodavatel = ""
	tmpl.Doklad.Polozky[0].NazovKarty = ""
	tmpl.Doklad.Polozky[0].MnozstvoJednotka = " "

	errs := validation.ValidateTemplate(tmpl)
	assert.Equal(t, []string{
		"doklad.dodavatel",
		"doklad.polozky[0].nazov_karty",
		"doklad.polozky[0].mnozstvo_jednotka",
	}, fields(errs))
}

func TestValidateTemplate_NoItems(t *testing.T) {
	tmpl := validTemplate()
	tmpl.Doklad.Polozky = nil

	errs := validation.ValidateTemplate(tmpl)
	require.Len(t, errs, 1)
	assert.Equal(t, "doklad.polozky", errs[0].Field)
}

func TestValidateTemplate_ExtraItemsWarn(t *testing.T) {
	tmpl := validTemplate()
	tmpl.Doklad.Polozky = append(tmpl.Doklad.Polozky, types.Polozka{NazovKarty: "Breakfast"})

	result := validation.Validate(validSettings(), tmpl)
	assert.True(t, result.IsValid)
	assert.Equal(t, 1, result.WarningCount)
	assert.Equal(t, 0, result.ErrorCount)
}

func TestFormatErrors(t *testing.T) {
	s := validSettings()
	s.VAT = decimal.NewFromInt(-5)

	text := validation.FormatErrors(validation.ValidateSettings(s))

	assert.Contains(t, text, "Validation completed with 1 problem(s)")
	assert.Contains(t, text, "1. [ERROR] settings VAT: must be between 0 and 100 (value: '-5')")
}
