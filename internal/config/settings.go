package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// DefaultCityTaxText is the closing-text format used when CITY_TAX_TEXT is not
// set. The single %s receives the configured rate exactly as written.
const DefaultCityTaxText = "Miestof tax for accommodation %s EUR/person/night paid in cash."

// EnvPrefix prefixes environment overrides of booking settings,
// e.g. INVOICER_AUTH_HEADER.
const EnvPrefix = "INVOICER"

var requiredSettings = []string{
	"API_ENDPOINT",
	"AUTH_HEADER",
	"CONTENT_TYPE",
	"CITY_TAX",
	"VAT",
}

// Settings is the booking configuration consumed by the conversion pipeline.
// It is loaded once per run and never mutated afterwards.
type Settings struct {
	// APIEndpoint is the URL every payload is POSTed to.
	APIEndpoint string

	// AuthHeader is sent verbatim as the Authorization header.
	AuthHeader string

	// ContentType is sent verbatim as the Content-Type header.
	ContentType string

	// CityTax is the per-person/night rate exactly as configured. It is
	// interpolated into the closing text without reformatting.
	CityTax string

	// CityTaxRate is CityTax parsed as a decimal.
	CityTaxRate decimal.Decimal

	// VAT is the line-item VAT percent.
	VAT decimal.Decimal

	// CityTaxText is the closing-text format with one %s for the rate.
	CityTaxText string
}

// LoadSettings reads booking settings from a flat KEY=VALUE file.
//
// Every key can be overridden from the environment with the INVOICER_ prefix.
// Keys other than the required ones and CITY_TAX_TEXT are ignored.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	return settingsFromViper(v)
}

func settingsFromViper(v *viper.Viper) (*Settings, error) {
	var missing []string
	for _, key := range requiredSettings {
		if strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}

	cityTax := strings.TrimSpace(v.GetString("CITY_TAX"))
	cityTaxRate, err := decimal.NewFromString(cityTax)
	if err != nil {
		return nil, fmt.Errorf("invalid CITY_TAX %q: %w", cityTax, err)
	}

	vatRaw := strings.TrimSpace(v.GetString("VAT"))
	vat, err := decimal.NewFromString(vatRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid VAT %q: %w", vatRaw, err)
	}

	text := v.GetString("CITY_TAX_TEXT")
	if text == "" {
		text = DefaultCityTaxText
	}
	if strings.Count(text, "%s") != 1 {
		return nil, fmt.Errorf("CITY_TAX_TEXT must contain exactly one %%s placeholder")
	}

	return &Settings{
		APIEndpoint: v.GetString("API_ENDPOINT"),
		AuthHeader:  v.GetString("AUTH_HEADER"),
		ContentType: v.GetString("CONTENT_TYPE"),
		CityTax:     cityTax,
		CityTaxRate: cityTaxRate,
		VAT:         vat,
		CityTaxText: text,
	}, nil
}

// ClosingText renders the invoice closing sentence for the configured rate.
func (s *Settings) ClosingText() string {
	return fmt.Sprintf(s.CityTaxText, s.CityTax)
}
