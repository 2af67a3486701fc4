package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ginjaninja78/booking-invoicer/internal/types"
)

// LoadTemplate reads the JSON payload template.
//
// PARAMETERS:
//   - path: The path to the template file.
//
// RETURNS:
//   - The decoded template document.
//   - An error if the file cannot be read or decoded, if it has keys the
//     payload does not carry, or if it has no line item to base generated
//     line items on.
func LoadTemplate(path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	return ParseTemplate(data)
}

// ParseTemplate decodes a payload template from JSON bytes. Keys that the
// payload document does not carry are rejected rather than dropped, since
// they would never reach the invoicing API.
func ParseTemplate(data []byte) (*types.Document, error) {
	var template types.Document
	decoder := json.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&template); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	if len(template.Doklad.Polozky) == 0 {
		return nil, fmt.Errorf("template must contain at least one entry in doklad.polozky")
	}

	return &template, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}
