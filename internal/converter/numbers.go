package converter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Numeric export fields are read by their longest numeric prefix: "3 nights"
// reads as 3 and "1 234.50" reads as 1. Only a field without any numeric
// prefix is rejected.
var (
	leadingDecimalPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)([eE][+-]?\d+)?`)
	leadingIntPattern     = regexp.MustCompile(`^[+-]?\d+`)
)

// parseLeadingDecimal parses the numeric prefix of s as a decimal.
func parseLeadingDecimal(s string) (decimal.Decimal, error) {
	match := leadingDecimalPattern.FindString(strings.TrimSpace(s))
	if match == "" {
		return decimal.Zero, fmt.Errorf("%q is not a number", s)
	}

	negative := strings.HasPrefix(match, "-")
	match = strings.TrimLeft(match, "+-")
	if strings.HasPrefix(match, ".") {
		match = "0" + match
	}

	value, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number: %w", s, err)
	}
	if negative {
		value = value.Neg()
	}
	return value, nil
}

// parseLeadingInt parses the integer prefix of s. ok is false when s has no
// integer prefix.
func parseLeadingInt(s string) (n int, ok bool) {
	match := leadingIntPattern.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0, false
	}

	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}
