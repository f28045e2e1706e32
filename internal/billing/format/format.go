// Package format renders and re-parses the display representation of bill
// figures. The record format predates this service: currency values were
// historically stored as "Rs."-prefixed strings and percentages with a
// trailing "%", so the parsers here accept that shape for backward-compatible
// reads.
//
// All functions are pure.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultCurrencyPrefix matches the historical record format.
const DefaultCurrencyPrefix = "Rs."

// Currency renders an amount with the currency prefix and two decimals,
// e.g. "Rs.1234.50".
func Currency(prefix string, amount float64) string {
	if prefix == "" {
		prefix = DefaultCurrencyPrefix
	}
	return fmt.Sprintf("%s%.2f", prefix, amount)
}

// Percent renders a percentage with a trailing percent sign. Whole-number
// rates drop the fraction, matching the historical "5%" shape.
func Percent(rate float64) string {
	if rate == float64(int64(rate)) {
		return fmt.Sprintf("%d%%", int64(rate))
	}
	return strconv.FormatFloat(rate, 'f', -1, 64) + "%"
}

// ParseCurrency parses a formatted currency string back into a float.
// Currency prefixes (case-insensitive), commas, and surrounding whitespace
// are stripped. Malformed or empty values parse to zero.
func ParseCurrency(s string) float64 {
	cleaned := strings.TrimSpace(s)
	lower := strings.ToLower(cleaned)
	if i := strings.Index(lower, "rs."); i >= 0 {
		cleaned = cleaned[i+len("rs."):]
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParsePercent parses a formatted percentage. Malformed values parse to zero.
func ParsePercent(s string) float64 {
	cleaned := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}
