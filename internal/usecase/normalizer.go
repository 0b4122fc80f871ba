package usecase

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// currencyGlyphRegex strips currency symbols and whitespace before numeric parsing
var currencyGlyphRegex = regexp.MustCompile(`[€$£₹\s]`)

// ParsePrice parses a locale-ambiguous price string into an exact decimal.
// Both "8,99" and "8.99" parse to 8.99; "1.234,56" parses to 1234.56. A
// separator followed by more than two digits is treated as a thousands
// separator, so "1,234" parses to 1234. Returns false when the cleaned
// string is not a valid decimal number.
func ParsePrice(text string) (decimal.Decimal, bool) {
	if text == "" {
		return decimal.Decimal{}, false
	}

	cleaned := currencyGlyphRegex.ReplaceAllString(strings.TrimSpace(text), "")

	switch {
	case strings.Contains(cleaned, ",") && strings.Contains(cleaned, "."):
		// European long form: dot groups thousands, comma is the decimal mark
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case strings.Contains(cleaned, ","):
		parts := strings.Split(cleaned, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case strings.Contains(cleaned, "."):
		parts := strings.Split(cleaned, ".")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			// decimal mark, keep as is
		} else {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
	}

	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return price, true
}

// PricePerBaseUnit computes the normalized price per kg (weight) or per L
// (volume), rounded to 2 decimal places. Count units have no base unit, so
// the result is absent for them, as it is for a zero conversion factor.
func PricePerBaseUnit(price decimal.Decimal, unitText string) (decimal.Decimal, bool) {
	canonical, factor := ParseUnit(unitText)

	if IsCountUnit(canonical) || factor.IsZero() {
		return decimal.Decimal{}, false
	}

	return price.Div(factor).Round(2), true
}

// NormalizedPrice is the output of Normalize: the exact parsed price, the
// per-base-unit price when one exists, and the canonical unit label.
type NormalizedPrice struct {
	Price        decimal.Decimal
	PricePerUnit *decimal.Decimal
	Unit         string
}

// Normalize parses a raw price/unit string pair into comparable figures.
// The unit label is ParseUnit's match key: table entries like "500g" keep
// the literal token while unlisted numeric prefixes resolve to the base
// symbol. Returns false when the price cannot be parsed; the unit label is
// still populated so callers can log what was dropped.
func Normalize(priceText, unitText string) (NormalizedPrice, bool) {
	canonical, _ := ParseUnit(unitText)

	price, ok := ParsePrice(priceText)
	if !ok {
		return NormalizedPrice{Unit: canonical}, false
	}

	result := NormalizedPrice{Price: price, Unit: canonical}
	if perUnit, ok := PricePerBaseUnit(price, unitText); ok {
		result.PricePerUnit = &perUnit
	}
	return result, true
}
