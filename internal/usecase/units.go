package usecase

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Package-level compiled regex patterns for performance
var numericUnitRegex = regexp.MustCompile(`^(\d+)(g|kg|ml|l|cl)$`)

// unitFactors maps a known unit token to its conversion factor into the base
// unit: kg for weight, L for volume, 1 for count units.
var unitFactors = map[string]decimal.Decimal{
	// Weight units (to kg)
	"kg":   decimal.NewFromInt(1),
	"g":    decimal.RequireFromString("0.001"),
	"mg":   decimal.RequireFromString("0.000001"),
	"100g": decimal.RequireFromString("0.1"),
	"500g": decimal.RequireFromString("0.5"),
	// Volume units (to L)
	"l":  decimal.NewFromInt(1),
	"ml": decimal.RequireFromString("0.001"),
	"cl": decimal.RequireFromString("0.01"),
	// Count units (price is already per piece/pack)
	"piece":   decimal.NewFromInt(1),
	"stück":   decimal.NewFromInt(1),
	"pack":    decimal.NewFromInt(1),
	"packung": decimal.NewFromInt(1),
}

// countUnits are units with no physical base; their prices cannot be
// normalized to a per-kg/per-L figure.
var countUnits = map[string]bool{
	"piece":   true,
	"stück":   true,
	"pack":    true,
	"packung": true,
}

// ParseUnit maps a free-form unit token to a canonical unit name and the
// conversion factor into its base unit. Locale prefixes ("pro kg", "per kg")
// are stripped before matching. Numeric-prefixed tokens outside the exact
// table, e.g. "250g", resolve to the base symbol with a composed factor.
// Unknown or empty input defaults to one piece; ParseUnit never fails.
func ParseUnit(unitText string) (string, decimal.Decimal) {
	unit := strings.ToLower(strings.TrimSpace(unitText))
	if unit == "" {
		return "piece", decimal.NewFromInt(1)
	}

	unit = strings.TrimSpace(strings.TrimPrefix(unit, "pro "))
	unit = strings.TrimSpace(strings.TrimPrefix(unit, "per "))

	if factor, ok := unitFactors[unit]; ok {
		return unit, factor
	}

	if m := numericUnitRegex.FindStringSubmatch(unit); m != nil {
		count := decimal.RequireFromString(m[1])
		base := m[2]
		return base, count.Mul(unitFactors[base])
	}

	return "piece", decimal.NewFromInt(1)
}

// IsCountUnit reports whether the canonical unit belongs to the count family.
func IsCountUnit(canonicalUnit string) bool {
	return countUnits[canonicalUnit]
}
