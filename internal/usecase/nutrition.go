package usecase

import (
	"strings"

	"github.com/basketwise/backend/internal/domain"
)

// genericProfile is the fallback for products missing from the lookup table.
var genericProfile = domain.NutritionProfile{ProteinG: 10.0, CarbsG: 20.0, FatG: 5.0, Kcal: 150}

// NutritionLookup resolves a product name to its per-100g macro profile.
// The table is copied at construction and never mutated afterwards, so a
// lookup is safe to share across concurrent optimizer runs.
type NutritionLookup struct {
	table map[string]domain.NutritionProfile
}

// NewNutritionLookup creates a lookup over the given table. A nil table
// selects the built-in defaults.
func NewNutritionLookup(table map[string]domain.NutritionProfile) *NutritionLookup {
	if table == nil {
		table = DefaultNutritionTable()
	}
	copied := make(map[string]domain.NutritionProfile, len(table))
	for name, profile := range table {
		copied[strings.ToLower(name)] = profile
	}
	return &NutritionLookup{table: copied}
}

// Lookup returns the profile for a product name, matching case-insensitively
// and exactly. Unknown names receive the generic fallback profile; Lookup
// never fails.
func (l *NutritionLookup) Lookup(productName string) domain.NutritionProfile {
	if profile, ok := l.table[strings.ToLower(productName)]; ok {
		return profile
	}
	return genericProfile
}

// DefaultNutritionTable returns per-100g macro values for common grocery
// staples, keyed by normalized product name.
func DefaultNutritionTable() map[string]domain.NutritionProfile {
	return map[string]domain.NutritionProfile{
		"chicken breast": {ProteinG: 31.0, CarbsG: 0.0, FatG: 3.6, Kcal: 165},
		"eggs":           {ProteinG: 13.0, CarbsG: 1.1, FatG: 11.0, Kcal: 155},
		"greek yogurt":   {ProteinG: 10.0, CarbsG: 3.6, FatG: 0.4, Kcal: 59},
		"cottage cheese": {ProteinG: 11.0, CarbsG: 3.4, FatG: 4.3, Kcal: 98},
		"tofu":           {ProteinG: 8.0, CarbsG: 1.9, FatG: 4.8, Kcal: 76},
		"lentils":        {ProteinG: 9.0, CarbsG: 20.0, FatG: 0.4, Kcal: 116},
		"chickpeas":      {ProteinG: 8.9, CarbsG: 27.0, FatG: 2.6, Kcal: 164},
		"tuna":           {ProteinG: 30.0, CarbsG: 0.0, FatG: 1.0, Kcal: 144},
		"ground beef":    {ProteinG: 26.0, CarbsG: 0.0, FatG: 15.0, Kcal: 250},
		"milk":           {ProteinG: 3.4, CarbsG: 5.0, FatG: 3.3, Kcal: 61},
		"rice":           {ProteinG: 2.7, CarbsG: 28.0, FatG: 0.3, Kcal: 130},
		"oats":           {ProteinG: 17.0, CarbsG: 66.0, FatG: 7.0, Kcal: 389},
		"bread":          {ProteinG: 9.0, CarbsG: 49.0, FatG: 3.2, Kcal: 265},
		"pasta":          {ProteinG: 5.0, CarbsG: 25.0, FatG: 1.1, Kcal: 131},
		"potatoes":       {ProteinG: 2.0, CarbsG: 17.0, FatG: 0.1, Kcal: 77},
		"bananas":        {ProteinG: 1.1, CarbsG: 23.0, FatG: 0.3, Kcal: 89},
		"broccoli":       {ProteinG: 2.8, CarbsG: 7.0, FatG: 0.4, Kcal: 34},
		"spinach":        {ProteinG: 2.9, CarbsG: 3.6, FatG: 0.4, Kcal: 23},
		"carrots":        {ProteinG: 0.9, CarbsG: 10.0, FatG: 0.2, Kcal: 41},
		"onions":         {ProteinG: 1.1, CarbsG: 9.0, FatG: 0.1, Kcal: 40},
		"tomatoes":       {ProteinG: 0.9, CarbsG: 3.9, FatG: 0.2, Kcal: 18},
		"olive oil":      {ProteinG: 0.0, CarbsG: 0.0, FatG: 100.0, Kcal: 884},
		"peanut butter":  {ProteinG: 25.0, CarbsG: 20.0, FatG: 50.0, Kcal: 588},
		"butter":         {ProteinG: 0.9, CarbsG: 0.1, FatG: 81.0, Kcal: 717},
	}
}
