package usecase

import (
	"testing"

	"github.com/basketwise/backend/internal/domain"
)

func TestNutritionLookup(t *testing.T) {
	t.Run("resolves a known product", func(t *testing.T) {
		lookup := NewNutritionLookup(nil)

		profile := lookup.Lookup("chicken breast")
		if profile.ProteinG != 31.0 {
			t.Errorf("protein = %v, want 31.0", profile.ProteinG)
		}
		if profile.Kcal != 165 {
			t.Errorf("calories = %v, want 165", profile.Kcal)
		}
	})

	t.Run("matches case-insensitively", func(t *testing.T) {
		lookup := NewNutritionLookup(nil)

		if got, want := lookup.Lookup("Chicken Breast"), lookup.Lookup("chicken breast"); got != want {
			t.Errorf("Lookup(Chicken Breast) = %+v, want %+v", got, want)
		}
	})

	t.Run("falls back to the generic profile", func(t *testing.T) {
		lookup := NewNutritionLookup(nil)

		profile := lookup.Lookup("dragonfruit smoothie")
		want := domain.NutritionProfile{ProteinG: 10.0, CarbsG: 20.0, FatG: 5.0, Kcal: 150}
		if profile != want {
			t.Errorf("fallback = %+v, want %+v", profile, want)
		}
	})

	t.Run("does not fuzzy match partial names", func(t *testing.T) {
		lookup := NewNutritionLookup(nil)

		if profile := lookup.Lookup("chicken"); profile.ProteinG == 31.0 {
			t.Error("partial name should not match the chicken breast entry")
		}
	})

	t.Run("uses an injected table", func(t *testing.T) {
		lookup := NewNutritionLookup(map[string]domain.NutritionProfile{
			"test food": {ProteinG: 99, CarbsG: 1, FatG: 2, Kcal: 400},
		})

		if got := lookup.Lookup("test food").ProteinG; got != 99 {
			t.Errorf("protein = %v, want 99", got)
		}
		// Defaults are replaced, not merged.
		if got := lookup.Lookup("chicken breast").ProteinG; got != 10.0 {
			t.Errorf("protein = %v, want generic fallback 10.0", got)
		}
	})

	t.Run("is unaffected by later mutation of the source table", func(t *testing.T) {
		table := map[string]domain.NutritionProfile{
			"test food": {ProteinG: 50},
		}
		lookup := NewNutritionLookup(table)

		table["test food"] = domain.NutritionProfile{ProteinG: 1}

		if got := lookup.Lookup("test food").ProteinG; got != 50 {
			t.Errorf("protein = %v, want 50", got)
		}
	})
}

func TestDefaultNutritionTable(t *testing.T) {
	table := DefaultNutritionTable()
	if len(table) != 24 {
		t.Errorf("table size = %d, want 24", len(table))
	}
	if table["olive oil"].FatG != 100.0 {
		t.Errorf("olive oil fat = %v, want 100.0", table["olive oil"].FatG)
	}
}
