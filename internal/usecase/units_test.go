package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseUnit(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantUnit   string
		wantFactor string
	}{
		{"kilogram", "kg", "kg", "1"},
		{"gram", "g", "g", "0.001"},
		{"milligram", "mg", "mg", "0.000001"},
		{"table entry 100g keeps its literal label", "100g", "100g", "0.1"},
		{"table entry 500g keeps its literal label", "500g", "500g", "0.5"},
		{"litre uppercase", "L", "l", "1"},
		{"millilitre", "ml", "ml", "0.001"},
		{"centilitre", "cl", "cl", "0.01"},
		{"piece", "piece", "piece", "1"},
		{"german piece", "Stück", "stück", "1"},
		{"pack", "pack", "pack", "1"},
		{"german pack", "Packung", "packung", "1"},
		{"german pro prefix", "pro kg", "kg", "1"},
		{"english per prefix", "per kg", "kg", "1"},
		{"pro prefix with numeric unit", "pro 100g", "100g", "0.1"},
		{"numeric prefix resolves to base symbol", "250g", "g", "0.25"},
		{"numeric millilitres", "750ml", "ml", "0.75"},
		{"numeric centilitres", "33cl", "cl", "0.33"},
		{"numeric kilograms", "2kg", "kg", "2"},
		{"unknown defaults to piece", "bottle", "piece", "1"},
		{"empty defaults to piece", "", "piece", "1"},
		{"whitespace only defaults to piece", "   ", "piece", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, factor := ParseUnit(tt.input)
			if unit != tt.wantUnit {
				t.Errorf("ParseUnit(%q) unit = %q, want %q", tt.input, unit, tt.wantUnit)
			}
			want := decimal.RequireFromString(tt.wantFactor)
			if !factor.Equal(want) {
				t.Errorf("ParseUnit(%q) factor = %s, want %s", tt.input, factor, want)
			}
		})
	}
}

func TestIsCountUnit(t *testing.T) {
	for _, unit := range []string{"piece", "stück", "pack", "packung"} {
		if !IsCountUnit(unit) {
			t.Errorf("IsCountUnit(%q) = false, want true", unit)
		}
	}
	for _, unit := range []string{"kg", "g", "l", "ml", "100g"} {
		if IsCountUnit(unit) {
			t.Errorf("IsCountUnit(%q) = true, want false", unit)
		}
	}
}
