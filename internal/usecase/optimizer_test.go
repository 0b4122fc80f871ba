package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/basketwise/backend/internal/domain"
)

func testOptimizer() *BasketOptimizer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewBasketOptimizer(NewNutritionLookup(nil), OptimizerConfig{}, logger)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// sampleQuotes returns three EUR quotes: chicken breast 8.99/kg, eggs 3.50
// for 10 pieces (0.35/piece), rice 2.50/kg.
func sampleQuotes() []domain.PriceQuote {
	return []domain.PriceQuote{
		{
			ProductName:    "Chicken Breast",
			NormalizedName: "chicken breast",
			Price:          dec("8.99"),
			Currency:       "EUR",
			Unit:           "kg",
			PricePerUnit:   decPtr("8.99"),
			Store:          "spar",
			City:           "vienna",
		},
		{
			ProductName:    "Eggs",
			NormalizedName: "eggs",
			Price:          dec("3.50"),
			Currency:       "EUR",
			Unit:           "piece",
			PricePerUnit:   decPtr("0.35"),
			Store:          "spar",
			City:           "vienna",
		},
		{
			ProductName:    "Rice",
			NormalizedName: "rice",
			Price:          dec("2.50"),
			Currency:       "EUR",
			Unit:           "kg",
			PricePerUnit:   decPtr("2.50"),
			Store:          "spar",
			City:           "vienna",
		},
	}
}

func TestOptimize(t *testing.T) {
	ctx := context.Background()

	t.Run("finds an optimal basket within budget", func(t *testing.T) {
		result := testOptimizer().Optimize(ctx, sampleQuotes(), OptimizeRequest{
			Budget:            50.0,
			Currency:          "EUR",
			MinProteinVariety: 2,
			MaxPerItemUnits:   2.0,
		})

		if result.Status != domain.StatusOptimal {
			t.Fatalf("status = %v, want optimal", result.Status)
		}
		if len(result.Ingredients) == 0 {
			t.Fatal("expected at least one ingredient")
		}
		cost, _ := result.TotalCost.Float64()
		if cost > 50.0*1.02+1e-6 {
			t.Errorf("totalCost = %v, exceeds budget with slack", cost)
		}
		if result.TotalProteinG <= 0 {
			t.Errorf("totalProtein = %v, want > 0", result.TotalProteinG)
		}
		if result.BudgetUtilizationPct <= 0 {
			t.Errorf("budgetUtilization = %v, want > 0", result.BudgetUtilizationPct)
		}
	})

	t.Run("empty quote list is infeasible", func(t *testing.T) {
		result := testOptimizer().Optimize(ctx, nil, OptimizeRequest{
			Budget:   50.0,
			Currency: "EUR",
		})

		if result.Status != domain.StatusInfeasible {
			t.Errorf("status = %v, want infeasible", result.Status)
		}
		if len(result.Ingredients) != 0 {
			t.Errorf("ingredients = %d, want 0", len(result.Ingredients))
		}
	})

	t.Run("mismatched currency is infeasible", func(t *testing.T) {
		result := testOptimizer().Optimize(ctx, sampleQuotes(), OptimizeRequest{
			Budget:   50.0,
			Currency: "USD",
		})

		if result.Status != domain.StatusInfeasible {
			t.Errorf("status = %v, want infeasible", result.Status)
		}
		if len(result.Ingredients) != 0 {
			t.Errorf("ingredients = %d, want 0", len(result.Ingredients))
		}
	})

	t.Run("currency matches case-insensitively", func(t *testing.T) {
		result := testOptimizer().Optimize(ctx, sampleQuotes(), OptimizeRequest{
			Budget:   50.0,
			Currency: "eur",
		})

		if result.Status != domain.StatusOptimal {
			t.Errorf("status = %v, want optimal", result.Status)
		}
	})

	t.Run("budget below cheapest quote short-circuits", func(t *testing.T) {
		result := testOptimizer().Optimize(ctx, sampleQuotes(), OptimizeRequest{
			Budget:   0.01,
			Currency: "EUR",
		})

		if result.Status != domain.StatusBudgetTooLow {
			t.Errorf("status = %v, want budget_too_low", result.Status)
		}
		if len(result.Ingredients) != 0 {
			t.Errorf("ingredients = %d, want 0", len(result.Ingredients))
		}
	})

	t.Run("respects the per-item cap", func(t *testing.T) {
		result := testOptimizer().Optimize(ctx, sampleQuotes(), OptimizeRequest{
			Budget:          50.0,
			Currency:        "EUR",
			MaxPerItemUnits: 2.0,
		})

		if result.Status != domain.StatusOptimal {
			t.Fatalf("status = %v, want optimal", result.Status)
		}
		for _, ing := range result.Ingredients {
			if ing.Quantity > 2.0+1e-6 {
				t.Errorf("%s quantity = %v, exceeds per-item cap", ing.ProductName, ing.Quantity)
			}
		}
	})

	t.Run("tight budget buys protein-efficient items first", func(t *testing.T) {
		result := testOptimizer().Optimize(ctx, sampleQuotes(), OptimizeRequest{
			Budget:   10.0,
			Currency: "EUR",
		})

		if result.Status != domain.StatusOptimal {
			t.Fatalf("status = %v, want optimal", result.Status)
		}
		cost, _ := result.TotalCost.Float64()
		if cost > 10.0*1.02+1e-6 {
			t.Errorf("totalCost = %v, exceeds budget with slack", cost)
		}
		for _, ing := range result.Ingredients {
			if ing.ProductName == "Rice" {
				t.Error("rice should be priced out of a tight protein-first budget")
			}
		}
	})

	t.Run("deduplicates quotes sharing a product and store", func(t *testing.T) {
		quotes := sampleQuotes()
		duplicate := quotes[0]
		duplicate.Price = dec("1.00")
		duplicate.PricePerUnit = decPtr("1.00")
		quotes = append(quotes, duplicate)

		result := testOptimizer().Optimize(ctx, quotes, OptimizeRequest{
			Budget:   50.0,
			Currency: "EUR",
		})

		if result.Status != domain.StatusOptimal {
			t.Fatalf("status = %v, want optimal", result.Status)
		}
		count := 0
		for _, ing := range result.Ingredients {
			if ing.ProductName == "Chicken Breast" {
				count++
				// First quote wins: cost reflects 8.99/kg, not 1.00/kg.
				cost, _ := ing.TotalCost.Float64()
				if cost < 8.0 {
					t.Errorf("chicken cost = %v, duplicate quote leaked into the model", cost)
				}
			}
		}
		if count > 1 {
			t.Errorf("chicken ingredients = %d, want at most 1", count)
		}
	})

	t.Run("enforces category caps", func(t *testing.T) {
		result := testOptimizer().Optimize(ctx, sampleQuotes(), OptimizeRequest{
			Budget:      50.0,
			Currency:    "EUR",
			CategoryMax: map[string]float64{"rice": 0.5},
		})

		if result.Status != domain.StatusOptimal {
			t.Fatalf("status = %v, want optimal", result.Status)
		}
		for _, ing := range result.Ingredients {
			if ing.ProductName == "Rice" && ing.Quantity > 0.5+1e-6 {
				t.Errorf("rice quantity = %v, exceeds category cap", ing.Quantity)
			}
		}
	})

	t.Run("keeps calories within the weekly band", func(t *testing.T) {
		result := testOptimizer().Optimize(ctx, sampleQuotes(), OptimizeRequest{
			Budget:        50.0,
			Currency:      "EUR",
			CalorieBounds: &CalorieBounds{MinPerDay: 300, MaxPerDay: 900},
		})

		if result.Status != domain.StatusOptimal {
			t.Fatalf("status = %v, want optimal", result.Status)
		}
		if result.TotalKcal < 300*7-1 || result.TotalKcal > 900*7+1 {
			t.Errorf("totalCalories = %v, outside weekly band [%v, %v]", result.TotalKcal, 300*7, 900*7)
		}
	})

	t.Run("unreachable calorie floor is infeasible", func(t *testing.T) {
		// With every item capped at 2 units the basket cannot reach
		// 2000 kcal/day, so the constraint set is unsatisfiable.
		result := testOptimizer().Optimize(ctx, sampleQuotes(), OptimizeRequest{
			Budget:          50.0,
			Currency:        "EUR",
			MaxPerItemUnits: 2.0,
			CalorieBounds:   &CalorieBounds{MinPerDay: 2000, MaxPerDay: 3000},
		})

		if result.Status != domain.StatusInfeasible {
			t.Errorf("status = %v, want infeasible", result.Status)
		}
	})

	t.Run("applies the protein variety floor", func(t *testing.T) {
		quotes := append(sampleQuotes(),
			domain.PriceQuote{
				ProductName:    "Tuna",
				NormalizedName: "tuna",
				Price:          dec("2.20"),
				Currency:       "EUR",
				Unit:           "100g",
				PricePerUnit:   decPtr("22.00"),
				Store:          "billa",
				City:           "vienna",
			},
			domain.PriceQuote{
				ProductName:    "Peanut Butter",
				NormalizedName: "peanut butter",
				Price:          dec("3.99"),
				Currency:       "EUR",
				Unit:           "500g",
				PricePerUnit:   decPtr("7.98"),
				Store:          "billa",
				City:           "vienna",
			},
		)

		result := testOptimizer().Optimize(ctx, quotes, OptimizeRequest{
			Budget:            50.0,
			Currency:          "EUR",
			MinProteinVariety: 3,
		})

		if result.Status != domain.StatusOptimal {
			t.Fatalf("status = %v, want optimal", result.Status)
		}

		highProtein := 0.0
		for _, ing := range result.Ingredients {
			switch ing.ProductName {
			case "Chicken Breast", "Tuna", "Peanut Butter":
				highProtein += ing.Quantity
			}
		}
		if highProtein < 0.1*3-1e-6 {
			t.Errorf("high-protein volume = %v, below variety floor", highProtein)
		}
	})

	t.Run("cancelled context reports solver failure", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		result := testOptimizer().Optimize(cancelled, sampleQuotes(), OptimizeRequest{
			Budget:   50.0,
			Currency: "EUR",
		})

		if result.Status != domain.StatusSolverFailure {
			t.Errorf("status = %v, want solver_failure", result.Status)
		}
	})

	t.Run("falls back to raw price when per-unit is absent", func(t *testing.T) {
		quotes := []domain.PriceQuote{{
			ProductName:    "Eggs",
			NormalizedName: "eggs",
			Price:          dec("3.50"),
			Currency:       "EUR",
			Unit:           "pack",
			Store:          "spar",
			City:           "vienna",
		}}

		result := testOptimizer().Optimize(ctx, quotes, OptimizeRequest{
			Budget:   50.0,
			Currency: "EUR",
		})

		if result.Status != domain.StatusOptimal {
			t.Fatalf("status = %v, want optimal", result.Status)
		}
		if len(result.Ingredients) != 1 {
			t.Fatalf("ingredients = %d, want 1", len(result.Ingredients))
		}
		// 2 packs at the raw 3.50 price.
		cost, _ := result.Ingredients[0].TotalCost.Float64()
		if cost < 6.99 || cost > 7.01 {
			t.Errorf("cost = %v, want ~7.00", cost)
		}
	})
}

func TestGramsPerBaseUnit(t *testing.T) {
	tests := []struct {
		unit string
		want float64
	}{
		{"kg", 1000},
		{"g", 1},
		{"l", 1000},
		{"L", 1000},
		{"ml", 1},
		{"100g", 100},
		{"piece", 50},
		{"pack", 50},
		{"500g", 50}, // not a 100g label; falls back to the piece default
	}

	for _, tt := range tests {
		if got := gramsPerBaseUnit(tt.unit); got != tt.want {
			t.Errorf("gramsPerBaseUnit(%q) = %v, want %v", tt.unit, got, tt.want)
		}
	}
}
