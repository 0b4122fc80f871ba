package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote is one price observation for one product at one store.
// Quotes are produced by the normalization layer (or loaded from the quote
// store) and are never mutated afterwards.
type PriceQuote struct {
	ProductName    string           `json:"productName"`
	NormalizedName string           `json:"normalizedName"` // canonical lowercase key
	Price          decimal.Decimal  `json:"price"`
	Currency       string           `json:"currency"` // ISO 4217 code
	Unit           string           `json:"unit"`     // canonical unit label
	PricePerUnit   *decimal.Decimal `json:"pricePerUnit,omitempty"` // per kg/L; nil for count units
	Store          string           `json:"store"`
	City           string           `json:"city"`
	Category       string           `json:"category,omitempty"` // protein, carbs, vegetables, fats
	ScrapedAt      time.Time        `json:"scrapedAt,omitempty"`
}

// OptimizationStatus is the outcome of a basket optimization run.
type OptimizationStatus string

const (
	StatusOptimal       OptimizationStatus = "optimal"
	StatusInfeasible    OptimizationStatus = "infeasible"
	StatusBudgetTooLow  OptimizationStatus = "budget_too_low"
	StatusSolverFailure OptimizationStatus = "solver_failure"
)

// NutritionBreakdown is the nutrition contribution of one basket item.
type NutritionBreakdown struct {
	ProteinG float64 `json:"protein"`
	CarbsG   float64 `json:"carbs"`
	FatG     float64 `json:"fat"`
	Kcal     float64 `json:"calories"`
}

// OptimizedIngredient is one line of the shoppable basket.
type OptimizedIngredient struct {
	ProductName string             `json:"productName"`
	Quantity    float64            `json:"quantity"` // in the quote's base unit
	Unit        string             `json:"unit"`
	TotalCost   decimal.Decimal    `json:"totalCost"`
	Store       string             `json:"store"`
	Nutrition   NutritionBreakdown `json:"nutrition"`
}

// OptimizationResult is the full outcome of one optimization call.
// Cost figures are exact decimals; nutrition figures are display-only floats.
type OptimizationResult struct {
	Status               OptimizationStatus    `json:"status"`
	Ingredients          []OptimizedIngredient `json:"ingredients"`
	TotalCost            decimal.Decimal       `json:"totalCost"`
	TotalProteinG        float64               `json:"totalProtein"`
	TotalKcal            float64               `json:"totalCalories"`
	BudgetUtilizationPct float64               `json:"budgetUtilization"`
}
