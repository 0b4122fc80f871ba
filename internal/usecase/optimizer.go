package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/basketwise/backend/internal/domain"
)

const (
	// budgetSlack loosens the budget bound by 2% to improve feasibility
	// without materially exceeding the stated budget.
	budgetSlack = 1.02

	// highProteinThreshold marks a product as a protein source (g per 100g).
	highProteinThreshold = 15.0

	// solutionNoiseFloor filters numerical noise out of the solved basket.
	solutionNoiseFloor = 0.001
)

// OptimizerConfig holds tuning for the basket optimizer.
type OptimizerConfig struct {
	SolveTimeout time.Duration
}

// OptimizeRequest carries the budget and the optional tuning knobs of one
// optimization call. Zero-valued knobs take their defaults: variety 3,
// per-item cap 2.0.
type OptimizeRequest struct {
	Budget            float64
	Currency          string
	MinProteinVariety int
	MaxPerItemUnits   float64
	CategoryMax       map[string]float64
	CalorieBounds     *CalorieBounds
}

// CalorieBounds constrains the basket's daily calorie yield.
type CalorieBounds struct {
	MinPerDay float64
	MaxPerDay float64
}

// BasketOptimizer builds and solves the weekly basket linear program:
// maximize protein per unit currency under a hard budget, per-item caps and
// optional category/variety/calorie constraints. It is stateless across
// calls and safe for concurrent use.
type BasketOptimizer struct {
	nutrition    *NutritionLookup
	solveTimeout time.Duration
	logger       *slog.Logger
}

// NewBasketOptimizer creates an optimizer with the given nutrition lookup.
// A zero solve timeout defaults to 10s.
func NewBasketOptimizer(nutrition *NutritionLookup, config OptimizerConfig, logger *slog.Logger) *BasketOptimizer {
	timeout := config.SolveTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BasketOptimizer{
		nutrition:    nutrition,
		solveTimeout: timeout,
		logger:       logger,
	}
}

// decisionVariable is one continuous purchase quantity, one per distinct
// (normalizedName, store) pair, measured in the quote's base unit.
type decisionVariable struct {
	quote        domain.PriceQuote
	perUnitCost  decimal.Decimal // price per base unit; falls back to the raw price
	perUnitFloat float64
	nutrition    domain.NutritionProfile
}

// Optimize solves the basket LP over the given quotes. Malformed quotes must
// have been dropped by the normalization layer already; Optimize does not
// re-validate. All outcomes, including solver errors, are reported through
// the result status, never as a Go error.
func (o *BasketOptimizer) Optimize(ctx context.Context, quotes []domain.PriceQuote, req OptimizeRequest) domain.OptimizationResult {
	if req.MinProteinVariety == 0 {
		req.MinProteinVariety = 3
	}
	if req.MaxPerItemUnits == 0 {
		req.MaxPerItemUnits = 2.0
	}

	o.logger.Info("Optimization started",
		"budget", req.Budget,
		"currency", req.Currency,
		"quotes", len(quotes),
	)

	if len(quotes) == 0 {
		o.logger.Warn("No quotes supplied")
		return emptyResult(domain.StatusInfeasible)
	}

	matching := filterByCurrency(quotes, req.Currency)
	if len(matching) == 0 {
		o.logger.Warn("No quotes match requested currency", "currency", req.Currency)
		return emptyResult(domain.StatusInfeasible)
	}

	budget := decimal.NewFromFloat(req.Budget)
	if cheapestPrice(matching).GreaterThan(budget) {
		o.logger.Warn("Budget below cheapest quote", "budget", req.Budget)
		return emptyResult(domain.StatusBudgetTooLow)
	}

	vars := buildVariables(matching, o.nutrition)
	program := o.buildProgram(vars, req)

	solveCtx, cancel := context.WithTimeout(ctx, o.solveTimeout)
	defer cancel()

	solution, err := program.solve(solveCtx)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			o.logger.Warn("Constraint set unsatisfiable", "status", err.Error())
			return emptyResult(domain.StatusInfeasible)
		}
		o.logger.Error("Solver failed", "error", err)
		return emptyResult(domain.StatusSolverFailure)
	}

	result := o.extractResult(vars, solution, req.Budget)
	o.logger.Info("Optimization finished",
		"ingredients", len(result.Ingredients),
		"totalCost", result.TotalCost.String(),
		"totalProtein", result.TotalProteinG,
	)
	return result
}

func emptyResult(status domain.OptimizationStatus) domain.OptimizationResult {
	return domain.OptimizationResult{
		Status:      status,
		Ingredients: []domain.OptimizedIngredient{},
		TotalCost:   decimal.Zero,
	}
}

func filterByCurrency(quotes []domain.PriceQuote, currency string) []domain.PriceQuote {
	matching := make([]domain.PriceQuote, 0, len(quotes))
	for _, q := range quotes {
		if strings.EqualFold(q.Currency, currency) {
			matching = append(matching, q)
		}
	}
	return matching
}

func cheapestPrice(quotes []domain.PriceQuote) decimal.Decimal {
	cheapest := quotes[0].Price
	for _, q := range quotes[1:] {
		if q.Price.LessThan(cheapest) {
			cheapest = q.Price
		}
	}
	return cheapest
}

// buildVariables creates one decision variable per distinct
// (normalizedName, store) pair; the first quote for a pair wins.
func buildVariables(quotes []domain.PriceQuote, nutrition *NutritionLookup) []decisionVariable {
	type key struct{ name, store string }
	seen := make(map[key]bool, len(quotes))

	vars := make([]decisionVariable, 0, len(quotes))
	for _, q := range quotes {
		k := key{q.NormalizedName, q.Store}
		if seen[k] {
			continue
		}
		seen[k] = true

		perUnit := q.Price
		if q.PricePerUnit != nil {
			perUnit = *q.PricePerUnit
		}
		perUnitFloat, _ := perUnit.Float64()

		vars = append(vars, decisionVariable{
			quote:        q,
			perUnitCost:  perUnit,
			perUnitFloat: perUnitFloat,
			nutrition:    nutrition.Lookup(q.NormalizedName),
		})
	}
	return vars
}

func (o *BasketOptimizer) buildProgram(vars []decisionVariable, req OptimizeRequest) *linearProgram {
	n := len(vars)

	// Objective: protein yield per unit currency spent. Variables with a
	// zero or absent per-unit cost contribute nothing.
	objective := make([]float64, n)
	for i, v := range vars {
		if v.perUnitFloat > 0 {
			objective[i] = v.nutrition.ProteinG / v.perUnitFloat
		}
	}
	program := newLinearProgram(objective)

	// Budget, with slack.
	costs := make([]float64, n)
	for i, v := range vars {
		costs[i] = v.perUnitFloat
	}
	program.addConstraint(costs, req.Budget*budgetSlack)

	// Per-item cap and non-negativity for each variable.
	for i := range vars {
		program.addConstraint(unitRow(n, i, 1), req.MaxPerItemUnits)
		program.addConstraint(unitRow(n, i, -1), 0)
	}

	// Category caps: substring match on the normalized name.
	categories := make([]string, 0, len(req.CategoryMax))
	for category := range req.CategoryMax {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		row := make([]float64, n)
		matched := false
		for i, v := range vars {
			if strings.Contains(strings.ToLower(v.quote.NormalizedName), strings.ToLower(category)) {
				row[i] = 1
				matched = true
			}
		}
		if matched {
			program.addConstraint(row, req.CategoryMax[category])
		}
	}

	// Protein variety: when enough distinct high-protein products are on
	// offer, floor their combined volume. This is a continuous relaxation;
	// it nudges high-protein volume upward rather than forcing N distinct
	// selections.
	proteinProducts := make(map[string]bool)
	proteinRow := make([]float64, n)
	for i, v := range vars {
		if v.nutrition.ProteinG > highProteinThreshold {
			proteinProducts[v.quote.NormalizedName] = true
			proteinRow[i] = -1
		}
	}
	if len(proteinProducts) >= req.MinProteinVariety {
		program.addConstraint(proteinRow, -0.1*float64(req.MinProteinVariety))
	}

	// Weekly calorie band.
	if req.CalorieBounds != nil {
		calories := make([]float64, n)
		negated := make([]float64, n)
		for i, v := range vars {
			perUnit := v.nutrition.Kcal * gramsPerBaseUnit(v.quote.Unit) / 100.0
			calories[i] = perUnit
			negated[i] = -perUnit
		}
		program.addConstraint(calories, req.CalorieBounds.MaxPerDay*7)
		program.addConstraint(negated, -req.CalorieBounds.MinPerDay*7)
	}

	return program
}

func unitRow(n, i int, sign float64) []float64 {
	row := make([]float64, n)
	row[i] = sign
	return row
}

func (o *BasketOptimizer) extractResult(vars []decisionVariable, solution []float64, budget float64) domain.OptimizationResult {
	ingredients := make([]domain.OptimizedIngredient, 0, len(vars))
	totalCost := decimal.Zero
	totalProtein := 0.0
	totalKcal := 0.0

	for i, v := range vars {
		quantity := solution[i]
		if quantity <= solutionNoiseFloor {
			continue
		}

		cost := v.perUnitCost.Mul(decimal.NewFromFloat(quantity))
		totalCost = totalCost.Add(cost)

		grams := gramsPerBaseUnit(v.quote.Unit) * quantity
		protein := v.nutrition.ProteinG * grams / 100.0
		kcal := v.nutrition.Kcal * grams / 100.0
		totalProtein += protein
		totalKcal += kcal

		ingredients = append(ingredients, domain.OptimizedIngredient{
			ProductName: v.quote.ProductName,
			Quantity:    roundTo(quantity, 2),
			Unit:        v.quote.Unit,
			TotalCost:   cost,
			Store:       v.quote.Store,
			Nutrition: domain.NutritionBreakdown{
				ProteinG: roundTo(protein, 1),
				CarbsG:   roundTo(v.nutrition.CarbsG*grams/100.0, 1),
				FatG:     roundTo(v.nutrition.FatG*grams/100.0, 1),
				Kcal:     math.Round(kcal),
			},
		})
	}

	utilization := 0.0
	if budget > 0 {
		costFloat, _ := totalCost.Float64()
		utilization = roundTo(costFloat/budget*100, 1)
	}

	return domain.OptimizationResult{
		Status:               domain.StatusOptimal,
		Ingredients:          ingredients,
		TotalCost:            totalCost,
		TotalProteinG:        roundTo(totalProtein, 1),
		TotalKcal:            math.Round(totalKcal),
		BudgetUtilizationPct: utilization,
	}
}

// gramsPerBaseUnit maps a unit label to the grams one base unit represents,
// for nutrition arithmetic. Liquids are assumed 1 g/mL; unmeasured count
// items fall back to a flat 50 g per piece.
func gramsPerBaseUnit(unit string) float64 {
	switch lower := strings.ToLower(unit); {
	case lower == "kg":
		return 1000.0
	case lower == "g":
		return 1.0
	case lower == "l":
		return 1000.0
	case lower == "ml":
		return 1.0
	case strings.Contains(lower, "100g"):
		return 100.0
	default:
		return 50.0
	}
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
