package domain

// NutritionProfile holds macro-nutrient values per 100 g of a product.
type NutritionProfile struct {
	ProteinG float64 `json:"protein"`
	CarbsG   float64 `json:"carbs"`
	FatG     float64 `json:"fat"`
	Kcal     float64 `json:"calories"`
}
