package domain

// Nutrient is a single named fact tied to a reference serving.
type Nutrient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
	Value  float64 `json:"value"`
}

// FoodReference is an immutable catalog entry.
type FoodReference struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	ServingAmount float64    `json:"serving_amount"`
	ServingUnit   string     `json:"serving_unit"`
	Calories      float64    `json:"calories"`
	Nutrients     []Nutrient `json:"nutrients"`
}

// BaseServing returns the amount and unit every fact on the reference is
// expressed against. Catalog rows without an explicit serving fall back to
// the first nutrient's serving.
func (f FoodReference) BaseServing() (float64, string) {
	if f.ServingAmount > 0 && f.ServingUnit != "" {
		return f.ServingAmount, f.ServingUnit
	}
	if len(f.Nutrients) > 0 {
		return f.Nutrients[0].Amount, f.Nutrients[0].Unit
	}
	return f.ServingAmount, f.ServingUnit
}
