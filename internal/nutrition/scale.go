package nutrition

import (
	"fmt"
	"math"
	"strings"

	"gymboost-server/internal/domain"
)

// ScaleError describes why a contribution could not be computed.
type ScaleError struct {
	Reason string
}

func (e *ScaleError) Error() string {
	return e.Reason
}

// Scale converts a food reference and a chosen serving into a ledger delta.
// Nutrients the reference does not carry contribute zero.
func Scale(ref domain.FoodReference, quantity float64, unit string) (Delta, error) {
	if quantity <= 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return Delta{}, &ScaleError{Reason: "Quantity must be a positive number."}
	}
	target, ok := UnitFactor(unit)
	if !ok {
		return Delta{}, &ScaleError{Reason: fmt.Sprintf("Unsupported unit %q.", unit)}
	}

	baseAmount, baseUnit := ref.BaseServing()
	if baseAmount <= 0 {
		return Delta{}, &ScaleError{Reason: fmt.Sprintf("Food %q has no reference serving.", ref.Name)}
	}
	base, ok := UnitFactor(baseUnit)
	if !ok {
		return Delta{}, &ScaleError{Reason: fmt.Sprintf("Food %q uses unsupported unit %q.", ref.Name, baseUnit)}
	}

	adjusted := quantity * (target / base) / baseAmount

	// the float must be range-checked before it becomes an int
	kcal := math.Round(ref.Calories * adjusted)
	if math.IsNaN(kcal) || math.Abs(kcal) > MaxDeltaCalories {
		return Delta{}, &ScaleError{Reason: "Quantity is too large."}
	}

	delta := Delta{Calories: int(kcal)}
	for _, n := range ref.Nutrients {
		switch strings.ToLower(strings.TrimSpace(n.Name)) {
		case "protein":
			delta.Protein += n.Value * adjusted
		case "fat":
			delta.Fat += n.Value * adjusted
		case "carbohydrate", "carbohydrates", "carbs":
			delta.Carbs += n.Value * adjusted
		}
	}
	if err := CheckDelta(delta); err != nil {
		return Delta{}, &ScaleError{Reason: "Quantity is too large."}
	}
	return delta, nil
}
