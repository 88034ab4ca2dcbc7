package nutrition

import "math"

// Bounds on a single contribution and on a stored daily total. They keep
// every value well inside int64 and float64 precision.
const (
	MaxDeltaCalories = 100_000
	MaxDeltaGrams    = 10_000
	MaxTotalCalories = 1_000_000
	MaxTotalGrams    = 100_000
)

// CheckDelta rejects deltas with non-finite components or any component
// larger in magnitude than a single contribution may be.
func CheckDelta(d Delta) error {
	if d.Calories > MaxDeltaCalories || d.Calories < -MaxDeltaCalories {
		return &ScaleError{Reason: "Calories are too large for a single entry."}
	}
	for _, g := range []float64{d.Carbs, d.Fat, d.Protein} {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			return &ScaleError{Reason: "Macros must be finite numbers."}
		}
		if math.Abs(g) > MaxDeltaGrams {
			return &ScaleError{Reason: "Macros are too large for a single entry."}
		}
	}
	return nil
}
