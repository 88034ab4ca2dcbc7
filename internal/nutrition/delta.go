package nutrition

// Delta is a calorie/macro change folded into a user's ledger.
type Delta struct {
	Calories int     `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Protein  float64 `json:"protein"`
}

// Add returns the component-wise sum of d and o.
func (d Delta) Add(o Delta) Delta {
	return Delta{
		Calories: d.Calories + o.Calories,
		Carbs:    d.Carbs + o.Carbs,
		Fat:      d.Fat + o.Fat,
		Protein:  d.Protein + o.Protein,
	}
}

// Negate returns the delta that undoes d.
func (d Delta) Negate() Delta {
	return Delta{
		Calories: -d.Calories,
		Carbs:    -d.Carbs,
		Fat:      -d.Fat,
		Protein:  -d.Protein,
	}
}

// IsZero reports whether applying d would change nothing.
func (d Delta) IsZero() bool {
	return d == Delta{}
}

// Sum folds deltas into one.
func Sum(deltas ...Delta) Delta {
	var total Delta
	for _, d := range deltas {
		total = total.Add(d)
	}
	return total
}
