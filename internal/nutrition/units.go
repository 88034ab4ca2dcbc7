package nutrition

import "strings"

// unitFactors converts a serving unit into grams. Volume units are treated
// as gram-equivalents without density correction.
var unitFactors = map[string]float64{
	"g":     1,
	"kg":    1000,
	"oz":    28.35,
	"ml":    1,
	"tbsp":  15,
	"cup":   240,
	"slice": 30,
}

// UnitFactor returns the gram factor for unit and whether the unit is known.
func UnitFactor(unit string) (float64, bool) {
	f, ok := unitFactors[strings.ToLower(strings.TrimSpace(unit))]
	return f, ok
}

// Units lists the supported unit names.
func Units() []string {
	return []string{"g", "kg", "oz", "ml", "tbsp", "cup", "slice"}
}
