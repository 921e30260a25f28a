package units

import "github.com/jand19081/ladle/internal/model"

// SystemUnit describes one predefined unit. The catalog here mirrors the
// rows seeded by the initial migration; tests and the seed SQL must agree.
type SystemUnit struct {
	Abbrev       string
	Type         model.UnitType
	FactorToBase float64
}

// Catalog lists every built-in unit with its factor to the type's base unit
// (gram for weight, milliliter for volume, "each" for count).
var Catalog = []SystemUnit{
	{"g", model.UnitWeight, 1},
	{"kg", model.UnitWeight, 1000},
	{"oz", model.UnitWeight, 28.3495},
	{"lb", model.UnitWeight, 453.592},

	{"ml", model.UnitVolume, 1},
	{"l", model.UnitVolume, 1000},
	{"tsp", model.UnitVolume, 4.92892},
	{"tbsp", model.UnitVolume, 14.7868},
	{"floz", model.UnitVolume, 29.5735},
	{"cup", model.UnitVolume, 236.588},
	{"pint", model.UnitVolume, 473.176},
	{"quart", model.UnitVolume, 946.353},
	{"gallon", model.UnitVolume, 3785.41},

	{"each", model.UnitCount, 1},
	{"dozen", model.UnitCount, 12},
}
