package models

// Nutrient is the closed set of keys the engine tracks. Everything keyed by
// nutrient (targets, metrics, knowledge base, alerts) uses these constants so
// a typo cannot silently drop a nutrient from scoring.
type Nutrient string

const (
	NutrientCalories  Nutrient = "calories"
	NutrientProtein   Nutrient = "protein"
	NutrientFat       Nutrient = "fat"
	NutrientCarbs     Nutrient = "carbs"
	NutrientFolicAcid Nutrient = "folic_acid"
	NutrientIron      Nutrient = "iron"
	NutrientCalcium   Nutrient = "calcium"
	NutrientZinc      Nutrient = "zinc"
	NutrientWater     Nutrient = "water"
	NutrientSleep     Nutrient = "sleep"
)

// TrackedNutrients fixes the iteration order for scoring and tie-breaking.
var TrackedNutrients = []Nutrient{
	NutrientCalories,
	NutrientProtein,
	NutrientFat,
	NutrientCarbs,
	NutrientFolicAcid,
	NutrientIron,
	NutrientCalcium,
	NutrientZinc,
	NutrientWater,
	NutrientSleep,
}

// Display names match the titles the mobile client already renders; historical
// recurrence matching does a substring search on these, so they must stay
// stable across releases.
var nutrientDisplayNames = map[Nutrient]string{
	NutrientCalories:  "Calories",
	NutrientProtein:   "Protein",
	NutrientFat:       "Fat",
	NutrientCarbs:     "Carbs",
	NutrientFolicAcid: "Folic Acid",
	NutrientIron:      "Iron",
	NutrientCalcium:   "Calcium",
	NutrientZinc:      "Zinc",
	NutrientWater:     "Water",
	NutrientSleep:     "Sleep",
}

func (n Nutrient) DisplayName() string {
	if name, ok := nutrientDisplayNames[n]; ok {
		return name
	}
	return string(n)
}

func (n Nutrient) Valid() bool {
	_, ok := nutrientDisplayNames[n]
	return ok
}
