package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yonurhan/MomCare-Final/knowledge"
	"github.com/Yonurhan/MomCare-Final/models"
)

func foodNames(items []knowledge.RecommendationItem) []string {
	var names []string
	for _, item := range items {
		if item.Type == knowledge.ItemFood {
			names = append(names, item.Food)
		}
	}
	return names
}

func TestFilterRecommendationsVegetarian(t *testing.T) {
	kb := testKB(t)
	planner := NewMealPlanner(kb, models.Preferences{Dietary: models.DietVegetarian})

	items := planner.FilterRecommendations(models.NutrientIron)

	assert.Equal(t, []string{"Bayam"}, foodNames(items))
}

func TestFilterRecommendationsVegan(t *testing.T) {
	kb := testKB(t)
	planner := NewMealPlanner(kb, models.Preferences{Dietary: models.DietVegan})

	assert.Empty(t, foodNames(planner.FilterRecommendations(models.NutrientCalcium))) // dairy dropped
	protein := foodNames(planner.FilterRecommendations(models.NutrientProtein))
	assert.Equal(t, []string{"Tempe"}, protein) // egg dropped
}

func TestFilterRecommendationsDislikedFoods(t *testing.T) {
	kb := testKB(t)
	planner := NewMealPlanner(kb, models.Preferences{
		Dietary:       models.DietAll,
		DislikedFoods: []string{"bayam"}, // case-insensitive
	})

	items := planner.FilterRecommendations(models.NutrientIron)

	assert.Equal(t, []string{"Daging Sapi"}, foodNames(items))
}

func TestFilterRecommendationsKeepsTipsAndInfos(t *testing.T) {
	kb := testKB(t)
	planner := NewMealPlanner(kb, models.Preferences{
		Dietary:       models.DietVegan,
		DislikedFoods: []string{"Bayam"},
	})

	items := planner.FilterRecommendations(models.NutrientIron)

	require.Len(t, items, 1)
	assert.Equal(t, knowledge.ItemInfo, items[0].Type)
}

func TestGeneratePlanNoDeficiencies(t *testing.T) {
	kb := testKB(t)
	planner := NewMealPlanner(kb, models.Preferences{Dietary: models.DietAll})

	assert.Equal(t, DefaultMealPlan(), planner.GeneratePlan(nil))
}

func TestGeneratePlanCoverageGreedy(t *testing.T) {
	kb := testKB(t)
	planner := NewMealPlanner(kb, models.Preferences{Dietary: models.DietAll})

	// Bayam appears under both deficient nutrients, so it outranks the
	// single-coverage foods and takes the lunch slot.
	plan := planner.GeneratePlan([]models.Nutrient{models.NutrientIron, models.NutrientFolicAcid})

	assert.Contains(t, plan.Lunch, "Bayam")
	assert.Contains(t, plan.Lunch, "Iron & Folic Acid")
	assert.Contains(t, plan.Dinner, "Daging Sapi")
	assert.Contains(t, plan.Breakfast, "Nasi Merah")
	assert.NotEmpty(t, plan.Snacks)
	assert.Contains(t, plan.Notes, "vitamin C")
}

func TestGeneratePlanIsDeterministic(t *testing.T) {
	kb := testKB(t)
	planner := NewMealPlanner(kb, models.Preferences{Dietary: models.DietAll})
	deficient := []models.Nutrient{models.NutrientIron, models.NutrientCalcium}

	first := planner.GeneratePlan(deficient)
	second := planner.GeneratePlan(deficient)

	assert.Equal(t, first, second)
}

func TestGeneratePlanFallsBackWhenSlotUnfillable(t *testing.T) {
	kb := testKB(t)
	// A vegan with a calcium deficiency: the only calcium food is dairy, so
	// no lunch candidate exists and the whole plan collapses to the default.
	planner := NewMealPlanner(kb, models.Preferences{Dietary: models.DietVegan})

	plan := planner.GeneratePlan([]models.Nutrient{models.NutrientCalcium})

	assert.Equal(t, DefaultMealPlan(), plan)
}

func TestGeneratePlanDoesNotRepeatFoodsAcrossSlots(t *testing.T) {
	kb := testKB(t)
	planner := NewMealPlanner(kb, models.Preferences{Dietary: models.DietAll})

	plan := planner.GeneratePlan([]models.Nutrient{models.NutrientIron, models.NutrientFolicAcid})

	assert.NotContains(t, plan.Snacks, "Bayam")
	assert.NotContains(t, plan.Breakfast, "Bayam")
	assert.NotContains(t, plan.Dinner, "Bayam")
}
