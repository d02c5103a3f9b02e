package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yonurhan/MomCare-Final/knowledge"
	"github.com/Yonurhan/MomCare-Final/models"
)

func testKB(t *testing.T) *knowledge.Base {
	t.Helper()
	rec := []byte(`{
		"iron": [
			{"type": "food", "food": "Daging Sapi", "serving_size": "100g", "tags": ["non-veg"]},
			{"type": "food", "food": "Bayam", "serving_size": "1 mangkuk", "tags": ["plant"]},
			{"type": "info", "text": "Zat besi diserap lebih baik bersama vitamin C."}
		],
		"folic_acid": [
			{"type": "food", "food": "Bayam", "serving_size": "1 mangkuk", "tags": ["plant"]},
			{"type": "food", "food": "Brokoli", "serving_size": "1 mangkuk", "tags": ["plant"]}
		],
		"calcium": [
			{"type": "food", "food": "Susu", "serving_size": "1 gelas", "tags": ["dairy"]}
		],
		"carbs": [
			{"type": "food", "food": "Nasi Merah", "serving_size": "1 porsi", "tags": ["plant"]}
		],
		"calories": [
			{"type": "food", "food": "Alpukat", "serving_size": "1 buah", "tags": ["plant"]}
		],
		"protein": [
			{"type": "food", "food": "Tempe", "serving_size": "2 potong", "tags": ["plant"]},
			{"type": "food", "food": "Telur", "serving_size": "2 butir", "tags": ["egg"]}
		]
	}`)
	sym := []byte(`{
		"kelelahan": {
			"related_nutrients": ["iron", "protein", "sleep"],
			"lifestyle_tips": ["Tidur siang singkat 20-30 menit.", "Kurangi aktivitas berat di sore hari."]
		},
		"mual": {
			"related_nutrients": [],
			"lifestyle_tips": ["Makan porsi kecil tapi sering."]
		}
	}`)
	kb, err := knowledge.Parse(rec, sym)
	require.NoError(t, err)
	return kb
}

func newTestScorer(kb *knowledge.Base, targets map[models.Nutrient]float64, metrics Metrics, history []AssessmentResult, health models.HealthProfile) *RiskScorer {
	planner := NewMealPlanner(kb, models.Preferences{Dietary: models.DietAll})
	return NewRiskScorer(kb, planner, targets, metrics, history, health)
}

func TestScoreNutrientsBaseScore(t *testing.T) {
	kb := testKB(t)
	targets := map[models.Nutrient]float64{models.NutrientIron: 27}
	metrics := Metrics{
		DaysCompleted:  map[models.Nutrient]int{models.NutrientIron: 3},
		WeeklyAverages: map[models.Nutrient]float64{models.NutrientIron: 15},
	}

	alerts := newTestScorer(kb, targets, metrics, nil, models.HealthProfile{Age: 28}).ScoreNutrients()

	require.Len(t, alerts, 1)
	alert := alerts[0]
	assert.InDelta(t, (1-3.0/7.0)*40, alert.RiskScore, 0.001) // ~22.86
	assert.Equal(t, LevelInfo, alert.Level)
	assert.Equal(t, "Perhatian pada Asupan Iron", alert.Title)
	assert.Equal(t, CategoryNutrition, alert.Category)
	assert.Equal(t, models.NutrientIron, alert.NutrientKey)
	assert.Contains(t, alert.Message, "(3/7 hari)")
	assert.NotEmpty(t, alert.Recommendations)
}

func TestScoreNutrientsAnemiaDoublesIron(t *testing.T) {
	kb := testKB(t)
	targets := map[models.Nutrient]float64{models.NutrientIron: 27}
	metrics := Metrics{
		DaysCompleted:  map[models.Nutrient]int{models.NutrientIron: 3},
		WeeklyAverages: map[models.Nutrient]float64{models.NutrientIron: 15},
	}
	health := models.HealthProfile{Age: 28, PreExistingConditions: []string{"anemia"}}

	alerts := newTestScorer(kb, targets, metrics, nil, health).ScoreNutrients()

	require.Len(t, alerts, 1)
	assert.InDelta(t, (1-3.0/7.0)*40*2.0, alerts[0].RiskScore, 0.001) // ~45.71
	assert.Equal(t, LevelWarning, alerts[0].Level)
}

func TestScoreNutrientsRecurrenceMultipliers(t *testing.T) {
	kb := testKB(t)
	targets := map[models.Nutrient]float64{models.NutrientIron: 27}
	metrics := Metrics{
		DaysCompleted:  map[models.Nutrient]int{models.NutrientIron: 3},
		WeeklyAverages: map[models.Nutrient]float64{models.NutrientIron: 15},
	}
	pastWarning := AssessmentResult{Alerts: []Alert{{
		Category: CategoryNutrition,
		Level:    LevelWarning,
		Title:    "Perhatian pada Asupan Iron",
	}}}
	base := (1 - 3.0/7.0) * 40

	once := newTestScorer(kb, targets, metrics, []AssessmentResult{pastWarning}, models.HealthProfile{Age: 28}).ScoreNutrients()
	require.Len(t, once, 1)
	assert.InDelta(t, base*1.2, once[0].RiskScore, 0.001)

	twice := newTestScorer(kb, targets, metrics, []AssessmentResult{pastWarning, pastWarning}, models.HealthProfile{Age: 28}).ScoreNutrients()
	require.Len(t, twice, 1)
	assert.InDelta(t, base*1.5, twice[0].RiskScore, 0.001)
}

func TestScoreNutrientsRecurrenceIgnoresInfoAndOtherNutrients(t *testing.T) {
	kb := testKB(t)
	targets := map[models.Nutrient]float64{models.NutrientIron: 27}
	metrics := Metrics{
		DaysCompleted:  map[models.Nutrient]int{models.NutrientIron: 3},
		WeeklyAverages: map[models.Nutrient]float64{models.NutrientIron: 15},
	}
	history := []AssessmentResult{{Alerts: []Alert{
		{Category: CategoryNutrition, Level: LevelInfo, Title: "Perhatian pada Asupan Iron"},
		{Category: CategoryNutrition, Level: LevelWarning, Title: "Perhatian pada Asupan Calcium"},
		{Category: CategorySymptomManagement, Level: LevelWarning, Title: "Tips Mengelola Iron Deficiency"},
	}}}

	alerts := newTestScorer(kb, targets, metrics, history, models.HealthProfile{Age: 28}).ScoreNutrients()

	require.Len(t, alerts, 1)
	assert.InDelta(t, (1-3.0/7.0)*40, alerts[0].RiskScore, 0.001)
}

func TestScoreNutrientsCalciumAgeMultiplier(t *testing.T) {
	kb := testKB(t)
	targets := map[models.Nutrient]float64{models.NutrientCalcium: 1300}
	metrics := Metrics{
		DaysCompleted:  map[models.Nutrient]int{models.NutrientCalcium: 2},
		WeeklyAverages: map[models.Nutrient]float64{models.NutrientCalcium: 600},
	}

	alerts := newTestScorer(kb, targets, metrics, nil, models.HealthProfile{Age: 36}).ScoreNutrients()

	require.Len(t, alerts, 1)
	assert.InDelta(t, (1-2.0/7.0)*40*1.1, alerts[0].RiskScore, 0.001)
}

func TestScoreNutrientsSkipsMetNutrients(t *testing.T) {
	kb := testKB(t)
	targets := map[models.Nutrient]float64{models.NutrientIron: 27}
	metrics := Metrics{
		DaysCompleted:  map[models.Nutrient]int{models.NutrientIron: 5},
		WeeklyAverages: map[models.Nutrient]float64{models.NutrientIron: 28},
	}

	alerts := newTestScorer(kb, targets, metrics, nil, models.HealthProfile{Age: 28}).ScoreNutrients()

	assert.Empty(t, alerts)
}

func TestScoreNutrientsZeroLogsMaxDeficiency(t *testing.T) {
	kb := testKB(t)
	targets := map[models.Nutrient]float64{
		models.NutrientIron:    27,
		models.NutrientCalcium: 1300,
	}
	metrics := AggregateLogs(nil, targets)

	alerts := newTestScorer(kb, targets, metrics, nil, models.HealthProfile{Age: 28}).ScoreNutrients()

	require.Len(t, alerts, 2)
	for _, alert := range alerts {
		assert.InDelta(t, 40.0, alert.RiskScore, 0.001)
		assert.Equal(t, LevelWarning, alert.Level)
	}
}

func TestScoreNutrientsFallbackRecommendation(t *testing.T) {
	// Zinc has no knowledge-base entries in the fixture; the alert still
	// carries a consult-your-provider pointer instead of an empty list.
	kb := testKB(t)
	targets := map[models.Nutrient]float64{models.NutrientZinc: 11}
	metrics := Metrics{
		DaysCompleted:  map[models.Nutrient]int{models.NutrientZinc: 1},
		WeeklyAverages: map[models.Nutrient]float64{models.NutrientZinc: 3},
	}

	alerts := newTestScorer(kb, targets, metrics, nil, models.HealthProfile{Age: 28}).ScoreNutrients()

	require.Len(t, alerts, 1)
	require.Len(t, alerts[0].Recommendations, 1)
	assert.Equal(t, knowledge.ItemInfo, alerts[0].Recommendations[0].Type)
	assert.Contains(t, alerts[0].Recommendations[0].Text, "Zinc")
}

func TestScoreSymptomsFatigueCompounds(t *testing.T) {
	kb := testKB(t)
	metrics := Metrics{
		DaysCompleted: map[models.Nutrient]int{
			models.NutrientIron:    2,
			models.NutrientProtein: 3,
			models.NutrientSleep:   1,
		},
		WeeklyAverages: map[models.Nutrient]float64{},
	}

	alerts := newTestScorer(kb, nil, metrics, nil, models.HealthProfile{Age: 28}).ScoreSymptoms([]string{"kelelahan"})

	require.Len(t, alerts, 1)
	alert := alerts[0]
	assert.InDelta(t, 67.5*1.25*1.25*1.25, alert.RiskScore, 0.001) // ~131.84
	assert.Equal(t, LevelDanger, alert.Level)
	assert.Equal(t, "Tips Mengelola Kelelahan", alert.Title)
	assert.Equal(t, CategorySymptomManagement, alert.Category)
	assert.Contains(t, alert.Message, "Iron")
	assert.Len(t, alert.LifestyleTips, 2)
}

func TestScoreSymptomsDefaultBaseScore(t *testing.T) {
	kb := testKB(t)
	metrics := Metrics{DaysCompleted: map[models.Nutrient]int{}, WeeklyAverages: map[models.Nutrient]float64{}}

	alerts := newTestScorer(kb, nil, metrics, nil, models.HealthProfile{Age: 28}).ScoreSymptoms([]string{"Mual"})

	require.Len(t, alerts, 1)
	assert.InDelta(t, 30.0, alerts[0].RiskScore, 0.001)
	assert.Equal(t, LevelInfo, alerts[0].Level)
}

func TestScoreSymptomsUnknownSymptomIgnored(t *testing.T) {
	kb := testKB(t)
	metrics := Metrics{DaysCompleted: map[models.Nutrient]int{}, WeeklyAverages: map[models.Nutrient]float64{}}

	alerts := newTestScorer(kb, nil, metrics, nil, models.HealthProfile{Age: 28}).ScoreSymptoms([]string{"tidak dikenal"})

	assert.Empty(t, alerts)
}

func TestScoringIsDeterministic(t *testing.T) {
	kb := testKB(t)
	targets := map[models.Nutrient]float64{
		models.NutrientIron:    27,
		models.NutrientCalcium: 1300,
	}
	metrics := Metrics{
		DaysCompleted: map[models.Nutrient]int{
			models.NutrientIron:    3,
			models.NutrientCalcium: 2,
		},
		WeeklyAverages: map[models.Nutrient]float64{
			models.NutrientIron:    15,
			models.NutrientCalcium: 600,
		},
	}

	first := newTestScorer(kb, targets, metrics, nil, models.HealthProfile{Age: 28}).ScoreNutrients()
	second := newTestScorer(kb, targets, metrics, nil, models.HealthProfile{Age: 28}).ScoreNutrients()

	assert.Equal(t, first, second)
	require.Len(t, first, 2)
	// Tracked order: iron comes before calcium.
	assert.Equal(t, models.NutrientIron, first[0].NutrientKey)
	assert.Equal(t, models.NutrientCalcium, first[1].NutrientKey)
}
