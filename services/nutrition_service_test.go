package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yonurhan/MomCare-Final/models"
)

func TestGestationalWeek(t *testing.T) {
	lmp := time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)

	assert.Equal(t, 0, GestationalWeek(lmp, lmp.AddDate(0, 0, 6)))
	assert.Equal(t, 1, GestationalWeek(lmp, lmp.AddDate(0, 0, 7)))
	assert.Equal(t, 20, GestationalWeek(lmp, lmp.AddDate(0, 0, 140)))
	assert.Equal(t, 0, GestationalWeek(lmp, lmp.AddDate(0, 0, -3))) // future LMP clamps to 0
}

func TestTrimesterBoundaries(t *testing.T) {
	assert.Equal(t, 1, Trimester(0))
	assert.Equal(t, 1, Trimester(13))
	assert.Equal(t, 2, Trimester(14))
	assert.Equal(t, 2, Trimester(27))
	assert.Equal(t, 3, Trimester(28))
	assert.Equal(t, 3, Trimester(40))
}

func TestCalculateMacroTargetsSecondTrimester(t *testing.T) {
	lmp := time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)
	asOf := lmp.AddDate(0, 0, 14*7) // week 14

	targets, err := CalculateMacroTargets(30, 60, 160, lmp, asOf)
	require.NoError(t, err)

	// EER = 354 - 6.91*30 + 9.36*60 + 726*1.60 = 1869.9, plus 340 kcal.
	calories := 1869.9 + 340
	assert.InDelta(t, calories, targets[models.NutrientCalories], 0.01)
	assert.InDelta(t, 66.0, targets[models.NutrientProtein], 0.01) // 60kg * 1.1
	assert.InDelta(t, 0.30*calories/9, targets[models.NutrientFat], 0.01)
	assert.InDelta(t, (calories-66*4-0.30*calories)/4, targets[models.NutrientCarbs], 0.01)
}

func TestCalculateMacroTargetsTrimesterSurcharge(t *testing.T) {
	lmp := time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)

	first, err := CalculateMacroTargets(30, 60, 160, lmp, lmp.AddDate(0, 0, 5*7))
	require.NoError(t, err)
	third, err := CalculateMacroTargets(30, 60, 160, lmp, lmp.AddDate(0, 0, 30*7))
	require.NoError(t, err)

	assert.InDelta(t, 452.0, third[models.NutrientCalories]-first[models.NutrientCalories], 0.01)
}

func TestCalculateMacroTargetsRejectsImplausibleStats(t *testing.T) {
	lmp := time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)
	asOf := lmp.AddDate(0, 0, 100)

	cases := []struct {
		name   string
		age    int
		weight float64
		height float64
	}{
		{"zero age", 0, 60, 160},
		{"age too high", 80, 60, 160},
		{"weight too low", 30, 20, 160},
		{"height too low", 30, 60, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CalculateMacroTargets(tc.age, tc.weight, tc.height, lmp, asOf)
			assert.Error(t, err)
		})
	}
}

func TestBuildNutrientTargetsMergesStaticTable(t *testing.T) {
	lmp := time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)
	user := &models.User{Age: 30, Weight: 60, Height: 160, LMPDate: &lmp}

	targets, degraded := BuildNutrientTargets(user, lmp.AddDate(0, 0, 100))

	assert.False(t, degraded)
	assert.Equal(t, 600.0, targets[models.NutrientFolicAcid])
	assert.Equal(t, 27.0, targets[models.NutrientIron])
	assert.Equal(t, 1300.0, targets[models.NutrientCalcium])
	assert.Equal(t, 11.0, targets[models.NutrientZinc])
	assert.Equal(t, 2000.0, targets[models.NutrientWater])
	assert.Equal(t, 8.0, targets[models.NutrientSleep])
	assert.Greater(t, targets[models.NutrientCalories], 0.0)
}

func TestBuildNutrientTargetsDegradesOnBadStats(t *testing.T) {
	lmp := time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)
	user := &models.User{Age: 0, Weight: 60, Height: 160, LMPDate: &lmp}

	targets, degraded := BuildNutrientTargets(user, lmp.AddDate(0, 0, 100))

	assert.True(t, degraded)
	assert.Equal(t, DefaultMacroTargets[models.NutrientCalories], targets[models.NutrientCalories])
	assert.Equal(t, DefaultMacroTargets[models.NutrientProtein], targets[models.NutrientProtein])
	assert.Equal(t, 27.0, targets[models.NutrientIron]) // statics still present
}

func TestDueDate(t *testing.T) {
	lmp := time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)
	assert.Equal(t, lmp.AddDate(0, 0, 280), DueDate(lmp))
}
