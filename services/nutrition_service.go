package services

import (
	"errors"
	"time"

	"github.com/Yonurhan/MomCare-Final/models"
)

// Macro target calculation. The EER base formula and the per-trimester
// calorie surcharges follow the IOM equations for pregnant women; the
// trimester boundaries here must stay in lockstep with Trimester below
// because the assessment echoes the same boundaries.

const (
	trimester2ExtraCalories = 340
	trimester3ExtraCalories = 452

	proteinGramsPerKg = 1.1
	fatCalorieShare   = 0.30
)

// StaticTargets are the micro-nutrient and lifestyle targets that do not
// depend on the user's statistics.
var StaticTargets = map[models.Nutrient]float64{
	models.NutrientFolicAcid: 600,  // mcg
	models.NutrientIron:      27,   // mg
	models.NutrientCalcium:   1300, // mg
	models.NutrientZinc:      11,   // mg
	models.NutrientWater:     2000, // ml
	models.NutrientSleep:     8.0,  // hours
}

// DefaultMacroTargets is the fallback table used when the dynamic macro
// calculation cannot run (implausible stats). Figures approximate a second
// trimester at average Indonesian stature.
var DefaultMacroTargets = map[models.Nutrient]float64{
	models.NutrientCalories: 2200,
	models.NutrientProtein:  65,
	models.NutrientFat:      73,
	models.NutrientCarbs:    320,
}

var errImplausibleStats = errors.New("age, weight and height must be positive and plausible")

// GestationalWeek returns the completed pregnancy week as of asOf, derived
// from the last-menstrual-period date.
func GestationalWeek(lmpDate, asOf time.Time) int {
	days := int(asOf.Sub(lmpDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days / 7
}

// Trimester maps a gestational week onto 1..3. Weeks <= 13 are trimester 1,
// 14-27 trimester 2, 28 and beyond trimester 3.
func Trimester(week int) int {
	switch {
	case week <= 13:
		return 1
	case week <= 27:
		return 2
	default:
		return 3
	}
}

// CalculateMacroTargets computes the daily calorie/protein/fat/carb targets
// for a pregnant user. It only validates plausibility; a failure here is a
// degradable condition, not a terminal one.
func CalculateMacroTargets(age int, weightKg, heightCm float64, lmpDate, asOf time.Time) (map[models.Nutrient]float64, error) {
	if age <= 0 || age > 60 || weightKg < 30 || weightKg > 200 || heightCm < 120 || heightCm > 220 {
		return nil, errImplausibleStats
	}

	week := GestationalWeek(lmpDate, asOf)
	eer := 354 - 6.91*float64(age) + (9.36*weightKg + 726*(heightCm/100))

	extra := 0.0
	switch Trimester(week) {
	case 2:
		extra = trimester2ExtraCalories
	case 3:
		extra = trimester3ExtraCalories
	}
	totalCalories := eer + extra

	proteinGrams := weightKg * proteinGramsPerKg
	proteinCalories := proteinGrams * 4

	fatCalories := fatCalorieShare * totalCalories
	fatGrams := fatCalories / 9

	carbGrams := (totalCalories - proteinCalories - fatCalories) / 4

	return map[models.Nutrient]float64{
		models.NutrientCalories: totalCalories,
		models.NutrientProtein:  proteinGrams,
		models.NutrientFat:      fatGrams,
		models.NutrientCarbs:    carbGrams,
	}, nil
}

// BuildNutrientTargets merges dynamic macro targets with the static table.
// When the macro calculation fails it substitutes DefaultMacroTargets and
// reports degraded=true so the caller can log it; the run itself continues.
func BuildNutrientTargets(user *models.User, asOf time.Time) (targets map[models.Nutrient]float64, degraded bool) {
	targets = make(map[models.Nutrient]float64, len(models.TrackedNutrients))

	macros, err := CalculateMacroTargets(user.Age, user.Weight, user.Height, *user.LMPDate, asOf)
	if err != nil {
		macros = DefaultMacroTargets
		degraded = true
	}
	for nutrient, amount := range macros {
		targets[nutrient] = amount
	}
	for nutrient, amount := range StaticTargets {
		targets[nutrient] = amount
	}
	return targets, degraded
}

// DueDate is the estimated delivery date, 280 days after the LMP.
func DueDate(lmpDate time.Time) time.Time {
	return lmpDate.AddDate(0, 0, 280)
}
