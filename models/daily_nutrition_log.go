package models

import (
	"time"

	"gorm.io/gorm"
)

// DailyNutritionLog is one row per user per calendar date with the amounts
// accumulated that day. The logging endpoints sum repeated submissions into
// the same row, but the aggregator re-sums per date anyway and tolerates
// duplicates.
type DailyNutritionLog struct {
	gorm.Model
	UserID uint      `gorm:"index;not null"`
	Date   time.Time `gorm:"index;not null"`

	DailyCalories  float64 `gorm:"not null;default:0"`
	DailyProtein   float64 `gorm:"not null;default:0"`
	DailyFat       float64 `gorm:"not null;default:0"`
	DailyCarbs     float64 `gorm:"not null;default:0"`
	DailyFolicAcid float64 `gorm:"not null;default:0"`
	DailyIron      float64 `gorm:"not null;default:0"`
	DailyCalcium   float64 `gorm:"not null;default:0"`
	DailyZinc      float64 `gorm:"not null;default:0"`
	DailyWater     float64 `gorm:"not null;default:0"`
	DailySleep     float64 `gorm:"not null;default:0"`
}

// Values maps the row's columns onto the nutrient enum.
func (l *DailyNutritionLog) Values() map[Nutrient]float64 {
	return map[Nutrient]float64{
		NutrientCalories:  l.DailyCalories,
		NutrientProtein:   l.DailyProtein,
		NutrientFat:       l.DailyFat,
		NutrientCarbs:     l.DailyCarbs,
		NutrientFolicAcid: l.DailyFolicAcid,
		NutrientIron:      l.DailyIron,
		NutrientCalcium:   l.DailyCalcium,
		NutrientZinc:      l.DailyZinc,
		NutrientWater:     l.DailyWater,
		NutrientSleep:     l.DailySleep,
	}
}

// Add accumulates another submission into the row. Water and sleep overwrite
// rather than add: the client reports them as running totals for the day.
func (l *DailyNutritionLog) Add(other *DailyNutritionLog) {
	l.DailyCalories += other.DailyCalories
	l.DailyProtein += other.DailyProtein
	l.DailyFat += other.DailyFat
	l.DailyCarbs += other.DailyCarbs
	l.DailyFolicAcid += other.DailyFolicAcid
	l.DailyIron += other.DailyIron
	l.DailyCalcium += other.DailyCalcium
	l.DailyZinc += other.DailyZinc
	if other.DailyWater > 0 {
		l.DailyWater = other.DailyWater
	}
	if other.DailySleep > 0 {
		l.DailySleep = other.DailySleep
	}
}
