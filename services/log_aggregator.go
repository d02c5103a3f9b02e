package services

import (
	"time"

	"github.com/Yonurhan/MomCare-Final/models"
)

const (
	// WindowDays is the trailing log window one assessment looks at.
	WindowDays = 7

	// CompletionFraction is the share of the daily target that makes a day
	// count as completed. Older revisions of the product used 0.8; the
	// current behaviour requires the full target.
	CompletionFraction = 1.0
)

// Metrics is the per-run aggregate the scorer consumes: how many days in the
// window met each target, and the average logged amount per log-day.
type Metrics struct {
	DaysCompleted  map[models.Nutrient]int
	WeeklyAverages map[models.Nutrient]float64
}

// AggregateLogs collapses the window's log rows into Metrics. Rows sharing a
// calendar date are summed per nutrient before the target comparison, so
// duplicate rows upstream cannot inflate completed-day counts. With no rows
// at all every count and average is zero, which downstream treats as maximal
// deficiency rather than an error.
func AggregateLogs(logs []models.DailyNutritionLog, targets map[models.Nutrient]float64) Metrics {
	metrics := Metrics{
		DaysCompleted:  make(map[models.Nutrient]int, len(targets)),
		WeeklyAverages: make(map[models.Nutrient]float64, len(targets)),
	}
	for nutrient := range targets {
		metrics.DaysCompleted[nutrient] = 0
		metrics.WeeklyAverages[nutrient] = 0
	}
	if len(logs) == 0 {
		return metrics
	}

	dayTotals := map[string]map[models.Nutrient]float64{}
	weeklyTotals := map[models.Nutrient]float64{}
	for i := range logs {
		day := dayKey(logs[i].Date)
		bucket := dayTotals[day]
		if bucket == nil {
			bucket = make(map[models.Nutrient]float64, len(targets))
			dayTotals[day] = bucket
		}
		for nutrient, value := range logs[i].Values() {
			if _, tracked := targets[nutrient]; !tracked {
				continue
			}
			bucket[nutrient] += value
			weeklyTotals[nutrient] += value
		}
	}

	for _, bucket := range dayTotals {
		for nutrient, total := range bucket {
			if total >= targets[nutrient]*CompletionFraction {
				metrics.DaysCompleted[nutrient]++
			}
		}
	}

	logDays := float64(len(dayTotals))
	for nutrient, total := range weeklyTotals {
		metrics.WeeklyAverages[nutrient] = total / logDays
	}
	return metrics
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
