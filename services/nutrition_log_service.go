package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Yonurhan/MomCare-Final/models"
)

// LogInput carries one submission of daily amounts. Repeated submissions for
// the same day accumulate into a single row.
type LogInput struct {
	Calories  float64 `json:"daily_calories"`
	Protein   float64 `json:"daily_protein"`
	Fat       float64 `json:"daily_fat"`
	Carbs     float64 `json:"daily_carbs"`
	FolicAcid float64 `json:"daily_folic_acid"`
	Iron      float64 `json:"daily_iron"`
	Calcium   float64 `json:"daily_calcium"`
	Zinc      float64 `json:"daily_zinc"`
	Water     float64 `json:"daily_water"`
	Sleep     float64 `json:"daily_sleep"`
}

func (in LogInput) toLog() *models.DailyNutritionLog {
	return &models.DailyNutritionLog{
		DailyCalories:  in.Calories,
		DailyProtein:   in.Protein,
		DailyFat:       in.Fat,
		DailyCarbs:     in.Carbs,
		DailyFolicAcid: in.FolicAcid,
		DailyIron:      in.Iron,
		DailyCalcium:   in.Calcium,
		DailyZinc:      in.Zinc,
		DailyWater:     in.Water,
		DailySleep:     in.Sleep,
	}
}

// UpsertDailyLog folds a submission into the user's row for the given date.
func UpsertDailyLog(db *gorm.DB, userID uint, date time.Time, input LogInput) (*models.DailyNutritionLog, error) {
	day := dayStart(date)

	var row models.DailyNutritionLog
	err := db.Where("user_id = ? AND date = ?", userID, day).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.DailyNutritionLog{UserID: userID, Date: day}
		row.Add(input.toLog())
		if err := db.Create(&row).Error; err != nil {
			return nil, err
		}
		return &row, nil
	}
	if err != nil {
		return nil, err
	}

	row.Add(input.toLog())
	if err := db.Save(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// GetDailyLog returns the user's row for the date, or a zeroed row when
// nothing was logged.
func GetDailyLog(db *gorm.DB, userID uint, date time.Time) (*models.DailyNutritionLog, error) {
	day := dayStart(date)

	var row models.DailyNutritionLog
	err := db.Where("user_id = ? AND date = ?", userID, day).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.DailyNutritionLog{UserID: userID, Date: day}, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// DailySummary pairs today's consumption with the user's targets, including
// the static water/sleep figures.
func DailySummary(db *gorm.DB, userID uint, date time.Time) (map[string]interface{}, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	if user.LMPDate == nil {
		return nil, ErrInsufficientData
	}

	targets, _ := BuildNutrientTargets(&user, date)

	row, err := GetDailyLog(db, userID, date)
	if err != nil {
		return nil, err
	}

	goal := map[string]float64{}
	consumed := map[string]float64{}
	values := row.Values()
	for _, nutrient := range models.TrackedNutrients {
		goal[string(nutrient)] = targets[nutrient]
		consumed[string(nutrient)] = values[nutrient]
	}

	return map[string]interface{}{
		"date":     dayStart(date).Format("2006-01-02"),
		"goal":     goal,
		"consumed": consumed,
	}, nil
}
