package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Yonurhan/MomCare-Final/models"
	"github.com/Yonurhan/MomCare-Final/services"
)

type NutritionController struct {
	db *gorm.DB
}

func NewNutritionController(db *gorm.DB) *NutritionController {
	return &NutritionController{db: db}
}

// dateParam reads an optional ?date=YYYY-MM-DD query, defaulting to today.
func dateParam(c *gin.Context) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}

// LogIntake folds a submission into today's log row.
func (nc *NutritionController) LogIntake(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		return
	}

	var input services.LogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := dateParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	row, err := services.UpsertDailyLog(nc.db, userID, date, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save log"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Log harian tersimpan.", "log": row})
}

// TodayLog returns the log row for the requested date, zeroed when absent.
func (nc *NutritionController) TodayLog(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		return
	}

	date, err := dateParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	row, err := services.GetDailyLog(nc.db, userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load log"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// Goal returns the user's current daily targets for every tracked nutrient.
func (nc *NutritionController) Goal(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		return
	}

	var user models.User
	if err := nc.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if user.LMPDate == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "lmp_date not set"})
		return
	}

	targets, _ := services.BuildNutrientTargets(&user, time.Now())
	goal := map[string]float64{}
	for _, nutrient := range models.TrackedNutrients {
		goal[string(nutrient)] = targets[nutrient]
	}
	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// Summary pairs the day's consumption with the targets.
func (nc *NutritionController) Summary(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		return
	}

	date, err := dateParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	summary, err := services.DailySummary(nc.db, userID, date)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, services.ErrInsufficientData):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "lmp_date not set"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary"})
		}
		return
	}
	c.JSON(http.StatusOK, summary)
}
