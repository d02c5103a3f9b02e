package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Yonurhan/MomCare-Final/models"
	"github.com/Yonurhan/MomCare-Final/services"
)

type AssessmentController struct {
	db  *gorm.DB
	svc *services.AssessmentService
}

func NewAssessmentController(db *gorm.DB, svc *services.AssessmentService) *AssessmentController {
	return &AssessmentController{db: db, svc: svc}
}

// Perform starts the weekly assessment for the current week. At most one
// record per user per week: a second call answers 409 with the existing
// record's status, whatever state it is in.
func (ac *AssessmentController) Perform(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		return
	}

	var quiz services.QuizAnswers
	if err := c.ShouldBindJSON(&quiz); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	weekStart := models.WeekStartFor(time.Now())

	var existing models.WeeklyAssessment
	err := ac.db.Where("user_id = ? AND week_start_date = ?", userID, weekStart).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":         "Asesmen untuk minggu ini sudah ada.",
			"assessment_id": existing.ID,
			"status":        existing.Status,
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check existing assessment"})
		return
	}

	rawQuiz, err := json.Marshal(quiz)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz answers"})
		return
	}

	assessment := models.WeeklyAssessment{
		UserID:        userID,
		WeekStartDate: weekStart,
		QuizAnswers:   rawQuiz,
		Status:        models.AssessmentStatusProcessing,
	}
	if err := ac.db.Create(&assessment).Error; err != nil {
		// Lost the race against a concurrent request; the unique index on
		// (user_id, week_start_date) caught it.
		c.JSON(http.StatusConflict, gin.H{"error": "Asesmen untuk minggu ini sudah ada."})
		return
	}

	go ac.svc.PerformAssessmentTask(assessment.ID)

	c.JSON(http.StatusAccepted, gin.H{
		"assessment_id": assessment.ID,
		"status":        assessment.Status,
		"message":       "Asesmen sedang diproses.",
	})
}

// Status answers the lifecycle state of the current week's assessment.
func (ac *AssessmentController) Status(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		return
	}

	weekStart := models.WeekStartFor(time.Now())
	var assessment models.WeeklyAssessment
	err := ac.db.Where("user_id = ? AND week_start_date = ?", userID, weekStart).First(&assessment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no assessment for this week"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load assessment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assessment_id":      assessment.ID,
		"week_start_date":    assessment.WeekStartDate.Format("2006-01-02"),
		"status":             assessment.Status,
		"has_critical_alert": assessment.HasCriticalAlert,
	})
}

// Result returns the compiled result once the run reaches a terminal state.
// While processing it answers 202 so clients can keep polling.
func (ac *AssessmentController) Result(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		return
	}

	var assessment models.WeeklyAssessment
	err := ac.db.Where("user_id = ? AND id = ?", userID, c.Param("id")).First(&assessment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load assessment"})
		return
	}

	switch assessment.Status {
	case models.AssessmentStatusProcessing:
		c.JSON(http.StatusAccepted, gin.H{"status": assessment.Status, "message": "Asesmen masih diproses."})
	case models.AssessmentStatusFailed:
		c.JSON(http.StatusInternalServerError, gin.H{"status": assessment.Status, "result": json.RawMessage(assessment.Results)})
	default:
		c.JSON(http.StatusOK, gin.H{
			"status":             assessment.Status,
			"has_critical_alert": assessment.HasCriticalAlert,
			"result":             json.RawMessage(assessment.Results),
		})
	}
}

// History lists the user's past assessments, newest first.
func (ac *AssessmentController) History(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		return
	}

	var assessments []models.WeeklyAssessment
	if err := ac.db.
		Where("user_id = ?", userID).
		Order("week_start_date DESC").
		Limit(12).
		Find(&assessments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	items := make([]gin.H, 0, len(assessments))
	for _, a := range assessments {
		items = append(items, gin.H{
			"assessment_id":      a.ID,
			"week_start_date":    a.WeekStartDate.Format("2006-01-02"),
			"status":             a.Status,
			"has_critical_alert": a.HasCriticalAlert,
		})
	}
	c.JSON(http.StatusOK, gin.H{"assessments": items})
}
