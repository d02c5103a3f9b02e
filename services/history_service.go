package services

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/Yonurhan/MomCare-Final/models"
	"github.com/Yonurhan/MomCare-Final/pkg/logger"
)

const (
	// HistoryLookbackWeeks bounds how far back recurrence analysis looks.
	HistoryLookbackWeeks = 4
	// HistoryMaxRecords caps how many prior results feed one run.
	HistoryMaxRecords = 3
)

// LoadAssessmentHistory returns the results payloads of the user's most
// recent completed assessments before the current period, newest first.
// Loading is best-effort: rows with empty or unreadable payloads are skipped
// and a query failure yields an empty history, never a failed run.
func LoadAssessmentHistory(db *gorm.DB, log *logger.Logger, userID uint, weekStart time.Time) []AssessmentResult {
	lookbackStart := weekStart.AddDate(0, 0, -HistoryLookbackWeeks*7)

	var rows []models.WeeklyAssessment
	err := db.
		Where("user_id = ? AND week_start_date >= ? AND week_start_date < ? AND status = ?",
			userID, lookbackStart, weekStart, models.AssessmentStatusCompleted).
		Order("week_start_date DESC").
		Limit(HistoryMaxRecords).
		Find(&rows).Error
	if err != nil {
		log.Warnw("history query failed, continuing without history", "user_id", userID, "error", err)
		return nil
	}

	history := make([]AssessmentResult, 0, len(rows))
	for i := range rows {
		if len(rows[i].Results) == 0 {
			continue
		}
		var result AssessmentResult
		if err := json.Unmarshal(rows[i].Results, &result); err != nil {
			log.Warnw("skipping malformed historical result", "assessment_id", rows[i].ID, "error", err)
			continue
		}
		history = append(history, result)
	}
	return history
}
