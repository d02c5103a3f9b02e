package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	AssessmentStatusProcessing = "processing"
	AssessmentStatusCompleted  = "completed"
	AssessmentStatusFailed     = "failed"
)

// WeeklyAssessment is the persisted record of one engine run. The unique
// index on (user_id, week_start_date) is the backstop for the
// one-run-per-user-per-week rule; the controller also checks before insert.
type WeeklyAssessment struct {
	gorm.Model
	UserID        uint      `gorm:"not null;uniqueIndex:idx_user_week"`
	WeekStartDate time.Time `gorm:"not null;uniqueIndex:idx_user_week"`

	QuizAnswers []byte `gorm:"type:jsonb"`
	Results     []byte `gorm:"type:jsonb"`

	Status           string `gorm:"size:20;not null;default:processing"`
	HasCriticalAlert bool   `gorm:"not null;default:false"`
}

// WeekStartFor returns the Monday of the week containing t, at local
// midnight. Assessment periods are keyed on this date.
func WeekStartFor(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -(wd - 1))
}
