package services

import (
	"github.com/Yonurhan/MomCare-Final/knowledge"
	"github.com/Yonurhan/MomCare-Final/models"
)

type AlertLevel string

const (
	LevelInfo    AlertLevel = "INFO"
	LevelWarning AlertLevel = "WARNING"
	LevelDanger  AlertLevel = "DANGER"
)

type AlertCategory string

const (
	CategoryNutrition         AlertCategory = "nutrition"
	CategorySymptomManagement AlertCategory = "symptom_management"
)

// Alert is one ranked finding of a run. Immutable once created; the full
// list is sorted by RiskScore before it reaches the result.
type Alert struct {
	RiskScore       float64                        `json:"risk_score"`
	Level           AlertLevel                     `json:"level"`
	Title           string                         `json:"title"`
	Message         string                         `json:"message"`
	Category        AlertCategory                  `json:"category"`
	NutrientKey     models.Nutrient                `json:"nutrient_key,omitempty"`
	Recommendations []knowledge.RecommendationItem `json:"recommendations"`
	LifestyleTips   []string                       `json:"lifestyle_tips"`
}

// Goal is a prioritized weekly focus derived from the top alerts.
type Goal struct {
	Priority          int    `json:"priority"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	RelatedAlertTitle string `json:"related_alert_title"`
}

type RiskOverview struct {
	HighestRiskScore float64 `json:"highest_risk_score"`
	MainFocus        string  `json:"main_focus"`
}

// UserContextEcho is the slice of user context echoed back in the result so
// the client can render the assessment without a second profile fetch.
type UserContextEcho struct {
	Trimester       string               `json:"trimester"`
	GestationalWeek int                  `json:"gestational_week"`
	Preferences     models.Preferences   `json:"preferences"`
	HealthProfile   models.HealthProfile `json:"health_profile"`
}

// AssessmentResult is the sole externally visible artifact of a run. Prior
// runs' results are read back in this same shape for recurrence analysis.
type AssessmentResult struct {
	RiskOverview RiskOverview    `json:"risk_overview"`
	WeeklyGoals  []Goal          `json:"weekly_goals"`
	MealPlanIdea MealPlan        `json:"meal_plan_idea"`
	Alerts       []Alert         `json:"alerts"`
	UserContext  UserContextEcho `json:"user_context"`
}

// QuizAnswers is the weekly questionnaire payload submitted with a run.
type QuizAnswers struct {
	GeneralSymptoms []string `json:"general_symptoms"`
	Mood            string   `json:"mood,omitempty"`
}
