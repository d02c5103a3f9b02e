package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Yonurhan/MomCare-Final/knowledge"
	"github.com/Yonurhan/MomCare-Final/models"
	"github.com/Yonurhan/MomCare-Final/pkg/logger"
)

const (
	// NoRiskMainFocus is the explicit sentinel for an alert-free week.
	NoRiskMainFocus = "Semua target terpenuhi dengan baik."

	maxWeeklyGoals = 2

	assessmentFailureMessage = "Terjadi kesalahan internal saat memproses asesmen."
)

// AssessmentService runs the weekly assessment. Run itself is a pure
// computation over freshly loaded inputs; the status lifecycle, broadcasting
// and pushing live in PerformAssessmentTask so the engine stays free of
// side effects.
type AssessmentService struct {
	db   *gorm.DB
	kb   *knowledge.Base
	log  *logger.Logger
	hub  *RealtimeHub // optional
	push *PushService // optional
}

func NewAssessmentService(db *gorm.DB, kb *knowledge.Base, log *logger.Logger, hub *RealtimeHub, push *PushService) *AssessmentService {
	return &AssessmentService{db: db, kb: kb, log: log, hub: hub, push: push}
}

// Run executes one assessment for the user as of the given time and returns
// the compiled result. Only a missing user or a missing LMP date abort the
// run; every other problem degrades locally.
func (s *AssessmentService) Run(userID uint, quiz QuizAnswers, asOf time.Time) (*AssessmentResult, error) {
	// 1. user context
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("load user %d: %w", userID, ErrUserNotFound)
		}
		return nil, fmt.Errorf("load user %d: %v", userID, err)
	}
	if user.LMPDate == nil {
		return nil, fmt.Errorf("user %d: %w", userID, ErrInsufficientData)
	}
	prefs := user.ParsedPreferences()
	health := user.ParsedHealthProfile()

	// 2. targets (macro sub-step may degrade, never aborts)
	targets, degraded := BuildNutrientTargets(&user, asOf)
	if degraded {
		s.log.Warnw("macro target calculation degraded, using default table",
			"user_id", userID, "age", user.Age, "weight", user.Weight, "height", user.Height)
	}

	// 3. trailing-window logs
	windowEnd := dayEnd(asOf)
	windowStart := dayStart(asOf).AddDate(0, 0, -WindowDays)
	var logs []models.DailyNutritionLog
	if err := s.db.
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, windowStart, windowEnd).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("load nutrition logs: %v", err)
	}
	metrics := AggregateLogs(logs, targets)

	// 4. history (best-effort)
	weekStart := models.WeekStartFor(asOf)
	history := LoadAssessmentHistory(s.db, s.log, userID, weekStart)

	// 5. scoring: nutrients first, then symptoms, insertion order preserved
	planner := NewMealPlanner(s.kb, prefs)
	scorer := NewRiskScorer(s.kb, planner, targets, metrics, history, health)
	alerts := scorer.ScoreNutrients()
	alerts = append(alerts, scorer.ScoreSymptoms(quiz.GeneralSymptoms)...)

	// 6. rank (stable: ties keep insertion order)
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].RiskScore > alerts[j].RiskScore
	})

	// 7. goals
	goals := deriveWeeklyGoals(alerts)

	// 8. trimester echo
	week := GestationalWeek(*user.LMPDate, asOf)

	// 9. compile
	mealPlan := planner.GeneratePlan(deficientNutrients(metrics, targets))

	overview := RiskOverview{HighestRiskScore: 0, MainFocus: NoRiskMainFocus}
	if len(alerts) > 0 {
		overview = RiskOverview{HighestRiskScore: alerts[0].RiskScore, MainFocus: alerts[0].Title}
	}

	return &AssessmentResult{
		RiskOverview: overview,
		WeeklyGoals:  goals,
		MealPlanIdea: mealPlan,
		Alerts:       alerts,
		UserContext: UserContextEcho{
			Trimester:       fmt.Sprintf("trimester_%d", Trimester(week)),
			GestationalWeek: week,
			Preferences:     prefs,
			HealthProfile:   health,
		},
	}, nil
}

// deficientNutrients lists every tracked, targeted nutrient below the
// completed-days threshold, in tracked order.
func deficientNutrients(metrics Metrics, targets map[models.Nutrient]float64) []models.Nutrient {
	var deficient []models.Nutrient
	for _, nutrient := range models.TrackedNutrients {
		if _, ok := targets[nutrient]; !ok {
			continue
		}
		if metrics.DaysCompleted[nutrient] < DeficientDayThreshold {
			deficient = append(deficient, nutrient)
		}
	}
	return deficient
}

// deriveWeeklyGoals turns the top-ranked alerts into at most two prioritized
// goals. Alerts without a derivable description are passed over without
// consuming a priority slot.
func deriveWeeklyGoals(alerts []Alert) []Goal {
	goals := []Goal{}
	for _, alert := range alerts {
		if len(goals) == maxWeeklyGoals {
			break
		}
		var description string
		switch alert.Category {
		case CategoryNutrition:
			description = fmt.Sprintf(
				"Fokus untuk mencoba 2-3 rekomendasi makanan kaya %s dan catat asupan Anda setiap hari.",
				alert.NutrientKey.DisplayName())
		case CategorySymptomManagement:
			description = "Pilih dan terapkan 2 tips gaya hidup yang kami sarankan untuk mengurangi gejala ini."
		}
		if description == "" || alert.Title == "" {
			continue
		}
		priority := len(goals) + 1
		goals = append(goals, Goal{
			Priority:          priority,
			Title:             fmt.Sprintf("Prioritas #%d: %s", priority, strings.Replace(alert.Title, "Perhatian pada Asupan", "Meningkatkan Asupan", 1)),
			Description:       description,
			RelatedAlertTitle: alert.Title,
		})
	}
	return goals
}

// PerformAssessmentTask is the background body launched by the controller
// after the record was created with status "processing". It always leaves
// the record in a terminal state; there are no retries.
func (s *AssessmentService) PerformAssessmentTask(assessmentID uint) {
	var assessment models.WeeklyAssessment
	if err := s.db.First(&assessment, assessmentID).Error; err != nil {
		s.log.Warnw("assessment task started but record not found", "assessment_id", assessmentID, "error", err)
		return
	}

	var quiz QuizAnswers
	if len(assessment.QuizAnswers) > 0 {
		if err := json.Unmarshal(assessment.QuizAnswers, &quiz); err != nil {
			s.log.Warnw("unreadable quiz answers, assessing without symptoms", "assessment_id", assessmentID, "error", err)
		}
	}

	result, err := s.Run(assessment.UserID, quiz, time.Now())
	if err == nil {
		var payload []byte
		payload, err = json.Marshal(result)
		if err == nil {
			assessment.Results = payload
			assessment.Status = models.AssessmentStatusCompleted
			assessment.HasCriticalAlert = hasDangerAlert(result.Alerts)
		}
	}
	if err != nil {
		s.log.Errorw("assessment failed", "assessment_id", assessmentID, "user_id", assessment.UserID, "error", err)
		payload, _ := json.Marshal(map[string]string{"error": assessmentFailureMessage})
		assessment.Results = payload
		assessment.Status = models.AssessmentStatusFailed
		assessment.HasCriticalAlert = false
	}

	if err := s.db.Save(&assessment).Error; err != nil {
		s.log.Errorw("failed to persist assessment result", "assessment_id", assessmentID, "error", err)
		return
	}
	s.notify(&assessment)
}

func hasDangerAlert(alerts []Alert) bool {
	for _, a := range alerts {
		if a.Level == LevelDanger {
			return true
		}
	}
	return false
}

// notify fans the terminal status out to the realtime hub and, for critical
// results, to the user's push devices. Both deps are optional.
func (s *AssessmentService) notify(assessment *models.WeeklyAssessment) {
	if s.hub != nil {
		s.hub.BroadcastToUser(assessment.UserID, map[string]any{
			"kind":          "assessment." + assessment.Status,
			"assessment_id": assessment.ID,
			"critical":      assessment.HasCriticalAlert,
		})
	}
	if s.push != nil && assessment.HasCriticalAlert {
		s.push.PushToUser(assessment.UserID,
			"Hasil Asesmen Mingguan",
			"Asesmen minggu ini menemukan risiko yang perlu perhatian Anda.",
			map[string]string{"assessment_id": fmt.Sprintf("%d", assessment.ID)},
		)
	}
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
