package services

import (
	"fmt"
	"strings"

	"github.com/Yonurhan/MomCare-Final/knowledge"
	"github.com/Yonurhan/MomCare-Final/models"
)

// Scoring constants. Nutrient alerts top out at WARNING while symptom alerts
// can reach DANGER; the asymmetry is intentional product behaviour.
const (
	// DeficientDayThreshold: a nutrient with fewer completed days than this
	// (out of WindowDays) is deficient.
	DeficientDayThreshold = 5

	// MinAlertScore: nutrient scores below this are negligible and produce
	// no alert.
	MinAlertScore = 15.0

	// NutrientWarningThreshold: nutrient scores above this are WARNING,
	// everything else INFO.
	NutrientWarningThreshold = 35.0

	nutrientBaseScoreCap = 40.0

	recurrenceRepeatMultiplier = 1.5 // seen in >= 2 prior assessments
	recurrenceSingleMultiplier = 1.2 // seen in exactly 1

	anemiaIronMultiplier  = 2.0
	calciumAgeMultiplier  = 1.1
	calciumAgeCutoffYears = 35

	// SymptomDeficiencyMultiplier compounds once per deficient related
	// nutrient.
	SymptomDeficiencyMultiplier = 1.25

	SymptomDangerThreshold  = 75.0
	SymptomWarningThreshold = 50.0

	defaultSymptomBaseScore = 30.0
)

// symptomBaseScores carries the hard-coded per-symptom base scores. Fatigue
// is deliberately weighted far above the rest; keep this a table, the
// asymmetry is product-defined and must not be derived.
var symptomBaseScores = map[string]float64{
	"kelelahan": 67.5,
}

// RiskScorer computes the alert list for one run. It is constructed per run
// and reads only the immutable inputs it was built with, so scoring the same
// inputs twice yields the same alerts in the same order.
type RiskScorer struct {
	kb      *knowledge.Base
	planner *MealPlanner
	targets map[models.Nutrient]float64
	metrics Metrics
	history []AssessmentResult
	health  models.HealthProfile
}

func NewRiskScorer(
	kb *knowledge.Base,
	planner *MealPlanner,
	targets map[models.Nutrient]float64,
	metrics Metrics,
	history []AssessmentResult,
	health models.HealthProfile,
) *RiskScorer {
	return &RiskScorer{
		kb:      kb,
		planner: planner,
		targets: targets,
		metrics: metrics,
		history: history,
		health:  health,
	}
}

// ScoreNutrients walks the tracked nutrients in fixed order and emits an
// alert for every deficient, non-negligible one.
func (s *RiskScorer) ScoreNutrients() []Alert {
	var alerts []Alert
	for _, nutrient := range models.TrackedNutrients {
		target, hasTarget := s.targets[nutrient]
		if !hasTarget {
			continue // untargeted nutrients are skipped, not fatal
		}
		days, tracked := s.metrics.DaysCompleted[nutrient]
		if !tracked || days >= DeficientDayThreshold {
			continue
		}
		if alert, ok := s.scoreNutrient(nutrient, days, target); ok {
			alerts = append(alerts, alert)
		}
	}
	return alerts
}

func (s *RiskScorer) scoreNutrient(nutrient models.Nutrient, daysCompleted int, target float64) (Alert, bool) {
	score := (1 - float64(daysCompleted)/float64(WindowDays)) * nutrientBaseScoreCap

	switch s.recurrenceCount(nutrient) {
	case 0:
	case 1:
		score *= recurrenceSingleMultiplier
	default:
		score *= recurrenceRepeatMultiplier
	}

	if nutrient == models.NutrientIron && s.health.HasCondition("anemia") {
		score *= anemiaIronMultiplier
	}
	if nutrient == models.NutrientCalcium && s.health.Age > calciumAgeCutoffYears {
		score *= calciumAgeMultiplier
	}

	if score < MinAlertScore {
		return Alert{}, false
	}

	level := LevelInfo
	if score > NutrientWarningThreshold {
		level = LevelWarning
	}

	average := s.metrics.WeeklyAverages[nutrient]
	display := nutrient.DisplayName()
	message := fmt.Sprintf(
		"Asupan %s Anda belum konsisten (%d/%d hari). Rata-rata asupan Anda ~%.1f dari target harian %.1f.",
		display, daysCompleted, WindowDays, average, target,
	)

	recommendations := s.planner.FilterRecommendations(nutrient)
	if len(recommendations) == 0 {
		recommendations = []knowledge.RecommendationItem{{
			Type: knowledge.ItemInfo,
			Text: fmt.Sprintf("Konsultasikan asupan %s Anda dengan tenaga kesehatan untuk saran yang sesuai.", display),
		}}
	}

	return Alert{
		RiskScore:       score,
		Level:           level,
		Title:           fmt.Sprintf("Perhatian pada Asupan %s", display),
		Message:         message,
		Category:        CategoryNutrition,
		NutrientKey:     nutrient,
		Recommendations: recommendations,
		LifestyleTips:   []string{},
	}, true
}

// recurrenceCount counts prior assessments (at most one hit each) containing
// a WARNING nutrition alert whose title names this nutrient.
func (s *RiskScorer) recurrenceCount(nutrient models.Nutrient) int {
	needle := strings.ToLower(nutrient.DisplayName())
	count := 0
	for _, past := range s.history {
		for _, pastAlert := range past.Alerts {
			if pastAlert.Category == CategoryNutrition &&
				pastAlert.Level == LevelWarning &&
				strings.Contains(strings.ToLower(pastAlert.Title), needle) {
				count++
				break // one hit per historical result
			}
		}
	}
	return count
}

// ScoreSymptoms emits an alert per reported symptom known to the knowledge
// base, in reported order. Unknown symptoms are ignored.
func (s *RiskScorer) ScoreSymptoms(symptoms []string) []Alert {
	var alerts []Alert
	for _, symptom := range symptoms {
		profile, known := s.kb.SymptomProfileFor(symptom)
		if !known {
			continue
		}
		alerts = append(alerts, s.scoreSymptom(symptom, profile))
	}
	return alerts
}

func (s *RiskScorer) scoreSymptom(symptom string, profile knowledge.SymptomProfile) Alert {
	score := defaultSymptomBaseScore
	if base, ok := symptomBaseScores[strings.ToLower(strings.TrimSpace(symptom))]; ok {
		score = base
	}

	var deficient []string
	for _, nutrient := range profile.RelatedNutrients {
		if days, tracked := s.metrics.DaysCompleted[nutrient]; tracked && days < DeficientDayThreshold {
			score *= SymptomDeficiencyMultiplier
			deficient = append(deficient, nutrient.DisplayName())
		}
	}

	level := LevelInfo
	switch {
	case score >= SymptomDangerThreshold:
		level = LevelDanger
	case score >= SymptomWarningThreshold:
		level = LevelWarning
	}

	title := fmt.Sprintf("Tips Mengelola %s", titleCase(symptom))
	message := fmt.Sprintf("Untuk membantu mengelola %s, beberapa tips gaya hidup dan nutrisi bisa dicoba.", symptom)
	if len(deficient) > 0 {
		message += fmt.Sprintf(" Gejala ini bisa berkaitan dengan asupan %s yang belum konsisten.", strings.Join(deficient, ", "))
	}

	recommendations := make([]knowledge.RecommendationItem, 0, len(profile.LifestyleTips))
	for _, tip := range profile.LifestyleTips {
		recommendations = append(recommendations, knowledge.RecommendationItem{Type: knowledge.ItemTip, Text: tip})
	}

	return Alert{
		RiskScore:       score,
		Level:           level,
		Title:           title,
		Message:         message,
		Category:        CategorySymptomManagement,
		Recommendations: recommendations,
		LifestyleTips:   append([]string(nil), profile.LifestyleTips...),
	}
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
