package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Yonurhan/MomCare-Final/knowledge"
	"github.com/Yonurhan/MomCare-Final/models"
)

// MealPlan is the concrete suggestion attached to a result. A plan that
// reaches the caller never has an empty meal slot: either every slot was
// filled from the knowledge base or the whole plan is the general default.
type MealPlan struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
	Snacks    string `json:"snacks"`
	Notes     string `json:"notes,omitempty"`
}

const genericBreakfast = "Bubur ayam atau roti gandum dengan telur sebagai sumber energi pagi."

// DefaultMealPlan is the non-personalized plan used when there is nothing to
// optimize for, or when the greedy pass cannot fill every slot.
func DefaultMealPlan() MealPlan {
	return MealPlan{
		Breakfast: "Oatmeal dengan pisang dan segelas susu.",
		Lunch:     "Nasi merah, ayam panggang, dan tumis bayam.",
		Dinner:    "Ikan kukus, tahu, dan sup sayuran.",
		Snacks:    "Buah potong, kacang almond (1 genggam).",
		Notes:     "Menu umum seimbang untuk ibu hamil. Sesuaikan porsi dengan rasa lapar Anda.",
	}
}

// MealPlanner filters knowledge-base entries against one user's dietary
// preferences and assembles meal suggestions for their deficient nutrients.
type MealPlanner struct {
	kb    *knowledge.Base
	prefs models.Preferences
}

func NewMealPlanner(kb *knowledge.Base, prefs models.Preferences) *MealPlanner {
	return &MealPlanner{kb: kb, prefs: prefs}
}

// FilterRecommendations returns the nutrient's knowledge-base entries with
// foods the user cannot or will not eat removed. Tip and info entries always
// pass through untouched.
func (p *MealPlanner) FilterRecommendations(nutrient models.Nutrient) []knowledge.RecommendationItem {
	items := p.kb.RecommendationsFor(nutrient)
	filtered := make([]knowledge.RecommendationItem, 0, len(items))
	for _, item := range items {
		if item.Type != knowledge.ItemFood {
			filtered = append(filtered, item)
			continue
		}
		if p.prefs.Dislikes(item.Food) {
			continue
		}
		switch p.prefs.Dietary {
		case models.DietVegetarian:
			if item.HasTag("non-veg") {
				continue
			}
		case models.DietVegan:
			if item.HasTag("non-veg") || item.HasTag("dairy") || item.HasTag("egg") {
				continue
			}
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// GeneratePlan builds a personalized plan for the deficient nutrients using
// a coverage-greedy pick: foods covering more deficient nutrients win, ties
// broken by first appearance so identical inputs always produce the same
// plan. Any unfillable meal slot collapses the whole plan to the default.
func (p *MealPlanner) GeneratePlan(deficient []models.Nutrient) MealPlan {
	if len(deficient) == 0 {
		return DefaultMealPlan()
	}

	type scoredFood struct {
		item  knowledge.RecommendationItem
		score int
	}
	var order []string // first-seen food names
	foods := map[string]*scoredFood{}
	var notes []string

	for _, nutrient := range deficient {
		for _, item := range p.FilterRecommendations(nutrient) {
			switch item.Type {
			case knowledge.ItemInfo:
				notes = append(notes, item.Text)
			case knowledge.ItemFood:
				entry := foods[item.Food]
				if entry == nil {
					entry = &scoredFood{item: item}
					foods[item.Food] = entry
					order = append(order, item.Food)
				}
				entry.score++
			}
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return foods[order[i]].score > foods[order[j]].score
	})

	plan := MealPlan{}
	used := map[string]bool{}

	displayNames := make([]string, 0, len(deficient))
	for _, nutrient := range deficient {
		displayNames = append(displayNames, nutrient.DisplayName())
	}

	if len(order) > 0 {
		lunch := foods[order[0]].item
		plan.Lunch = fmt.Sprintf("%s (%s) - Baik untuk %s.", lunch.Food, lunch.ServingSize, strings.Join(displayNames, " & "))
		used[lunch.Food] = true
	}
	if len(order) > 1 {
		dinner := foods[order[1]].item
		plan.Dinner = fmt.Sprintf("%s (%s).", dinner.Food, dinner.ServingSize)
		used[dinner.Food] = true
	}

	plan.Breakfast = genericBreakfast
	for _, item := range p.FilterRecommendations(models.NutrientCarbs) {
		if item.Type == knowledge.ItemFood && !used[item.Food] {
			plan.Breakfast = fmt.Sprintf("%s (%s) untuk energi pagi.", item.Food, item.ServingSize)
			used[item.Food] = true
			break
		}
	}

	var snacks []string
	for _, nutrient := range []models.Nutrient{models.NutrientCalories, models.NutrientProtein} {
		for _, item := range p.FilterRecommendations(nutrient) {
			if len(snacks) == 2 {
				break
			}
			if item.Type == knowledge.ItemFood && !used[item.Food] {
				snacks = append(snacks, fmt.Sprintf("%s (%s)", item.Food, item.ServingSize))
				used[item.Food] = true
			}
		}
	}
	plan.Snacks = strings.Join(snacks, ", ")
	plan.Notes = strings.Join(notes, " ")

	// All-or-nothing: a partially personalized plan never reaches the caller.
	if plan.Breakfast == "" || plan.Lunch == "" || plan.Dinner == "" || plan.Snacks == "" {
		return DefaultMealPlan()
	}
	return plan
}
