package models

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username string `gorm:"size:50;uniqueIndex;not null"`
	Email    string `gorm:"size:100;uniqueIndex;not null"`
	Password string `gorm:"size:255;not null"`

	Age    int     `gorm:"not null"`
	Height float64 `gorm:"not null"` // cm
	Weight float64 `gorm:"not null"` // kg

	// LMPDate is the last-menstrual-period date every gestational calculation
	// hangs off. Nullable: a user may register before filling it in.
	LMPDate *time.Time

	IsAdmin bool `gorm:"default:false"`

	// Raw JSON blobs, shaped by Preferences / HealthProfile below.
	Preferences   []byte `gorm:"type:jsonb"`
	HealthProfile []byte `gorm:"type:jsonb"`

	MFAEnabled    bool
	MFACode       string
	MFACodeExp    time.Time
	ResetToken    string
	ResetTokenExp time.Time

	ProfilePicture string
}

type DietType string

const (
	DietAll        DietType = "all"
	DietVegetarian DietType = "vegetarian"
	DietVegan      DietType = "vegan"
)

// Preferences holds the dietary preferences used by the meal planner.
type Preferences struct {
	Dietary       DietType `json:"dietary"`
	DislikedFoods []string `json:"disliked_foods"`
}

// HealthProfile holds pre-existing condition tags plus the age the user
// reported for their health record. Kept separate from the account age; the
// two are allowed to diverge.
type HealthProfile struct {
	PreExistingConditions []string `json:"pre_existing_conditions"`
	Age                   int      `json:"age"`
}

// ParsedPreferences returns the stored preferences, falling back to an
// unrestricted diet when the column is empty or unreadable.
func (u *User) ParsedPreferences() Preferences {
	prefs := Preferences{Dietary: DietAll, DislikedFoods: []string{}}
	if len(u.Preferences) == 0 {
		return prefs
	}
	if err := json.Unmarshal(u.Preferences, &prefs); err != nil {
		return Preferences{Dietary: DietAll, DislikedFoods: []string{}}
	}
	if prefs.Dietary == "" {
		prefs.Dietary = DietAll
	}
	if prefs.DislikedFoods == nil {
		prefs.DislikedFoods = []string{}
	}
	return prefs
}

// ParsedHealthProfile returns the stored health profile, defaulting the age
// to the account age when absent.
func (u *User) ParsedHealthProfile() HealthProfile {
	profile := HealthProfile{PreExistingConditions: []string{}, Age: u.Age}
	if len(u.HealthProfile) == 0 {
		return profile
	}
	if err := json.Unmarshal(u.HealthProfile, &profile); err != nil {
		return HealthProfile{PreExistingConditions: []string{}, Age: u.Age}
	}
	if profile.Age == 0 {
		profile.Age = u.Age
	}
	if profile.PreExistingConditions == nil {
		profile.PreExistingConditions = []string{}
	}
	return profile
}

// HasCondition reports whether the profile carries the given condition tag.
func (p HealthProfile) HasCondition(tag string) bool {
	for _, c := range p.PreExistingConditions {
		if strings.EqualFold(strings.TrimSpace(c), tag) {
			return true
		}
	}
	return false
}

// Dislikes reports whether the food name is on the disliked list.
func (p Preferences) Dislikes(food string) bool {
	for _, d := range p.DislikedFoods {
		if strings.EqualFold(strings.TrimSpace(d), strings.TrimSpace(food)) {
			return true
		}
	}
	return false
}
