package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsedPreferencesDefaults(t *testing.T) {
	var user User

	prefs := user.ParsedPreferences()

	assert.Equal(t, DietAll, prefs.Dietary)
	assert.NotNil(t, prefs.DislikedFoods)
	assert.Empty(t, prefs.DislikedFoods)
}

func TestParsedPreferencesBadJSONFallsBack(t *testing.T) {
	user := User{Preferences: []byte(`{broken`)}

	prefs := user.ParsedPreferences()

	assert.Equal(t, DietAll, prefs.Dietary)
}

func TestParsedPreferencesRoundTrip(t *testing.T) {
	user := User{Preferences: []byte(`{"dietary":"vegan","disliked_foods":["Bayam"]}`)}

	prefs := user.ParsedPreferences()

	assert.Equal(t, DietVegan, prefs.Dietary)
	assert.True(t, prefs.Dislikes("bayam"))
	assert.False(t, prefs.Dislikes("tempe"))
}

func TestParsedHealthProfileDefaultsToAccountAge(t *testing.T) {
	user := User{Age: 32}

	profile := user.ParsedHealthProfile()

	assert.Equal(t, 32, profile.Age)
	assert.Empty(t, profile.PreExistingConditions)
}

func TestHasConditionCaseInsensitive(t *testing.T) {
	profile := HealthProfile{PreExistingConditions: []string{" Anemia ", "gestational diabetes"}}

	assert.True(t, profile.HasCondition("anemia"))
	assert.True(t, profile.HasCondition("Gestational Diabetes"))
	assert.False(t, profile.HasCondition("hypertension"))
}
