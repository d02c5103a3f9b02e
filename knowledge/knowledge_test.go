package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yonurhan/MomCare-Final/models"
)

func TestLoadEmbeddedTables(t *testing.T) {
	kb, err := Load()
	require.NoError(t, err)

	for _, nutrient := range models.TrackedNutrients {
		assert.NotEmpty(t, kb.RecommendationsFor(nutrient), "no entries for %s", nutrient)
	}

	profile, ok := kb.SymptomProfileFor("kelelahan")
	require.True(t, ok)
	assert.Contains(t, profile.RelatedNutrients, models.NutrientIron)
	assert.NotEmpty(t, profile.LifestyleTips)
}

func TestSymptomLookupIsNormalized(t *testing.T) {
	kb, err := Load()
	require.NoError(t, err)

	_, ok := kb.SymptomProfileFor("  Kelelahan ")
	assert.True(t, ok)

	_, ok = kb.SymptomProfileFor("gejala tak dikenal")
	assert.False(t, ok)
}

func TestParseRejectsUnknownNutrient(t *testing.T) {
	rec := []byte(`{"unobtainium": [{"type": "food", "food": "Bayam"}]}`)
	sym := []byte(`{}`)

	_, err := Parse(rec, sym)
	assert.ErrorContains(t, err, "unknown nutrient")
}

func TestParseRejectsFoodWithoutName(t *testing.T) {
	rec := []byte(`{"iron": [{"type": "food", "serving_size": "100g"}]}`)
	sym := []byte(`{}`)

	_, err := Parse(rec, sym)
	assert.ErrorContains(t, err, "food entry without a name")
}

func TestParseRejectsUnknownItemType(t *testing.T) {
	rec := []byte(`{"iron": [{"type": "supplement", "text": "x"}]}`)
	sym := []byte(`{}`)

	_, err := Parse(rec, sym)
	assert.ErrorContains(t, err, "unknown item type")
}

func TestParseRejectsSymptomWithUnknownNutrient(t *testing.T) {
	rec := []byte(`{}`)
	sym := []byte(`{"pusing": {"related_nutrients": ["unobtainium"], "lifestyle_tips": []}}`)

	_, err := Parse(rec, sym)
	assert.ErrorContains(t, err, "unknown nutrient")
}

func TestHasTag(t *testing.T) {
	item := RecommendationItem{Type: ItemFood, Food: "Susu", Tags: []string{"dairy"}}
	assert.True(t, item.HasTag("dairy"))
	assert.False(t, item.HasTag("plant"))
}
