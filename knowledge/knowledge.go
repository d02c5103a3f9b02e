// Package knowledge holds the static reference tables the assessment engine
// reads: food recommendations keyed by nutrient and symptom profiles keyed by
// symptom. The tables ship embedded in the binary, are parsed once at startup
// and are never mutated afterwards; callers receive the parsed value by
// injection rather than through package globals.
package knowledge

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Yonurhan/MomCare-Final/models"
)

//go:embed knowledge_bases/*.json
var knowledgeFS embed.FS

// ItemType distinguishes the three kinds of knowledge-base entries.
type ItemType string

const (
	ItemFood ItemType = "food"
	ItemTip  ItemType = "tip"
	ItemInfo ItemType = "info"
)

// RecommendationItem is one entry under a nutrient. Food entries carry the
// food fields; tip and info entries only carry Text.
type RecommendationItem struct {
	Type        ItemType `json:"type"`
	Food        string   `json:"food,omitempty"`
	ServingSize string   `json:"serving_size,omitempty"`
	Value       float64  `json:"value,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Text        string   `json:"text,omitempty"`
}

// HasTag reports whether a food entry carries the given tag.
func (r RecommendationItem) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SymptomProfile links a reported symptom to the nutrients that influence it
// and the lifestyle tips surfaced with its alert.
type SymptomProfile struct {
	RelatedNutrients []models.Nutrient `json:"related_nutrients"`
	LifestyleTips    []string          `json:"lifestyle_tips"`
}

// Base is the immutable knowledge base injected into the scorer and planner.
type Base struct {
	recommendations map[models.Nutrient][]RecommendationItem
	symptoms        map[string]SymptomProfile
}

// Load parses the embedded tables. It fails fast on malformed data or on
// entries referencing nutrients outside the tracked set, so a bad edit to the
// JSON cannot reach production silently.
func Load() (*Base, error) {
	recRaw, err := knowledgeFS.ReadFile("knowledge_bases/recommendations.json")
	if err != nil {
		return nil, fmt.Errorf("read recommendations: %w", err)
	}
	symRaw, err := knowledgeFS.ReadFile("knowledge_bases/symptoms.json")
	if err != nil {
		return nil, fmt.Errorf("read symptoms: %w", err)
	}
	return Parse(recRaw, symRaw)
}

// Parse builds a Base from raw JSON tables. Exported so tests can supply
// fixtures without touching the embedded files.
func Parse(recommendationsJSON, symptomsJSON []byte) (*Base, error) {
	recs := map[models.Nutrient][]RecommendationItem{}
	if err := json.Unmarshal(recommendationsJSON, &recs); err != nil {
		return nil, fmt.Errorf("parse recommendations: %w", err)
	}
	for nutrient, items := range recs {
		if !nutrient.Valid() {
			return nil, fmt.Errorf("recommendations reference unknown nutrient %q", nutrient)
		}
		for i, item := range items {
			switch item.Type {
			case ItemFood:
				if item.Food == "" {
					return nil, fmt.Errorf("%s[%d]: food entry without a name", nutrient, i)
				}
			case ItemTip, ItemInfo:
				if item.Text == "" {
					return nil, fmt.Errorf("%s[%d]: %s entry without text", nutrient, i, item.Type)
				}
			default:
				return nil, fmt.Errorf("%s[%d]: unknown item type %q", nutrient, i, item.Type)
			}
		}
	}

	rawSymptoms := map[string]SymptomProfile{}
	if err := json.Unmarshal(symptomsJSON, &rawSymptoms); err != nil {
		return nil, fmt.Errorf("parse symptoms: %w", err)
	}
	symptoms := make(map[string]SymptomProfile, len(rawSymptoms))
	for name, profile := range rawSymptoms {
		for _, n := range profile.RelatedNutrients {
			if !n.Valid() {
				return nil, fmt.Errorf("symptom %q references unknown nutrient %q", name, n)
			}
		}
		symptoms[normalizeSymptom(name)] = profile
	}

	return &Base{recommendations: recs, symptoms: symptoms}, nil
}

// RecommendationsFor returns the raw (unfiltered) entries for a nutrient, in
// knowledge-base order. The returned slice must not be modified.
func (b *Base) RecommendationsFor(n models.Nutrient) []RecommendationItem {
	return b.recommendations[n]
}

// SymptomProfileFor looks up a reported symptom. Lookup is case- and
// whitespace-insensitive; unknown symptoms return ok=false.
func (b *Base) SymptomProfileFor(symptom string) (SymptomProfile, bool) {
	p, ok := b.symptoms[normalizeSymptom(symptom)]
	return p, ok
}

func normalizeSymptom(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
