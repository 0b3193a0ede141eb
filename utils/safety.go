package utils

import (
	"fmt"
	"strings"

	"github.com/guptavaibhav1806/food-analyzer-api/models"
)

// HardStop is a rule-based veto. When one fires, classification is skipped
// entirely and the forced score/grade below are authoritative.
type HardStop struct {
	Reason      string
	ForcedScore float64
	ForcedGrade string
}

const (
	hardStopScore = 30
	hardStopGrade = "D"
)

// animalAllergenTags are declared allergen tags that are animal-derived
// (EU allergen vocabulary as used by the registry).
var animalAllergenTags = []string{
	"milk", "eggs", "egg", "fish", "crustaceans", "molluscs", "shellfish",
}

// EvaluateSafety checks the user's hard constraints against the product's
// declared attributes. It runs before the classifier and never consults it.
func EvaluateSafety(profile *models.UserProfile, product *models.ProductRecord) *HardStop {
	tags := make([]string, 0, len(product.AllergenTags))
	for _, t := range product.AllergenTags {
		if nt := NormalizeTag(t); nt != "" {
			tags = append(tags, nt)
		}
	}

	// Allergen rule: any user allergy token matching a declared tag blocks.
	for _, allergy := range profile.Allergies {
		for _, tag := range tags {
			if allergy == tag || strings.Contains(tag, allergy) {
				return &HardStop{
					Reason:      fmt.Sprintf("Product declares allergen %q, which matches your allergy to %s.", tag, allergy),
					ForcedScore: hardStopScore,
					ForcedGrade: hardStopGrade,
				}
			}
		}
	}

	// Diet rule: a vegan profile blocks on declared animal-derived allergens.
	if strings.ToLower(strings.TrimSpace(profile.Diet)) == "vegan" {
		for _, tag := range tags {
			for _, animal := range animalAllergenTags {
				if tag == animal {
					return &HardStop{
						Reason:      fmt.Sprintf("Product declares allergen %q, which is animal-derived and conflicts with a vegan diet.", tag),
						ForcedScore: hardStopScore,
						ForcedGrade: hardStopGrade,
					}
				}
			}
		}
	}

	return nil
}

// NormalizeTag canonicalizes an allergen token: the source language prefix
// ("en:") is stripped, underscores become spaces, and the result is
// case-folded and trimmed. User allergy tokens get the same treatment at
// profile construction.
func NormalizeTag(tag string) string {
	tag = strings.TrimSpace(strings.ToLower(tag))
	if idx := strings.Index(tag, ":"); idx >= 0 {
		tag = tag[idx+1:]
	}
	tag = strings.ReplaceAll(tag, "_", " ")
	return strings.TrimSpace(tag)
}
