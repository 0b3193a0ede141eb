package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptavaibhav1806/food-analyzer-api/models"
)

// ScoreResult is the outcome of the quality scoring engine. Deductions are
// only populated on the heuristic path, where the score is explained by the
// individual penalties applied.
type ScoreResult struct {
	Score      float64
	Grade      string
	Deductions []string
}

// Penalties applied on the heuristic path.
const (
	allergyPenalty = 30
	animalPenalty  = 20
)

// animalKeywords flags animal-derived ingredients for vegan profiles.
var animalKeywords = []string{
	"milk", "butter", "cheese", "cream", "yogurt", "whey", "casein",
	"egg", "honey", "gelatin", "lard",
	"meat", "chicken", "beef", "pork", "fish", "shrimp", "anchovy",
}

var fiberAliases = []string{"Fiber", "fiber_100g", "Dietary Fiber", "FIBTG"}
var fruitAliases = []string{
	"fruits-vegetables-nuts-estimate-from-ingredients_100g",
	"fruits-vegetables-nuts_100g",
	"Fruit/Vegetable/Nut Content",
}

// GradeForScore maps a 0–100 score to its letter grade. The same mapping is
// used on every scoring path.
func GradeForScore(score float64) string {
	switch {
	case score >= 80:
		return "A"
	case score >= 60:
		return "B"
	case score >= 40:
		return "C"
	case score >= 20:
		return "D"
	default:
		return "E"
	}
}

// ScoreNutrition computes the product quality score.
//
// Preference order: a score/grade already supplied by the source is passed
// through unchanged; otherwise a weighted formula over per-100g values is
// used; when no structured values exist at all (or the formula misbehaves)
// a keyword heuristic over the ingredient list applies.
func ScoreNutrition(profile *models.UserProfile, product *models.ProductRecord) ScoreResult {
	if s := product.Supplied; s != nil {
		grade := strings.ToUpper(strings.TrimSpace(s.Grade))
		if !validGrade(grade) {
			grade = GradeForScore(s.Score)
		}
		return ScoreResult{Score: s.Score, Grade: grade}
	}

	if res, ok := scoreFromFacts(product.NutritionFacts); ok {
		return res
	}

	return heuristicScore(profile, product)
}

// scoreFromFacts is the weighted-deduction formula over per-100g values.
// Higher energy, saturated fat, sugar and sodium reduce the score; fiber,
// protein and fruit/vegetable/nut content raise it.
func scoreFromFacts(facts map[string]any) (res ScoreResult, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	if len(facts) == 0 {
		return ScoreResult{}, false
	}
	present := HasNutrient(facts, nutrientAliases[models.ColCalories]...) ||
		HasNutrient(facts, nutrientAliases[models.ColSaturatedFat]...) ||
		HasNutrient(facts, nutrientAliases[models.ColSugar]...) ||
		HasNutrient(facts, nutrientAliases[models.ColSodium]...) ||
		HasNutrient(facts, nutrientAliases[models.ColProtein]...) ||
		HasNutrient(facts, fiberAliases...) ||
		HasNutrient(facts, fruitAliases...)
	if !present {
		return ScoreResult{}, false
	}

	kcal := PickNutrient(facts, nutrientAliases[models.ColCalories]...)
	satFat := PickNutrient(facts, nutrientAliases[models.ColSaturatedFat]...)
	sugar := PickNutrient(facts, nutrientAliases[models.ColSugar]...)
	sodium := PickNutrient(facts, nutrientAliases[models.ColSodium]...)
	fat := PickNutrient(facts, nutrientAliases[models.ColTotalFat]...)
	protein := PickNutrient(facts, nutrientAliases[models.ColProtein]...)
	fiber := PickNutrient(facts, fiberAliases...)
	fruitPct := PickNutrient(facts, fruitAliases...)

	score := 100 -
		0.05*kcal -
		2.0*satFat -
		1.0*sugar -
		20.0*sodium -
		0.5*fat +
		2.0*fiber +
		1.0*protein +
		0.1*fruitPct

	if math.IsNaN(score) || math.IsInf(score, 0) {
		return ScoreResult{}, false
	}
	score = clamp(score, 0, 100)
	return ScoreResult{Score: round2(score), Grade: GradeForScore(score)}, true
}

// heuristicScore starts at 100 and deducts per matched keyword: 30 for each
// user allergy token found in the ingredients, 20 for each animal-derived
// keyword when the profile is vegan.
func heuristicScore(profile *models.UserProfile, product *models.ProductRecord) ScoreResult {
	score := 100.0
	deductions := []string{}
	joined := strings.ToLower(strings.Join(product.Ingredients, ", "))

	for _, allergy := range profile.Allergies {
		if allergy != "" && strings.Contains(joined, allergy) {
			score -= allergyPenalty
			deductions = append(deductions,
				fmt.Sprintf("Ingredient list mentions %q, which is on your allergy list (-%d).", allergy, allergyPenalty))
		}
	}

	if strings.ToLower(strings.TrimSpace(profile.Diet)) == "vegan" {
		for _, kw := range animalKeywords {
			if strings.Contains(joined, kw) {
				score -= animalPenalty
				deductions = append(deductions,
					fmt.Sprintf("Ingredient %q is animal-derived and not vegan-friendly (-%d).", kw, animalPenalty))
			}
		}
	}

	score = clamp(score, 0, 100)
	return ScoreResult{Score: score, Grade: GradeForScore(score), Deductions: deductions}
}

func validGrade(g string) bool {
	return g == "A" || g == "B" || g == "C" || g == "D" || g == "E"
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
