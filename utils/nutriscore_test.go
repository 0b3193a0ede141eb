package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/guptavaibhav1806/food-analyzer-api/models"
)

func TestGradeForScoreBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		grade string
	}{
		{100, "A"},
		{80, "A"},
		{79, "B"},
		{60, "B"},
		{59, "C"},
		{40, "C"},
		{39, "D"},
		{20, "D"},
		{19, "E"},
		{0, "E"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.grade, GradeForScore(tc.score), "score %.0f", tc.score)
	}
}

func TestScoreNutritionPassthrough(t *testing.T) {
	product := &models.ProductRecord{
		NutritionFacts: map[string]any{"energy-kcal_100g": 534.0},
		Supplied:       &models.SuppliedScore{Score: 72, Grade: "b"},
	}

	res := ScoreNutrition(models.DefaultProfile(), product)

	// Supplied scores are trusted: no recomputation, grade upper-cased only.
	assert.Equal(t, 72.0, res.Score)
	assert.Equal(t, "B", res.Grade)
	assert.Empty(t, res.Deductions)
}

func TestScoreNutritionPassthroughDerivesGradeWhenInvalid(t *testing.T) {
	product := &models.ProductRecord{
		Supplied: &models.SuppliedScore{Score: 85, Grade: "unknown"},
	}

	res := ScoreNutrition(models.DefaultProfile(), product)
	assert.Equal(t, 85.0, res.Score)
	assert.Equal(t, "A", res.Grade)
}

func TestScoreNutritionWeightedFormula(t *testing.T) {
	// Chocolate-bar shaped values should land at the bottom of the scale.
	junk := &models.ProductRecord{
		NutritionFacts: map[string]any{
			"energy-kcal_100g":   534.0,
			"fat_100g":           31.0,
			"saturated-fat_100g": 10.0,
			"sugars_100g":        56.0,
			"sodium_100g":        0.1,
			"proteins_100g":      6.0,
		},
	}
	res := ScoreNutrition(models.DefaultProfile(), junk)
	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, "E", res.Grade)

	// Vegetable-shaped values should land at the top.
	veg := &models.ProductRecord{
		NutritionFacts: map[string]any{
			"energy-kcal_100g": 45.0,
			"fat_100g":         0.3,
			"sugars_100g":      4.3,
			"sodium_100g":      0.01,
			"proteins_100g":    0.9,
			"fiber_100g":       2.2,
			"fruits-vegetables-nuts-estimate-from-ingredients_100g": 100.0,
		},
	}
	res = ScoreNutrition(models.DefaultProfile(), veg)
	assert.Equal(t, 100.0, res.Score)
	assert.Equal(t, "A", res.Grade)
}

func TestScoreNutritionHeuristicVegan(t *testing.T) {
	profile := &models.UserProfile{Diet: "vegan", Allergies: []string{}}
	product := &models.ProductRecord{
		Ingredients:    []string{"water", "milk", "sugar"},
		NutritionFacts: map[string]any{},
	}

	res := ScoreNutrition(profile, product)

	assert.Equal(t, 80.0, res.Score)
	assert.Equal(t, "A", res.Grade)
	assert.Len(t, res.Deductions, 1)
	assert.Contains(t, res.Deductions[0], "milk")
}

func TestScoreNutritionHeuristicAllergy(t *testing.T) {
	profile := &models.UserProfile{Diet: "none", Allergies: []string{"peanuts"}}
	product := &models.ProductRecord{
		Ingredients: []string{"roasted peanuts", "salt"},
	}

	res := ScoreNutrition(profile, product)

	assert.Equal(t, 70.0, res.Score)
	assert.Equal(t, "B", res.Grade)
	assert.Contains(t, res.Deductions[0], "peanuts")
}

func TestScoreNutritionHeuristicClampsAtZero(t *testing.T) {
	profile := &models.UserProfile{
		Diet:      "vegan",
		Allergies: []string{"milk", "egg", "fish", "honey"},
	}
	product := &models.ProductRecord{
		Ingredients: []string{"milk", "egg", "fish", "honey", "gelatin", "lard"},
	}

	res := ScoreNutrition(profile, product)
	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, "E", res.Grade)
}

func TestScoreNutritionUnparsableFactsFallThrough(t *testing.T) {
	// Keys exist but none parses: the formula still runs on zero values and
	// tops out, which keeps the engine total rather than erroring.
	product := &models.ProductRecord{
		Ingredients:    []string{"water"},
		NutritionFacts: map[string]any{"Calories": "unknown"},
	}
	res := ScoreNutrition(models.DefaultProfile(), product)
	assert.Equal(t, 100.0, res.Score)
	assert.Equal(t, "A", res.Grade)
}
