package utils

import (
	"strconv"
	"strings"

	"github.com/guptavaibhav1806/food-analyzer-api/models"
)

// nutrientAliases maps each canonical column to the key spellings seen
// across sources (vision labels vs. Open Food Facts nutriment keys).
var nutrientAliases = map[string][]string{
	models.ColCalories:          {"Calories", "energy-kcal_100g", "Energy", "kcal", "ENERC_KCAL"},
	models.ColTotalFat:          {"Total Fat", "fat_100g", "Fat", "FAT"},
	models.ColSaturatedFat:      {"Saturated Fat", "saturated-fat_100g", "FASAT"},
	models.ColSodium:            {"Sodium", "sodium_100g", "Na", "NA"},
	models.ColTotalCarbohydrate: {"Total Carbohydrate", "carbohydrates_100g", "Total Carbohydrates", "Carbohydrates", "CHOCDF"},
	models.ColSugar:             {"Sugar", "sugars_100g", "Sugars", "SUGAR"},
	models.ColProtein:           {"Protein", "proteins_100g", "PROCNT"},
}

// NormalizeFeatures flattens a profile and product into the fixed row the
// classifier expects. It never fails: missing or unparsable nutrient values
// become 0.0 and the column set is identical regardless of source.
func NormalizeFeatures(profile *models.UserProfile, product *models.ProductRecord) models.FeatureRow {
	row := models.FeatureRow{
		Diet:        strings.TrimSpace(profile.Diet),
		Allergies:   strings.Join(profile.Allergies, ", "),
		Conditions:  strings.Join(profile.Conditions, ", "),
		Ingredients: joinTrimmed(product.Ingredients),
	}

	facts := product.NutritionFacts
	row.Calories = PickNutrient(facts, nutrientAliases[models.ColCalories]...)
	row.TotalFat = PickNutrient(facts, nutrientAliases[models.ColTotalFat]...)
	row.SaturatedFat = PickNutrient(facts, nutrientAliases[models.ColSaturatedFat]...)
	row.Sodium = PickNutrient(facts, nutrientAliases[models.ColSodium]...)
	row.TotalCarbohydrate = PickNutrient(facts, nutrientAliases[models.ColTotalCarbohydrate]...)
	row.Sugar = PickNutrient(facts, nutrientAliases[models.ColSugar]...)
	row.Protein = PickNutrient(facts, nutrientAliases[models.ColProtein]...)

	return row
}

// PickNutrient looks a value up under any of the given keys, trying exact
// then case-insensitive matches, and coerces it to a float. Absent keys and
// parse failures yield 0.0, never an error.
func PickNutrient(facts map[string]any, keys ...string) float64 {
	v, ok := pickRaw(facts, keys...)
	if !ok {
		return 0
	}
	return CoerceFloat(v)
}

// HasNutrient reports whether any of the given keys is present at all,
// regardless of whether its value parses.
func HasNutrient(facts map[string]any, keys ...string) bool {
	_, ok := pickRaw(facts, keys...)
	return ok
}

func pickRaw(facts map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := facts[k]; ok {
			return v, true
		}
		for fk, v := range facts {
			if strings.EqualFold(fk, k) {
				return v, true
			}
		}
	}
	return nil, false
}

// CoerceFloat converts a number-or-string nutrient value to a float64.
// String values may carry a trailing unit ("120 kcal" → 120). Anything
// unparsable is 0.0.
func CoerceFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		return parseLeadingNumber(t)
	}
	return 0
}

// parseLeadingNumber reads the leading numeric token of a string.
func parseLeadingNumber(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	for i, r := range s {
		if r >= '0' && r <= '9' || r == '.' || ((r == '-' || r == '+') && i == 0) {
			end = i + 1
			continue
		}
		break
	}
	if end == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return f
}

func joinTrimmed(items []string) string {
	trimmed := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it != "" {
			trimmed = append(trimmed, it)
		}
	}
	return strings.Join(trimmed, ", ")
}
