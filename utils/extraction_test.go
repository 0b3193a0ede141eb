package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtractionPlainJSON(t *testing.T) {
	raw := `{"ingredients":["water","sugar"],"nutrition_facts":{"Calories":"120 kcal","Protein":"2g"}}`

	rec, err := ParseExtraction(raw)

	require.NoError(t, err)
	assert.Equal(t, []string{"water", "sugar"}, rec.Ingredients)
	assert.Equal(t, "120 kcal", rec.NutritionFacts["Calories"])
}

func TestParseExtractionStripsFences(t *testing.T) {
	raw := "```json\n{\"ingredients\":[\"oats\"],\"nutrition_facts\":{\"Calories\":350}}\n```"

	rec, err := ParseExtraction(raw)

	require.NoError(t, err)
	assert.Equal(t, []string{"oats"}, rec.Ingredients)
	assert.Equal(t, 350.0, rec.NutritionFacts["Calories"])
}

func TestParseExtractionBareFence(t *testing.T) {
	raw := "```\n{\"ingredients\":[],\"nutrition_facts\":{}}\n```"

	rec, err := ParseExtraction(raw)
	require.NoError(t, err)
	assert.Empty(t, rec.Ingredients)
}

func TestParseExtractionNonJSON(t *testing.T) {
	raw := "Sorry, I can't read this label."

	rec, err := ParseExtraction(raw)

	assert.Nil(t, rec)
	var parseErr *ExtractionParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, raw, parseErr.RawText)
}

func TestParseExtractionMissingKeys(t *testing.T) {
	rec, err := ParseExtraction(`{"foo": 1}`)

	assert.Nil(t, rec)
	var parseErr *ExtractionParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestParseExtractionOnlyIngredients(t *testing.T) {
	// One of the two keys is enough to be usable; the other defaults empty.
	rec, err := ParseExtraction(`{"ingredients":["rice"]}`)

	require.NoError(t, err)
	assert.Equal(t, []string{"rice"}, rec.Ingredients)
	assert.NotNil(t, rec.NutritionFacts)
	assert.Empty(t, rec.NutritionFacts)
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFences(`{"a":1}`))
	assert.Equal(t, `plain text`, StripCodeFences("plain text"))
}
