package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const offFixture = `{
  "status": 1,
  "product": {
    "ingredients_text": "Sugar, cocoa butter, milk powder",
    "allergens_tags": ["en:milk", "en:soybeans"],
    "nutriments": {
      "energy-kcal_100g": 534,
      "fat_100g": 31,
      "saturated-fat_100g": 10.6,
      "sodium_100g": 0.107,
      "carbohydrates_100g": 57.5,
      "sugars_100g": 56.3,
      "proteins_100g": 6.3,
      "fiber_100g": 2.1,
      "energy_100g": 2234,
      "salt_100g": 0.27
    },
    "nutriscore_score": 25,
    "nutriscore_grade": "e"
  }
}`

func TestLookupMapsProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/product/3017620422003.json", r.URL.Path)
		w.Write([]byte(offFixture))
	}))
	defer srv.Close()

	rec, err := NewOpenFoodFactsService(srv.URL).Lookup(context.Background(), "3017620422003")

	require.NoError(t, err)
	assert.Equal(t, []string{"Sugar", "cocoa butter", "milk powder"}, rec.Ingredients)
	assert.Equal(t, []string{"en:milk", "en:soybeans"}, rec.AllergenTags)
	assert.Equal(t, 534.0, rec.NutritionFacts["energy-kcal_100g"])
	assert.Equal(t, 56.3, rec.NutritionFacts["sugars_100g"])
	// Fields outside the documented set are not carried over.
	assert.NotContains(t, rec.NutritionFacts, "salt_100g")
	assert.NotContains(t, rec.NutritionFacts, "energy_100g")

	require.NotNil(t, rec.Supplied)
	assert.Equal(t, 25.0, rec.Supplied.Score)
	assert.Equal(t, "e", rec.Supplied.Grade)
}

func TestLookupNoSuppliedScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":1,"product":{"ingredients_text":"water","nutriments":{}}}`))
	}))
	defer srv.Close()

	rec, err := NewOpenFoodFactsService(srv.URL).Lookup(context.Background(), "123")
	require.NoError(t, err)
	assert.Nil(t, rec.Supplied)
}

func TestLookupStatusZeroIsNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":0,"status_verbose":"product not found"}`))
	}))
	defer srv.Close()

	_, err := NewOpenFoodFactsService(srv.URL).Lookup(context.Background(), "000")
	assert.True(t, errors.Is(err, ErrNoMatch))
}

func TestLookupHTTPErrorIsNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewOpenFoodFactsService(srv.URL).Lookup(context.Background(), "000")
	assert.True(t, errors.Is(err, ErrNoMatch))
}

func TestLookupTransportFailureIsNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := NewOpenFoodFactsService(srv.URL).Lookup(context.Background(), "000")
	assert.True(t, errors.Is(err, ErrNoMatch))
}
