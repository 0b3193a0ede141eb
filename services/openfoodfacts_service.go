package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/guptavaibhav1806/food-analyzer-api/models"
)

// ErrNoMatch means the registry has no product for the barcode. It is not
// a failure: the orchestrator falls back to vision extraction.
var ErrNoMatch = errors.New("no product match for barcode")

// RegistryClient looks a product up by barcode.
type RegistryClient interface {
	Lookup(ctx context.Context, barcode string) (*models.ProductRecord, error)
}

// OpenFoodFactsService queries the Open Food Facts product API.
type OpenFoodFactsService struct {
	baseURL string
	client  *http.Client
}

const defaultOFFBaseURL = "https://world.openfoodfacts.org"

// NewOpenFoodFactsService initializes the registry client. An empty baseURL
// selects the public API.
func NewOpenFoodFactsService(baseURL string) *OpenFoodFactsService {
	if baseURL == "" {
		baseURL = defaultOFFBaseURL
	}
	return &OpenFoodFactsService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type offProductResponse struct {
	Status  int `json:"status"`
	Product struct {
		IngredientsText string         `json:"ingredients_text"`
		AllergensTags   []string       `json:"allergens_tags"`
		Nutriments      map[string]any `json:"nutriments"`
		NutriscoreScore *float64       `json:"nutriscore_score"`
		NutriscoreGrade string         `json:"nutriscore_grade"`
	} `json:"product"`
}

// nutrimentKeys are the per-100g fields carried over into the record; the
// rest of the (very large) nutriments map is dropped.
var nutrimentKeys = []string{
	"energy-kcal_100g",
	"fat_100g",
	"saturated-fat_100g",
	"sodium_100g",
	"carbohydrates_100g",
	"sugars_100g",
	"proteins_100g",
	"fiber_100g",
	"fruits-vegetables-nuts-estimate-from-ingredients_100g",
}

// Lookup fetches a product by barcode. A missing product, a non-200 reply
// or a transport failure all surface as ErrNoMatch so the caller can fall
// back to the alternate source.
func (s *OpenFoodFactsService) Lookup(ctx context.Context, barcode string) (*models.ProductRecord, error) {
	u := fmt.Sprintf("%s/api/v2/product/%s.json", s.baseURL, url.PathEscape(barcode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create registry request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoMatch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrNoMatch, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: registry status %d", ErrNoMatch, resp.StatusCode)
	}

	var pr offProductResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", ErrNoMatch, err)
	}
	if pr.Status != 1 {
		return nil, ErrNoMatch
	}

	facts := make(map[string]any, len(nutrimentKeys))
	for _, k := range nutrimentKeys {
		if v, ok := pr.Product.Nutriments[k]; ok {
			facts[k] = v
		}
	}

	rec := &models.ProductRecord{
		Ingredients:    splitIngredients(pr.Product.IngredientsText),
		NutritionFacts: facts,
		AllergenTags:   pr.Product.AllergensTags,
	}
	if pr.Product.NutriscoreScore != nil {
		rec.Supplied = &models.SuppliedScore{
			Score: *pr.Product.NutriscoreScore,
			Grade: pr.Product.NutriscoreGrade,
		}
	}
	return rec, nil
}

func splitIngredients(text string) []string {
	parts := strings.Split(text, ",")
	out := []string{}
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
