package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/guptavaibhav1806/food-analyzer-api/models"
)

// ExtractionParseError reports vision-extractor output that did not parse
// as the expected structured schema. The raw text is kept for diagnosis.
type ExtractionParseError struct {
	RawText string
	Err     error
}

func (e *ExtractionParseError) Error() string {
	return fmt.Sprintf("extraction output is not structured: %v", e.Err)
}

func (e *ExtractionParseError) Unwrap() error { return e.Err }

type extractedPayload struct {
	Ingredients    []string       `json:"ingredients"`
	NutritionFacts map[string]any `json:"nutrition_facts"`
}

// ParseExtraction turns the raw text returned by a vision extractor into a
// ProductRecord. Markdown code fences around the JSON are tolerated; any
// other deviation from the expected schema is an *ExtractionParseError.
func ParseExtraction(raw string) (*models.ProductRecord, error) {
	cleaned := StripCodeFences(raw)

	var payload extractedPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, &ExtractionParseError{RawText: raw, Err: err}
	}
	if payload.Ingredients == nil && payload.NutritionFacts == nil {
		return nil, &ExtractionParseError{
			RawText: raw,
			Err:     fmt.Errorf("expected 'ingredients' and 'nutrition_facts' keys"),
		}
	}

	rec := &models.ProductRecord{
		Ingredients:    payload.Ingredients,
		NutritionFacts: payload.NutritionFacts,
	}
	if rec.Ingredients == nil {
		rec.Ingredients = []string{}
	}
	if rec.NutritionFacts == nil {
		rec.NutritionFacts = map[string]any{}
	}
	return rec, nil
}

// StripCodeFences removes a surrounding ``` / ```json fence, if present.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// drop an optional language tag on the opening fence
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		first := strings.TrimSpace(s[:idx])
		if first == "json" || first == "" {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
