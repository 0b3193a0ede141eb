package services

import "context"

// VisionExtractor turns a packaging photo into raw extractor text. The text
// is expected to be JSON (possibly fenced) with "ingredients" and
// "nutrition_facts" keys; parsing happens in one place downstream.
type VisionExtractor interface {
	Extract(ctx context.Context, image []byte, mimeType string) (string, error)
}

// extractionPrompt asks the model for the structured payload the rest of
// the pipeline consumes.
const extractionPrompt = `You are an AI assistant that extracts structured food product data from packaging images.

Please extract:
1. A list of ingredients.
2. Nutrition facts (key: value, with units).

Return the result in JSON format like this:
{
  "ingredients": [ ... ],
  "nutrition_facts": {
    "Calories": "...",
    "Total Fat": "...",
    ...
  }
}`
