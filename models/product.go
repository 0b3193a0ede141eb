package models

// Source names the producer of a ProductRecord. Exactly one source
// produces the record for a given request.
type Source string

const (
	SourceVision   Source = "vision"
	SourceRegistry Source = "registry"
)

// SuppliedScore is a score/grade pair already provided by the data source
// (e.g. the registry's own nutriscore fields). When present it is trusted
// and passed through without recomputation.
type SuppliedScore struct {
	Score float64
	Grade string
}

// ProductRecord is the structured product data handed to the engines.
// NutritionFacts values are per 100g and may arrive as numbers or as
// strings with units ("120 kcal") depending on the source.
type ProductRecord struct {
	Ingredients    []string       `json:"ingredients"`
	NutritionFacts map[string]any `json:"nutrition_facts"`
	AllergenTags   []string       `json:"-"`
	Supplied       *SuppliedScore `json:"-"`
}
