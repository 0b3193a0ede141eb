package models

// NutriScore is the 0–100 quality score plus its letter grade.
type NutriScore struct {
	Score float64 `json:"score"`
	Grade string  `json:"grade"`
}

// Analysis is the product data as it was presented to the classifier.
type Analysis struct {
	Ingredients    []string       `json:"ingredients"`
	NutritionFacts map[string]any `json:"nutrition_facts"`
}

// Attribution pairs a feature name with the direction in which it pushed
// the prediction.
type Attribution struct {
	Feature   string `json:"feature"`
	Direction string `json:"direction"`
}

// Decision is the terminal artifact of one request. It is assembled once
// and never mutated or persisted.
type Decision struct {
	Profile        *UserProfile  `json:"profile"`
	Source         Source        `json:"source"`
	Analysis       Analysis      `json:"analysis"`
	ShouldConsume  string        `json:"should_consume"`
	NutriScore     NutriScore    `json:"nutriscore"`
	Attributions   []Attribution `json:"attributions,omitempty"`
	Explanation    []string      `json:"explanation,omitempty"`
	Deductions     []string      `json:"deductions,omitempty"`
	HardStopReason string        `json:"hard_stop_reason,omitempty"`
}
