package models

// Numeric column names, in the fixed order the classifier was trained on.
const (
	ColCalories          = "Calories"
	ColTotalFat          = "Total Fat"
	ColSaturatedFat      = "Saturated Fat"
	ColSodium            = "Sodium"
	ColTotalCarbohydrate = "Total Carbohydrate"
	ColSugar             = "Sugar"
	ColProtein           = "Protein"
)

// NumericColumns lists the seven nutrient columns in schema order.
var NumericColumns = []string{
	ColCalories,
	ColTotalFat,
	ColSaturatedFat,
	ColSodium,
	ColTotalCarbohydrate,
	ColSugar,
	ColProtein,
}

// TextColumns lists the flattened profile/ingredient columns in schema order.
var TextColumns = []string{"allergies", "diet", "conditions", "ingredients"}

// FeatureRow is the flattened, schema-fixed representation the classifier
// consumes. Text fields are comma-joined strings; numeric columns default
// to 0.0 when the source value is absent or unparsable.
type FeatureRow struct {
	Allergies   string
	Diet        string
	Conditions  string
	Ingredients string

	Calories          float64
	TotalFat          float64
	SaturatedFat      float64
	Sodium            float64
	TotalCarbohydrate float64
	Sugar             float64
	Protein           float64
}

// Text returns the value of a text column by schema name.
func (r FeatureRow) Text(column string) string {
	switch column {
	case "allergies":
		return r.Allergies
	case "diet":
		return r.Diet
	case "conditions":
		return r.Conditions
	case "ingredients":
		return r.Ingredients
	}
	return ""
}

// Numeric returns the value of a nutrient column by schema name.
func (r FeatureRow) Numeric(column string) float64 {
	switch column {
	case ColCalories:
		return r.Calories
	case ColTotalFat:
		return r.TotalFat
	case ColSaturatedFat:
		return r.SaturatedFat
	case ColSodium:
		return r.Sodium
	case ColTotalCarbohydrate:
		return r.TotalCarbohydrate
	case ColSugar:
		return r.Sugar
	case ColProtein:
		return r.Protein
	}
	return 0
}

// Columns returns the full fixed schema, text fields first.
func Columns() []string {
	out := make([]string, 0, len(TextColumns)+len(NumericColumns))
	out = append(out, TextColumns...)
	out = append(out, NumericColumns...)
	return out
}
