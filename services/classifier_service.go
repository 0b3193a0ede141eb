package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/guptavaibhav1806/food-analyzer-api/models"
)

// Pipeline is the pre-trained, externally supplied classification
// capability: preprocessing plus model, treated as opaque. Its internal
// state is fixed once loaded, so it is safe for concurrent reads.
type Pipeline interface {
	Predict(row models.FeatureRow) string
	Transform(row models.FeatureRow) []float64
	FeatureNames() []string
	Contributions(transformed []float64) []float64
}

type numericFeature struct {
	Name   string  `json:"name"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Weight float64 `json:"weight"`
}

type vocabFeature struct {
	Field  string  `json:"field"`
	Token  string  `json:"token"`
	Weight float64 `json:"weight"`
}

type modelArtifact struct {
	Classes    []string         `json:"classes"`
	Intercept  float64          `json:"intercept"`
	Numeric    []numericFeature `json:"numeric"`
	Vocabulary []vocabFeature   `json:"vocabulary"`
}

// PipelineModel is a linear pipeline loaded from a JSON artifact: numeric
// columns are standardized, vocabulary tokens become indicator features,
// and the prediction is the sign of the weighted sum. Being linear, its
// per-feature contributions are exact.
type PipelineModel struct {
	art   modelArtifact
	names []string
}

// LoadPipelineModel reads the model artifact from disk. The caller owns
// the returned model; there is no global model state.
func LoadPipelineModel(path string) (*PipelineModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var art modelArtifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}
	if len(art.Classes) != 2 {
		return nil, fmt.Errorf("model artifact must declare exactly two classes, got %d", len(art.Classes))
	}
	if len(art.Numeric)+len(art.Vocabulary) == 0 {
		return nil, fmt.Errorf("model artifact declares no features")
	}

	return &PipelineModel{art: art, names: buildFeatureNames(art)}, nil
}

// buildFeatureNames derives column names from the artifact; unnamed entries
// get positional names rather than failing.
func buildFeatureNames(art modelArtifact) []string {
	names := make([]string, 0, len(art.Numeric)+len(art.Vocabulary))
	for i, f := range art.Numeric {
		if f.Name == "" {
			names = append(names, fmt.Sprintf("feature_%d", i))
			continue
		}
		names = append(names, f.Name)
	}
	for i, v := range art.Vocabulary {
		if v.Field == "" || v.Token == "" {
			names = append(names, fmt.Sprintf("feature_%d", len(art.Numeric)+i))
			continue
		}
		names = append(names, v.Field+"="+v.Token)
	}
	return names
}

// Transform maps a feature row to the numeric matrix row the model scores:
// standardized nutrient columns followed by vocabulary indicators.
func (m *PipelineModel) Transform(row models.FeatureRow) []float64 {
	vec := make([]float64, 0, len(m.names))
	for _, f := range m.art.Numeric {
		std := f.Std
		if std <= 0 {
			std = 1
		}
		vec = append(vec, (row.Numeric(f.Name)-f.Mean)/std)
	}
	tokensByField := make(map[string]map[string]bool)
	for _, v := range m.art.Vocabulary {
		tokens, ok := tokensByField[v.Field]
		if !ok {
			tokens = tokenize(row.Text(v.Field))
			tokensByField[v.Field] = tokens
		}
		if tokens[strings.ToLower(v.Token)] {
			vec = append(vec, 1)
		} else {
			vec = append(vec, 0)
		}
	}
	return vec
}

// Predict returns one of the artifact's two class labels.
func (m *PipelineModel) Predict(row models.FeatureRow) string {
	if m.decision(m.Transform(row)) > 0 {
		return m.art.Classes[1]
	}
	return m.art.Classes[0]
}

// Contributions returns the per-feature weight×value terms for a
// transformed row, aligned with FeatureNames.
func (m *PipelineModel) Contributions(transformed []float64) []float64 {
	weights := m.weights()
	out := make([]float64, len(transformed))
	for i := range transformed {
		if i < len(weights) {
			out[i] = weights[i] * transformed[i]
		}
	}
	return out
}

// FeatureNames returns the transformed column names in order.
func (m *PipelineModel) FeatureNames() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

func (m *PipelineModel) decision(vec []float64) float64 {
	sum := m.art.Intercept
	weights := m.weights()
	for i, v := range vec {
		if i < len(weights) {
			sum += weights[i] * v
		}
	}
	return sum
}

func (m *PipelineModel) weights() []float64 {
	w := make([]float64, 0, len(m.names))
	for _, f := range m.art.Numeric {
		w = append(w, f.Weight)
	}
	for _, v := range m.art.Vocabulary {
		w = append(w, v.Weight)
	}
	return w
}

func tokenize(s string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
