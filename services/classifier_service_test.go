package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guptavaibhav1806/food-analyzer-api/models"
)

const testArtifact = `{
  "classes": ["No", "Yes"],
  "intercept": 0,
  "numeric": [
    {"name": "Sugar", "mean": 0, "std": 1, "weight": -1},
    {"name": "Protein", "mean": 0, "std": 1, "weight": 1}
  ],
  "vocabulary": [
    {"field": "ingredients", "token": "oats", "weight": 0.5}
  ]
}`

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPipelineModel(t *testing.T) {
	m, err := LoadPipelineModel(writeArtifact(t, testArtifact))
	require.NoError(t, err)
	assert.Equal(t, []string{"Sugar", "Protein", "ingredients=oats"}, m.FeatureNames())
}

func TestLoadPipelineModelRejectsBadArtifacts(t *testing.T) {
	_, err := LoadPipelineModel(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadPipelineModel(writeArtifact(t, `{"classes":["Only"],"numeric":[{"name":"Sugar"}]}`))
	assert.Error(t, err)

	_, err = LoadPipelineModel(writeArtifact(t, `{"classes":["No","Yes"]}`))
	assert.Error(t, err)

	_, err = LoadPipelineModel(writeArtifact(t, `not json`))
	assert.Error(t, err)
}

func TestPipelineModelPredict(t *testing.T) {
	m, err := LoadPipelineModel(writeArtifact(t, testArtifact))
	require.NoError(t, err)

	sugary := models.FeatureRow{Sugar: 2, Protein: 1}
	assert.Equal(t, "No", m.Predict(sugary))

	hearty := models.FeatureRow{Sugar: 1, Protein: 3, Ingredients: "rolled oats, water"}
	assert.Equal(t, "Yes", m.Predict(hearty))
}

func TestPipelineModelTransform(t *testing.T) {
	m, err := LoadPipelineModel(writeArtifact(t, testArtifact))
	require.NoError(t, err)

	row := models.FeatureRow{Sugar: 2, Protein: 1, Ingredients: "Oats, salt"}
	vec := m.Transform(row)

	assert.Equal(t, []float64{2, 1, 1}, vec)

	// Tokenization is word-based: "oatsmeal" must not count as "oats".
	row.Ingredients = "oatsmeal"
	assert.Equal(t, []float64{2, 1, 0}, m.Transform(row))
}

func TestPipelineModelTransformStandardizes(t *testing.T) {
	artifact := `{
	  "classes": ["No", "Yes"],
	  "intercept": 0,
	  "numeric": [{"name": "Calories", "mean": 100, "std": 50, "weight": -1}],
	  "vocabulary": []
	}`
	m, err := LoadPipelineModel(writeArtifact(t, artifact))
	require.NoError(t, err)

	vec := m.Transform(models.FeatureRow{Calories: 200})
	assert.Equal(t, []float64{2}, vec)
}

func TestPipelineModelContributions(t *testing.T) {
	m, err := LoadPipelineModel(writeArtifact(t, testArtifact))
	require.NoError(t, err)

	contribs := m.Contributions([]float64{2, 1, 1})
	assert.Equal(t, []float64{-2, 1, 0.5}, contribs)
}

func TestPipelineModelSynthesizesUnnamedFeatures(t *testing.T) {
	artifact := `{
	  "classes": ["No", "Yes"],
	  "intercept": 0,
	  "numeric": [{"mean": 0, "std": 1, "weight": 1}],
	  "vocabulary": [{"weight": 1}]
	}`
	m, err := LoadPipelineModel(writeArtifact(t, artifact))
	require.NoError(t, err)
	assert.Equal(t, []string{"feature_0", "feature_1"}, m.FeatureNames())
}

func TestShippedArtifactLoads(t *testing.T) {
	m, err := LoadPipelineModel(filepath.Join("..", "model", "consumption_model.json"))
	require.NoError(t, err)
	assert.Len(t, m.FeatureNames(), 18)
}
