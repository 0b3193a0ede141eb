package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/guptavaibhav1806/food-analyzer-api/models"
	"github.com/guptavaibhav1806/food-analyzer-api/utils"
)

// DecisionService sequences source selection, hard-stop rules, scoring,
// classification and attribution into a single Decision. All collaborators
// are injected at construction and never replaced afterwards.
type DecisionService struct {
	vision   VisionExtractor
	registry RegistryClient
	barcode  BarcodeDecoder
	pipeline Pipeline
	topK     int
}

// AnalyzeRequest carries the request-scoped inputs: an uploaded image
// and/or an explicit barcode, plus the caller's profile.
type AnalyzeRequest struct {
	Image     []byte
	ImageMIME string
	Barcode   string
	Profile   *models.UserProfile
}

func NewDecisionService(vision VisionExtractor, registry RegistryClient, barcode BarcodeDecoder, pipeline Pipeline, topK int) *DecisionService {
	if topK <= 0 {
		topK = utils.DefaultTopK
	}
	return &DecisionService{
		vision:   vision,
		registry: registry,
		barcode:  barcode,
		pipeline: pipeline,
		topK:     topK,
	}
}

// Analyze produces the consumption decision for one request. The only
// user-visible failures are a missing usable source and extractor output
// that does not parse; everything else degrades to documented defaults.
func (s *DecisionService) Analyze(ctx context.Context, req AnalyzeRequest) (*models.Decision, error) {
	timer := prometheus.NewTimer(analyzeDuration)
	defer timer.ObserveDuration()

	profile := req.Profile
	if profile == nil {
		profile = models.DefaultProfile()
	}

	product, source, err := s.selectSource(ctx, req)
	if err != nil {
		return nil, err
	}

	analysis := models.Analysis{
		Ingredients:    product.Ingredients,
		NutritionFacts: product.NutritionFacts,
	}

	// Hard constraints run before the classifier; a hit is authoritative.
	if hs := utils.EvaluateSafety(profile, product); hs != nil {
		decisionsTotal.WithLabelValues(string(source), "blocked").Inc()
		return &models.Decision{
			Profile:        profile,
			Source:         source,
			Analysis:       analysis,
			ShouldConsume:  "No",
			NutriScore:     models.NutriScore{Score: hs.ForcedScore, Grade: hs.ForcedGrade},
			Deductions:     []string{hs.Reason},
			HardStopReason: hs.Reason,
		}, nil
	}

	score := utils.ScoreNutrition(profile, product)
	row := utils.NormalizeFeatures(profile, product)

	// Any label other than "Yes" is treated as "No" (fail closed).
	should := "No"
	if s.pipeline.Predict(row) == "Yes" {
		should = "Yes"
	}

	transformed := s.pipeline.Transform(row)
	atts := utils.RankAttributions(s.pipeline.FeatureNames(), s.pipeline.Contributions(transformed), s.topK)

	decisionsTotal.WithLabelValues(string(source), strings.ToLower(should)).Inc()
	return &models.Decision{
		Profile:       profile,
		Source:        source,
		Analysis:      analysis,
		ShouldConsume: should,
		NutriScore:    models.NutriScore{Score: score.Score, Grade: score.Grade},
		Attributions:  atts,
		Explanation:   utils.FormatAttributions(atts),
		Deductions:    score.Deductions,
	}, nil
}

// selectSource prefers a registry lookup keyed by an explicit or
// image-derived barcode and falls back to vision extraction. Exactly one
// source produces the record.
func (s *DecisionService) selectSource(ctx context.Context, req AnalyzeRequest) (*models.ProductRecord, models.Source, error) {
	barcode := strings.TrimSpace(req.Barcode)
	if barcode == "" && len(req.Image) > 0 && s.barcode != nil {
		if code, err := s.barcode.Decode(req.Image); err == nil {
			barcode = code
		}
	}

	if barcode != "" && s.registry != nil {
		if rec, err := s.registry.Lookup(ctx, barcode); err == nil {
			return rec, models.SourceRegistry, nil
		}
		registryFallbackTotal.Inc()
	}

	if len(req.Image) == 0 {
		return nil, "", fmt.Errorf("barcode %q matched no product and no image was supplied for extraction", barcode)
	}

	raw, err := s.vision.Extract(ctx, req.Image, req.ImageMIME)
	if err != nil {
		return nil, "", fmt.Errorf("vision extraction failed: %w", err)
	}

	rec, err := utils.ParseExtraction(raw)
	if err != nil {
		return nil, "", err
	}
	return rec, models.SourceVision, nil
}
