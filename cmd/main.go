package main

import (
	"context"
	"log"

	"github.com/guptavaibhav1806/food-analyzer-api/config"
	"github.com/guptavaibhav1806/food-analyzer-api/controllers"
	"github.com/guptavaibhav1806/food-analyzer-api/routes"
	"github.com/guptavaibhav1806/food-analyzer-api/services"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var vision services.VisionExtractor
	var err error
	switch cfg.VisionProvider {
	case "openai":
		vision, err = services.NewOpenAIVisionService(cfg.OpenAIAPIKey)
	default:
		vision, err = services.NewGeminiService(ctx, cfg.GenAIAPIKey)
	}
	if err != nil {
		log.Fatalf("failed to initialize vision extractor: %v", err)
	}

	pipeline, err := services.LoadPipelineModel(cfg.ModelPath)
	if err != nil {
		log.Fatalf("failed to load classifier model: %v", err)
	}

	svc := services.NewDecisionService(
		vision,
		services.NewOpenFoodFactsService(cfg.OFFBaseURL),
		services.NewZxingBarcodeService(),
		pipeline,
		cfg.AttributionTopK,
	)

	r := routes.SetupRouter(controllers.NewAnalyzeController(svc))
	r.Run(":" + cfg.Port)
}
