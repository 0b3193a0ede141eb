package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the immutable runtime configuration, built once at startup and
// passed down by value — nothing reads the environment after Load returns.
type Config struct {
	Port            string
	VisionProvider  string // "gemini" or "openai"
	GenAIAPIKey     string
	OpenAIAPIKey    string
	OFFBaseURL      string
	ModelPath       string
	AttributionTopK int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading configuration from environment")
	}

	cfg := &Config{
		Port:            getenv("PORT", "8080"),
		VisionProvider:  getenv("VISION_PROVIDER", "gemini"),
		GenAIAPIKey:     os.Getenv("GENAI_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OFFBaseURL:      os.Getenv("OFF_BASE_URL"),
		ModelPath:       getenv("MODEL_PATH", "model/consumption_model.json"),
		AttributionTopK: getenvInt("ATTRIBUTION_TOP_K", 8),
	}

	switch cfg.VisionProvider {
	case "gemini":
		if cfg.GenAIAPIKey == "" {
			log.Fatalf("GENAI_API_KEY is required when VISION_PROVIDER=gemini")
		}
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			log.Fatalf("OPENAI_API_KEY is required when VISION_PROVIDER=openai")
		}
	default:
		log.Fatalf("unknown VISION_PROVIDER %q (want gemini or openai)", cfg.VisionProvider)
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("ignoring invalid %s=%q", key, v)
		return fallback
	}
	return n
}
