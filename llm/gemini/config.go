package gemini

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"google.golang.org/genai"
)

// Config holds Gemini-specific configuration settings.
type Config struct {
	APIKey      string        // Google API key
	Model       string        // Default: "gemini-2.0-flash"
	ImageModel  string        // Default: "imagen-4.0-generate-001"
	OutputDir   string        // Where generated images are written
	Temperature float32       // Default: 0.7
	MaxRetries  int           // Default: 3
	Backend     genai.Backend // Default: genai.BackendGeminiAPI

	// Rate limiting configuration (optional)
	RateLimit         int           // Requests per interval, 0 = disabled
	RateLimitInterval time.Duration // Rate limit window, default: 1 minute
}

// NewConfigFromEnv creates config from environment variables with sensible
// defaults.
func NewConfigFromEnv() (*Config, error) {
	config := &Config{
		APIKey:            getEnvOrDefault("GOOGLE_API_KEY", ""),
		Model:             getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		ImageModel:        getEnvOrDefault("GEMINI_IMAGE_MODEL", "imagen-4.0-generate-001"),
		OutputDir:         getEnvOrDefault("SAHAYAK_OUTPUT_DIR", "generated_images"),
		Temperature:       getEnvFloatOrDefault("GEMINI_TEMPERATURE", 0.7),
		MaxRetries:        getEnvIntOrDefault("GEMINI_MAX_RETRIES", 3),
		Backend:           genai.BackendGeminiAPI,
		RateLimit:         getEnvIntOrDefault("GEMINI_RATE_LIMIT", 0),
		RateLimitInterval: time.Duration(getEnvIntOrDefault("GEMINI_RATE_LIMIT_INTERVAL_SECONDS", 60)) * time.Second,
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks if the configuration is valid and complete.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY environment variable is required")
	}
	if c.Model == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	if c.Temperature < 0.0 || c.Temperature > 1.0 {
		return fmt.Errorf("temperature must be between 0.0 and 1.0, got %f", c.Temperature)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("maxRetries cannot be negative, got %d", c.MaxRetries)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rateLimit cannot be negative, got %d", c.RateLimit)
	}
	if c.RateLimit > 0 && c.RateLimitInterval <= 0 {
		return fmt.Errorf("rateLimitInterval must be positive when rate limiting is enabled, got %v", c.RateLimitInterval)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(parsed)
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
