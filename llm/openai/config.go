package openai

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds OpenAI-specific configuration settings.
type Config struct {
	APIKey      string  // OpenAI API key
	Model       string  // Default: "gpt-4o-mini"
	BaseURL     string  // Optional override for OpenAI-compatible endpoints
	Temperature float32 // Default: 0.7
	MaxTokens   int     // 0 = provider default
	MaxRetries  int     // Default: 3
}

// NewConfigFromEnv creates config from environment variables with sensible
// defaults.
func NewConfigFromEnv() (*Config, error) {
	config := &Config{
		APIKey:      os.Getenv("OPENAI_API_KEY"),
		Model:       getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		BaseURL:     os.Getenv("OPENAI_BASE_URL"),
		Temperature: getEnvFloatOrDefault("OPENAI_TEMPERATURE", 0.7),
		MaxTokens:   getEnvIntOrDefault("OPENAI_MAX_TOKENS", 0),
		MaxRetries:  getEnvIntOrDefault("OPENAI_MAX_RETRIES", 3),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks if the configuration is valid and complete.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	if c.Model == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	if c.Temperature < 0.0 || c.Temperature > 2.0 {
		return fmt.Errorf("temperature must be between 0.0 and 2.0, got %f", c.Temperature)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("maxRetries cannot be negative, got %d", c.MaxRetries)
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
