package gemini

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/approwess/sahayak-ai/llm"
)

// GeminiClient implements llm.Provider and llm.ImageProvider on top of the
// Google GenAI API: chat completions for lesson text and Imagen for the
// lesson illustrations.
type GeminiClient struct {
	genaiClient *genai.Client
	config      *Config

	// Rate limiting
	rateLimiter *time.Ticker
	tokens      chan struct{}
}

// NewGeminiClient creates a new Gemini client with the provided
// configuration.
func NewGeminiClient(ctx context.Context, config *Config) (*GeminiClient, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: config.Backend,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	client := &GeminiClient{
		genaiClient: genaiClient,
		config:      config,
	}

	if config.RateLimit > 0 {
		tokens := make(chan struct{}, config.RateLimit)
		for i := 0; i < config.RateLimit; i++ {
			tokens <- struct{}{}
		}
		client.tokens = tokens
		client.rateLimiter = time.NewTicker(config.RateLimitInterval / time.Duration(config.RateLimit))
		go client.refillTokens()
	}

	return client, nil
}

// NewGeminiClientFromEnv creates a new Gemini client using environment
// variables.
func NewGeminiClientFromEnv(ctx context.Context) (*GeminiClient, error) {
	config, err := NewConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from environment: %w", err)
	}
	return NewGeminiClient(ctx, config)
}

// CallLLM implements llm.Provider, converting messages to the GenAI format.
func (c *GeminiClient) CallLLM(ctx context.Context, messages []llm.Message) (llm.Message, error) {
	if len(messages) == 0 {
		return llm.Message{}, fmt.Errorf("no messages to send")
	}

	if err := c.acquireToken(ctx); err != nil {
		return llm.Message{}, err
	}

	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		contents = append(contents, &genai.Content{
			Role: getRole(msg.Role),
			Parts: []*genai.Part{
				{Text: msg.Content},
			},
		})
	}

	response, err := c.genaiClient.Models.GenerateContent(ctx, c.config.Model, contents, nil)
	if err != nil {
		return llm.Message{}, fmt.Errorf("failed to generate content: %w", err)
	}

	return llm.Message{
		Role:    llm.RoleAssistant,
		Content: response.Text(),
	}, nil
}

// GenerateImage implements llm.ImageProvider. The image is written under the
// configured output directory and its path returned for document assembly.
func (c *GeminiClient) GenerateImage(ctx context.Context, prompt, section string) (string, error) {
	if err := c.acquireToken(ctx); err != nil {
		return "", err
	}

	response, err := c.genaiClient.Models.GenerateImages(ctx, c.config.ImageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    "1:1",
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate image: %w", err)
	}
	if len(response.GeneratedImages) == 0 || response.GeneratedImages[0].Image == nil {
		return "", fmt.Errorf("no image data in response for %q", section)
	}

	if err := os.MkdirAll(c.config.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s.png", sanitizeFileName(section), uuid.NewString()[:8])
	path := filepath.Join(c.config.OutputDir, name)
	if err := os.WriteFile(path, response.GeneratedImages[0].Image.ImageBytes, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return path, nil
}

// GetName returns the provider name.
func (c *GeminiClient) GetName() string { return "gemini" }

// Close stops the rate limiter and cleans up resources.
func (c *GeminiClient) Close() {
	if c.rateLimiter != nil {
		c.rateLimiter.Stop()
	}
}

func (c *GeminiClient) acquireToken(ctx context.Context) error {
	if c.tokens == nil {
		return nil
	}
	select {
	case <-c.tokens:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// refillTokens runs in a goroutine to refill the token bucket at the
// configured rate.
func (c *GeminiClient) refillTokens() {
	for range c.rateLimiter.C {
		select {
		case c.tokens <- struct{}{}:
		default:
			// Token bucket is full, skip.
		}
	}
}

func getRole(role string) string {
	switch role {
	case llm.RoleAssistant:
		return genai.RoleModel
	default:
		return genai.RoleUser
	}
}

func sanitizeFileName(section string) string {
	s := strings.ToLower(strings.TrimSpace(section))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
	s = strings.Trim(s, "_")
	if s == "" {
		return "section"
	}
	return s
}
