// Package config loads service configuration from an optional YAML file
// with environment variable overrides on top, so container deployments can
// run without any file at all.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/approwess/sahayak-ai/lesson"
)

// Environment variable names recognized on top of the YAML file.
const (
	EnvConfigFile      = "SAHAYAK_CONFIG"
	EnvAddr            = "SAHAYAK_ADDR"
	EnvProvider        = "SAHAYAK_PROVIDER"
	EnvCatalogPath     = "SAHAYAK_CATALOG_PATH"
	EnvOutputDir       = "SAHAYAK_OUTPUT_DIR"
	EnvResourceBaseURL = "SAHAYAK_RESOURCE_BASE_URL"
)

// Config is the root service configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`

	// Provider selects the text generation backend: "gemini" or "openai".
	// Image generation always uses Gemini.
	Provider string `yaml:"provider"`

	// CatalogPath points at the resource catalog JSON file.
	CatalogPath string `yaml:"catalog_path"`

	// OutputDir is where generated images and documents are written.
	OutputDir string `yaml:"output_dir"`

	// ResourceBaseURL is the prefix of resolved resource links.
	ResourceBaseURL string `yaml:"resource_base_url"`

	// MaxImages caps illustrations per lesson run.
	MaxImages int `yaml:"max_images"`
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() *Config {
	return &Config{
		Addr:            ":8080",
		Provider:        "gemini",
		CatalogPath:     "resource_catalog.json",
		OutputDir:       "generated_images",
		ResourceBaseURL: lesson.DefaultResourceBaseURL,
		MaxImages:       lesson.DefaultMaxImages,
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (or $SAHAYAK_CONFIG when path is empty), then environment overrides. A
// missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAddr); v != "" {
		c.Addr = v
	}
	if v := os.Getenv(EnvProvider); v != "" {
		c.Provider = v
	}
	if v := os.Getenv(EnvCatalogPath); v != "" {
		c.CatalogPath = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvResourceBaseURL); v != "" {
		c.ResourceBaseURL = v
	}
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr cannot be empty")
	}
	if c.Provider != "gemini" && c.Provider != "openai" {
		return fmt.Errorf("provider must be gemini or openai, got %q", c.Provider)
	}
	if c.MaxImages < 0 {
		return fmt.Errorf("max_images cannot be negative, got %d", c.MaxImages)
	}
	return nil
}
