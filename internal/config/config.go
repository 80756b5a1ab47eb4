package config

import (
	"fmt"
	"os"
	"strings"

	"prompt-api/internal/models"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	LogLevel    string
	Bedrock     BedrockConfig
	Generation  GenerationConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
}

// BedrockConfig holds the inference endpoint configuration
type BedrockConfig struct {
	Backend          string // "bedrock" or "mock"
	Region           string
	EndpointURL      string // optional override, e.g. a VPC endpoint or a local stub
	DefaultModelID   string
	AnthropicVersion string
}

// GenerationConfig holds defaults and bounds for generation parameters
type GenerationConfig struct {
	DefaultMaxTokens       int
	MaxTokensLimit         int
	DefaultTemperature     float64
	OmitDefaultTemperature bool
	AllowModelOverride     bool
	KnownModelIDs          []string // models reported by name in metrics; others share one label
}

// CORSConfig holds cross-origin header values applied to every response
type CORSConfig struct {
	AllowOrigin  string
	AllowHeaders string
	AllowMethods string
}

// Headers returns the CORS header set attached to every response
func (c CORSConfig) Headers() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  c.AllowOrigin,
		"Access-Control-Allow-Headers": c.AllowHeaders,
		"Access-Control-Allow-Methods": c.AllowMethods,
	}
}

// RequestDefaults returns the generation defaults derived from configuration
func (c *Config) RequestDefaults() models.RequestDefaults {
	defaults := models.RequestDefaults{
		ModelID:            c.Bedrock.DefaultModelID,
		MaxTokens:          c.Generation.DefaultMaxTokens,
		MaxTokensLimit:     c.Generation.MaxTokensLimit,
		AllowModelOverride: c.Generation.AllowModelOverride,
	}
	if !c.Generation.OmitDefaultTemperature {
		temperature := c.Generation.DefaultTemperature
		defaults.Temperature = &temperature
	}
	return defaults
}

// RateLimitConfig holds the local server rate limiter settings
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8081")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("INFERENCE_BACKEND", "bedrock")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("BEDROCK_MODEL_ID", DefaultModelID)
	v.SetDefault("ANTHROPIC_VERSION", DefaultAnthropicVersion)
	v.SetDefault("DEFAULT_MAX_TOKENS", 1000)
	v.SetDefault("MAX_TOKENS_LIMIT", 4096)
	v.SetDefault("DEFAULT_TEMPERATURE", 0.7)
	v.SetDefault("OMIT_DEFAULT_TEMPERATURE", false)
	v.SetDefault("ALLOW_MODEL_OVERRIDE", true)
	v.SetDefault("KNOWN_MODEL_IDS", "")
	v.SetDefault("CORS_ALLOW_ORIGIN", "*")
	v.SetDefault("CORS_ALLOW_HEADERS", "Content-Type, Authorization, X-Request-ID")
	v.SetDefault("CORS_ALLOW_METHODS", "POST, OPTIONS")
	v.SetDefault("RATE_LIMIT_RPS", 10.0)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	region := v.GetString("BEDROCK_REGION")
	if region == "" {
		region = v.GetString("AWS_REGION")
	}

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Bedrock: BedrockConfig{
			Backend:          v.GetString("INFERENCE_BACKEND"),
			Region:           region,
			EndpointURL:      v.GetString("BEDROCK_ENDPOINT_URL"),
			DefaultModelID:   v.GetString("BEDROCK_MODEL_ID"),
			AnthropicVersion: v.GetString("ANTHROPIC_VERSION"),
		},
		Generation: GenerationConfig{
			DefaultMaxTokens:       v.GetInt("DEFAULT_MAX_TOKENS"),
			MaxTokensLimit:         v.GetInt("MAX_TOKENS_LIMIT"),
			DefaultTemperature:     v.GetFloat64("DEFAULT_TEMPERATURE"),
			OmitDefaultTemperature: v.GetBool("OMIT_DEFAULT_TEMPERATURE"),
			AllowModelOverride:     v.GetBool("ALLOW_MODEL_OVERRIDE"),
			KnownModelIDs:          splitList(v.GetString("KNOWN_MODEL_IDS")),
		},
		CORS: CORSConfig{
			AllowOrigin:  v.GetString("CORS_ALLOW_ORIGIN"),
			AllowHeaders: v.GetString("CORS_ALLOW_HEADERS"),
			AllowMethods: v.GetString("CORS_ALLOW_METHODS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for values the handler cannot work with
func (c *Config) Validate() error {
	if c.Bedrock.DefaultModelID == "" {
		return fmt.Errorf("invalid configuration: BEDROCK_MODEL_ID cannot be empty")
	}
	if c.Bedrock.AnthropicVersion == "" {
		return fmt.Errorf("invalid configuration: ANTHROPIC_VERSION cannot be empty")
	}
	if c.Generation.MaxTokensLimit <= 0 {
		return fmt.Errorf("invalid configuration: MAX_TOKENS_LIMIT must be greater than 0")
	}
	if c.Generation.DefaultMaxTokens <= 0 || c.Generation.DefaultMaxTokens > c.Generation.MaxTokensLimit {
		return fmt.Errorf("invalid configuration: DEFAULT_MAX_TOKENS must be between 1 and %d", c.Generation.MaxTokensLimit)
	}
	if c.Generation.DefaultTemperature < 0 || c.Generation.DefaultTemperature > 1 {
		return fmt.Errorf("invalid configuration: DEFAULT_TEMPERATURE must be between 0 and 1")
	}
	return nil
}

// Default returns a configuration populated with built-in defaults and no environment lookups
func Default() *Config {
	return &Config{
		Environment: "development",
		Port:        "8081",
		LogLevel:    "info",
		Bedrock: BedrockConfig{
			Backend:          "bedrock",
			Region:           "us-east-1",
			DefaultModelID:   DefaultModelID,
			AnthropicVersion: DefaultAnthropicVersion,
		},
		Generation: GenerationConfig{
			DefaultMaxTokens:   1000,
			MaxTokensLimit:     4096,
			DefaultTemperature: 0.7,
			AllowModelOverride: true,
		},
		CORS: CORSConfig{
			AllowOrigin:  "*",
			AllowHeaders: "Content-Type, Authorization, X-Request-ID",
			AllowMethods: "POST, OPTIONS",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 10,
			Burst:             20,
		},
	}
}

const (
	// DefaultModelID is the model used when neither configuration nor request names one
	DefaultModelID = "anthropic.claude-3-haiku-20240307-v1:0"

	// DefaultAnthropicVersion is the schema tag Bedrock expects for Anthropic messages
	DefaultAnthropicVersion = "bedrock-2023-05-31"
)

// splitList parses a comma separated list, dropping empty entries
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
