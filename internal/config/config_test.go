package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultModelID, cfg.Bedrock.DefaultModelID)
	assert.Equal(t, DefaultAnthropicVersion, cfg.Bedrock.AnthropicVersion)
	assert.Equal(t, 1000, cfg.Generation.DefaultMaxTokens)
	assert.Equal(t, 4096, cfg.Generation.MaxTokensLimit)
	assert.Equal(t, 0.7, cfg.Generation.DefaultTemperature)
	assert.Equal(t, "*", cfg.CORS.AllowOrigin)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("BEDROCK_MODEL_ID", "anthropic.claude-3-sonnet-20240229-v1:0")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("BEDROCK_REGION", "us-west-2")
	t.Setenv("DEFAULT_MAX_TOKENS", "256")
	t.Setenv("OMIT_DEFAULT_TEMPERATURE", "true")
	t.Setenv("ALLOW_MODEL_OVERRIDE", "false")
	t.Setenv("INFERENCE_BACKEND", "mock")
	t.Setenv("CORS_ALLOW_ORIGIN", "https://example.com")
	t.Setenv("KNOWN_MODEL_IDS", " model-a, ,model-b ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "anthropic.claude-3-sonnet-20240229-v1:0", cfg.Bedrock.DefaultModelID)
	assert.Equal(t, "us-west-2", cfg.Bedrock.Region)
	assert.Equal(t, "mock", cfg.Bedrock.Backend)
	assert.Equal(t, 256, cfg.Generation.DefaultMaxTokens)
	assert.True(t, cfg.Generation.OmitDefaultTemperature)
	assert.False(t, cfg.Generation.AllowModelOverride)
	assert.Equal(t, "https://example.com", cfg.CORS.AllowOrigin)
	assert.Equal(t, []string{"model-a", "model-b"}, cfg.Generation.KnownModelIDs)

	defaults := cfg.RequestDefaults()
	assert.Nil(t, defaults.Temperature)
	assert.Equal(t, 256, defaults.MaxTokens)
	assert.False(t, defaults.AllowModelOverride)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("DEFAULT_MAX_TOKENS", "9000")

	_, err := Load()
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty model", func(c *Config) { c.Bedrock.DefaultModelID = "" }, true},
		{"empty version", func(c *Config) { c.Bedrock.AnthropicVersion = "" }, true},
		{"zero limit", func(c *Config) { c.Generation.MaxTokensLimit = 0 }, true},
		{"zero default", func(c *Config) { c.Generation.DefaultMaxTokens = 0 }, true},
		{"temperature above one", func(c *Config) { c.Generation.DefaultTemperature = 1.2 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_RequestDefaults(t *testing.T) {
	cfg := Default()
	defaults := cfg.RequestDefaults()

	assert.Equal(t, DefaultModelID, defaults.ModelID)
	assert.Equal(t, 1000, defaults.MaxTokens)
	require.NotNil(t, defaults.Temperature)
	assert.Equal(t, 0.7, *defaults.Temperature)

	*defaults.Temperature = 0.1
	assert.Equal(t, 0.7, cfg.Generation.DefaultTemperature)
}

func TestCORSConfig_Headers(t *testing.T) {
	cors := Default().CORS

	first := cors.Headers()
	first["Content-Type"] = "text/plain"

	second := cors.Headers()
	assert.Len(t, second, 3)
	assert.Equal(t, "*", second["Access-Control-Allow-Origin"])
	assert.Equal(t, "POST, OPTIONS", second["Access-Control-Allow-Methods"])
}

func TestAdaptConfigForServerless(t *testing.T) {
	t.Run("not in lambda", func(t *testing.T) {
		cfg := Default()
		adapted := AdaptConfigForServerless(cfg, &ServerlessConfig{IsLambda: false, Stage: "prod"})
		assert.Equal(t, "development", adapted.Environment)
	})

	t.Run("in lambda", func(t *testing.T) {
		cfg := Default()
		cfg.Bedrock.Region = ""
		adapted := AdaptConfigForServerless(cfg, &ServerlessConfig{
			IsLambda:     true,
			FunctionName: "prompt-api-generate",
			Region:       "ap-southeast-2",
			Stage:        "prod",
		})
		assert.Equal(t, "prod", adapted.Environment)
		assert.Equal(t, "ap-southeast-2", adapted.Bedrock.Region)
	})

	t.Run("explicit region wins", func(t *testing.T) {
		cfg := Default()
		adapted := AdaptConfigForServerless(cfg, &ServerlessConfig{IsLambda: true, Region: "eu-central-1", Stage: "dev"})
		assert.Equal(t, "us-east-1", adapted.Bedrock.Region)
	})
}

func TestGetEnv(t *testing.T) {
	t.Setenv("PROMPT_API_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnv("PROMPT_API_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("PROMPT_API_TEST_MISSING", "fallback"))
}
