package server

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"

	"prompt-api/internal/adapters/bedrock"
	"prompt-api/internal/config"
)

// TestNewContainer verifies that the container can be created with the local backend
func TestNewContainer(t *testing.T) {
	cfg := config.Default()
	cfg.Environment = "test"
	cfg.Bedrock.Backend = string(bedrock.BackendMock)

	container, err := NewContainer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	if container == nil {
		t.Fatal("Container is nil")
	}
	if container.GenerationService == nil {
		t.Error("GenerationService is nil")
	}
	if container.Invoker == nil {
		t.Error("Invoker is nil")
	}
	if container.Metrics == nil || container.Registry == nil {
		t.Error("Metrics are not initialized")
	}

	if err := container.Close(); err != nil {
		t.Errorf("Failed to close container: %v", err)
	}
}

// TestNewContainerUnknownBackend verifies that a misconfigured backend is reported
func TestNewContainerUnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Bedrock.Backend = "unknown"

	if _, err := NewContainer(context.Background(), cfg); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

// TestNewContainerWithInvoker verifies that the service uses the injected invoker
func TestNewContainerWithInvoker(t *testing.T) {
	invoker := bedrock.NewMockInvoker([]byte(`{"content":[{"text":"ok"}]}`))

	container, err := NewContainerWithInvoker(config.Default(), invoker)
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	req, err := container.GenerationService.ParseRequest([]byte(`{"prompt":"hello"}`))
	if err != nil {
		t.Fatalf("Failed to parse request: %v", err)
	}

	result, err := container.GenerationService.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Failed to generate: %v", err)
	}
	if result.Text != "ok" {
		t.Errorf("Expected text 'ok', got '%s'", result.Text)
	}
	if invoker.CallCount() != 1 {
		t.Errorf("Expected 1 invocation, got %d", invoker.CallCount())
	}
}

// TestNewContainerWithInvokerErrors verifies argument checks
func TestNewContainerWithInvokerErrors(t *testing.T) {
	if _, err := NewContainerWithInvoker(nil, bedrock.NewMockInvoker(nil)); err == nil {
		t.Error("Expected error for nil config")
	}
	if _, err := NewContainerWithInvoker(config.Default(), nil); err == nil {
		t.Error("Expected error for nil invoker")
	}
}

// TestNewLogger verifies formatter and level selection
func TestNewLogger(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		level       string
		wantLevel   logrus.Level
		wantJSON    bool
	}{
		{"development", "development", "debug", logrus.DebugLevel, false},
		{"production", "production", "warn", logrus.WarnLevel, true},
		{"invalid level", "prod", "chatty", logrus.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Environment = tt.environment
			cfg.LogLevel = tt.level

			logger := NewLogger(cfg)
			if logger.GetLevel() != tt.wantLevel {
				t.Errorf("Expected level %s, got %s", tt.wantLevel, logger.GetLevel())
			}

			_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
			if isJSON != tt.wantJSON {
				t.Errorf("Expected JSON formatter %v, got %v", tt.wantJSON, isJSON)
			}
		})
	}
}
