package services

import (
	"fmt"

	"prompt-api/internal/adapters/bedrock"
	"prompt-api/internal/metrics"
	"prompt-api/internal/models"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	GenerationService GenerationService
}

// ServiceConfig holds configuration for services
type ServiceConfig struct {
	Defaults         models.RequestDefaults
	AnthropicVersion string
	Metrics          *metrics.Metrics
	KnownModels      []string // metric labels beyond the default model
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(invoker bedrock.ModelInvoker, config *ServiceConfig) (*ServiceContainer, error) {
	if invoker == nil {
		return nil, fmt.Errorf("model invoker cannot be nil")
	}
	if config == nil {
		return nil, fmt.Errorf("service config cannot be nil")
	}
	if config.AnthropicVersion == "" {
		return nil, fmt.Errorf("anthropic version cannot be empty")
	}

	return &ServiceContainer{
		GenerationService: NewGenerationService(invoker, config),
	}, nil
}

// Validate validates that all services are properly initialized
func (sc *ServiceContainer) Validate() error {
	if sc.GenerationService == nil {
		return fmt.Errorf("generation service is nil")
	}
	return nil
}
