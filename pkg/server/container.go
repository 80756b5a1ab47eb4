package server

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"prompt-api/internal/adapters/bedrock"
	"prompt-api/internal/config"
	"prompt-api/internal/metrics"
	"prompt-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config            *config.Config
	Logger            *logrus.Logger
	Invoker           bedrock.ModelInvoker
	GenerationService services.GenerationService
	Metrics           *metrics.Metrics
	Registry          *prometheus.Registry
}

// NewContainer creates a new dependency injection container backed by the configured invoker
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	invoker, err := bedrock.NewInvoker(ctx, &bedrock.InvokerConfig{
		Backend:     cfg.Bedrock.Backend,
		Region:      cfg.Bedrock.Region,
		EndpointURL: cfg.Bedrock.EndpointURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model invoker: %w", err)
	}

	return NewContainerWithInvoker(cfg, invoker)
}

// NewContainerWithInvoker creates a container around an existing invoker
func NewContainerWithInvoker(cfg *config.Config, invoker bedrock.ModelInvoker) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	serviceContainer, err := services.NewServiceContainer(invoker, &services.ServiceConfig{
		Defaults:         cfg.RequestDefaults(),
		AnthropicVersion: cfg.Bedrock.AnthropicVersion,
		Metrics:          m,
		KnownModels:      cfg.Generation.KnownModelIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}
	if err := serviceContainer.Validate(); err != nil {
		return nil, fmt.Errorf("invalid service container: %w", err)
	}

	container := &Container{
		Config:            cfg,
		Logger:            NewLogger(cfg),
		Invoker:           invoker,
		GenerationService: serviceContainer.GenerationService,
		Metrics:           m,
		Registry:          registry,
	}

	return container, nil
}

// NewLogger builds the process logger: JSON for deployed stages, text for local development
func NewLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	if cfg.Environment == "development" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

// Close cleans up all resources
func (c *Container) Close() error {
	// The Bedrock client holds no resources that need releasing
	return nil
}
