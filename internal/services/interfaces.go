package services

import (
	"context"

	"prompt-api/internal/models"
)

// GenerationService defines the interface for the prompt completion pipeline
type GenerationService interface {
	// ParseRequest decodes and validates a request payload into a GenerationRequest
	ParseRequest(payload []byte) (*models.GenerationRequest, error)

	// BuildProviderRequest serializes the provider request for a generation request.
	// The output is deterministic for a given request.
	BuildProviderRequest(req *models.GenerationRequest) ([]byte, error)

	// Generate invokes the inference endpoint once and extracts the completion
	Generate(ctx context.Context, req *models.GenerationRequest) (*GenerationResult, error)
}

// GenerationResult is the extracted completion for one invocation
type GenerationResult struct {
	Text       string
	ModelID    string
	StopReason string
	Usage      models.ProviderUsage
}
