package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"prompt-api/internal/adapters/bedrock"
	"prompt-api/internal/metrics"
	"prompt-api/internal/models"
)

// generationService implements the GenerationService interface
type generationService struct {
	invoker          bedrock.ModelInvoker
	defaults         models.RequestDefaults
	anthropicVersion string
	metrics          *metrics.Metrics
	knownModels      map[string]struct{}
	validator        *validator.Validate
}

// NewGenerationService creates a new generation service instance
func NewGenerationService(invoker bedrock.ModelInvoker, config *ServiceConfig) GenerationService {
	knownModels := make(map[string]struct{}, len(config.KnownModels)+1)
	if config.Defaults.ModelID != "" {
		knownModels[config.Defaults.ModelID] = struct{}{}
	}
	for _, id := range config.KnownModels {
		knownModels[id] = struct{}{}
	}

	return &generationService{
		invoker:          invoker,
		defaults:         config.Defaults,
		anthropicVersion: config.AnthropicVersion,
		metrics:          config.Metrics,
		knownModels:      knownModels,
		validator:        validator.New(),
	}
}

// modelLabel returns the metric label for a model id; ids outside the known set share OtherModelLabel
func (s *generationService) modelLabel(modelID string) string {
	if _, ok := s.knownModels[modelID]; ok {
		return modelID
	}
	return metrics.OtherModelLabel
}

// ParseRequest decodes and validates a request payload
func (s *generationService) ParseRequest(payload []byte) (*models.GenerationRequest, error) {
	input, err := models.DecodeGenerationInput(payload)
	if err != nil {
		return nil, err
	}

	req, err := models.NewGenerationRequest(input, s.defaults)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, models.FromValidatorError(err)
	}

	return req, nil
}

// BuildProviderRequest serializes the provider request
func (s *generationService) BuildProviderRequest(req *models.GenerationRequest) ([]byte, error) {
	if req == nil {
		return nil, fmt.Errorf("generation request cannot be nil")
	}

	body, err := json.Marshal(models.NewProviderRequest(req, s.anthropicVersion))
	if err != nil {
		return nil, fmt.Errorf("failed to encode provider request: %w", err)
	}
	return body, nil
}

// Generate invokes the endpoint once and extracts the completion
func (s *generationService) Generate(ctx context.Context, req *models.GenerationRequest) (*GenerationResult, error) {
	body, err := s.BuildProviderRequest(req)
	if err != nil {
		return nil, err
	}

	label := s.modelLabel(req.ModelID)
	start := time.Now()
	out, err := s.invoker.InvokeModel(ctx, &bedrock.InvokeInput{
		ModelID:     req.ModelID,
		ContentType: models.ContentTypeJSON,
		Accept:      models.ContentTypeJSON,
		Body:        body,
	})
	s.metrics.ObserveInference(label, time.Since(start), err)
	if err != nil {
		if bedrock.IsInvokeError(err) {
			return nil, err
		}
		return nil, bedrock.NewInvokeError("InvokeModel", req.ModelID, err)
	}
	if out == nil {
		return nil, bedrock.NewInvokeError("InvokeModel", req.ModelID, bedrock.ErrMalformedResponse)
	}

	var resp models.ProviderResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return nil, bedrock.NewInvokeError("DecodeResponse", req.ModelID,
			fmt.Errorf("%w: %v", bedrock.ErrMalformedResponse, err))
	}

	text, ok := resp.FirstText()
	if !ok {
		return nil, bedrock.NewInvokeError("DecodeResponse", req.ModelID, bedrock.ErrEmptyCompletion)
	}

	usage := resp.TokenUsage()
	if usage.InputTokens < 0 || usage.OutputTokens < 0 {
		return nil, bedrock.NewInvokeError("DecodeResponse", req.ModelID,
			fmt.Errorf("%w: negative token usage", bedrock.ErrMalformedResponse))
	}
	s.metrics.ObserveTokens(label, usage.InputTokens, usage.OutputTokens)

	return &GenerationResult{
		Text:       text,
		ModelID:    req.ModelID,
		StopReason: resp.StopReason,
		Usage:      usage,
	}, nil
}
