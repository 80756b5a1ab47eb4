package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// GenerationInput is the caller's payload as decoded from the request body
type GenerationInput struct {
	Prompt      string   `json:"prompt"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	ModelID     string   `json:"model_id,omitempty"`
}

// RequestDefaults supplies the values used when the caller omits a parameter
type RequestDefaults struct {
	ModelID            string
	MaxTokens          int
	MaxTokensLimit     int
	Temperature        *float64 // nil means temperature is omitted unless supplied
	AllowModelOverride bool
}

// GenerationRequest is the validated, normalized intent of one invocation
type GenerationRequest struct {
	Prompt      string   `json:"prompt" validate:"required"`
	MaxTokens   int      `json:"max_tokens" validate:"required,min=1"`
	Temperature *float64 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=1"`
	ModelID     string   `json:"model_id" validate:"required,max=2048"`
}

// DecodeGenerationInput decodes a JSON object payload into a GenerationInput.
// Type mismatches are reported as validation errors, not decode errors.
func DecodeGenerationInput(payload []byte) (*GenerationInput, error) {
	var input GenerationInput
	if err := json.Unmarshal(payload, &input); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field := typeErr.Field
			if field == "" {
				field = "body"
			}
			return nil, &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s must be of type %s", field, typeErr.Type.String()),
				Value:   typeErr.Value,
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return &input, nil
}

// NewGenerationRequest applies defaults to the input and checks the prompt
func NewGenerationRequest(input *GenerationInput, defaults RequestDefaults) (*GenerationRequest, error) {
	if input == nil || strings.TrimSpace(input.Prompt) == "" {
		return nil, ErrMissingPrompt
	}

	req := &GenerationRequest{
		Prompt:      input.Prompt,
		MaxTokens:   defaults.MaxTokens,
		Temperature: defaults.Temperature,
		ModelID:     defaults.ModelID,
	}

	if input.MaxTokens != nil {
		req.MaxTokens = *input.MaxTokens
		if err := ValidatePositiveInteger(req.MaxTokens, "max_tokens"); err != nil {
			return nil, err
		}
		if defaults.MaxTokensLimit > 0 && req.MaxTokens > defaults.MaxTokensLimit {
			return nil, &ValidationError{
				Field:   "max_tokens",
				Message: fmt.Sprintf("max_tokens cannot exceed %d", defaults.MaxTokensLimit),
				Value:   req.MaxTokens,
			}
		}
	}

	if input.Temperature != nil {
		temperature := *input.Temperature
		req.Temperature = &temperature
	}

	if input.ModelID != "" {
		if !defaults.AllowModelOverride {
			return nil, &ValidationError{
				Field:   "model_id",
				Message: "model_id cannot be overridden by the request",
				Value:   input.ModelID,
			}
		}
		req.ModelID = SanitizeString(input.ModelID)
	}

	return req, nil
}

// TruncatedPrompt returns the prompt shortened for log output
func (r *GenerationRequest) TruncatedPrompt() string {
	runes := []rune(r.Prompt)
	if len(runes) <= PromptLogLength {
		return r.Prompt
	}
	return string(runes[:PromptLogLength]) + "..."
}
