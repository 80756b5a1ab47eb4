package models

import (
	"errors"
)

// Common constants
const (
	// RoleUser is the only message role a single-turn prompt carries
	RoleUser = "user"

	// ContentTypeJSON is used for both the content type and accept negotiation with the endpoint
	ContentTypeJSON = "application/json"

	// PromptLogLength is how many characters of the prompt are echoed into the success log
	PromptLogLength = 50
)

// Sentinel errors for input decoding
var (
	ErrInvalidJSON   = errors.New("invalid JSON in request body")
	ErrMissingPrompt = errors.New("missing prompt in request body")
)

// ValidationError represents a validation error with field-specific details
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (ve *ValidationError) Error() string {
	return ve.Message
}

// MissingFieldError reports a structural field that had to be present in the event
type MissingFieldError struct {
	Field string
}

// Error implements the error interface
func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Field
}
