package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"prompt-api/internal/adapters/bedrock"
	"prompt-api/internal/models"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ErrorKind classifies a pipeline failure
type ErrorKind int

const (
	KindDecode ErrorKind = iota + 1
	KindValidation
	KindCollaborator
	KindUnknown
)

// String returns the kind's log label
func (k ErrorKind) String() string {
	switch k {
	case KindDecode:
		return "decode"
	case KindValidation:
		return "validation"
	case KindCollaborator:
		return "collaborator"
	default:
		return "unknown"
	}
}

// StatusCode maps the kind to its HTTP status
func (k ErrorKind) StatusCode() int {
	switch k {
	case KindDecode, KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HandlerError is a classified pipeline failure.
// Message and Detail are client-facing; Err carries the full detail for the log.
type HandlerError struct {
	Kind    ErrorKind
	Message string
	Detail  string
	Err     error
}

func (e *HandlerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// classify maps an error produced by a pipeline stage to its kind and client message
func classify(err error) *HandlerError {
	var handlerErr *HandlerError
	if errors.As(err, &handlerErr) {
		return handlerErr
	}

	var missingField *models.MissingFieldError
	var validationErr *models.ValidationError
	var invokeErr *bedrock.InvokeError

	switch {
	case errors.Is(err, models.ErrInvalidJSON):
		return &HandlerError{Kind: KindDecode, Message: "Invalid JSON in request body", Err: err}
	case errors.Is(err, models.ErrMissingPrompt):
		return &HandlerError{Kind: KindValidation, Message: "Missing prompt in request body", Err: err}
	case errors.As(err, &missingField):
		return &HandlerError{Kind: KindValidation, Message: "Missing required field: " + missingField.Field, Err: err}
	case errors.As(err, &validationErr):
		return &HandlerError{Kind: KindValidation, Message: "Invalid request: " + validationErr.Message, Err: err}
	case errors.As(err, &invokeErr):
		return &HandlerError{
			Kind:    KindCollaborator,
			Message: "Inference service error",
			Detail:  invokeErr.Detail(),
			Err:     err,
		}
	default:
		return unknownError(err)
	}
}

func unknownError(err error) *HandlerError {
	return &HandlerError{
		Kind:    KindUnknown,
		Message: "Internal server error",
		Detail:  "An unexpected error occurred",
		Err:     err,
	}
}
