package bedrock

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// Common invocation error types
var (
	ErrMalformedResponse = errors.New("malformed response from inference endpoint")
	ErrEmptyCompletion   = errors.New("inference endpoint returned no text content")
	ErrUnknownBackend    = errors.New("unknown inference backend")
)

// InvokeError represents an inference endpoint failure with additional context
type InvokeError struct {
	Op      string // Operation that failed (e.g., "InvokeModel", "DecodeResponse")
	ModelID string // Model involved in the operation
	Code    string // Service error code, empty for transport failures
	Fault   string // "client", "server" or empty
	Message string // Service error message
	Err     error  // Underlying error
}

func (e *InvokeError) Error() string {
	if e.ModelID != "" {
		return fmt.Sprintf("inference %s failed for model '%s': %v", e.Op, e.ModelID, e.Err)
	}
	return fmt.Sprintf("inference %s failed: %v", e.Op, e.Err)
}

func (e *InvokeError) Unwrap() error {
	return e.Err
}

// Detail returns the best-effort diagnostic text surfaced to callers
func (e *InvokeError) Detail() string {
	switch {
	case e.Code != "" && e.Message != "":
		return e.Code + ": " + e.Message
	case e.Code != "":
		return e.Code
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Op + " failed"
	}
}

// NewInvokeError creates a new InvokeError, extracting service error details when present
func NewInvokeError(op, modelID string, err error) *InvokeError {
	invokeErr := &InvokeError{
		Op:      op,
		ModelID: modelID,
		Err:     err,
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		invokeErr.Code = apiErr.ErrorCode()
		invokeErr.Message = apiErr.ErrorMessage()
		invokeErr.Fault = apiErr.ErrorFault().String()
	}

	return invokeErr
}

// IsInvokeError returns true if the error came from the inference endpoint
func IsInvokeError(err error) bool {
	var invokeErr *InvokeError
	return errors.As(err, &invokeErr)
}

// IsCanceled returns true if the invocation was abandoned because its context ended
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
