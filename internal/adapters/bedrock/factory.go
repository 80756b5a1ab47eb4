package bedrock

import (
	"context"
	"fmt"
	"strings"
)

// BackendType represents the type of invoker implementation
type BackendType string

const (
	BackendBedrock BackendType = "bedrock"
	BackendMock    BackendType = "mock"
)

// NewInvoker creates a ModelInvoker based on the provided configuration
func NewInvoker(ctx context.Context, config *InvokerConfig) (ModelInvoker, error) {
	if config == nil {
		return nil, fmt.Errorf("invoker config is required")
	}

	backend := BackendType(strings.ToLower(config.Backend))
	if backend == "" {
		backend = BackendBedrock
	}

	switch backend {
	case BackendBedrock:
		invoker, err := NewBedrockInvokerFromConfig(ctx, config)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s invoker: %w", backend, err)
		}
		return invoker, nil
	case BackendMock:
		return NewEchoInvoker(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, config.Backend)
	}
}
