package bedrock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// InvokeInput carries the parameters for one InvokeModel call
type InvokeInput struct {
	ModelID     string
	ContentType string
	Accept      string
	Body        []byte // serialized provider request
}

// InvokeOutput is the raw endpoint response
type InvokeOutput struct {
	Body        []byte
	ContentType string
}

// ModelInvoker is the synchronous inference endpoint the handler depends on.
// Implementations are created once per process and must be safe for concurrent use.
type ModelInvoker interface {
	// InvokeModel sends one request and blocks until the endpoint answers or fails
	InvokeModel(ctx context.Context, input *InvokeInput) (*InvokeOutput, error)
}

// RuntimeAPI is the subset of *bedrockruntime.Client used by BedrockInvoker
type RuntimeAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// InvokerConfig represents configuration for invoker construction
type InvokerConfig struct {
	Backend     string // "bedrock" or "mock"
	Region      string
	EndpointURL string
}
