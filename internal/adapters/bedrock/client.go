package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// BedrockInvoker implements ModelInvoker on top of the Bedrock runtime API
type BedrockInvoker struct {
	api RuntimeAPI
}

// NewBedrockInvoker wraps an existing runtime client
func NewBedrockInvoker(api RuntimeAPI) *BedrockInvoker {
	return &BedrockInvoker{api: api}
}

// NewBedrockInvokerFromConfig loads AWS credentials and builds a runtime client.
// The SDK retryer is disabled: a failed call surfaces directly to the handler.
func NewBedrockInvokerFromConfig(ctx context.Context, cfg *InvokerConfig) (*BedrockInvoker, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := bedrockruntime.NewFromConfig(awsCfg, func(o *bedrockruntime.Options) {
		o.Retryer = aws.NopRetryer{}
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
		}
	})

	return NewBedrockInvoker(client), nil
}

// InvokeModel implements ModelInvoker.InvokeModel
func (b *BedrockInvoker) InvokeModel(ctx context.Context, input *InvokeInput) (*InvokeOutput, error) {
	if input == nil {
		return nil, NewInvokeError("InvokeModel", "", fmt.Errorf("invoke input cannot be nil"))
	}

	out, err := b.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(input.ModelID),
		ContentType: aws.String(input.ContentType),
		Accept:      aws.String(input.Accept),
		Body:        input.Body,
	})
	if err != nil {
		return nil, NewInvokeError("InvokeModel", input.ModelID, err)
	}
	if out == nil {
		return nil, NewInvokeError("InvokeModel", input.ModelID, ErrMalformedResponse)
	}

	return &InvokeOutput{
		Body:        out.Body,
		ContentType: aws.ToString(out.ContentType),
	}, nil
}
