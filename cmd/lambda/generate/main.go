package main

import (
	"context"
	"encoding/json"

	"prompt-api/internal/config"
	"prompt-api/internal/handlers"
	"prompt-api/pkg/lambda"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
)

var generateHandler *handlers.GenerateHandler

func init() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to load configuration")
		return
	}

	ctx := context.Background()
	manager := lambda.GetConnectionManager()
	if err := manager.Initialize(ctx, cfg); err != nil {
		logrus.WithError(err).Error("Failed to initialize container")
		return
	}

	container, err := manager.GetContainer(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to initialize container")
		return
	}

	generateHandler = handlers.NewGenerateHandler(
		container.GenerationService,
		cfg.CORS,
		container.Logger,
		container.Metrics,
	)

	container.Logger.WithFields(logrus.Fields{
		"function":      config.GetServerlessConfig().FunctionName,
		"region":        cfg.Bedrock.Region,
		"default_model": cfg.Bedrock.DefaultModelID,
	}).Info("Cold start complete")
}

func handler(ctx context.Context, event json.RawMessage) (events.APIGatewayProxyResponse, error) {
	if generateHandler == nil {
		return handlers.UnavailableResponse(config.Default().CORS).ToAPIGatewayProxyResponse(), nil
	}

	resp := generateHandler.Handle(ctx, event)
	return resp.ToAPIGatewayProxyResponse(), nil
}

func main() {
	awslambda.Start(handler)
}
