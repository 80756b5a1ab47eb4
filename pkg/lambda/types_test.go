package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_ToEvent(t *testing.T) {
	req := &Request{
		Method:      "POST",
		Path:        "/api/v1/generate",
		Headers:     map[string]string{"Content-Type": "application/json"},
		QueryParams: map[string]string{"debug": "1"},
		Body:        []byte(`{"prompt":"hi"}`),
	}

	raw, err := req.ToEvent()
	require.NoError(t, err)

	var event events.APIGatewayProxyRequest
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, "POST", event.HTTPMethod)
	assert.Equal(t, "/api/v1/generate", event.Path)
	assert.Equal(t, `{"prompt":"hi"}`, event.Body)
	assert.False(t, event.IsBase64Encoded)
	assert.Equal(t, "1", event.QueryStringParameters["debug"])
}

func TestRequest_ToEventBinaryBody(t *testing.T) {
	body := []byte{0xff, 0xfe, 0x00}
	raw, err := (&Request{Method: "POST", Body: body}).ToEvent()
	require.NoError(t, err)

	var event events.APIGatewayProxyRequest
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.True(t, event.IsBase64Encoded)

	decoded, err := base64.StdEncoding.DecodeString(event.Body)
	require.NoError(t, err)
	assert.Equal(t, body, decoded)
}

func TestResponse_ToAPIGatewayProxyResponse(t *testing.T) {
	resp := &Response{
		StatusCode: 400,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       []byte(`{"error":"Invalid JSON in request body"}`),
	}

	proxy := resp.ToAPIGatewayProxyResponse()
	assert.Equal(t, 400, proxy.StatusCode)
	assert.Equal(t, "application/json", proxy.Headers["Content-Type"])
	assert.Equal(t, `{"error":"Invalid JSON in request body"}`, proxy.Body)
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))

	ctx := WithRequestID(context.Background(), "local-id")
	assert.Equal(t, "local-id", RequestIDFromContext(ctx))

	lambdaCtx := lambdacontext.NewContext(ctx, &lambdacontext.LambdaContext{AwsRequestID: "aws-id"})
	assert.Equal(t, "aws-id", RequestIDFromContext(lambdaCtx))
}

func TestConnectionManager_Singleton(t *testing.T) {
	assert.Same(t, GetConnectionManager(), GetConnectionManager())
}
