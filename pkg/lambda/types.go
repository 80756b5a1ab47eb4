package lambda

import (
	"encoding/base64"
	"encoding/json"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
)

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        []byte            `json:"body"`
	PathParams  map[string]string `json:"path_params"`
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// ToEvent encodes the request as the API Gateway proxy event the Lambda handler receives.
// Bodies that are not valid UTF-8 are base64 encoded, as API Gateway does for binary payloads.
func (r *Request) ToEvent() (json.RawMessage, error) {
	event := events.APIGatewayProxyRequest{
		HTTPMethod:            r.Method,
		Path:                  r.Path,
		Headers:               r.Headers,
		QueryStringParameters: r.QueryParams,
		PathParameters:        r.PathParams,
	}

	if utf8.Valid(r.Body) {
		event.Body = string(r.Body)
	} else {
		event.Body = base64.StdEncoding.EncodeToString(r.Body)
		event.IsBase64Encoded = true
	}

	return json.Marshal(event)
}

// ToAPIGatewayProxyResponse converts the response to the API Gateway proxy shape
func (r *Response) ToAPIGatewayProxyResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: r.StatusCode,
		Headers:    r.Headers,
		Body:       string(r.Body),
	}
}
