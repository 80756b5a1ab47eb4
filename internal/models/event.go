package models

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// EventBody is the resolved shape of an invocation's body.
// It is one of TextBody, StructuredBody or BareObject.
type EventBody interface {
	isEventBody()
}

// TextBody is a body delivered as a JSON-encoded string, as API Gateway does
type TextBody struct {
	Text            string
	IsBase64Encoded bool
}

// StructuredBody is a body that was already a JSON object inside the event
type StructuredBody struct {
	Raw json.RawMessage
}

// BareObject is an event without a body field; the whole event is the payload
type BareObject struct {
	Raw json.RawMessage
}

func (TextBody) isEventBody()       {}
func (StructuredBody) isEventBody() {}
func (BareObject) isEventBody()     {}

// InvocationEvent is the normalized inbound trigger payload
type InvocationEvent struct {
	Method string
	Body   EventBody
}

// requestContext carries the HTTP API (v2) method
type requestContext struct {
	HTTP struct {
		Method string `json:"method"`
	} `json:"http"`
}

// ParseInvocationEvent resolves a raw event into an InvocationEvent.
// A nil Body means the event carried "body": null.
// Wrapper fields of an unexpected type are ignored rather than failing the event.
func ParseInvocationEvent(raw []byte) (*InvocationEvent, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &InvocationEvent{Body: BareObject{Raw: json.RawMessage("{}")}}, nil
	}
	if trimmed[0] != '{' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("%w: event is not valid JSON", ErrInvalidJSON)
		}
		return nil, &ValidationError{Field: "event", Message: "event must be a JSON object"}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	event := &InvocationEvent{Method: strings.ToUpper(eventMethod(fields))}

	rawBody, hasBody := fields["body"]
	body := bytes.TrimSpace(rawBody)
	switch {
	case !hasBody:
		// No body field at all: tolerant fallback, the event itself is the body
		event.Body = BareObject{Raw: json.RawMessage(trimmed)}
	case bytes.Equal(body, []byte("null")):
		event.Body = nil
	case len(body) > 0 && body[0] == '"':
		var text string
		if err := json.Unmarshal(body, &text); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		event.Body = TextBody{Text: text, IsBase64Encoded: isBase64Encoded(fields["isBase64Encoded"])}
	default:
		event.Body = StructuredBody{Raw: json.RawMessage(body)}
	}

	return event, nil
}

// eventMethod reads httpMethod (REST v1) or requestContext.http.method (HTTP API v2)
func eventMethod(fields map[string]json.RawMessage) string {
	var method string
	if err := json.Unmarshal(fields["httpMethod"], &method); err == nil && method != "" {
		return method
	}

	var rc requestContext
	if err := json.Unmarshal(fields["requestContext"], &rc); err == nil {
		return rc.HTTP.Method
	}
	return ""
}

// isBase64Encoded accepts a JSON boolean or its string form
func isBase64Encoded(raw json.RawMessage) bool {
	var flag bool
	if err := json.Unmarshal(raw, &flag); err == nil {
		return flag
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		flag, _ = strconv.ParseBool(text)
	}
	return flag
}

// IsPreflight reports whether the event is a CORS preflight request
func (e *InvocationEvent) IsPreflight() bool {
	return e.Method == http.MethodOptions
}

// Payload returns the JSON object carried by the event's body
func (e *InvocationEvent) Payload() ([]byte, error) {
	switch b := e.Body.(type) {
	case TextBody:
		return b.decode()
	case StructuredBody:
		return requireObject(b.Raw)
	case BareObject:
		return requireObject(b.Raw)
	case nil:
		return nil, &MissingFieldError{Field: "body"}
	default:
		return nil, fmt.Errorf("unsupported event body %T", b)
	}
}

func (b TextBody) decode() ([]byte, error) {
	data := []byte(b.Text)
	if b.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(b.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid base64 body: %v", ErrInvalidJSON, err)
		}
		data = decoded
	}

	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return nil, ErrInvalidJSON
	}
	return requireObject(data)
}

func requireObject(raw []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &ValidationError{
			Field:   "body",
			Message: "request body must be a JSON object",
		}
	}
	return trimmed, nil
}
