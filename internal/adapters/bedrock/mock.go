package bedrock

import (
	"context"
	"encoding/json"
	"sync"
)

// MockInvoker is an in-memory implementation of ModelInvoker for testing and local runs
type MockInvoker struct {
	mu       sync.RWMutex
	response []byte
	err      error
	fn       func(ctx context.Context, input *InvokeInput) (*InvokeOutput, error)
	calls    []InvokeInput
}

// NewMockInvoker creates a MockInvoker answering every call with the given response body
func NewMockInvoker(response []byte) *MockInvoker {
	return &MockInvoker{response: append([]byte(nil), response...)}
}

// NewEchoInvoker creates a MockInvoker that answers with the prompt it received
func NewEchoInvoker() *MockInvoker {
	m := &MockInvoker{}
	m.fn = func(ctx context.Context, input *InvokeInput) (*InvokeOutput, error) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.Unmarshal(input.Body, &req); err != nil {
			return nil, NewInvokeError("InvokeModel", input.ModelID, err)
		}

		text := ""
		if len(req.Messages) > 0 {
			text = req.Messages[len(req.Messages)-1].Content
		}

		body, err := json.Marshal(map[string]interface{}{
			"type":        "message",
			"role":        "assistant",
			"model":       input.ModelID,
			"content":     []map[string]string{{"type": "text", "text": text}},
			"stop_reason": "end_turn",
			"usage": map[string]int{
				"input_tokens":  len(text),
				"output_tokens": len(text),
			},
		})
		if err != nil {
			return nil, err
		}
		return &InvokeOutput{Body: body, ContentType: "application/json"}, nil
	}
	return m
}

// SetResponse replaces the canned response body
func (m *MockInvoker) SetResponse(response []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.response = append([]byte(nil), response...)
	m.err = nil
}

// SetError makes every following call fail with err
func (m *MockInvoker) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetFunc replaces the call behaviour entirely
func (m *MockInvoker) SetFunc(fn func(ctx context.Context, input *InvokeInput) (*InvokeOutput, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fn = fn
}

// InvokeModel implements ModelInvoker.InvokeModel
func (m *MockInvoker) InvokeModel(ctx context.Context, input *InvokeInput) (*InvokeOutput, error) {
	m.mu.Lock()
	if input != nil {
		call := *input
		call.Body = append([]byte(nil), input.Body...)
		m.calls = append(m.calls, call)
	}
	fn, err, response := m.fn, m.err, m.response
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if fn != nil {
		return fn(ctx, input)
	}
	return &InvokeOutput{
		Body:        append([]byte(nil), response...),
		ContentType: "application/json",
	}, nil
}

// Calls returns a copy of every input received so far
func (m *MockInvoker) Calls() []InvokeInput {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]InvokeInput(nil), m.calls...)
}

// CallCount returns the number of calls received so far
func (m *MockInvoker) CallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.calls)
}
