package models

// ProviderRequest is the Anthropic messages envelope Bedrock expects in the InvokeModel body.
// Field order is fixed so the serialized form is deterministic.
type ProviderRequest struct {
	AnthropicVersion string            `json:"anthropic_version"`
	MaxTokens        int               `json:"max_tokens"`
	Temperature      *float64          `json:"temperature,omitempty"`
	Messages         []ProviderMessage `json:"messages"`
}

// ProviderMessage is a single conversation turn
type ProviderMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ProviderResponse is the decoded InvokeModel response body
type ProviderResponse struct {
	ID         string         `json:"id,omitempty"`
	Type       string         `json:"type,omitempty"`
	Role       string         `json:"role,omitempty"`
	Model      string         `json:"model,omitempty"`
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason,omitempty"`
	Usage      *ProviderUsage `json:"usage,omitempty"`
}

// ContentBlock is one block of generated content
type ContentBlock struct {
	Type string  `json:"type,omitempty"`
	Text *string `json:"text,omitempty"`
}

// ProviderUsage holds the token counts reported by the endpoint
type ProviderUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// NewProviderRequest builds the single-turn provider request for a generation request
func NewProviderRequest(req *GenerationRequest, anthropicVersion string) *ProviderRequest {
	providerReq := &ProviderRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        req.MaxTokens,
		Messages: []ProviderMessage{
			{Role: RoleUser, Content: req.Prompt},
		},
	}
	if req.Temperature != nil {
		temperature := *req.Temperature
		providerReq.Temperature = &temperature
	}
	return providerReq
}

// FirstText returns the generated text: the first block's text, or the first
// text-bearing block when the first block carries none.
func (r *ProviderResponse) FirstText() (string, bool) {
	if len(r.Content) == 0 {
		return "", false
	}
	if r.Content[0].Text != nil {
		return *r.Content[0].Text, true
	}
	for _, block := range r.Content[1:] {
		if block.Text != nil {
			return *block.Text, true
		}
	}
	return "", false
}

// TokenUsage returns the reported usage, zero when absent
func (r *ProviderResponse) TokenUsage() ProviderUsage {
	if r.Usage == nil {
		return ProviderUsage{}
	}
	return *r.Usage
}
