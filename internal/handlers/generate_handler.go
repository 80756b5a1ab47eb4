package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"prompt-api/internal/adapters/bedrock"
	"prompt-api/internal/config"
	"prompt-api/internal/metrics"
	"prompt-api/internal/models"
	"prompt-api/internal/services"
	"prompt-api/pkg/lambda"
)

// GenerateResponse is the success body
type GenerateResponse struct {
	GeneratedText string        `json:"generated_text"`
	Model         string        `json:"model"`
	TokensUsed    int           `json:"tokens_used"`
	Usage         UsageResponse `json:"usage"`
	StopReason    string        `json:"stop_reason,omitempty"`
}

// UsageResponse reports token usage for one completion
type UsageResponse struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// GenerateHandler handles prompt completion requests
type GenerateHandler struct {
	generationService services.GenerationService
	cors              config.CORSConfig
	logger            logrus.FieldLogger
	metrics           *metrics.Metrics
}

// NewGenerateHandler creates a new generate handler
func NewGenerateHandler(generationService services.GenerationService, cors config.CORSConfig, logger logrus.FieldLogger, m *metrics.Metrics) *GenerateHandler {
	return &GenerateHandler{
		generationService: generationService,
		cors:              cors,
		logger:            logger,
		metrics:           m,
	}
}

// Handle runs one invocation: parse, validate, build request, invoke, extract, respond.
// It never returns an error; every failure becomes a well-formed response.
func (h *GenerateHandler) Handle(ctx context.Context, event json.RawMessage) (resp *lambda.Response) {
	log := h.logger.WithField("request_id", lambda.RequestIDFromContext(ctx))

	defer func() {
		if r := recover(); r != nil {
			resp = h.failure(log, unknownError(fmt.Errorf("panic: %v", r)))
		}
	}()

	invocation, err := models.ParseInvocationEvent(event)
	if err != nil {
		return h.failure(log, classify(err))
	}

	if invocation.IsPreflight() {
		return h.respond(http.StatusOK, struct{}{}, "")
	}

	payload, err := invocation.Payload()
	if err != nil {
		return h.failure(log, classify(err))
	}

	req, err := h.generationService.ParseRequest(payload)
	if err != nil {
		return h.failure(log, classify(err))
	}
	log = log.WithField("model_id", req.ModelID)

	result, err := h.generationService.Generate(ctx, req)
	if err != nil {
		return h.failure(log, classify(err))
	}

	log.WithFields(logrus.Fields{
		"prompt":        req.TruncatedPrompt(),
		"output_tokens": result.Usage.OutputTokens,
	}).Info("Successfully generated response")

	return h.respond(http.StatusOK, GenerateResponse{
		GeneratedText: result.Text,
		Model:         result.ModelID,
		TokensUsed:    result.Usage.OutputTokens,
		Usage: UsageResponse{
			InputTokens:  result.Usage.InputTokens,
			OutputTokens: result.Usage.OutputTokens,
		},
		StopReason: result.StopReason,
	}, "")
}

// @Summary Generate a completion
// @Description Forward a prompt to the configured model and return the generated text
// @Tags generation
// @Accept json
// @Produce json
// @Param request body models.GenerationInput true "Prompt and generation parameters"
// @Success 200 {object} GenerateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /generate [post]
func (h *GenerateHandler) Generate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	req := &lambda.Request{
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		Headers:     flatten(c.Request.Header),
		QueryParams: flatten(c.Request.URL.Query()),
		Body:        body,
	}

	event, err := req.ToEvent()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	resp := h.Handle(c.Request.Context(), event)
	for key, value := range resp.Headers {
		c.Header(key, value)
	}
	c.Data(resp.StatusCode, resp.Headers["Content-Type"], resp.Body)
}

func (h *GenerateHandler) failure(log logrus.FieldLogger, herr *HandlerError) *lambda.Response {
	status := herr.Kind.StatusCode()
	entry := log.WithFields(logrus.Fields{
		"error_kind":  herr.Kind.String(),
		"status_code": status,
	}).WithError(herr.Err)
	if bedrock.IsCanceled(herr.Err) {
		entry = entry.WithField("canceled", true)
	}

	if status >= http.StatusInternalServerError {
		entry.Error(herr.Message)
	} else {
		entry.Warn(herr.Message)
	}

	return h.respond(status, ErrorResponse{
		Error:   herr.Message,
		Message: herr.Detail,
	}, herr.Kind.String())
}

func (h *GenerateHandler) respond(status int, body interface{}, errorKind string) *lambda.Response {
	encoded, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		errorKind = KindUnknown.String()
		encoded = []byte(`{"error":"Internal server error"}`)
	}

	h.metrics.ObserveRequest(status, errorKind)

	return &lambda.Response{
		StatusCode: status,
		Headers:    h.headers(),
		Body:       encoded,
	}
}

func (h *GenerateHandler) headers() map[string]string {
	headers := h.cors.Headers()
	headers["Content-Type"] = models.ContentTypeJSON
	return headers
}

func flatten(values map[string][]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	flat := make(map[string]string, len(values))
	for key, v := range values {
		if len(v) > 0 {
			flat[key] = v[0]
		}
	}
	return flat
}

// UnavailableResponse is returned when the process failed to build its dependencies at cold start
func UnavailableResponse(cors config.CORSConfig) *lambda.Response {
	headers := cors.Headers()
	headers["Content-Type"] = models.ContentTypeJSON
	body, _ := json.Marshal(ErrorResponse{
		Error:   "Internal server error",
		Message: "Service is not initialized",
	})
	return &lambda.Response{
		StatusCode: http.StatusInternalServerError,
		Headers:    headers,
		Body:       body,
	}
}
