package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnflow/learnflow/internal/content"
	"github.com/learnflow/learnflow/internal/llm"
	"github.com/learnflow/learnflow/internal/logger"
)

// GenerateHandler serves learning package generation requests.
type GenerateHandler struct {
	log *logger.Logger
	svc *content.Service
}

// NewGenerateHandler creates the generation handler.
func NewGenerateHandler(log *logger.Logger, svc *content.Service) *GenerateHandler {
	return &GenerateHandler{
		log: log.With("handler", "GenerateHandler"),
		svc: svc,
	}
}

// QueryRequest is the inbound request body.
type QueryRequest struct {
	Query string `json:"query" binding:"required"`
}

// Generate handles POST /api/v1/generate.
// Responses: 200 with the LearningPackage, 422 for a bad request body or
// unusable provider output, 500 for configuration or unexpected failures,
// 502 when the provider is unreachable, rate-limit exhausted, or returned
// no usable envelope.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "invalid_request", "query is required")
		return
	}

	pkg, err := h.svc.Generate(c.Request.Context(), req.Query)
	if err != nil {
		h.respondGenerationError(c, req.Query, err)
		return
	}

	c.JSON(http.StatusOK, pkg)
}

// respondGenerationError logs the full failure detail, then maps the typed
// error to a generic status and message. Raw provider bodies never reach
// the client.
func (h *GenerateHandler) respondGenerationError(c *gin.Context, query string, err error) {
	h.log.Error("generation failed", "query", query, "error", err.Error())

	var (
		confErr   *llm.ErrConfiguration
		exhausted *llm.ErrRateLimitExhausted
		unavail   *llm.ErrProviderUnavailable
		malformed *llm.ErrMalformedEnvelope
		invalid   *llm.ErrInvalidJSON
		violation *llm.ErrSchemaViolation
		truncated *llm.ErrMaxTokensExceeded
	)

	switch {
	case errors.As(err, &confErr):
		RespondError(c, http.StatusInternalServerError, "not_configured", "content generation is not configured")
	case errors.As(err, &exhausted):
		RespondError(c, http.StatusBadGateway, "rate_limited", "AI service is rate limiting requests")
	case errors.As(err, &unavail):
		RespondError(c, http.StatusBadGateway, "provider_unavailable", "AI service unavailable")
	case errors.As(err, &malformed):
		RespondError(c, http.StatusBadGateway, "malformed_envelope", "AI service returned no usable response")
	case errors.As(err, &invalid), errors.As(err, &violation):
		RespondError(c, http.StatusUnprocessableEntity, "invalid_output", "AI returned invalid format")
	case errors.As(err, &truncated):
		RespondError(c, http.StatusUnprocessableEntity, "truncated_output", "AI response was cut off")
	default:
		RespondError(c, http.StatusInternalServerError, "generation_failed", "content generation failed")
	}
}
