// Package http contains the webhook HTTP delivery for the recognition domain
package http

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/Conte777/songid-bot/internal/domain/recognition/deps"
	"github.com/Conte777/songid-bot/internal/infrastructure/metrics"
)

// WebhookHandler accepts Telegram updates and hands them to the work queue
type WebhookHandler struct {
	queue   deps.UpdateQueue
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(queue deps.UpdateQueue, m *metrics.Metrics, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		queue:   queue,
		metrics: m,
		logger:  logger.With().Str("handler", "webhook").Logger(),
	}
}

// HandleUpdate handles POST /bot/{token}.
// Telegram always gets 200 with an empty body; processing happens in the workers.
func (h *WebhookHandler) HandleUpdate(ctx *fasthttp.RequestCtx) {
	defer ctx.SetStatusCode(fasthttp.StatusOK)

	body := ctx.PostBody()
	if len(body) == 0 {
		h.logger.Debug().Msg("Empty webhook body ignored")
		return
	}

	// The request buffer is reused by fasthttp after the handler returns
	raw := append([]byte(nil), body...)

	if err := h.queue.Push(ctx, raw); err != nil {
		h.logger.Error().Err(err).Msg("Failed to enqueue update")
		h.metrics.RecordEnqueueError()
		return
	}

	h.metrics.RecordUpdateReceived()
}

// healthResponse is the GET /health body
type healthResponse struct {
	Status string `json:"status"`
}

// Health handles GET /health
func (h *WebhookHandler) Health(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	if err := json.NewEncoder(ctx).Encode(healthResponse{Status: "ok"}); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}
