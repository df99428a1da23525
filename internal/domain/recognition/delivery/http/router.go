package http

import (
	"github.com/fasthttp/router"
	"github.com/rs/zerolog"
)

// Router registers webhook HTTP routes
type Router struct {
	handler *WebhookHandler
	token   string
	logger  zerolog.Logger
}

// NewRouter creates a new webhook router
func NewRouter(handler *WebhookHandler, token string, logger zerolog.Logger) *Router {
	return &Router{
		handler: handler,
		token:   token,
		logger:  logger,
	}
}

// WebhookPath is the path Telegram posts updates to
func (r *Router) WebhookPath() string {
	return "/bot/" + r.token
}

// RegisterRoutes registers webhook routes on the router
func (r *Router) RegisterRoutes(rt *router.Router) {
	rt.POST(r.WebhookPath(), r.handler.HandleUpdate)
	rt.GET("/health", r.handler.Health)

	r.logger.Info().Msg("Webhook routes registered")
}
