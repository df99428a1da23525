// Package recognition contains the music recognition domain module
package recognition

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/songid-bot/config"
	httpDelivery "github.com/Conte777/songid-bot/internal/domain/recognition/delivery/http"
	"github.com/Conte777/songid-bot/internal/domain/recognition/deps"
	"github.com/Conte777/songid-bot/internal/domain/recognition/parser"
	"github.com/Conte777/songid-bot/internal/domain/recognition/repository/acrcloud"
	telegramRepo "github.com/Conte777/songid-bot/internal/domain/recognition/repository/telegram"
	"github.com/Conte777/songid-bot/internal/domain/recognition/usecase/business"
	"github.com/Conte777/songid-bot/internal/domain/recognition/workers"
	"github.com/Conte777/songid-bot/internal/infrastructure/http/server"
	"github.com/Conte777/songid-bot/internal/infrastructure/telegram"
)

// Module provides recognition domain components for fx dependency injection
var Module = fx.Module("recognition",
	// Repository
	fx.Provide(provideFileProvider),
	fx.Provide(provideChatSender),
	fx.Provide(provideRecognizer),

	// UseCase
	fx.Provide(parser.New),
	fx.Provide(business.NewUseCase),

	// Delivery - HTTP webhook
	fx.Provide(httpDelivery.NewWebhookHandler),
	fx.Provide(provideRouter),

	// Workers
	workers.Module,

	fx.Invoke(registerRoutes),
)

// provideFileProvider creates the getFile/download client sharing the bot's HTTP client
func provideFileProvider(cfg *config.TelegramConfig, bot *telegram.Bot, logger zerolog.Logger) deps.FileProvider {
	return telegramRepo.NewFileClient(cfg, bot.HTTPClient(), logger)
}

// provideChatSender creates the message sender around the raw bot
func provideChatSender(bot *telegram.Bot, logger zerolog.Logger) deps.ChatSender {
	return telegramRepo.NewSender(bot.Raw(), logger)
}

// provideRecognizer creates the ACRCloud client behind a circuit breaker
func provideRecognizer(cfg *config.RecognitionConfig, logger zerolog.Logger) deps.Recognizer {
	log := logger.With().Str("component", "recognizer").Logger()
	sampler := acrcloud.NewSampleExtractor(cfg.FFmpegPath, cfg.SampleSeconds, log)
	client := acrcloud.NewClient(cfg, sampler, log)
	return acrcloud.NewBreakerRecognizer(client, cfg, log)
}

// provideRouter creates the webhook router bound to the bot token
func provideRouter(handler *httpDelivery.WebhookHandler, cfg *config.TelegramConfig, logger zerolog.Logger) *httpDelivery.Router {
	return httpDelivery.NewRouter(handler, cfg.BotToken, logger)
}

// registerRoutes registers webhook routes on the server
func registerRoutes(srv *server.Server, router *httpDelivery.Router) {
	router.RegisterRoutes(srv.Router)
}
