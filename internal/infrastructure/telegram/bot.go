// Package telegram contains Telegram bot infrastructure
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/rs/zerolog"

	"github.com/Conte777/songid-bot/config"
)

// RequestTimeout bounds Bot API calls made by the bot
const RequestTimeout = 30 * time.Second

// Bot wraps the Telegram bot for infrastructure layer
type Bot struct {
	bot        *tgbot.Bot
	httpClient *http.Client
	webhookURL string
	logger     zerolog.Logger
}

// NewBot creates a new Telegram bot wrapper.
// Updates arrive through the webhook, so the bot is never started in polling mode.
func NewBot(cfg *config.TelegramConfig, logger zerolog.Logger) (*Bot, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("telegram token is required")
	}

	client, err := NewHTTPClient(cfg.ProxyURL, RequestTimeout)
	if err != nil {
		return nil, err
	}

	opts := []tgbot.Option{
		tgbot.WithServerURL(cfg.APIURL),
		tgbot.WithHTTPClient(RequestTimeout, client),
	}

	bot, err := tgbot.New(cfg.BotToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info().Bool("proxy", cfg.ProxyURL != "").Msg("Telegram bot created successfully")

	return &Bot{
		bot:        bot,
		httpClient: client,
		webhookURL: cfg.WebhookURL,
		logger:     logger,
	}, nil
}

// Raw returns the underlying telegram bot
func (b *Bot) Raw() *tgbot.Bot {
	return b.bot
}

// HTTPClient returns the proxy-aware client shared by all Telegram traffic
func (b *Bot) HTTPClient() *http.Client {
	return b.httpClient
}

// RegisterWebhook points Telegram at the configured webhook URL; a no-op when unset
func (b *Bot) RegisterWebhook(ctx context.Context) error {
	if b.webhookURL == "" {
		b.logger.Info().Msg("TELEGRAM_WEBHOOK_URL not set, skipping webhook registration")
		return nil
	}

	reqCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	if _, err := b.bot.SetWebhook(reqCtx, &tgbot.SetWebhookParams{URL: b.webhookURL}); err != nil {
		return fmt.Errorf("failed to register webhook: %w", err)
	}

	b.logger.Info().Msg("Webhook registered")
	return nil
}
