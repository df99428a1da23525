package telegram

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/songid-bot/config"
)

// Module provides Telegram bot for fx dependency injection
var Module = fx.Module("telegram",
	fx.Provide(provideBot),
	fx.Invoke(registerLifecycle),
)

// provideBot creates Telegram bot from config
func provideBot(cfg *config.TelegramConfig, logger zerolog.Logger) (*Bot, error) {
	return NewBot(cfg, logger.With().Str("component", "telegram").Logger())
}

// registerLifecycle registers the webhook once the application starts
func registerLifecycle(lc fx.Lifecycle, bot *Bot) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return bot.RegisterWebhook(ctx)
		},
	})
}
