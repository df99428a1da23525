// Package app contains application bootstrap
package app

import (
	"go.uber.org/fx"

	"github.com/Conte777/songid-bot/config"
	"github.com/Conte777/songid-bot/internal/domain"
	"github.com/Conte777/songid-bot/internal/infrastructure"
)

// CreateApp creates fx application with all modules
func CreateApp() fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(config.Out),

		// Infrastructure (logger, metrics, telegram bot, queue, http server)
		infrastructure.Module,

		// Domain (recognition pipeline)
		domain.Module,
	)
}
