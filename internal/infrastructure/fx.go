// Package infrastructure contains infrastructure layer components
package infrastructure

import (
	"go.uber.org/fx"

	httpfx "github.com/Conte777/songid-bot/internal/infrastructure/http"
	"github.com/Conte777/songid-bot/internal/infrastructure/logger"
	"github.com/Conte777/songid-bot/internal/infrastructure/metrics"
	"github.com/Conte777/songid-bot/internal/infrastructure/queue"
	"github.com/Conte777/songid-bot/internal/infrastructure/telegram"
)

// Module provides all infrastructure components for fx dependency injection
var Module = fx.Module("infrastructure",
	logger.Module,
	metrics.Module,
	telegram.Module,
	queue.Module,
	httpfx.Module,
)
