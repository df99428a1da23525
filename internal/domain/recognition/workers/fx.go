package workers

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/songid-bot/config"
	"github.com/Conte777/songid-bot/internal/domain/recognition/deps"
	"github.com/Conte777/songid-bot/internal/domain/recognition/usecase/business"
)

// Module provides workers for fx dependency injection
var Module = fx.Module("recognition-workers",
	fx.Provide(providePool),
	fx.Invoke(registerPoolLifecycle),
)

// providePool creates the worker pool around the processing use case
func providePool(cfg *config.WorkerConfig, q deps.UpdateQueue, uc *business.UseCase, logger zerolog.Logger) *Pool {
	return NewPool(cfg, q, uc, logger)
}

// registerPoolLifecycle starts the pool with the application, independent of webhook traffic
func registerPoolLifecycle(lc fx.Lifecycle, pool *Pool) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			pool.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			return pool.Stop()
		},
	})
}
