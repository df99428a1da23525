package queue

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/songid-bot/config"
	"github.com/Conte777/songid-bot/internal/domain/recognition/deps"
)

// Module provides the work queue selected by QUEUE_BACKEND
var Module = fx.Module("queue",
	fx.Provide(NewQueueFx),
)

// NewQueueFx creates the configured queue backend and registers its lifecycle hooks
func NewQueueFx(
	lc fx.Lifecycle,
	queueCfg *config.QueueConfig,
	redisCfg *config.RedisConfig,
	kafkaCfg *config.KafkaConfig,
	logger zerolog.Logger,
) (deps.UpdateQueue, error) {
	log := logger.With().Str("component", "queue").Str("backend", queueCfg.Backend).Logger()

	switch queueCfg.Backend {
	case config.QueueBackendMemory:
		log.Info().Msg("Using in-memory queue")
		return NewMemoryQueue(queueCfg.PollTimeout), nil

	case config.QueueBackendRedis:
		q := NewRedisQueue(redisCfg, queueCfg.PollTimeout, log)
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return q.Ping(ctx)
			},
			OnStop: func(_ context.Context) error {
				return q.Close()
			},
		})
		return q, nil

	case config.QueueBackendKafka:
		q, err := NewKafkaQueue(kafkaCfg, queueCfg.PollTimeout, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return q.Close()
			},
		})
		return q, nil

	default:
		return nil, fmt.Errorf("unknown queue backend %q", queueCfg.Backend)
	}
}
