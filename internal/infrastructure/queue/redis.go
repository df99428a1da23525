package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/Conte777/songid-bot/config"
)

// RedisQueue is a Redis list shared by several bot processes.
// Documents are pushed on the left and popped from the right.
type RedisQueue struct {
	client      *redis.Client
	key         string
	pollTimeout time.Duration
	logger      zerolog.Logger
}

// NewRedisQueue creates a new RedisQueue
func NewRedisQueue(cfg *config.RedisConfig, pollTimeout time.Duration, logger zerolog.Logger) *RedisQueue {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &RedisQueue{
		client:      client,
		key:         cfg.QueueKey,
		pollTimeout: pollTimeout,
		logger:      logger,
	}
}

// Ping checks the connection
func (q *RedisQueue) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := q.client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	q.logger.Info().Str("key", q.key).Msg("Redis queue connected")
	return nil
}

// Push implements deps.UpdateQueue interface
func (q *RedisQueue) Push(ctx context.Context, raw []byte) error {
	if err := q.client.LPush(ctx, q.key, raw).Err(); err != nil {
		return fmt.Errorf("failed to push update to redis: %w", err)
	}
	return nil
}

// Pop implements deps.UpdateQueue interface
func (q *RedisQueue) Pop(ctx context.Context) ([]byte, error) {
	return popResult(q.client.BRPop(ctx, q.pollTimeout, q.key).Result())
}

// Close closes the Redis connection
func (q *RedisQueue) Close() error {
	return q.client.Close()
}

// popResult unpacks a BRPOP reply of [key, value]
func popResult(vals []string, err error) ([]byte, error) {
	if errors.Is(err, redis.Nil) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pop update from redis: %w", err)
	}
	if len(vals) != 2 {
		return nil, fmt.Errorf("unexpected BRPOP reply of %d elements", len(vals))
	}
	return []byte(vals[1]), nil
}
