// Package workers contains background workers for the recognition domain
package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Conte777/songid-bot/config"
	"github.com/Conte777/songid-bot/internal/domain/recognition/deps"
	"github.com/Conte777/songid-bot/internal/domain/recognition/usecase/business"
	"github.com/Conte777/songid-bot/internal/infrastructure/queue"
)

// errorBackoff is the pause after a failed Pop other than an empty poll
const errorBackoff = time.Second

// Handler processes one raw update document
type Handler interface {
	Process(ctx context.Context, raw []byte) business.Outcome
}

// Pool runs a fixed number of processing loops against the shared queue
type Pool struct {
	queue   deps.UpdateQueue
	handler Handler
	count   int
	backoff time.Duration
	logger  zerolog.Logger
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewPool creates a new worker Pool
func NewPool(cfg *config.WorkerConfig, q deps.UpdateQueue, handler Handler, logger zerolog.Logger) *Pool {
	count := cfg.Count
	if count < 1 {
		count = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		queue:   q,
		handler: handler,
		count:   count,
		backoff: errorBackoff,
		logger:  logger.With().Str("component", "worker-pool").Logger(),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers
func (p *Pool) Start() {
	p.logger.Info().Int("workers", p.count).Msg("Starting recognition workers...")

	for i := 0; i < p.count; i++ {
		p.wg.Add(1)
		go p.run(i)
	}
}

// Stop cancels the workers and waits for in-flight updates to finish
func (p *Pool) Stop() error {
	p.logger.Info().Msg("Stopping recognition workers...")
	p.cancel()
	p.wg.Wait()
	p.logger.Info().Msg("Recognition workers stopped successfully")
	return nil
}

func (p *Pool) run(id int) {
	defer p.wg.Done()
	log := p.logger.With().Int("worker", id).Logger()

	for {
		raw, err := p.queue.Pop(p.ctx)
		if err != nil {
			if p.ctx.Err() != nil {
				log.Debug().Msg("Worker stopped by context cancellation")
				return
			}
			if errors.Is(err, queue.ErrEmpty) {
				continue
			}
			log.Error().Err(err).Msg("Failed to pop update from queue")
			select {
			case <-p.ctx.Done():
				return
			case <-time.After(p.backoff):
			}
			continue
		}

		// In-flight updates run to completion on shutdown
		outcome := p.handler.Process(context.WithoutCancel(p.ctx), raw)
		log.Debug().Str("outcome", outcome.String()).Msg("Update processed")
	}
}
