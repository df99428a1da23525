package acrcloud

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/Conte777/songid-bot/config"
	"github.com/Conte777/songid-bot/internal/domain/recognition/deps"
	"github.com/Conte777/songid-bot/internal/domain/recognition/dto"
	recerrors "github.com/Conte777/songid-bot/internal/domain/recognition/errors"
	pkgerrors "github.com/Conte777/songid-bot/pkg/errors"
)

// BreakerRecognizer fails fast once the recognition service stops answering.
// Only connectivity failures count against the breaker; provider statuses do not.
type BreakerRecognizer struct {
	inner   deps.Recognizer
	breaker *gobreaker.CircuitBreaker[*dto.RecognitionResult]
}

// NewBreakerRecognizer wraps inner with a circuit breaker
func NewBreakerRecognizer(inner deps.Recognizer, cfg *config.RecognitionConfig, logger zerolog.Logger) *BreakerRecognizer {
	maxFailures := cfg.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	cb := gobreaker.NewCircuitBreaker[*dto.RecognitionResult](gobreaker.Settings{
		Name:        "acrcloud",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !pkgerrors.IsConnectivityError(err)
		},
	})

	return &BreakerRecognizer{inner: inner, breaker: cb}
}

// Recognize implements deps.Recognizer interface
func (r *BreakerRecognizer) Recognize(ctx context.Context, data []byte, offset int) (*dto.RecognitionResult, error) {
	result, err := r.breaker.Execute(func() (*dto.RecognitionResult, error) {
		return r.inner.Recognize(ctx, data, offset)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, pkgerrors.NewConnectivityError(recerrors.StageBreakerOpen, err)
	}
	return result, err
}

// State returns the current breaker state
func (r *BreakerRecognizer) State() gobreaker.State {
	return r.breaker.State()
}
