// Package business contains the update processing use case
package business

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Conte777/songid-bot/config"
	"github.com/Conte777/songid-bot/internal/domain/recognition/deps"
	"github.com/Conte777/songid-bot/internal/domain/recognition/entities"
	recerrors "github.com/Conte777/songid-bot/internal/domain/recognition/errors"
	"github.com/Conte777/songid-bot/internal/domain/recognition/parser"
	"github.com/Conte777/songid-bot/internal/infrastructure/metrics"
	pkgerrors "github.com/Conte777/songid-bot/pkg/errors"
)

// Outcome is the terminal state of one processing pass
type Outcome int

const (
	// OutcomeSkipped means there was nothing to answer: malformed document or no message
	OutcomeSkipped Outcome = iota
	// OutcomeDelivered means the track info reached the chat
	OutcomeDelivered
	// OutcomeUndelivered means recognition succeeded but the reply could not be sent
	OutcomeUndelivered
	// OutcomeReported means the error text was sent (or attempted) and processing ended
	OutcomeReported
	// OutcomeRequeued means the error was reported and the update was pushed back
	OutcomeRequeued
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeUndelivered:
		return "undelivered"
	case OutcomeReported:
		return "reported"
	case OutcomeRequeued:
		return "requeued"
	default:
		return "skipped"
	}
}

// UseCase drives one update through decode, recognition, parsing and reporting
type UseCase struct {
	resolver   *MediaResolver
	recognizer deps.Recognizer
	sender     deps.ChatSender
	queue      deps.UpdateQueue
	parser     *parser.Parser
	offset     int
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewUseCase creates a new UseCase
func NewUseCase(
	files deps.FileProvider,
	recognizer deps.Recognizer,
	sender deps.ChatSender,
	queue deps.UpdateQueue,
	p *parser.Parser,
	cfg *config.RecognitionConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		resolver:   NewMediaResolver(files),
		recognizer: recognizer,
		sender:     sender,
		queue:      queue,
		parser:     p,
		offset:     cfg.Offset,
		metrics:    m,
		logger:     logger.With().Str("component", "processor").Logger(),
	}
}

// Process handles one raw update document. It never panics and never returns an error:
// every failure ends up in the chat, in the queue, or in the log.
func (uc *UseCase) Process(ctx context.Context, raw []byte) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			err := pkgerrors.NewInternalError(fmt.Sprintf("panic: %v", r))
			uc.logger.Error().Err(err).Msg("Recovered from panic while processing update")
			uc.metrics.RecordError(recerrors.KindOf(err))
			outcome = OutcomeSkipped
		}
		uc.metrics.RecordOutcome(outcome.String())
	}()

	update, err := entities.DecodeUpdate(raw)
	if err != nil {
		uc.logger.Warn().Err(err).Int("bytes", len(raw)).Msg("Dropping malformed update")
		uc.metrics.RecordError("decode")
		return OutcomeSkipped
	}

	if update.Message == nil {
		uc.logger.Debug().Int64("update_id", update.ID).Msg("Update carries no message, skipping")
		return OutcomeSkipped
	}

	msg := update.Message
	log := uc.logger.With().
		Int64("update_id", update.ID).
		Int64("chat_id", msg.Chat.ID).
		Int("message_id", msg.ID).
		Logger()

	meta, err := uc.recognize(ctx, msg)
	if err != nil {
		return uc.reportError(ctx, log, msg.Chat.ID, raw, err)
	}

	if err := uc.sender.SendMessage(ctx, msg.Chat.ID, meta.Info()); err != nil {
		log.Error().Err(err).Msg("Failed to deliver recognition result")
		uc.metrics.RecordReportFailure()
		return OutcomeUndelivered
	}

	log.Info().
		Str("media", msg.Media.Kind.String()).
		Str("title", meta.Title).
		Strs("artists", meta.Artists).
		Msg("Recognition result delivered")

	return OutcomeDelivered
}

// recognize runs the media through resolution, download, recognition and parsing
func (uc *UseCase) recognize(ctx context.Context, msg *entities.Message) (*entities.Metadata, error) {
	media := msg.Media
	if media == nil {
		return nil, recerrors.ErrNoMedia
	}

	if err := uc.resolver.ResolveLocation(ctx, media); err != nil {
		return nil, err
	}
	if !media.HasContent() {
		if err := uc.resolver.FetchBytes(ctx, media); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	result, err := uc.recognizer.Recognize(ctx, media.Content, uc.offset)
	uc.metrics.RecordRecognition(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	meta, err := uc.parser.Parse(result)
	if err != nil {
		return nil, err
	}

	media.Metadata = meta
	return meta, nil
}

// reportError sends the error text to the chat and requeues transient recognition failures.
// A failed report is logged only.
func (uc *UseCase) reportError(ctx context.Context, log zerolog.Logger, chatID int64, raw []byte, cause error) Outcome {
	kind := recerrors.KindOf(cause)
	uc.metrics.RecordError(kind)

	log.Warn().Err(cause).Str("error_type", kind).Msg("Processing failed")

	if err := uc.sender.SendMessage(ctx, chatID, cause.Error()); err != nil {
		log.Error().Err(err).Msg("Failed to report error to chat")
		uc.metrics.RecordReportFailure()
	}

	if !recerrors.ShouldRequeue(cause) {
		return OutcomeReported
	}

	if err := uc.queue.Push(ctx, raw); err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("Failed to requeue update")
		}
		return OutcomeReported
	}

	uc.metrics.RecordRequeue()
	log.Info().Msg("Update requeued")

	return OutcomeRequeued
}
