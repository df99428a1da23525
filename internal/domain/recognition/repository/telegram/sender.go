package telegram

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	recerrors "github.com/Conte777/songid-bot/internal/domain/recognition/errors"
	pkgerrors "github.com/Conte777/songid-bot/pkg/errors"
)

// RequestTimeout bounds a single sendMessage call
const RequestTimeout = 30 * time.Second

// Sender delivers replies through the Bot API.
// Implements deps.ChatSender interface.
type Sender struct {
	bot    *tgbot.Bot
	logger zerolog.Logger
}

// NewSender creates a new Sender
func NewSender(bot *tgbot.Bot, logger zerolog.Logger) *Sender {
	return &Sender{
		bot:    bot,
		logger: logger.With().Str("component", "telegram-sender").Logger(),
	}
}

// SendMessage implements deps.ChatSender interface
func (s *Sender) SendMessage(ctx context.Context, chatID int64, text string) error {
	if text == "" {
		return fmt.Errorf("message text cannot be empty")
	}

	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := s.bot.SendMessage(msgCtx, &tgbot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		s.logger.Debug().Int64("chat_id", chatID).Err(err).Msg("sendMessage failed")
		return classifySendError(err)
	}

	s.logger.Debug().Int64("chat_id", chatID).Int("text_length", len(text)).Msg("Message sent")
	return nil
}

func classifySendError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return pkgerrors.NewConnectivityError(recerrors.StageSendMessage, err)
	}
	return recerrors.NewMessagingProviderError(0, err.Error())
}
